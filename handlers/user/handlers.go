package user

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"cofoundly/backend/handlers/auth"
)

// GetMeHandler returns the authenticated user's session information
// Used by: /api/me
func GetMeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var me MeResponse
		err = db.QueryRow(SelectMeQuery, userID).Scan(&me.ID, &me.Email, &me.CreatedAt)

		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(me)
	}
}
