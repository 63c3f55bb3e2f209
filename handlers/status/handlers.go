package status

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"cofoundly/backend/handlers/auth"
)

// Status summarizes how far a user has gotten: whether a profile exists,
// whether it is complete enough to post, and how many posts they have.
// Backs the dashboard's "complete your profile before posting" gate.
type Status struct {
	UserID          int       `json:"user_id"`
	Status          string    `json:"status"`
	HasProfile      bool      `json:"has_profile"`
	ProfileComplete bool      `json:"profile_complete"`
	PostCount       int       `json:"post_count"`
	LastUpdate      time.Time `json:"last_update"`
}

// GetMyStatusHandler returns the current status of the authenticated user
func GetMyStatusHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var status Status
		err = db.QueryRow(`
			SELECT u.id, u.status, CURRENT_TIMESTAMP as last_update
			FROM users u
			WHERE u.id = $1
		`, userID).Scan(&status.UserID, &status.Status, &status.LastUpdate)

		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		var profile struct {
			Name         string
			Age          int
			Gender       string
			Introduction string
		}
		err = db.QueryRow(`
			SELECT name, age, gender, introduction
			FROM profiles
			WHERE user_id = $1
		`, userID).Scan(&profile.Name, &profile.Age, &profile.Gender, &profile.Introduction)

		if err == nil {
			status.HasProfile = true
			status.ProfileComplete = profile.Name != "" &&
				profile.Age >= 1 && profile.Age <= 120 &&
				profile.Gender != "" &&
				profile.Introduction != ""
		} else if err != sql.ErrNoRows {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		err = db.QueryRow(`
			SELECT COUNT(*) FROM posts WHERE user_id = $1
		`, userID).Scan(&status.PostCount)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(status)
	}
}
