package profile

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cofoundly/backend/handlers/auth"
	"cofoundly/backend/handlers/user_status"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// validateProfileInput trims string fields in place and returns a
// user-facing message when any field is out of bounds.
func validateProfileInput(in *ProfileInput) string {
	in.Name = strings.TrimSpace(in.Name)
	in.Introduction = strings.TrimSpace(in.Introduction)

	if in.Name == "" {
		return "Please enter your name."
	}
	if in.Age < 1 || in.Age > 120 {
		return "Please enter a valid age between 1 and 120."
	}
	if in.Gender == "" {
		return "Please select your gender."
	}
	if in.Introduction == "" {
		return "Please add an introduction about yourself."
	}
	return ""
}

// GetMyProfileHandler returns the authenticated user's profile.
// A 404 is the normal first-time-user outcome, not a hard failure.
func GetMyProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var p Profile
		err = db.QueryRow(SelectProfileByUserQuery, userID).Scan(
			&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.Introduction,
		)

		if err == sql.ErrNoRows {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		} else if err != nil {
			log.Printf("Database error fetching profile for user %d: %v", userID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(p)
	}
}

// GetProfileHandler returns a profile by ID for the explore screen.
// Public read, no ownership check.
func GetProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		vars := mux.Vars(r)
		profileID := vars["id"]

		var p Profile
		err := db.QueryRow(SelectProfileByIDQuery, profileID).Scan(
			&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.Introduction,
		)

		if err == sql.ErrNoRows {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(p)
	}
}

// CreateProfileHandler creates the authenticated user's profile.
// At most one profile per account; a second create returns 409.
func CreateProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var input ProfileInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		if msg := validateProfileInput(&input); msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		p := Profile{
			ID:           uuid.NewString(),
			UserID:       userID,
			Name:         input.Name,
			Age:          input.Age,
			Gender:       input.Gender,
			Introduction: input.Introduction,
		}

		_, err = tx.Exec(InsertProfileQuery, p.ID, p.UserID, p.Name, p.Age, p.Gender, p.Introduction)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"error": "Profile already exists"})
				return
			}
			log.Printf("Failed to create profile for user %d: %v", userID, err)
			http.Error(w, "Error creating profile", http.StatusInternalServerError)
			return
		}

		if err := user_status.UpdateUserStatus(tx, userID); err != nil {
			http.Error(w, "Failed to update user status", http.StatusInternalServerError)
			return
		}

		if err = tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}
}

// UpdateProfileHandler overwrites the authenticated user's profile fields.
// Concurrent edits are last-write-wins; there is no conflict token.
func UpdateProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var input ProfileInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		if msg := validateProfileInput(&input); msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		result, err := tx.Exec(UpdateProfileQuery, input.Name, input.Age, input.Gender, input.Introduction, userID)
		if err != nil {
			log.Printf("Failed to update profile for user %d: %v", userID, err)
			http.Error(w, "Error updating profile", http.StatusInternalServerError)
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if rowsAffected == 0 {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}

		if err := user_status.UpdateUserStatus(tx, userID); err != nil {
			http.Error(w, "Failed to update user status", http.StatusInternalServerError)
			return
		}

		if err = tx.Commit(); err != nil {
			http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		var p Profile
		err = db.QueryRow(SelectProfileByUserQuery, userID).Scan(
			&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.Introduction,
		)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(p)
	}
}
