package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"cofoundly/backend/handlers/user_status"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// validateCredentials normalizes the email and returns a user-facing message
// when either field is out of bounds.
func validateCredentials(email, password string) (string, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > 255 {
		return "", "Please enter a valid email address"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "Please enter a valid email address"
	}
	if len(password) < 6 {
		return "", "Password must be at least 6 characters"
	}
	if len(password) > 100 {
		return "", "Password must be under 100 characters"
	}
	return email, ""
}

// SignupHandler handles account registration
// Used by: /api/auth/signup
// Response: LoginResponse
func SignupHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var signupRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := json.NewDecoder(r.Body).Decode(&signupRequest); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		email, msg := validateCredentials(signupRequest.Email, signupRequest.Password)
		if msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupRequest.Password), bcrypt.DefaultCost)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error hashing password"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Database error"})
			return
		}
		defer tx.Rollback()

		var userID int
		err = tx.QueryRow(InsertUserQuery, email, string(hashedPassword)).Scan(&userID)
		if err != nil {
			// Duplicate accounts are detected by the unique-violation error
			// code, not by matching on error message text.
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"error": "Email already in use. Please log in instead."})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error creating user"})
			return
		}

		if err := user_status.UpdateUserStatus(tx, userID); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error updating user status"})
			return
		}

		token, err := GenerateToken(userID)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error generating token"})
			return
		}

		_, err = tx.Exec(InsertTokenQuery, userID, token, time.Now().Add(time.Hour*24))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error storing token"})
			return
		}

		if err = tx.Commit(); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error completing registration"})
			return
		}

		json.NewEncoder(w).Encode(LoginResponse{
			ID:    userID,
			Email: email,
			Token: token,
		})
	}
}

// CheckEmailHandler reports whether an account already exists for an email.
// Replaces probing the login endpoint with a dummy password.
// Used by: /api/auth/check-email
func CheckEmailHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
		if email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing email parameter"})
			return
		}

		var exists bool
		if err := db.QueryRow(SelectEmailExistsQuery, email).Scan(&exists); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Database error"})
			return
		}

		json.NewEncoder(w).Encode(map[string]bool{"exists": exists})
	}
}

// LoginHandler handles user authentication
// Used by: /api/auth/login
// Response: LoginResponse
func LoginHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loginRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		email := strings.ToLower(strings.TrimSpace(loginRequest.Email))

		var user User
		var hashedPassword string
		err := db.QueryRow(SelectUserByEmailQuery, email).Scan(&user.ID, &user.Email, &hashedPassword)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(loginRequest.Password))
		if err != nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := GenerateToken(user.ID)
		if err != nil {
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		tx, err := db.Begin()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		_, err = tx.Exec(InsertTokenQuery, user.ID, token, time.Now().Add(time.Hour*24))
		if err != nil {
			tx.Rollback()
			http.Error(w, "Error storing token", http.StatusInternalServerError)
			return
		}

		if err = tx.Commit(); err != nil {
			http.Error(w, "Error completing login", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			ID:    user.ID,
			Email: user.Email,
			Token: token,
		})
	}
}

// LogoutHandler revokes the caller's stored tokens and pushes a session
// change event through notify (the session websocket broadcast).
// Used by: /api/auth/logout
func LogoutHandler(db *sql.DB, notify func(userID int, event string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := db.Exec(DeleteTokensQuery, userID); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error revoking session"})
			return
		}

		if notify != nil {
			notify(userID, "signed_out")
		}

		json.NewEncoder(w).Encode(map[string]string{"message": "Signed out"})
	}
}
