// Note: To generate test data, use:
// curl -X POST "http://localhost:8080/api/test/generate-users?count=5" -H "Content-Type: application/json"

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"cofoundly/backend/handlers/post"
	"cofoundly/backend/handlers/user_status"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
)

// Predefined arrays for consistent test data
var regions = []string{
	"California", "Texas", "New York", "Ontario", "England",
	"Bavaria", "Maharashtra", "Tokyo", "New South Wales",
	"Ile-de-France", "Unknown",
}

var genders = []string{"male", "female", "other"}

var roleFocuses = []string{
	"backend development", "mobile development", "product design",
	"growth and marketing", "sales", "data science", "operations",
}

func GenerateTestDataHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Get count parameter, default to 10 if not provided
		count := 10
		if countParam := r.URL.Query().Get("count"); countParam != "" {
			parsedCount, err := strconv.Atoi(countParam)
			if err != nil || parsedCount < 1 || parsedCount > 150 {
				http.Error(w, "Count must be between 1 and 150", http.StatusBadRequest)
				return
			}
			count = parsedCount
		}

		tx, err := db.Begin()
		if err != nil {
			log.Printf("Error starting transaction: %v", err)
			http.Error(w, "Could not start generating", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Error hashing password", http.StatusInternalServerError)
			return
		}

		createdUsers := 0
		createdPosts := 0

		for i := 0; i < count; i++ {
			email := fmt.Sprintf("%s+%s@example.com", gofakeit.Username(), uuid.NewString()[:8])

			var userID int
			err = tx.QueryRow(`
				INSERT INTO users (email, password_hash)
				VALUES ($1, $2)
				RETURNING id
			`, email, string(hashedPassword)).Scan(&userID)
			if err != nil {
				log.Printf("Error creating test user: %v", err)
				http.Error(w, "Error creating test user", http.StatusInternalServerError)
				return
			}

			profileID := uuid.NewString()
			_, err = tx.Exec(`
				INSERT INTO profiles (id, user_id, name, age, gender, introduction)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, profileID, userID,
				gofakeit.Name(),
				gofakeit.Number(18, 35),
				genders[rand.Intn(len(genders))],
				gofakeit.Paragraph(1, 3, 12, " "),
			)
			if err != nil {
				log.Printf("Error creating test profile: %v", err)
				http.Error(w, "Error creating test profile", http.StatusInternalServerError)
				return
			}

			if err := user_status.UpdateUserStatus(tx, userID); err != nil {
				http.Error(w, "Error updating user status", http.StatusInternalServerError)
				return
			}

			numPosts := rand.Intn(3) + 1
			for j := 0; j < numPosts; j++ {
				roleSummary := fmt.Sprintf("Seeking a co-founder to lead %s", roleFocuses[rand.Intn(len(roleFocuses))])
				_, err = tx.Exec(`
					INSERT INTO posts (id, user_id, profile_id, role_summary, content, category, region, social_link)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				`, uuid.NewString(), userID, profileID,
					roleSummary,
					gofakeit.Paragraph(2, 4, 10, " "),
					post.Categories[rand.Intn(len(post.Categories))],
					regions[rand.Intn(len(regions))],
					gofakeit.URL(),
				)
				if err != nil {
					log.Printf("Error creating test post: %v", err)
					http.Error(w, "Error creating test post", http.StatusInternalServerError)
					return
				}
				createdPosts++
			}

			createdUsers++
		}

		if err = tx.Commit(); err != nil {
			http.Error(w, "Error committing test data", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("Created %d test users with %d posts", createdUsers, createdPosts),
		})
	}
}
