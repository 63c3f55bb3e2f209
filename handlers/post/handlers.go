package post

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"cofoundly/backend/handlers/auth"
	"cofoundly/backend/services/geo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CreatePostHandler publishes a new post for the authenticated user.
// The post's region is resolved from the request's originating address at
// creation time and never re-resolved on edit.
func CreatePostHandler(db *sql.DB, resolver *geo.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var input PostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		if msg := ValidatePostInput(&input); msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}

		var profileID string
		err = db.QueryRow(SelectProfileIDQuery, userID).Scan(&profileID)
		if err == sql.ErrNoRows {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Please complete your profile before posting."})
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		region := resolver.Resolve(geo.ClientIP(r)).Region

		p := Post{
			ID:          uuid.NewString(),
			UserID:      userID,
			ProfileID:   profileID,
			RoleSummary: input.RoleSummary,
			Content:     input.Content,
			Category:    input.Category,
			Region:      region,
		}
		if input.SocialLink != "" {
			p.SocialLink = &input.SocialLink
		}

		err = db.QueryRow(InsertPostQuery,
			p.ID, p.UserID, p.ProfileID, p.RoleSummary, p.Content, p.Category, p.Region, p.SocialLink,
		).Scan(&p.CreatedAt)
		if err != nil {
			log.Printf("Failed to create post for user %d: %v", userID, err)
			http.Error(w, "Error creating post", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}
}

// ListPostsHandler returns all posts joined with their poster's profile,
// newest first. Optional category and region query parameters apply as
// equality filters; both may be combined. Public read.
func ListPostsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		query, args := buildListQuery(
			r.URL.Query().Get("category"),
			r.URL.Query().Get("region"),
		)

		rows, err := db.Query(query, args...)
		if err != nil {
			log.Printf("Failed to list posts: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		posts := []PostWithProfile{}
		for rows.Next() {
			var p PostWithProfile
			err := rows.Scan(
				&p.ID, &p.RoleSummary, &p.Category, &p.Region, &p.CreatedAt,
				&p.Profile.ID, &p.Profile.Name, &p.Profile.Age, &p.Profile.Gender,
			)
			if err != nil {
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			posts = append(posts, p)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(posts)
	}
}

// ListMyPostsHandler returns the authenticated user's own posts, scoped by
// both user_id and profile_id, newest first.
func ListMyPostsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var profileID string
		err = db.QueryRow(SelectProfileIDQuery, userID).Scan(&profileID)
		if err == sql.ErrNoRows {
			json.NewEncoder(w).Encode([]Post{})
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		rows, err := db.Query(SelectMyPostsQuery, userID, profileID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		posts := []Post{}
		for rows.Next() {
			var p Post
			err := rows.Scan(
				&p.ID, &p.UserID, &p.ProfileID, &p.RoleSummary, &p.Content,
				&p.Category, &p.Region, &p.SocialLink, &p.CreatedAt,
			)
			if err != nil {
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			posts = append(posts, p)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(posts)
	}
}

// UpdatePostHandler mutates a post the caller owns. The row must match id,
// user_id and profile_id together; a forged profile or account mismatch
// affects zero rows and is reported as "No post updated.", never touching
// another account's post.
func UpdatePostHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		postID := vars["id"]

		var input PostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		if msg := ValidatePostInput(&input); msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}

		var profileID string
		err = db.QueryRow(SelectProfileIDQuery, userID).Scan(&profileID)
		if err == sql.ErrNoRows {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		var socialLink *string
		if input.SocialLink != "" {
			socialLink = &input.SocialLink
		}

		var p Post
		err = db.QueryRow(UpdatePostQuery,
			input.RoleSummary, input.Content, input.Category, socialLink,
			postID, userID, profileID,
		).Scan(
			&p.ID, &p.UserID, &p.ProfileID, &p.RoleSummary, &p.Content,
			&p.Category, &p.Region, &p.SocialLink, &p.CreatedAt,
		)
		if err == sql.ErrNoRows {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "No post updated."})
			return
		} else if err != nil {
			log.Printf("Failed to update post %s for user %d: %v", postID, userID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(p)
	}
}

// DeletePostHandler removes a post with the same double key-check as update;
// zero matching rows is reported as "No post deleted."
func DeletePostHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		postID := vars["id"]

		var profileID string
		err = db.QueryRow(SelectProfileIDQuery, userID).Scan(&profileID)
		if err == sql.ErrNoRows {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		result, err := db.Exec(DeletePostQuery, postID, userID, profileID)
		if err != nil {
			log.Printf("Failed to delete post %s for user %d: %v", postID, userID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if rowsAffected == 0 {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "No post deleted."})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"message": "Post deleted"})
	}
}

// GetPostsForProfileHandler returns a profile's posts for the explore
// screen, including social links. Public read, no ownership check.
func GetPostsForProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		vars := mux.Vars(r)
		profileID := vars["id"]

		rows, err := db.Query(SelectProfilePostsQuery, profileID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		posts := []PublicPost{}
		for rows.Next() {
			var p PublicPost
			err := rows.Scan(
				&p.ID, &p.RoleSummary, &p.Content, &p.Category,
				&p.Region, &p.SocialLink, &p.CreatedAt,
			)
			if err != nil {
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			posts = append(posts, p)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(posts)
	}
}
