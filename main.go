package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"golang.org/x/exp/rand"

	"cofoundly/backend/handlers"
	"cofoundly/backend/handlers/auth"
	"cofoundly/backend/handlers/post"
	"cofoundly/backend/handlers/profile"
	"cofoundly/backend/handlers/region"
	"cofoundly/backend/handlers/session"
	"cofoundly/backend/handlers/status"
	"cofoundly/backend/handlers/user"
	"cofoundly/backend/services/geo"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{"DATABASE_URL", "JWT_SECRET_KEY"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	// Initialize random seed
	rand.Seed(uint64(time.Now().UnixNano()))

	// Initialize database connection
	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Region resolver; REGION_API_URL overrides the lookup service for dev
	resolver := geo.NewResolver(os.Getenv("REGION_API_URL"))

	// Create router
	r := mux.NewRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	// Public routes (no auth required)
	r.HandleFunc("/api/auth/signup", auth.SignupHandler(db)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", auth.LoginHandler(db)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/check-email", auth.CheckEmailHandler(db)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/resolve-region", region.ResolveRegionHandler(resolver)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/posts", post.ListPostsHandler(db)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/profiles/{id}", profile.GetProfileHandler(db)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/profiles/{id}/posts", post.GetPostsForProfileHandler(db)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/test/generate-users", handlers.GenerateTestDataHandler(db)).Methods("POST", "OPTIONS")

	// Create a subrouter for protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware)

	// Session routes
	protected.HandleFunc("/auth/logout", auth.LogoutHandler(db, session.Broadcast)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/me", user.GetMeHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/status", status.GetMyStatusHandler(db)).Methods("GET", "OPTIONS")

	// Profile routes
	protected.HandleFunc("/me/profile", profile.GetMyProfileHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/profile", profile.CreateProfileHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/me/profile", profile.UpdateProfileHandler(db)).Methods("PUT", "OPTIONS")

	// Post routes
	protected.HandleFunc("/me/posts", post.ListMyPostsHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/posts", post.CreatePostHandler(db, resolver)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/posts/{id}", post.UpdatePostHandler(db)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/posts/{id}", post.DeletePostHandler(db)).Methods("DELETE", "OPTIONS")

	// Session-change subscription
	r.HandleFunc("/ws/session", session.HandleSessionWebSocket())

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
