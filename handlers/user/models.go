package user

import "time"

// MeResponse is the authenticated user's session view
type MeResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
