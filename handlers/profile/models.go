package profile

// Profile represents a user's public co-founder-seeking identity
type Profile struct {
	ID           string `json:"id"`
	UserID       int    `json:"user_id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Introduction string `json:"introduction"`
}

// ProfileInput is the create/update request body
type ProfileInput struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Introduction string `json:"introduction"`
}
