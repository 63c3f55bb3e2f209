package post

import "time"

// Post represents a single role-seeking announcement
type Post struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	ProfileID   string    `json:"profile_id"`
	RoleSummary string    `json:"role_summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Region      string    `json:"region"`
	SocialLink  *string   `json:"social_link"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostInput is the create/update request body
type PostInput struct {
	RoleSummary string `json:"role_summary"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	SocialLink  string `json:"social_link"`
}

// PostProfile is the poster summary joined into browse listings
type PostProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// PostWithProfile is a browse listing row
type PostWithProfile struct {
	ID          string      `json:"id"`
	RoleSummary string      `json:"role_summary"`
	Category    string      `json:"category"`
	Region      string      `json:"region"`
	CreatedAt   time.Time   `json:"created_at"`
	Profile     PostProfile `json:"profile"`
}

// PublicPost is a post as shown on the explore screen; it carries the
// social link so a viewer can initiate outside contact.
type PublicPost struct {
	ID          string    `json:"id"`
	RoleSummary string    `json:"role_summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Region      string    `json:"region"`
	SocialLink  *string   `json:"social_link"`
	CreatedAt   time.Time `json:"created_at"`
}
