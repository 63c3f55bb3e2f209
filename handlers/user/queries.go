package user

const (
	// SelectMeQuery retrieves the authenticated user's account row
	SelectMeQuery = `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`
)
