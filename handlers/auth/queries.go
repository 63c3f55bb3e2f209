package auth

const (
	// InsertUserQuery creates a new account row
	InsertUserQuery = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`

	// SelectUserByEmailQuery retrieves credentials for login
	SelectUserByEmailQuery = `
		SELECT id, email, password_hash
		FROM users
		WHERE email = $1
	`

	// SelectEmailExistsQuery checks for an existing account
	SelectEmailExistsQuery = `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`

	// InsertTokenQuery stores an issued session token
	InsertTokenQuery = `
		INSERT INTO tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	// DeleteTokensQuery revokes all of a user's session tokens
	DeleteTokensQuery = `
		DELETE FROM tokens WHERE user_id = $1
	`
)
