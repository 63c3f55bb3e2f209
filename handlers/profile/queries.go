package profile

const (
	// SelectProfileByUserQuery retrieves the profile owned by an account
	SelectProfileByUserQuery = `
		SELECT id, user_id, name, age, gender, introduction
		FROM profiles
		WHERE user_id = $1
	`

	// SelectProfileByIDQuery retrieves a profile for the explore screen
	SelectProfileByIDQuery = `
		SELECT id, user_id, name, age, gender, introduction
		FROM profiles
		WHERE id = $1
	`

	// InsertProfileQuery creates the one profile an account may own
	InsertProfileQuery = `
		INSERT INTO profiles (id, user_id, name, age, gender, introduction)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// UpdateProfileQuery overwrites all mutable profile fields
	UpdateProfileQuery = `
		UPDATE profiles
		SET name = $1,
			age = $2,
			gender = $3,
			introduction = $4
		WHERE user_id = $5
	`
)
