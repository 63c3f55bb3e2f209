package user_status

import (
	"database/sql"
)

// UpdateUserStatus recomputes a user's status from profile completeness.
// A user is active once every profile field needed for posting is filled in.
func UpdateUserStatus(tx *sql.Tx, userID int) error {
	var profile struct {
		Name         string
		Age          int
		Gender       string
		Introduction string
	}
	err := tx.QueryRow(`
		SELECT name, age, gender, introduction
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(
		&profile.Name,
		&profile.Age,
		&profile.Gender,
		&profile.Introduction,
	)

	var newStatus string
	if err == sql.ErrNoRows {
		newStatus = "inactive"
	} else if err != nil {
		return err
	} else if profile.Name != "" &&
		profile.Age >= 1 && profile.Age <= 120 &&
		profile.Gender != "" &&
		profile.Introduction != "" {
		newStatus = "active"
	} else {
		newStatus = "inactive"
	}

	_, err = tx.Exec("UPDATE users SET status = $1 WHERE id = $2", newStatus, userID)
	return err
}
