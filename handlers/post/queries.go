package post

import (
	"fmt"
	"strings"
)

const (
	// SelectProfileIDQuery resolves the caller's profile for ownership scoping
	SelectProfileIDQuery = `
		SELECT id FROM profiles WHERE user_id = $1
	`

	// InsertPostQuery creates a post; region is stamped at creation time only
	InsertPostQuery = `
		INSERT INTO posts (id, user_id, profile_id, role_summary, content, category, region, social_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	// SelectPostsBaseQuery lists posts joined with their poster's profile;
	// buildListQuery appends the optional equality filters and ordering
	SelectPostsBaseQuery = `
		SELECT p.id, p.role_summary, p.category, p.region, p.created_at,
			pr.id, pr.name, pr.age, pr.gender
		FROM posts p
		JOIN profiles pr ON pr.id = p.profile_id
	`

	// SelectMyPostsQuery lists the caller's posts, scoped by both keys
	SelectMyPostsQuery = `
		SELECT id, user_id, profile_id, role_summary, content, category, region, social_link, created_at
		FROM posts
		WHERE user_id = $1 AND profile_id = $2
		ORDER BY created_at DESC
	`

	// UpdatePostQuery mutates a post only when id, user_id and profile_id all
	// match; zero rows back means the caller does not own the post
	UpdatePostQuery = `
		UPDATE posts
		SET role_summary = $1,
			content = $2,
			category = $3,
			social_link = $4
		WHERE id = $5 AND user_id = $6 AND profile_id = $7
		RETURNING id, user_id, profile_id, role_summary, content, category, region, social_link, created_at
	`

	// DeletePostQuery deletes with the same double key-check
	DeletePostQuery = `
		DELETE FROM posts
		WHERE id = $1 AND user_id = $2 AND profile_id = $3
	`

	// SelectProfilePostsQuery is the public explore-screen read
	SelectProfilePostsQuery = `
		SELECT id, role_summary, content, category, region, social_link, created_at
		FROM posts
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`
)

// buildListQuery assembles the browse query with the optional category and
// region equality filters. Both filters may apply at once.
func buildListQuery(category, region string) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if category != "" {
		args = append(args, category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if region != "" {
		args = append(args, region)
		conditions = append(conditions, fmt.Sprintf("p.region = $%d", len(args)))
	}

	query := SelectPostsBaseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	return query, args
}
