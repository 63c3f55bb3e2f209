package post

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Categories is the fixed set of startup domain tags
var Categories = []string{
	"fintech", "edtech", "healthtech", "saas", "consumer", "socialimpact",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidatePostInput trims string fields in place and returns a user-facing
// message when any field is out of bounds. Runs before any database call.
func ValidatePostInput(in *PostInput) string {
	in.RoleSummary = strings.TrimSpace(in.RoleSummary)
	in.Content = strings.TrimSpace(in.Content)
	in.SocialLink = strings.TrimSpace(in.SocialLink)

	// bounds count characters, not bytes
	if utf8.RuneCountInString(in.RoleSummary) < 5 {
		return "Role summary must be at least 5 characters"
	}
	if utf8.RuneCountInString(in.RoleSummary) > 280 {
		return "Role summary must be under 280 characters"
	}
	if utf8.RuneCountInString(in.Content) < 10 {
		return "Post content must be at least 10 characters"
	}
	if utf8.RuneCountInString(in.Content) > 5000 {
		return "Post content must be under 5000 characters"
	}
	if in.Category == "" {
		return "Please select a category"
	}
	if !ValidCategory(in.Category) {
		return "Invalid category"
	}
	if in.SocialLink != "" {
		u, err := url.Parse(in.SocialLink)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "Please enter a valid social media link"
		}
	}
	return ""
}
