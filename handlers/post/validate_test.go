package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() PostInput {
	return PostInput{
		RoleSummary: "Seeking backend co-founder",
		Content:     "Building a fintech MVP and looking for a technical partner.",
		Category:    "fintech",
		SocialLink:  "https://linkedin.com/in/ada",
	}
}

func TestValidatePostInputAccepted(t *testing.T) {
	in := validInput()
	assert.Empty(t, ValidatePostInput(&in))
}

func TestValidatePostInputOptionalSocialLink(t *testing.T) {
	in := validInput()
	in.SocialLink = ""
	assert.Empty(t, ValidatePostInput(&in))
}

func TestValidatePostInputBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostInput)
		want   string
	}{
		{
			"role summary too short",
			func(in *PostInput) { in.RoleSummary = "Lead" },
			"Role summary must be at least 5 characters",
		},
		{
			"role summary whitespace only",
			func(in *PostInput) { in.RoleSummary = "     " },
			"Role summary must be at least 5 characters",
		},
		{
			"role summary too long",
			func(in *PostInput) { in.RoleSummary = strings.Repeat("a", 281) },
			"Role summary must be under 280 characters",
		},
		{
			"content too short",
			func(in *PostInput) { in.Content = "Too short" },
			"Post content must be at least 10 characters",
		},
		{
			"content too long",
			func(in *PostInput) { in.Content = strings.Repeat("a", 5001) },
			"Post content must be under 5000 characters",
		},
		{
			"missing category",
			func(in *PostInput) { in.Category = "" },
			"Please select a category",
		},
		{
			"unknown category",
			func(in *PostInput) { in.Category = "cryptozoology" },
			"Invalid category",
		},
		{
			"malformed social link",
			func(in *PostInput) { in.SocialLink = "not-a-url" },
			"Please enter a valid social media link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			assert.Equal(t, tt.want, ValidatePostInput(&in))
		})
	}
}

func TestValidatePostInputBoundaryLengths(t *testing.T) {
	in := validInput()
	in.RoleSummary = strings.Repeat("a", 280)
	in.Content = strings.Repeat("b", 5000)
	assert.Empty(t, ValidatePostInput(&in))

	in = validInput()
	in.RoleSummary = "Lead!"
	in.Content = "0123456789"
	assert.Empty(t, ValidatePostInput(&in))
}

func TestValidatePostInputCountsCharactersNotBytes(t *testing.T) {
	// 200 CJK characters are 600 bytes but well within the 280-character bound
	in := validInput()
	in.RoleSummary = strings.Repeat("日", 200)
	in.Content = strings.Repeat("本", 2000)
	assert.Empty(t, ValidatePostInput(&in))

	in = validInput()
	in.RoleSummary = strings.Repeat("日", 281)
	assert.Equal(t, "Role summary must be under 280 characters", ValidatePostInput(&in))

	in = validInput()
	in.Content = strings.Repeat("本", 5001)
	assert.Equal(t, "Post content must be under 5000 characters", ValidatePostInput(&in))

	in = validInput()
	in.RoleSummary = "日本語だ" // 4 characters
	assert.Equal(t, "Role summary must be at least 5 characters", ValidatePostInput(&in))
}

func TestValidatePostInputTrims(t *testing.T) {
	in := validInput()
	in.RoleSummary = "  Seeking backend co-founder  "
	assert.Empty(t, ValidatePostInput(&in))
	assert.Equal(t, "Seeking backend co-founder", in.RoleSummary)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Fintech"))
}
