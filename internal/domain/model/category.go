package model

import (
	"regexp"
	"strings"
	"time"
)

type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var nonSlugChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Slugify lower-cases name and replaces every non-alphanumeric rune with '-'.
func Slugify(name string) string {
	return nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
}
