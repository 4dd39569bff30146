package models

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonAlphanumeric = regexp.MustCompile("[^a-zA-Z0-9]+")

// Slug turns a column name into an ASCII identifier usable as an HTML id.
func Slug(name string) string {
	s := nonAlphanumeric.ReplaceAllString(unidecode.Unidecode(name), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "column"
	}
	return strings.ToLower(s)
}
