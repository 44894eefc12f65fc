package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases the name and collapses everything that is not a letter
// or digit into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// UniqueSlug appends a short random suffix to a base slug. Used when the
// plain slug is already taken.
func UniqueSlug(base string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
