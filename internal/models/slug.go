package models

import (
	"strings"
	"unicode"
)

// SlugSourceLimit is how many leading body characters feed a top-level
// post's slug.
const SlugSourceLimit = 45

// Slugify lowercases the first limit runes of s and collapses every run
// of non-alphanumeric characters into a single hyphen.
func Slugify(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
