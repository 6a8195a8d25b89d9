package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares text for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//
// Used as the key for case-insensitive title and category name matching.
func NormalizeText(text string) string {
	return strings.ToLower(CleanTitle(text))
}

// CleanTitle trims a title and collapses internal whitespace, keeping case.
func CleanTitle(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Slugify builds a URL slug: lowercase ASCII letters and digits joined by
// single hyphens. Titles with no ASCII alphanumerics yield "topic".
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return "topic"
	}
	return b.String()
}
