// Package slug derives URL-safe identifiers from Turkish-inclusive
// free text.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

// Pattern is the language every non-empty candidate conforms to.
var Pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Both cases map to the same ASCII target; the dotted/dotless I
// distinction collapses to plain i.
var turkish = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// ToCandidate maps free text to a lower-case ASCII candidate slug.
// The result is either empty or matches Pattern.
func ToCandidate(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(turkish.Replace(trimmed))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingDash := false
	for _, r := range lowered {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			pendingDash = false
		case unicode.IsSpace(r) || r == '-':
			if b.Len() > 0 && !pendingDash {
				b.WriteByte('-')
				pendingDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
