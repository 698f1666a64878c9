package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reSlugDrop = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	reSlugSep  = regexp.MustCompile(`[\s_-]+`)
)

// Slug projects a title onto [a-z0-9-]. Punctuation is dropped, runs of
// whitespace, underscores and hyphens become a single hyphen. The result is
// empty when the title has no letters or digits.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r):
			// no-break and other unicode spaces separate words too
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	s = reSlugDrop.ReplaceAllString(b.String(), "")
	s = reSlugSep.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
