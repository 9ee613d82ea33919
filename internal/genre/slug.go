// Package genre provides genre normalization and the default anime taxonomy.
package genre

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple underscores.
	multipleUnderscores = regexp.MustCompile(`_+`)
)

// Slugify converts a genre label to its canonical slug form.
// "Sci-Fi" -> "sci_fi".
// "Slice of Life" -> "slice_of_life".
// "Shōnen" -> "shonen".
func Slugify(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Replace non-alphanumeric with underscores.
	s = nonAlphanumeric.ReplaceAllString(s, "_")

	// Collapse multiple underscores.
	s = multipleUnderscores.ReplaceAllString(s, "_")

	// Trim leading/trailing underscores.
	s = strings.Trim(s, "_")

	return s
}
