package simplecms

import (
	"regexp"
	"strings"
)

var (
	slugStrip      = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from text: lowercase, drop everything except
// word characters, whitespace and hyphens, turn whitespace runs into a
// hyphen, collapse hyphen runs and trim hyphens from both ends.
//
//	Slugify("Hello, World!  Foo") == "hello-world-foo"
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
