package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute. bluemonday.Policy is read-only after
// build, so never call AddAttr/AllowElements on it once initialised.
var strict = bluemonday.StrictPolicy()

// HasMarkup reports whether s holds anything the strict policy would strip:
// tags, comments or element bodies such as <script>. Stray '<' or '>' that do
// not form a tag are plain text.
//
//   - "<b>x</b>" -> true
//   - "rgb(1, 2, 3)" -> false
//   - "a > b" -> false
func HasMarkup(s string) bool {
	return html.UnescapeString(strict.Sanitize(s)) != html.UnescapeString(s)
}
