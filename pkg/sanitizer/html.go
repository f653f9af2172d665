package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// plainText is safe for concurrent use.
var plainText = bluemonday.StrictPolicy()

// StripTags drops every HTML element, keeping only text content. The
// entities bluemonday escapes are decoded again: callers store plain text
// and escape it when rendering.
func StripTags(s string) string {
	return html.UnescapeString(plainText.Sanitize(s))
}
