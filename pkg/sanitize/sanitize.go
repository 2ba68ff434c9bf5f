// Package sanitize strips markup from user supplied free text before it is persisted.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every tag, attribute and the body of script/style elements, returning plain text.
// The result is stable under a second call: Text(Text(s)) == Text(s).
// Entity-encoded markup takes one pass per encoding level; a pass never grows the text.
func Text(s string) string {
	out := s
	for {
		next := strings.TrimSpace(html.UnescapeString(strict.Sanitize(out)))
		if next == out {
			return out
		}
		out = next
	}
}

// Strings applies Text to every entry and drops entries that end up empty.
func Strings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := Text(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
