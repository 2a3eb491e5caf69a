// Package htmlsanitize cleans user-authored rich text before storage.
// The policy is UGC plus the extra formatting the editor emits
// (underline, strikethrough, marks, styled tables).
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class", "style").OnElements("table", "thead", "tbody", "tfoot", "tr", "td", "th")
	return p
}

// Sanitize strips unsafe markup, keeping the formatting the editor
// produces.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
