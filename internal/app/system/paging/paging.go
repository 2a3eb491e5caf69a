// Package paging parses the page/per_page query parameters shared by
// the list endpoints and slices result sets accordingly.
package paging

import (
	"net/http"
	"strconv"
)

// DefaultPerPage is the page size when the client does not ask for one.
const DefaultPerPage = 20

// MaxPerPage caps what a client may request per page.
const MaxPerPage = 100

// Page is a parsed pagination request. Page numbers are 1-based.
type Page struct {
	Number  int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// Parse reads ?page= and ?per_page= with clamping. Absent or invalid
// values fall back to page 1 with the default size.
func Parse(r *http.Request) Page {
	p := Page{Number: 1, PerPage: DefaultPerPage}

	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && n >= 1 {
		if n > MaxPerPage {
			n = MaxPerPage
		}
		p.PerPage = n
	}
	return p
}

// Slice cuts one page out of rows and records the total. A page past
// the end comes back empty rather than erroring.
func Slice[T any](rows []T, p *Page) []T {
	p.Total = len(rows)

	start := (p.Number - 1) * p.PerPage
	if start >= len(rows) {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
