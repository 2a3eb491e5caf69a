package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/projects", nil)
	p := Parse(r)
	if p.Number != 1 || p.PerPage != DefaultPerPage {
		t.Errorf("Parse = %+v, want page 1 with default size", p)
	}
}

func TestParse_ClampsAndRejectsGarbage(t *testing.T) {
	cases := []struct {
		url         string
		wantPage    int
		wantPerPage int
	}{
		{"/api/projects?page=3&per_page=10", 3, 10},
		{"/api/projects?page=0&per_page=-5", 1, DefaultPerPage},
		{"/api/projects?page=abc&per_page=xyz", 1, DefaultPerPage},
		{"/api/projects?per_page=10000", 1, MaxPerPage},
	}
	for _, tc := range cases {
		p := Parse(httptest.NewRequest("GET", tc.url, nil))
		if p.Number != tc.wantPage || p.PerPage != tc.wantPerPage {
			t.Errorf("Parse(%q) = %+v, want page %d per_page %d", tc.url, p, tc.wantPage, tc.wantPerPage)
		}
	}
}

func TestSlice(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	p := Page{Number: 2, PerPage: 2}
	got := Slice(rows, &p)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("page 2 = %v, want [3 4]", got)
	}
	if p.Total != 5 {
		t.Errorf("total = %d, want 5", p.Total)
	}

	p = Page{Number: 3, PerPage: 2}
	if got := Slice(rows, &p); len(got) != 1 || got[0] != 5 {
		t.Errorf("last page = %v, want [5]", got)
	}

	p = Page{Number: 9, PerPage: 2}
	if got := Slice(rows, &p); len(got) != 0 {
		t.Errorf("page past the end = %v, want empty", got)
	}
}
