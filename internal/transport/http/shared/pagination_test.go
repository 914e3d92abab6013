package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		want  Page
	}{
		{query: "", want: Page{Limit: 100}},
		{query: "limit=900&offset=20", want: Page{Limit: 500, Offset: 20}},
		{query: "limit=-1&offset=x", want: Page{Limit: 100}},
		{query: "limit=50&page=3", want: Page{Limit: 50, Offset: 100}},
		{query: "offset=10&page=1", want: Page{Limit: 100}},
		{query: "page=0", want: Page{Limit: 100}},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/?"+tc.query, nil)
		if got := ParsePagination(req, 100, 500); got != tc.want {
			t.Fatalf("%q: expected %+v, got %+v", tc.query, tc.want, got)
		}
	}
}

func TestWriteTotal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteTotal(rec, 42)
	if rec.Header().Get("X-Total-Count") != "42" {
		t.Fatalf("unexpected header %q", rec.Header().Get("X-Total-Count"))
	}
}
