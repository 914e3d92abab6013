package shared

import (
	"net/http"
	"strconv"
)

// Page is a window over a listing. Callers may send limit/offset or a 1-based
// page number; page wins when both are present.
type Page struct {
	Limit  int
	Offset int
}

func positiveQuery(r *http.Request, key string, min int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, false
	}
	return v, true
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Page {
	page := Page{Limit: defaultLimit}
	if v, ok := positiveQuery(r, "limit", 1); ok {
		page.Limit = v
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	if v, ok := positiveQuery(r, "offset", 0); ok {
		page.Offset = v
	}
	if n, ok := positiveQuery(r, "page", 1); ok {
		page.Offset = (n - 1) * page.Limit
	}
	return page
}

// WriteTotal exposes the unpaged row count to the client.
func WriteTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}
