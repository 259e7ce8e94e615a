package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/partsearch/internal/core"
)

// parseIntParam parses a positive integer query parameter with a default value.
// Present but malformed or non-positive values are rejected.
func parseIntParam(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return 0, fmt.Errorf("%w: %s=%q", core.ErrInvalidPage, name, val)
	}
	return i, nil
}

// parsePaging reads page and page_size.
func (s *Server) parsePaging(r *http.Request) (page, pageSize int, err error) {
	page, err = parseIntParam(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = parseIntParam(r, "page_size", s.cfg.Catalog.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
