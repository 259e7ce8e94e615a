package core

import (
	"fmt"
	"strings"
)

// Paginate returns the half-open row range [start, end) for a 1-based page
// over total rows, clamped to the table, and whether rows remain after it.
// Pages past the end yield start == end == total.
func Paginate(total, page, pageSize int) (start, end int, hasMore bool) {
	if total <= 0 || page < 1 || pageSize < 1 {
		return 0, 0, false
	}
	// (page-1)*pageSize can overflow for absurd inputs; compare page counts first.
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if page > pages {
		return total, total, false
	}
	start = (page - 1) * pageSize
	remaining := total - start
	if pageSize >= remaining {
		return start, total, false
	}
	return start, start + pageSize, true
}

// Filter returns the rows of t that match query, in table order.
// An empty normalized query matches every row. Meta columns are never compared.
func Filter(t *Table, query string) []Record {
	needle := Normalize(query)
	if query == "" {
		return t.Records()
	}

	searchable := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if c != ColumnSource && c != ColumnSheet {
			searchable = append(searchable, i)
		}
	}

	var out []Record
	for i, row := range t.rows {
		for _, col := range searchable {
			if strings.Contains(Normalize(row[col]), needle) {
				out = append(out, t.Record(i))
				break
			}
		}
	}
	return out
}

// Search filters t by query and returns the requested page.
func Search(t *Table, query string, page, pageSize int) (*Page, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page=%d page_size=%d", ErrInvalidPage, page, pageSize)
	}

	matched := Filter(t, query)
	start, end, hasMore := Paginate(len(matched), page, pageSize)

	results := make([]Record, end-start)
	copy(results, matched[start:end])

	return &Page{
		Results:  results,
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}, nil
}
