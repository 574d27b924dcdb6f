// Package listutil pages and filters lists the club API returns in full.
package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is what a list page reads from its URL.
type Query struct {
	Page    int    // 1-indexed
	PerPage int    // rows per page
	Search  string // free text, trimmed
	Tab     string // one of the page's tabs, or its first tab
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// ParseQuery reads page, per_page, q and tab.
// PRE: tabs lists the allowed tab names, first one is the default (may be empty)
// POST: Page >= 1, PerPage is one of PerPageOptions, Tab is allowed or ""
func ParseQuery(q url.Values, tabs ...string) Query {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	out := Query{Page: page, PerPage: perPage, Search: strings.TrimSpace(q.Get("q"))}
	if len(tabs) > 0 {
		out.Tab = tabs[0]
		for _, t := range tabs {
			if q.Get("tab") == t {
				out.Tab = t
			}
		}
	}
	return out
}

// Filter returns the items keep accepts, in order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Page cuts one page out of items and describes it.
// PRE: none
// POST: The returned slice has at most q.PerPage items; PageInfo.Page is clamped
func Page[T any](items []T, q Query) ([]T, PageInfo) {
	info := NewPageInfo(q.Page, q.PerPage, len(items))
	start := info.Offset()
	end := info.EndRow()
	if start > end {
		start = end
	}
	return items[start:end], info
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages >= 1; Page is clamped to [1, TotalPages]
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset is the index of the first item on the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number, or 0 when empty.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the page.
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// PageNumbers returns at most 5 page numbers centered on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := max(p.Page-maxButtons/2, 1)
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-maxButtons+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination reports whether there is more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
