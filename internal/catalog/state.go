package catalog

import "strings"

// State is one viewer's browsing state. Transitions return a new State; a
// State is never shared between viewers.
type State struct {
	Criteria Criteria   `json:"criteria"`
	Search   string     `json:"search"`
	Sort     SortMode   `json:"sort"`
	Page     Pagination `json:"page"`
}

// NewState returns the initial state for a new viewer.
func NewState(increment int) State {
	return State{Sort: SortOriginal, Page: NewPagination(increment)}
}

// WithQuery applies new criteria, sort mode and search text. Pagination is
// reset whenever the criteria or the search text change.
func (s State) WithQuery(c Criteria, mode SortMode, search string) State {
	next := s
	next.Criteria = c
	next.Sort = mode
	next.Search = search
	if !s.Criteria.Equal(c) || normSearch(s.Search) != normSearch(search) {
		next.Page.Reset()
	}
	return next
}

// RevealMore grows the revealed count by one increment.
func (s State) RevealMore() State {
	next := s
	next.Page.RevealMore()
	return next
}

// ResetFilters clears criteria, search text and sort mode, and resets
// pagination.
func (s State) ResetFilters() State {
	next := State{Sort: SortOriginal, Page: s.Page}
	next.Page.Reset()
	return next
}

func normSearch(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
