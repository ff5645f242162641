package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/filter"
)

// visibleIndexes returns the positions of the cookies that pass the criteria,
// in their original order.
func visibleIndexes(cookies []cookie.Cookie, c filter.Criteria, now time.Time) ([]int, error) {
	out := make([]int, 0, len(cookies))
	if c.IsZeroSelection() {
		return out, nil
	}

	chain, err := filter.Build(c, now)
	if err != nil {
		return nil, err
	}

	for i := range cookies {
		if chain.Match(&cookies[i]) {
			out = append(out, i)
		}
	}
	return out, nil
}

// applyFilters rebuilds the visible set and the table rows from the current criteria.
// An invalid pattern leaves the previous view in place.
func (m *CookieViewModel) applyFilters() {
	visible, err := visibleIndexes(m.cookies, m.criteria, m.now())
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.visible = visible
	m.refreshRows()
}

// refreshRows re-renders rows for the current visible set and keeps the cursor in range.
func (m *CookieViewModel) refreshRows() {
	m.buildTableRows()
	if !m.ready {
		return
	}
	m.table.SetRows(m.rows)

	if cursor := m.table.Cursor(); cursor >= len(m.rows) {
		m.table.SetCursor(max(len(m.rows)-1, 0))
	}
}

func (m *CookieViewModel) resetFilters() {
	m.criteria = filter.DefaultCriteria()
	m.searchInput.SetValue("")
	m.applyFilters()
}

// filterSummary describes the active criteria for the status bar.
func (m *CookieViewModel) filterSummary() string {
	c := m.criteria
	var parts []string

	if c.SearchTerm != "" {
		mode := "search"
		if c.SearchMode == filter.Regex {
			mode = "regex"
		}
		parts = append(parts, fmt.Sprintf("%s:%q", mode, c.SearchTerm))
	}
	if c.Domain != "" {
		parts = append(parts, fmt.Sprintf("domain:%q", c.Domain))
	}
	if c.SecureOnly {
		parts = append(parts, "secure")
	}
	if c.HTTPOnly {
		parts = append(parts, "httpOnly")
	}
	switch {
	case c.IsZeroSelection():
		parts = append(parts, "nothing shown")
	case !c.ShowActive:
		parts = append(parts, "expired only")
	case !c.ShowExpired:
		parts = append(parts, "active only")
	}

	return strings.Join(parts, " ")
}
