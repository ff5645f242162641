package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/biscuit/filter"
)

type filterOption struct {
	label string
	value func(c *filter.Criteria) bool
	flip  func(c *filter.Criteria)
}

var filterOptions = []filterOption{
	{
		label: "Secure only",
		value: func(c *filter.Criteria) bool { return c.SecureOnly },
		flip:  func(c *filter.Criteria) { c.SecureOnly = !c.SecureOnly },
	},
	{
		label: "HttpOnly only",
		value: func(c *filter.Criteria) bool { return c.HTTPOnly },
		flip:  func(c *filter.Criteria) { c.HTTPOnly = !c.HTTPOnly },
	},
	{
		label: "Show expired",
		value: func(c *filter.Criteria) bool { return c.ShowExpired },
		flip:  func(c *filter.Criteria) { c.ShowExpired = !c.ShowExpired },
	},
	{
		label: "Show active",
		value: func(c *filter.Criteria) bool { return c.ShowActive },
		flip:  func(c *filter.Criteria) { c.ShowActive = !c.ShowActive },
	},
	{
		label: "Regex search",
		value: func(c *filter.Criteria) bool { return c.SearchMode == filter.Regex },
		flip: func(c *filter.Criteria) {
			if c.SearchMode == filter.Regex {
				c.SearchMode = filter.PlainText
			} else {
				c.SearchMode = filter.Regex
			}
		},
	},
}

func (m *CookieViewModel) renderFilterModal() string {
	modalStyle := lipgloss.NewStyle().
		Width(filterModalWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(1)

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Cookie Filters"))
	content.WriteString("\n\n")

	for i, opt := range filterOptions {
		cursor := " "
		if m.filterCursor == i {
			cursor = ">"
		}

		checkbox := "[ ]"
		if opt.value(&m.criteria) {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("%s %s %-16s", cursor, checkbox, opt.label)
		if m.filterCursor == i {
			line = highlightStyle.Render(line)
		}

		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	resetLine := " [ ] Reset All Filters"
	if m.filterCursor == len(filterOptions) {
		resetLine = highlightStyle.Render("> [*] Reset All Filters")
	}
	content.WriteString(resetLine)

	content.WriteString("\n\n")
	content.WriteString(HelpStyle.Render("↑/↓: Navigate | Space: Toggle | R: Reset | Esc: Close"))

	return modalStyle.Render(content.String())
}

func (m *CookieViewModel) toggleFilterOption() {
	if m.filterCursor < len(filterOptions) {
		filterOptions[m.filterCursor].flip(&m.criteria)
		m.applyFilters()
	} else {
		m.resetFilters()
	}
}

func (m *CookieViewModel) handleFilterModalKeys(key string) (bool, tea.Cmd) {
	if m.activeModal != ModalFilter {
		return false, nil
	}

	switch key {
	case "esc", "f":
		m.activeModal = ModalNone
		return true, nil

	case "r":
		m.resetFilters()
		return true, nil

	case "up", "k":
		m.filterCursor--
		if m.filterCursor < 0 {
			m.filterCursor = len(filterOptions)
		}
		return true, nil

	case "down", "j":
		m.filterCursor++
		if m.filterCursor > len(filterOptions) {
			m.filterCursor = 0
		}
		return true, nil

	case " ", "space", "enter":
		m.toggleFilterOption()
		return true, nil
	}

	// swallow everything else while the modal is open
	return true, nil
}
