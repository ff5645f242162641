package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/biscuit/filter"
)

func (m *CookieViewModel) render() string {
	if m.activeModal == ModalFilter {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderFilterModal())
	}

	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")
	builder.WriteString(m.table.View())
	builder.WriteString("\n")

	switch m.viewMode {
	case ViewModeTableWithDetail:
		builder.WriteString(m.renderDetailPanel())
		builder.WriteString("\n")
	case ViewModeTableWithSearch:
		builder.WriteString(m.renderSearchPanel())
		builder.WriteString("\n")
	}

	builder.WriteString(m.renderStatusBar())

	return builder.String()
}

func (m *CookieViewModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).
		BorderForeground(RGBBlue).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(true)

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("biscuit: %s | ", m.title))

	count := fmt.Sprintf("(%d of %d cookies", len(m.visible), len(m.cookies))
	if dups := len(m.duplicates); dups > 0 {
		count += fmt.Sprintf(", %d duplicates", dups)
	}
	if m.loadTime > 0 {
		count += fmt.Sprintf(", loaded in %v", m.loadTime.Round(time.Millisecond))
	}
	count += ")"
	if m.dirty {
		count += " " + StatusWarningStyle.Render("[modified]")
	}

	return titleStyle.Render(title + lipgloss.NewStyle().Faint(true).Render(count))
}

func (m *CookieViewModel) renderStatusBar() string {
	var parts []string

	switch m.viewMode {
	case ViewModeTableWithSearch:
		parts = append(parts, "Type to filter", "Enter: Done", "Esc: Clear")
	case ViewModeTableWithDetail:
		parts = append(parts, "↑/↓: Navigate", "PgUp/PgDn: Scroll", "d: Delete", "Esc: Close Details")
	default:
		parts = append(parts, "↑/↓: Navigate", "Enter: Details", "/: Search", "f: Filters", "d/D: Delete", "w: Save", "q: Quit")
	}

	if summary := m.filterSummary(); summary != "" {
		parts = append(parts, summary)
	}

	line := HelpStyle.Render(strings.Join(parts, " | "))
	if m.status != "" {
		style := StatusOKStyle
		if m.statusError {
			style = StatusErrorStyle
		}
		line += "\n" + style.Render(m.status)
	}
	return line
}

func (m *CookieViewModel) renderDetailPanel() string {
	panelStyle := lipgloss.NewStyle().
		Width(m.width - splitPanelPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue)

	return panelStyle.Render(m.detailViewport.View())
}

func (m *CookieViewModel) renderSearchPanel() string {
	searchStyle := lipgloss.NewStyle().
		Width(m.width-splitPanelPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		Padding(0, 1)

	label := "Search:"
	if m.criteria.SearchMode == filter.Regex {
		label = "Search (regex):"
	}

	var content strings.Builder
	content.WriteString(TitleStyle.Render(label))
	content.WriteString("\n")
	content.WriteString(m.searchInput.View())

	return searchStyle.Render(content.String())
}
