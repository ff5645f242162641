package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/biscuit/cookie"
)

const expiresLayout = "2006-01-02 15:04:05"

func (m *CookieViewModel) buildTableRows() {
	now := nowSeconds(m.now())
	rows := make([]table.Row, 0, len(m.visible))

	for _, index := range m.visible {
		_, dup := m.duplicates[index]
		rows = append(rows, formatCookieRow(m.cookies[index], dup, now, m.columns))
	}

	m.rows = rows
}

func formatCookieRow(c cookie.Cookie, duplicate bool, now float64, columns []table.Column) table.Row {
	row := make(table.Row, columnCount)
	row[colDomain] = c.Domain
	row[colName] = c.Name
	row[colValue] = c.Value
	row[colPath] = c.EffectivePath()
	row[colFlags] = formatFlags(c)
	row[colExpires] = formatExpires(c)
	row[colStatus] = formatStatus(c, duplicate, now)

	if len(columns) == columnCount {
		for i := range row {
			row[i] = truncateString(row[i], columns[i].Width)
		}
	}
	return row
}

func formatFlags(c cookie.Cookie) string {
	flags := []byte("--")
	if c.Secure {
		flags[0] = 'S'
	}
	if c.HTTPOnly {
		flags[1] = 'H'
	}
	return string(flags)
}

func formatExpires(c cookie.Cookie) string {
	if c.IsSession() {
		return "session"
	}
	return c.ExpiryTime().UTC().Format(expiresLayout)
}

func formatStatus(c cookie.Cookie, duplicate bool, now float64) string {
	status := "active"
	switch {
	case c.IsSession():
		status = "session"
	case c.ExpiredAt(now):
		status = "expired"
	}
	if duplicate {
		status += "*"
	}
	return status
}

func nowSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
