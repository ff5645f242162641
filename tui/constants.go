package tui

const (
	tableVerticalPadding = 6
	splitPanelPadding    = 2
	borderPadding        = 16

	minDomainColumnWidth = 16
	maxDomainColumnWidth = 40
	minNameColumnWidth   = 12
	maxNameColumnWidth   = 32
	minValueColumnWidth  = 10
	pathColumnWidth      = 12
	flagsColumnWidth     = 6
	expiresColumnWidth   = 19
	statusColumnWidth    = 9

	filterModalWidth = 34
)

// column indexes in table rows
const (
	colDomain = iota
	colName
	colValue
	colPath
	colFlags
	colExpires
	colStatus
	columnCount
)
