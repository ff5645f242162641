package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/filter"
)

// ViewMode represents the different view states
type ViewMode int

const (
	ViewModeTable ViewMode = iota
	ViewModeTableWithDetail
	ViewModeTableWithSearch
)

// ModalType identifies the overlay currently capturing keys.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalFilter
)

// Options configures a CookieViewModel.
type Options struct {
	Title    string          // shown in the title bar, usually the file name
	Load     LoadFunc        // required
	Save     SaveFunc        // optional, saving is disabled when nil
	Criteria filter.Criteria // initial filters
	Now      func() time.Time
}

// CookieViewModel is the interactive cookie manager. It keeps a working copy of
// the loaded cookies; deletions only reach disk when saved.
type CookieViewModel struct {
	table   table.Model
	rows    []table.Row
	columns []table.Column

	cookies    []cookie.Cookie
	visible    []int // indexes into cookies, in order
	duplicates map[int]struct{}
	criteria   filter.Criteria

	viewMode     ViewMode
	activeModal  ModalType
	filterCursor int

	searchInput    textinput.Model
	detailViewport viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool
	dirty    bool

	// key waiting for a second press to confirm a destructive action
	pendingConfirm string

	status      string
	statusError bool

	title string
	load  LoadFunc
	save  SaveFunc
	now   func() time.Time

	loadState      LoadState
	loadingSpinner spinner.Model
	loadTime       time.Duration

	err error
}

func NewCookieViewModel(opts Options) (*CookieViewModel, error) {
	if opts.Load == nil {
		return nil, fmt.Errorf("a load function is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "name or domain"
	input.CharLimit = 256
	input.SetValue(opts.Criteria.SearchTerm)

	m := &CookieViewModel{
		columns: []table.Column{
			{Title: "Domain", Width: minDomainColumnWidth},
			{Title: "Name", Width: minNameColumnWidth},
			{Title: "Value", Width: minValueColumnWidth},
			{Title: "Path", Width: pathColumnWidth},
			{Title: "Flags", Width: flagsColumnWidth},
			{Title: "Expires", Width: expiresColumnWidth},
			{Title: "Status", Width: statusColumnWidth},
		},
		criteria:       opts.Criteria,
		searchInput:    input,
		title:          opts.Title,
		load:           opts.Load,
		save:           opts.Save,
		now:            opts.Now,
		viewMode:       ViewModeTable,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
	}
	return m, nil
}

func (m *CookieViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.startLoading(),
	)
}

// Cookies returns the current working set.
func (m *CookieViewModel) Cookies() []cookie.Cookie {
	return m.cookies
}

// Dirty reports whether there are unsaved deletions.
func (m *CookieViewModel) Dirty() bool {
	return m.dirty
}

func (m *CookieViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case cookiesLoadedMsg:
		m.setCookies(msg.cookies)
		m.loadState = LoadStateLoaded
		m.loadTime = msg.duration

		if m.width > 0 && m.height > 0 {
			m.initializeTable()
			m.ready = true
		}
		return m, nil

	case loadErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case savedMsg:
		m.dirty = false
		m.setStatus(fmt.Sprintf("saved %d cookies", msg.count), false)
		return m, nil

	case saveErrorMsg:
		m.setStatus(fmt.Sprintf("save failed: %v", msg.err), true)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.loadState == LoadStateLoaded && !m.ready {
			m.initializeTable()
			m.ready = true
		} else if m.ready {
			m.updateTableDimensions()
		}

		if m.viewMode == ViewModeTableWithDetail {
			m.updateViewportDimensions()
		}

	case tea.KeyPressMsg:
		if m.viewMode == ViewModeTableWithSearch {
			return m.updateSearch(msg)
		}

		handled, keyCmd := m.handleKey(msg.String())
		if handled {
			return m, keyCmd
		}

		if m.ready {
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
			if m.viewMode == ViewModeTableWithDetail {
				m.updateDetailContent()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes a key press outside of search input. It reports whether
// the key was consumed.
func (m *CookieViewModel) handleKey(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}

	if m.loadState != LoadStateLoaded {
		if key == "q" {
			m.quitting = true
			return true, tea.Quit
		}
		return true, nil
	}

	if handled, cmd := m.handleFilterModalKeys(key); handled {
		return true, cmd
	}

	confirmed := m.pendingConfirm == key
	m.pendingConfirm = ""

	switch key {
	case "q":
		if m.dirty && !confirmed {
			m.pendingConfirm = key
			m.setStatus("unsaved deletions, press q again to quit", true)
			return true, nil
		}
		m.quitting = true
		return true, tea.Quit

	case "/", "s":
		m.openSearch()
		return true, nil

	case "f":
		m.activeModal = ModalFilter
		m.filterCursor = 0
		return true, nil

	case "d", "delete":
		m.deleteSelected()
		return true, nil

	case "D":
		if !confirmed {
			if len(m.visible) == 0 {
				m.setStatus("nothing to delete", true)
				return true, nil
			}
			m.pendingConfirm = key
			m.setStatus(fmt.Sprintf("press D again to delete %d cookies", len(m.visible)), true)
			return true, nil
		}
		m.deleteVisible()
		return true, nil

	case "w":
		return true, m.startSaving()

	case "enter":
		m.toggleDetailView()
		return true, nil

	case "esc":
		if m.viewMode == ViewModeTableWithDetail {
			m.toggleDetailView()
		} else {
			m.resetFilters()
		}
		return true, nil

	case "pgup":
		if m.viewMode == ViewModeTableWithDetail {
			m.detailViewport.ViewUp()
			return true, nil
		}

	case "pgdown":
		if m.viewMode == ViewModeTableWithDetail {
			m.detailViewport.ViewDown()
			return true, nil
		}
	}

	return false, nil
}

func (m *CookieViewModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

func (m *CookieViewModel) setCookies(cookies []cookie.Cookie) {
	m.cookies = cookies
	m.duplicates = cookie.Duplicates(cookies)
	m.applyFilters()
}

func (m *CookieViewModel) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// selectedIndex maps the table cursor to a position in the working set, -1 when empty.
func (m *CookieViewModel) selectedIndex() int {
	cursor := 0
	if m.ready {
		cursor = m.table.Cursor()
	}
	if cursor < 0 || cursor >= len(m.visible) {
		return -1
	}
	return m.visible[cursor]
}

func (m *CookieViewModel) deleteSelected() {
	index := m.selectedIndex()
	if index < 0 {
		m.setStatus("nothing to delete", true)
		return
	}

	removed := m.cookies[index]
	m.removeIndexes(map[int]struct{}{index: {}})
	m.setStatus(fmt.Sprintf("deleted %s from %s", removed.Name, removed.Domain), false)
}

func (m *CookieViewModel) deleteVisible() {
	drop := make(map[int]struct{}, len(m.visible))
	for _, index := range m.visible {
		drop[index] = struct{}{}
	}
	m.removeIndexes(drop)
	m.setStatus(fmt.Sprintf("deleted %d cookies", len(drop)), false)
}

func (m *CookieViewModel) removeIndexes(drop map[int]struct{}) {
	if len(drop) == 0 {
		return
	}

	kept := make([]cookie.Cookie, 0, len(m.cookies)-len(drop))
	for i, c := range m.cookies {
		if _, gone := drop[i]; !gone {
			kept = append(kept, c)
		}
	}

	m.dirty = true
	m.setCookies(kept)
	if m.viewMode == ViewModeTableWithDetail {
		m.updateDetailContent()
	}
}

func (m *CookieViewModel) openSearch() {
	m.viewMode = ViewModeTableWithSearch
	m.searchInput.SetValue(m.criteria.SearchTerm)
	m.searchInput.Focus()
	if m.ready {
		m.updateTableDimensions()
	}
}

func (m *CookieViewModel) closeSearch() {
	m.searchInput.Blur()
	m.viewMode = ViewModeTable
	if m.ready {
		m.updateTableDimensions()
	}
}

func (m *CookieViewModel) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleSearchKey(msg.String()); handled {
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.criteria.SearchTerm {
		m.setSearchTerm(m.searchInput.Value())
	}
	return m, cmd
}

// handleSearchKey handles the keys that leave the search input.
func (m *CookieViewModel) handleSearchKey(key string) (bool, tea.Cmd) {
	switch key {
	case "ctrl+c":
		m.quitting = true
		return true, tea.Quit
	case "enter":
		m.closeSearch()
		return true, nil
	case "esc":
		m.setSearchTerm("")
		m.closeSearch()
		return true, nil
	}
	return false, nil
}

// setSearchTerm filters live as the term changes.
func (m *CookieViewModel) setSearchTerm(term string) {
	m.criteria.SearchTerm = term
	m.searchInput.SetValue(term)
	m.status = ""
	m.applyFilters()
}

func (m *CookieViewModel) initializeTable() {
	m.adjustColumnWidths()
	m.buildTableRows()

	m.table = table.New(
		table.WithColumns(m.columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithWidth(m.width),
	)

	m.table = ApplyTableStyles(m.table)
}

func (m *CookieViewModel) tableHeight() int {
	height := m.height - tableVerticalPadding
	switch m.viewMode {
	case ViewModeTableWithDetail:
		height = height / 2
	case ViewModeTableWithSearch:
		height -= 3
	}
	return max(height, 3)
}

func (m *CookieViewModel) updateTableDimensions() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)

	m.adjustColumnWidths()
	m.table.SetColumns(m.columns)
	m.refreshRows()
}

func (m *CookieViewModel) updateViewportDimensions() {
	detailHeight := max((m.height-tableVerticalPadding)/2-splitPanelPadding, 3)
	detailWidth := max(m.width-splitPanelPadding, 20)

	if m.detailViewport.Width() == 0 {
		m.detailViewport = viewport.New(viewport.WithWidth(detailWidth), viewport.WithHeight(detailHeight))
	} else {
		m.detailViewport.SetWidth(detailWidth)
		m.detailViewport.SetHeight(detailHeight)
	}
}

func (m *CookieViewModel) toggleDetailView() {
	if m.viewMode == ViewModeTableWithDetail {
		m.viewMode = ViewModeTable
		m.updateTableDimensions()
		return
	}

	m.viewMode = ViewModeTableWithDetail
	m.updateTableDimensions()
	m.updateViewportDimensions()
	m.updateDetailContent()
}

func (m *CookieViewModel) updateDetailContent() {
	index := m.selectedIndex()
	if index < 0 {
		m.detailViewport.SetContent("No cookie selected")
		return
	}

	_, dup := m.duplicates[index]
	sections := buildCookieSections(m.cookies[index], dup, nowSeconds(m.now()))
	m.detailViewport.SetContent(renderSections(sections, RenderOptions{
		Width:    m.detailViewport.Width(),
		Truncate: true,
	}))
}

// adjustColumnWidths shares the space left by the fixed columns between
// domain, name and value.
func (m *CookieViewModel) adjustColumnWidths() {
	fixed := pathColumnWidth + flagsColumnWidth + expiresColumnWidth + statusColumnWidth
	flexible := m.width - fixed - borderPadding

	domain := clamp(flexible*35/100, minDomainColumnWidth, maxDomainColumnWidth)
	name := clamp(flexible*25/100, minNameColumnWidth, maxNameColumnWidth)
	value := max(flexible-domain-name, minValueColumnWidth)

	m.columns[colDomain].Width = domain
	m.columns[colName].Width = name
	m.columns[colValue].Width = value
	m.columns[colPath].Width = pathColumnWidth
	m.columns[colFlags].Width = flagsColumnWidth
	m.columns[colExpires].Width = expiresColumnWidth
	m.columns[colStatus].Width = statusColumnWidth
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
