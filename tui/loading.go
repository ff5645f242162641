package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/biscuit/cookie"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

// LoadFunc reads the cookies to manage.
type LoadFunc func() ([]cookie.Cookie, error)

// SaveFunc persists the working set.
type SaveFunc func(cookies []cookie.Cookie) error

type cookiesLoadedMsg struct {
	cookies  []cookie.Cookie
	duration time.Duration
}

type loadErrorMsg struct {
	err error
}

type savedMsg struct {
	count int
}

type saveErrorMsg struct {
	err error
}

func (m *CookieViewModel) startLoading() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		start := time.Now()

		cookies, err := load()
		if err != nil {
			return loadErrorMsg{err: err}
		}

		return cookiesLoadedMsg{
			cookies:  cookies,
			duration: time.Since(start),
		}
	}
}

func (m *CookieViewModel) startSaving() tea.Cmd {
	if m.save == nil {
		m.setStatus("saving is not available", true)
		return nil
	}

	save := m.save
	snapshot := make([]cookie.Cookie, len(m.cookies))
	copy(snapshot, m.cookies)

	return func() tea.Msg {
		if err := save(snapshot); err != nil {
			return saveErrorMsg{err: err}
		}
		return savedMsg{count: len(snapshot)}
	}
}

func (m *CookieViewModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	title := TitleStyle.Render("Loading Cookies")
	fileInfo := SubtitleStyle.Render(fmt.Sprintf("\n%s", m.title))

	return spinnerStyle.Render(fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, fileInfo))
}

func (m *CookieViewModel) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	return errorStyle.Render(fmt.Sprintf("Error loading cookies\n\n%v\n\nPress 'q' to quit", m.err))
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
