package cmd

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/biscuit/tui"
)

const biscuitASCII = ` _     _                _ _
| |__ (_)___  ___ _   _(_) |_
| '_ \| / __|/ __| | | | | __|
| |_) | \__ \ (__| |_| | | |_
|_.__/|_|___/\___|\__,_|_|\__|`

// RenderBanner returns the styled banner shown by the version command
func RenderBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(tui.RGBPink).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tui.RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1)

	banner := bannerStyle.Render(biscuitASCII)
	subtitle := subtitleStyle.Render("cookie exports, converted and cleaned")

	return containerStyle.Render(banner + "\n" + subtitle)
}
