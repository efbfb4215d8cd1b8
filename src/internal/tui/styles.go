// Package tui provides styled terminal output built on lipgloss. Styles are
// initialized lazily because lipgloss terminal detection is slow enough to
// show up in cold-start time for short commands.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	initOnce sync.Once

	colorPrimary lipgloss.Color
	colorAccent  lipgloss.Color
	colorSuccess lipgloss.Color
	colorMuted   lipgloss.Color

	StyleVersion lipgloss.Style
	StyleMuted   lipgloss.Style

	StyleTableHeader lipgloss.Style
	StyleTableCell   lipgloss.Style
	StyleTableBorder lipgloss.Style

	CheckMark string
)

func initStyles() {
	initOnce.Do(func() {
		// Force TrueColor to skip slow terminal capability detection.
		// See: https://github.com/charmbracelet/lipgloss/issues/86
		lipgloss.SetColorProfile(termenv.TrueColor)

		colorPrimary = lipgloss.Color("39")
		colorAccent = lipgloss.Color("213")
		colorSuccess = lipgloss.Color("42")
		colorMuted = lipgloss.Color("245")

		StyleVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

		StyleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

		StyleTableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingRight(2)

		StyleTableCell = lipgloss.NewStyle().
			PaddingRight(2)

		StyleTableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

		CheckMark = lipgloss.NewStyle().Foreground(colorSuccess).Render("✓")
	})
}

// RenderVersion renders a version string with styling.
func RenderVersion(version string) string {
	initStyles()
	return StyleVersion.Render(version)
}

// RenderMuted renders text in a dim style.
func RenderMuted(text string) string {
	initStyles()
	return StyleMuted.Render(text)
}

// GetCheckMark returns the styled checkmark indicator.
func GetCheckMark() string {
	initStyles()
	return CheckMark
}
