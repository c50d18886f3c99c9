package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"ccsessions/internal/config"
)

// Color palette, resolved from the configured catppuccin theme.
var (
	primaryColor   lipgloss.Color
	secondaryColor lipgloss.Color
	warningColor   lipgloss.Color
	dangerColor    lipgloss.Color
	mutedColor     lipgloss.Color
	fgColor        lipgloss.Color
	baseColor      lipgloss.Color
	selectionColor lipgloss.Color
)

// Header styles
var (
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
)

// Tab styles
var (
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style
	tabGapStyle      lipgloss.Style
)

// List item styles
var (
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	workspaceStyle    lipgloss.Style
	tagBadgeStyle     lipgloss.Style
	mutedStyle        lipgloss.Style
)

// Prompt styles for the tag editor and delete confirmation
var (
	promptStyle  lipgloss.Style
	confirmStyle lipgloss.Style
)

// Help style
var helpStyle lipgloss.Style

func init() {
	theme := catppuccin.Mocha
	switch config.Global().Theme {
	case "latte":
		theme = catppuccin.Latte
	case "frappe":
		theme = catppuccin.Frappe
	case "macchiato":
		theme = catppuccin.Macchiato
	}

	primaryColor = lipgloss.Color(theme.Mauve().Hex)
	secondaryColor = lipgloss.Color(theme.Green().Hex)
	warningColor = lipgloss.Color(theme.Yellow().Hex)
	dangerColor = lipgloss.Color(theme.Red().Hex)
	mutedColor = lipgloss.Color(theme.Overlay1().Hex)
	fgColor = lipgloss.Color(theme.Text().Hex)
	baseColor = lipgloss.Color(theme.Base().Hex)
	selectionColor = lipgloss.Color(theme.Surface0().Hex)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	statusStyle = lipgloss.NewStyle().
		Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
		Foreground(dangerColor).
		Bold(true).
		Padding(1)

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Background(primaryColor).
		Foreground(baseColor).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(mutedColor).
		Padding(0, 2)

	tabGapStyle = lipgloss.NewStyle().
		Foreground(mutedColor)

	selectedItemStyle = lipgloss.NewStyle().
		Background(selectionColor).
		Foreground(fgColor).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(fgColor)

	workspaceStyle = lipgloss.NewStyle().
		Foreground(secondaryColor)

	tagBadgeStyle = lipgloss.NewStyle().
		Background(warningColor).
		Foreground(baseColor).
		Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
		Foreground(mutedColor)

	promptStyle = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	confirmStyle = lipgloss.NewStyle().
		Foreground(dangerColor).
		Bold(true)

	helpStyle = lipgloss.NewStyle().
		Foreground(mutedColor)
}
