package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("#00D7FF")
	colorGreen  = lipgloss.Color("#00FF87")
	colorYellow = lipgloss.Color("#FFD700")
	colorRed    = lipgloss.Color("#FF5F5F")
	colorPurple = lipgloss.Color("#AF87FF")
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorGray   = lipgloss.Color("#626262")
	colorBorder = lipgloss.Color("#2A2A4A")
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

var activePanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorCyan).
	Padding(0, 1)

var tabStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	Padding(0, 2)

var activeTabStyle = lipgloss.NewStyle().
	Foreground(colorCyan).
	Bold(true).
	Padding(0, 2).
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(colorCyan)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	successStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(colorGray)
	highlightStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(colorPurple)
	keyStyle       = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	keyDescStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// kindBadge renders a fixed-width label for an operation kind.
func kindBadge(kind string) string {
	switch kind {
	case "create_table":
		return successStyle.Render("TABLE  ")
	case "add_foreign_keys":
		return highlightStyle.Render("FKEYS  ")
	case "create_trigger":
		return lipgloss.NewStyle().Foreground(colorPurple).Bold(true).Render("TRIGGER")
	}
	return dimStyle.Render(kind)
}

func RenderKeyBinding(key, desc string) string {
	return keyStyle.Render(key) + keyDescStyle.Render(" "+desc)
}
