package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.renderContent(),
		m.renderStatusBar(),
		m.renderKeyBar(),
	}, "\n")
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("sql2migration") + dimStyle.Render("  "+m.Opts.SourcePath)

	tabs := ""
	for i := Tab(0); i < tabCount; i++ {
		if i == m.ActiveTab {
			tabs += activeTabStyle.Render(i.String())
		} else {
			tabs += tabStyle.Render(i.String())
		}
	}
	nav := tabs
	if m.IsWriting {
		right := warningStyle.Render(m.Spinner.View() + " Writing...")
		gap := max(m.Width-lipgloss.Width(nav)-lipgloss.Width(right)-10, 0)
		nav = nav + strings.Repeat(" ", gap) + right
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, panelStyle.Width(m.Width-4).Render(nav))
}

func (m Model) renderContent() string {
	switch m.ActiveTab {
	case TabOperations:
		return m.renderOperationsTab()
	case TabSource:
		return m.renderSourceTab()
	case TabHistory:
		return m.renderHistoryTab()
	case TabHelp:
		return m.renderHelpTab()
	}
	return ""
}

func (m Model) listWidth() int {
	return max(m.Width/3, 30)
}

func (m Model) renderOperationsTab() string {
	lw := m.listWidth()
	rw := max(m.Width-lw-7, 20)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderOperationList(lw), "  ", m.renderDetailPanel(rw),
	)
}

func (m Model) renderOperationList(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Operations") + "\n")
	sb.WriteString(m.Filter.View() + "\n\n")

	visible := m.Visible()
	if len(visible) == 0 {
		sb.WriteString(dimStyle.Render("No operations."))
	}
	ops := m.opsList()
	for row, idx := range visible {
		op := ops[idx]
		cursor := "  "
		subject := valueStyle.Render(truncate(op.Subject(), width-14))
		if row == m.Cursor {
			cursor = keyStyle.Render("▸ ")
			subject = highlightStyle.Render(truncate(op.Subject(), width-14))
		}
		sb.WriteString(cursor + kindBadge(op.Kind.String()) + " " + subject + "\n")
	}

	if warns := m.warnings(); len(warns) > 0 {
		sb.WriteString("\n" + warningStyle.Render(fmt.Sprintf("⚠ %d warnings", len(warns))) + "\n")
		for _, d := range warns {
			sb.WriteString(dimStyle.Render(truncate(d.Message, width-4)) + "\n")
		}
	}
	return activePanelStyle.Width(width).Render(sb.String())
}

func (m Model) renderDetailPanel(width int) string {
	var sb strings.Builder
	f, ok := m.selectedFile()
	if !ok {
		sb.WriteString(titleStyle.Render("Migration") + "\n\n")
		sb.WriteString(dimStyle.Render("Press Enter on an operation to render its migration."))
		return panelStyle.Width(width).Render(sb.String())
	}
	sb.WriteString(titleStyle.Render(f.Name) + "\n\n")
	sb.WriteString(m.Detail.View())
	sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%3.f%%  pgup/pgdn scroll", m.Detail.ScrollPercent()*100)))
	return panelStyle.Width(width).Render(sb.String())
}

func (m Model) renderSourceTab() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Source SQL") + "\n\n")
	sb.WriteString(m.Source.View())
	return panelStyle.Width(m.Width - 6).Render(sb.String())
}

func (m Model) renderHistoryTab() string {
	var sb strings.Builder
	width := m.Width - 6
	sb.WriteString(titleStyle.Render("Conversion History") + "\n\n")

	if len(m.Opts.History) == 0 {
		sb.WriteString(dimStyle.Render("No runs yet.\nHistory appears here after a conversion is recorded."))
		return panelStyle.Width(width).Render(sb.String())
	}
	for i, h := range m.Opts.History {
		icon := successStyle.Render("✓")
		if h.Warnings > 0 {
			icon = warningStyle.Render("⚠")
		}
		mode := ""
		if h.DryRun {
			mode = dimStyle.Render(" (dry run)")
		}
		ts := dimStyle.Render(h.CreatedAt.Local().Format("Jan 02 15:04"))
		src := valueStyle.Render(truncate(h.Source, 30))
		stats := fmt.Sprintf("%d tables  %d fks  %d triggers  %d files", h.Tables, h.ForeignKeys, h.Triggers, h.Files)
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, icon, "  ", ts, "  ", src, "  ", stats, mode) + "\n")
		if i < len(m.Opts.History)-1 {
			sb.WriteString(dimStyle.Render(strings.Repeat("-", max(width-4, 1))) + "\n")
		}
	}
	return panelStyle.Width(width).Render(sb.String())
}

func (m Model) renderHelpTab() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keyboard Shortcuts") + "\n\n")

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"Tab / Shift+Tab", "Switch tabs"},
			{"1,2,3,4", "Jump to tab"},
			{"q / Ctrl+C", "Quit"},
		}},
		{"Operations Tab", [][2]string{
			{"j / k", "Move cursor"},
			{"Enter", "Render the migration"},
			{"PgUp / PgDn", "Scroll the migration"},
			{"/", "Filter by name or kind"},
			{"Esc", "Close the migration"},
			{"w", "Write all migration files"},
		}},
		{"Order", [][2]string{
			{"TABLE", "Created first, in source order"},
			{"FKEYS", "Added once all tables exist"},
			{"TRIGGER", "Created last"},
		}},
	}

	for _, sec := range sections {
		sb.WriteString(lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Render("  "+sec.title) + "\n")
		for _, pair := range sec.keys {
			sb.WriteString("  " + keyStyle.Width(22).Render(pair[0]) + keyDescStyle.Render(pair[1]) + "\n")
		}
		sb.WriteString("\n")
	}
	return panelStyle.Width(m.Width - 6).Render(sb.String())
}

func (m Model) renderStatusBar() string {
	var style lipgloss.Style
	switch m.StatusKind {
	case "success":
		style = successStyle
	case "error":
		style = errorStyle
	case "warning":
		style = warningStyle
	default:
		style = dimStyle
	}
	return lipgloss.NewStyle().
		Width(m.Width-4).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(colorBorder).
		Render(style.Render("  " + m.StatusMsg))
}

func (m Model) renderKeyBar() string {
	keys := []string{
		RenderKeyBinding("Tab", "switch"),
		RenderKeyBinding("j/k", "move"),
		RenderKeyBinding("Enter", "render"),
		RenderKeyBinding("/", "filter"),
		RenderKeyBinding("w", "write"),
		RenderKeyBinding("q", "quit"),
	}
	return dimStyle.Width(m.Width-4).Render("  " + strings.Join(keys, dimStyle.Render("  │  ")))
}

func truncate(s string, n int) string {
	if n < 2 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
