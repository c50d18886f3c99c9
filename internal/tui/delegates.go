package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ccsessions/internal/session"
)

// sessionItem wraps a Summary for the list component
type sessionItem struct {
	summary *session.Summary
}

func (i sessionItem) FilterValue() string { return i.summary.Description }
func (i sessionItem) Title() string       { return i.summary.Description }
func (i sessionItem) Description() string {
	return fmt.Sprintf("%s | %d msgs | %s tokens | %s",
		i.summary.Workspace,
		i.summary.MessageCount,
		formatTokens(i.summary.TotalTokens()),
		formatTimeAgo(i.summary.Modified),
	)
}

// sessionDelegate renders session items
type sessionDelegate struct {
	width int
}

func newSessionDelegate() *sessionDelegate {
	return &sessionDelegate{}
}

func (d *sessionDelegate) SetWidth(w int) { d.width = w }

func (d *sessionDelegate) Height() int                             { return 2 }
func (d *sessionDelegate) Spacing() int                            { return 1 }
func (d *sessionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sessionItem)
	if !ok {
		return
	}
	s := i.summary

	nameStyle := normalItemStyle
	indicator := "  "
	if index == m.Index() {
		nameStyle = selectedItemStyle
		indicator = selectedItemStyle.Render("> ")
	}

	title := truncate(s.Description, max(20, d.width-10))
	name := nameStyle.Render(title)

	badge := ""
	if s.Tag != "" {
		badge = " " + tagBadgeStyle.Render(s.Tag)
	}

	detail := fmt.Sprintf("  %s | %d msgs | %s tokens | %s",
		s.Workspace,
		s.MessageCount,
		formatTokens(s.TotalTokens()),
		formatTimeAgo(s.Modified),
	)

	fmt.Fprintf(w, "%s%s%s\n%s", indicator, name, badge, mutedStyle.Render(detail))
}

// formatTimeAgo returns a human-readable relative time string
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	default:
		return t.Format("Jan 2")
	}
}

// formatTokens renders a token count compactly (1234 -> "1.2k")
func formatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
