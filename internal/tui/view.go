package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderViewTabs())
	b.WriteString("\n")

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	switch m.viewMode {
	case ViewConversation, ViewAnalytics:
		b.WriteString(m.convView.View())
	default:
		b.WriteString(m.sessionList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar
func (m Model) renderHeader() string {
	title := titleStyle.Render("Claude Code Sessions")

	var status string
	switch {
	case m.catalog == nil:
		status = statusStyle.Render("scanning...")
	case len(m.visible) != len(m.catalog.Summaries):
		status = statusStyle.Render(fmt.Sprintf("%d / %d sessions",
			len(m.visible), len(m.catalog.Summaries)))
	default:
		status = statusStyle.Render(fmt.Sprintf("%d sessions", len(m.catalog.Summaries)))
	}

	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(status) - 4
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacing),
		status,
	)
}

// renderViewTabs renders the tab bar for view modes
func (m Model) renderViewTabs() string {
	tabs := []struct {
		name string
		mode ViewMode
		key  string
	}{
		{"Sessions", ViewSessions, "1"},
		{"Conversation", ViewConversation, "2"},
		{"Analytics", ViewAnalytics, "3"},
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%s %s", t.key, t.name)
		if t.mode == m.viewMode {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = inactiveTabStyle.Render(label)
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	gap := strings.Repeat("─", max(0, m.width-lipgloss.Width(row)-2))

	return row + tabGapStyle.Render(gap)
}

// renderFooter renders the prompt line, status, or key help
func (m Model) renderFooter() string {
	if m.tagging {
		return promptStyle.Render("Set tag (enter to save, empty clears, esc cancels): ") +
			m.tagInput.View()
	}
	if m.confirmingDelete {
		s := m.SelectedSummary()
		label := ""
		if s != nil {
			label = truncate(s.Description, 40)
		}
		return confirmStyle.Render(fmt.Sprintf("Delete %q? This removes the log file. [y/N]", label))
	}
	if m.deepBusy {
		return statusStyle.Render("searching content...")
	}

	help := m.renderHelp()
	if m.status != "" {
		return statusStyle.Render(m.status) + "  " + help
	}
	return help
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	var help []string

	switch m.viewMode {
	case ViewSessions:
		help = []string{
			"j/k:navigate",
			"enter:open",
			"/:search",
			"t:tag",
			"d:delete",
			"ctrl+r:resume",
			"r:refresh",
			"q:quit",
		}
	case ViewConversation:
		help = []string{
			"j/k:scroll",
			"ctrl+r:resume",
			"esc:back",
			"q:quit",
		}
	case ViewAnalytics:
		help = []string{
			"j/k:scroll",
			"esc:back",
			"q:quit",
		}
	}

	return helpStyle.Render(strings.Join(help, " | "))
}

// renderConversation builds the scrollable conversation text for the
// currently opened session.
func (m Model) renderConversation() string {
	var b strings.Builder

	if s := m.SelectedSummary(); s != nil && s.ID == m.convSessionID {
		b.WriteString(titleStyle.Render(s.Description))
		b.WriteString("\n")
		meta := fmt.Sprintf("%s | %d messages | %s tokens",
			s.Workspace, s.MessageCount, formatTokens(s.TotalTokens()))
		if s.CWD != "" {
			meta += " | " + s.CWD
		}
		b.WriteString(mutedStyle.Render(meta))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", max(10, m.convView.Width)))
		b.WriteString("\n")
	}

	for _, msg := range m.convMessages {
		var label string
		if msg.Role == "user" {
			label = workspaceStyle.Render("● User")
		} else {
			label = titleStyle.Render("● Assistant")
		}
		if !msg.Timestamp.IsZero() {
			label += mutedStyle.Render("  " + msg.Timestamp.Format("15:04:05"))
		}
		if msg.Model != "" {
			label += mutedStyle.Render("  " + msg.Model)
		}
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	return b.String()
}

// renderAnalytics builds the aggregate statistics panel across every
// indexed session.
func (m Model) renderAnalytics() string {
	if m.catalog == nil {
		return "scanning..."
	}

	var (
		totalMessages int
		totalInput    int
		totalOutput   int
		totalCacheRd  int
		workspaces    = map[string]int{}
		tools         = map[string]int{}
		models        = map[string]int{}
	)

	for _, s := range m.catalog.Summaries {
		totalMessages += s.MessageCount
		totalInput += s.InputTokens
		totalOutput += s.OutputTokens
		totalCacheRd += s.CacheReadTokens
		workspaces[s.Workspace]++
		if s.Model != "" {
			models[s.Model]++
		}
		for name, count := range s.ToolUsage {
			tools[name] += count
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Analytics"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Sessions:       %d\n", len(m.catalog.Summaries))
	fmt.Fprintf(&b, "Messages:       %d\n", totalMessages)
	fmt.Fprintf(&b, "Input tokens:   %s\n", formatTokens(totalInput))
	fmt.Fprintf(&b, "Output tokens:  %s\n", formatTokens(totalOutput))
	fmt.Fprintf(&b, "Cache reads:    %s\n", formatTokens(totalCacheRd))

	b.WriteString("\n")
	b.WriteString(workspaceStyle.Render("Top workspaces"))
	b.WriteString("\n")
	for _, e := range topEntries(workspaces, 10) {
		fmt.Fprintf(&b, "  %-40s %d\n", truncate(e.name, 40), e.count)
	}

	b.WriteString("\n")
	b.WriteString(workspaceStyle.Render("Top tools"))
	b.WriteString("\n")
	for _, e := range topEntries(tools, 10) {
		fmt.Fprintf(&b, "  %-40s %d\n", truncate(e.name, 40), e.count)
	}

	b.WriteString("\n")
	b.WriteString(workspaceStyle.Render("Models"))
	b.WriteString("\n")
	for _, e := range topEntries(models, 10) {
		fmt.Fprintf(&b, "  %-40s %d\n", truncate(e.name, 40), e.count)
	}

	return b.String()
}

type countedEntry struct {
	name  string
	count int
}

// topEntries sorts a histogram by count descending, name ascending on
// ties, and keeps the first n.
func topEntries(histogram map[string]int, n int) []countedEntry {
	entries := make([]countedEntry, 0, len(histogram))
	for name, count := range histogram {
		entries = append(entries, countedEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
