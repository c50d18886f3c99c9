package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ccsessions/internal/session"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateSizes(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case catalogLoadedMsg:
		m.catalog = (*session.Catalog)(msg)
		m.err = nil
		m = m.applyFilter()
		if m.status == "" {
			m.status = fmt.Sprintf("%d sessions", len(m.catalog.Summaries))
		}
		return m, nil

	case messagesLoadedMsg:
		m.convSessionID = msg.sessionID
		m.convMessages = msg.messages
		m.viewMode = ViewConversation
		m.convView.SetContent(m.renderConversation())
		m.convView.GotoTop()
		return m, nil

	case deepResultMsg:
		m.deepBusy = false
		term, deep := session.ParseQuery(m.searchInput.Value())
		if deep && term == msg.term {
			m.visible = msg.matches
			m = m.updateSessionList()
			m.status = fmt.Sprintf("%d content matches", len(msg.matches))
		}
		return m, nil

	case deleteDoneMsg:
		failed := 0
		for _, r := range msg {
			if r.Err != nil {
				failed++
				m.status = fmt.Sprintf("delete failed: %v", r.Err)
			}
		}
		if failed == 0 {
			m.status = "session deleted"
		}
		return m, m.loadCatalogCmd()

	case tagWrittenMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("tag write failed: %v", msg.err)
			return m, nil
		}
		m.status = "tag saved"
		return m, m.loadCatalogCmd()

	case watchEventMsg:
		return m, tea.Batch(m.loadCatalogCmd(), m.watchCmd())

	case tickMsg:
		return m, m.tickCmd()

	case errMsg:
		if m.catalog == nil {
			m.err = msg.error
		} else {
			m.status = fmt.Sprintf("error: %v", msg.error)
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses by the current input state and view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.tagging {
		return m.handleTagKey(msg)
	}
	if m.confirmingDelete {
		return m.handleConfirmKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch m.viewMode {
	case ViewConversation:
		return m.handleConversationKey(msg)
	case ViewAnalytics:
		return m.handleAnalyticsKey(msg)
	default:
		return m.handleSessionsKey(msg)
	}
}

func (m Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case "enter":
		if s := m.SelectedSummary(); s != nil {
			return m, m.loadMessagesCmd(s)
		}
		return m, nil

	case "t":
		if s := m.SelectedSummary(); s != nil {
			m.tagging = true
			m.tagInput.SetValue(s.Tag)
			m.tagInput.Focus()
		}
		return m, nil

	case "d":
		if m.SelectedSummary() != nil {
			m.confirmingDelete = true
		}
		return m, nil

	case "ctrl+r":
		if s := m.SelectedSummary(); s != nil {
			m.resumeID = s.ID
			m.resumeDir = s.CWD
			return m, tea.Quit
		}
		return m, nil

	case "r":
		m.status = "refreshing..."
		return m, m.loadCatalogCmd()

	case "1":
		m.viewMode = ViewSessions
		return m, nil

	case "2":
		if s := m.SelectedSummary(); s != nil {
			return m, m.loadMessagesCmd(s)
		}
		return m, nil

	case "3":
		m.viewMode = ViewAnalytics
		m.convView.SetContent(m.renderAnalytics())
		m.convView.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

func (m Model) handleConversationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "1":
		m.viewMode = ViewSessions
		return m, nil
	case "3":
		m.viewMode = ViewAnalytics
		m.convView.SetContent(m.renderAnalytics())
		m.convView.GotoTop()
		return m, nil
	case "ctrl+r":
		if s := m.SelectedSummary(); s != nil {
			m.resumeID = s.ID
			m.resumeDir = s.CWD
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.convView, cmd = m.convView.Update(msg)
	return m, cmd
}

func (m Model) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "1":
		m.viewMode = ViewSessions
		return m, nil
	case "2":
		if s := m.SelectedSummary(); s != nil {
			return m, m.loadMessagesCmd(s)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.convView, cmd = m.convView.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m.applyFilter(), nil

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		term, deep := session.ParseQuery(m.searchInput.Value())
		if deep && term != "" && m.catalog != nil {
			m.deepBusy = true
			m.status = "searching content..."
			return m, m.deepSearchCmd(term)
		}
		return m.applyFilter(), nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m.applyFilter(), cmd
}

func (m Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tagging = false
		m.tagInput.Blur()
		return m, nil

	case "enter":
		m.tagging = false
		m.tagInput.Blur()
		s := m.SelectedSummary()
		if s == nil {
			return m, nil
		}
		value := strings.TrimSpace(m.tagInput.Value())
		return m, m.writeTagCmd(s, value)
	}

	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmingDelete = false
		if s := m.SelectedSummary(); s != nil {
			return m, m.deleteCmd(s)
		}
		return m, nil
	default:
		m.confirmingDelete = false
		return m, nil
	}
}
