package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ccsessions/internal/session"
	"ccsessions/internal/tag"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewSessions ViewMode = iota // Session list
	ViewConversation             // Full conversation for selected session
	ViewAnalytics                // Aggregate statistics across all sessions
)

// Result carries what the UI decided on exit. A non-empty ResumeID asks
// the caller to hand the terminal over to that session.
type Result struct {
	ResumeID  string
	ResumeDir string
}

// Model represents the application state
type Model struct {
	// Core state
	catalog *session.Catalog
	visible []*session.Summary
	watcher *session.Watcher
	tags    tag.Store

	viewMode ViewMode

	// UI components
	sessionList list.Model
	delegate    *sessionDelegate
	searchInput textinput.Model
	tagInput    textinput.Model
	convView    viewport.Model

	// Search state
	searching bool
	deepBusy  bool

	// Tag editor state
	tagging bool

	// Delete confirmation state
	confirmingDelete bool

	// Conversation state
	convSessionID string
	convMessages  []session.DisplayMessage

	// Resume request, read by Run after the program exits
	resumeID  string
	resumeDir string

	// UI dimensions
	width  int
	height int

	// Transient status line and error state
	status string
	err    error
}

// NewModel creates a new Model with initialized state
func NewModel() Model {
	tags := tag.NewSidecarStore()

	watcher, err := session.NewWatcher([]string{session.DefaultRoot()})
	if watcher != nil {
		watcher.Start()
	}

	delegate := newSessionDelegate()

	search := textinput.New()
	search.Placeholder = `type to filter, "c:" for content search`
	search.Prompt = "/ "
	search.CharLimit = 200

	tagIn := textinput.New()
	tagIn.Prompt = "tag: "
	tagIn.CharLimit = 80

	m := Model{
		watcher:     watcher,
		tags:        tags,
		viewMode:    ViewSessions,
		delegate:    delegate,
		searchInput: search,
		tagInput:    tagIn,
		err:         err,
	}

	m.sessionList = list.New([]list.Item{}, delegate, 0, 0)
	m.sessionList.SetShowTitle(false)
	m.sessionList.SetShowHelp(false)
	m.sessionList.SetShowStatusBar(false)
	m.sessionList.SetFilteringEnabled(false)
	m.sessionList.DisableQuitKeybindings()

	m.convView = viewport.New(0, 0)

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalogCmd(),
		m.watchCmd(),
		m.tickCmd(),
	)
}

// Message types
type (
	catalogLoadedMsg  *session.Catalog
	messagesLoadedMsg struct {
		sessionID string
		messages  []session.DisplayMessage
	}
	deepResultMsg struct {
		term    string
		matches []*session.Summary
	}
	deleteDoneMsg []session.DeleteResult
	tagWrittenMsg struct{ err error }
	watchEventMsg struct{}
	tickMsg       time.Time
	errMsg        struct{ error }
)

// loadCatalogCmd rebuilds the catalog from disk
func (m Model) loadCatalogCmd() tea.Cmd {
	tags := m.tags
	return func() tea.Msg {
		catalog, err := session.Load(nil, tags)
		if err != nil {
			return errMsg{err}
		}
		return catalogLoadedMsg(catalog)
	}
}

// loadMessagesCmd loads the full conversation for one session
func (m Model) loadMessagesCmd(s *session.Summary) tea.Cmd {
	return func() tea.Msg {
		messages, err := session.LoadMessages(s.Path)
		if err != nil {
			return errMsg{fmt.Errorf("loading conversation: %w", err)}
		}
		return messagesLoadedMsg{sessionID: s.ID, messages: messages}
	}
}

// deepSearchCmd runs a full-content search in the background
func (m Model) deepSearchCmd(term string) tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		matches, _ := catalog.DeepFilter(context.Background(), term)
		return deepResultMsg{term: term, matches: matches}
	}
}

// deleteCmd removes the selected session file
func (m Model) deleteCmd(s *session.Summary) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg(session.Delete([]string{s.Path}))
	}
}

// writeTagCmd persists a tag value for one session
func (m Model) writeTagCmd(s *session.Summary, value string) tea.Cmd {
	tags := m.tags
	return func() tea.Msg {
		return tagWrittenMsg{err: tags.Write(s.Path, value)}
	}
}

// watchCmd waits for the next filesystem change notification
func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events, errs := m.watcher.Events, m.watcher.Errors
	return func() tea.Msg {
		select {
		case <-events:
			return watchEventMsg{}
		case err := <-errs:
			return errMsg{err}
		}
	}
}

// tickCmd refreshes relative timestamps every 30 seconds
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// applyFilter recomputes the visible sessions from the current query and
// rebuilds the list items.
func (m Model) applyFilter() Model {
	if m.catalog == nil {
		return m
	}
	term, deep := session.ParseQuery(m.searchInput.Value())
	if deep {
		// Deep results arrive asynchronously; keep showing the current
		// set until enter triggers the search.
		return m
	}
	m.visible = m.catalog.Filter(term)
	return m.updateSessionList()
}

// updateSessionList rebuilds the session list items from visible
func (m Model) updateSessionList() Model {
	items := make([]list.Item, len(m.visible))
	for i, s := range m.visible {
		items[i] = sessionItem{summary: s}
	}
	m.sessionList.SetItems(items)
	if m.sessionList.Index() >= len(items) {
		m.sessionList.Select(0)
	}
	return m
}

// updateSizes updates component dimensions based on terminal size
func (m Model) updateSizes() Model {
	// Reserve space for header (2), tabs (2), search (1), help (2), margins (2)
	listHeight := m.height - 9
	if listHeight < 5 {
		listHeight = 5
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}

	m.delegate.SetWidth(listWidth)
	m.sessionList.SetSize(listWidth, listHeight)
	m.convView.Width = listWidth
	m.convView.Height = listHeight + 1
	m.searchInput.Width = listWidth - 4
	m.tagInput.Width = listWidth - 10

	return m
}

// SelectedSummary returns the currently highlighted session or nil
func (m Model) SelectedSummary() *session.Summary {
	item, ok := m.sessionList.SelectedItem().(sessionItem)
	if !ok {
		return nil
	}
	return item.summary
}

// Run starts the interactive browser and blocks until it exits.
func Run() (Result, error) {
	model := NewModel()
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if model.watcher != nil {
		_ = model.watcher.Stop()
	}
	if err != nil {
		return Result{}, err
	}

	if m, ok := final.(Model); ok {
		return Result{ResumeID: m.resumeID, ResumeDir: m.resumeDir}, nil
	}
	return Result{}, nil
}
