package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/iksnae/bizspark-chat/internal"
)

const (
	headerHeight = 2
	footerHeight = 1
	// input, suggestion chips, banner and typing indicator
	chromeHeight = 9
)

// Update handles terminal events and store notifications
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case changeMsg:
		m.refresh(msg.Len)
		return m, m.waitForChange()

	case exchangeDoneMsg:
		internal.LogDebug("Exchange finished: %s", msg.outcome)
		if msg.outcome == internal.OutcomeBusy && msg.text != "" && m.textarea.Value() == "" {
			// rejected before anything was sent; give the text back
			m.textarea.SetValue(msg.text)
		}
		m.refresh(m.app.Store.Len())
		return m, m.textarea.Focus()

	case catalogLoadedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) resize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height

	width := msg.Width - 2
	if width < 1 {
		width = 1
	}
	height := msg.Height - headerHeight - footerHeight - chromeHeight
	if height < 1 {
		height = 1
	}

	m.viewport.Width = width
	m.viewport.Height = height
	m.textarea.SetWidth(width)
	m.ready = true

	wrap := width - 4
	if wrap < 10 {
		wrap = 10
	}
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
		m.renderer = r
	} else {
		internal.LogWarn("Markdown renderer unavailable: %v", err)
	}

	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	return m
}

// refresh re-renders the timeline, following it to the bottom when it grew
func (m *Model) refresh(length int) {
	m.viewport.SetContent(m.renderHistory())
	if length > m.lastLen {
		m.viewport.GotoBottom()
	}
	m.lastLen = length
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	views := m.app.Views
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		views.Next()
		return m, nil
	case "shift+tab":
		views.Prev()
		return m, nil
	case "esc":
		if m.app.Store.Error() != "" {
			m.app.Store.ClearError()
		}
		return m, nil
	}

	switch views.Active() {
	case internal.ViewCatalog:
		if msg.String() == "ctrl+r" {
			return m, m.loadCatalog(true)
		}
		return m, nil
	case internal.ViewInformational:
		return m, nil
	}

	key := msg.String()
	switch {
	case key == "pgup" || key == "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case m.app.Store.Loading():
		// input is disabled while an exchange is in flight
		return m, nil

	case key == "enter":
		text := m.textarea.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.textarea.Reset()
		return m, m.submit(text)

	case strings.HasPrefix(key, "alt+") && len(key) == 5 && key[4] >= '1' && key[4] <= '9':
		idx := int(key[4] - '1')
		suggestions := m.app.Suggestions.Current()
		if idx >= len(suggestions) {
			return m, nil
		}
		return m, m.submit(suggestions[idx])
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}
