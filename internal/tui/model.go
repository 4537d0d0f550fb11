// Package tui is the interactive terminal client: a conversation view, a
// catalog view and an about view over one mounted internal.App.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/iksnae/bizspark-chat/internal"
)

const (
	inputPlaceholder = "Type your message..."
	maxSuggestions   = 9
)

// changeMsg carries a conversation store notification
type changeMsg internal.Change

// exchangeDoneMsg is sent when a submit or bootstrap call returns
type exchangeDoneMsg struct {
	outcome internal.Outcome
	// text is the submitted query; empty for bootstrap
	text string
}

// catalogLoadedMsg is sent when a catalog load attempt returns
type catalogLoadedMsg struct{}

// Model is the bubbletea model of the chat client
type Model struct {
	ctx context.Context
	app *internal.App

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	// timeline length at the last render; growth scrolls to the bottom
	lastLen int
}

// NewModel creates the client model. The tab's session is resolved here,
// before any exchange is started.
func NewModel(ctx context.Context, app *internal.App) Model {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = timeStyle

	app.SessionID()

	return Model{
		ctx:      ctx,
		app:      app,
		textarea: ta,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

// Init starts the bootstrap exchange and the catalog load side by side
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForChange(),
		m.bootstrap(),
		m.loadCatalog(false),
	)
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.app.Store.Changes()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case c := <-changes:
			return changeMsg(c)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) bootstrap() tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		return exchangeDoneMsg{outcome: app.Dispatcher.Bootstrap(ctx, app.SessionID())}
	}
}

func (m Model) submit(text string) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		return exchangeDoneMsg{outcome: app.Submit(ctx, text), text: text}
	}
}

func (m Model) loadCatalog(refresh bool) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		if refresh {
			app.Catalog.Refresh(ctx)
		} else {
			app.Catalog.Load(ctx)
		}
		return catalogLoadedMsg{}
	}
}
