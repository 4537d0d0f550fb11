package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/bizspark-chat/internal"
)

const (
	welcomeTitle = "💼 Welcome to BizSpark"
	welcomeBody  = "I'm here to help you find the perfect products for your business needs. " +
		"Feel free to ask me about our inventory, get recommendations, or inquire about pricing!"
)

const (
	typingText       = "Assistant is typing..."
	loadingItems     = "Loading items..."
	dismissHint      = "esc ×"
	conversationKeys = "enter send · alt+1-9 suggestion · tab switch view · pgup/pgdown scroll · ctrl+c quit"
	catalogKeys      = "ctrl+r refresh · tab switch view · ctrl+c quit"
	aboutKeys        = "tab switch view · ctrl+c quit"
)

var aboutText = `About BizSpark

I'm your AI-powered business assistant, designed to help you find and learn
about our products. I can assist you with:

  • Finding products based on your requirements
  • Answering questions about specific items
  • Providing recommendations within your budget
  • Explaining product features and specifications

Simply start a conversation in the chat tab, and I'll be happy to help you
find exactly what you need!`

// View draws the active panel
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body, keys string
	switch m.app.Views.Active() {
	case internal.ViewCatalog:
		body, keys = m.renderCatalog(), catalogKeys
	case internal.ViewInformational:
		body, keys = aboutText, aboutKeys
	default:
		body, keys = m.renderConversation(), conversationKeys
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		mutedStyle.Render(keys),
	)
}

func (m Model) renderHeader() string {
	count := m.app.Catalog.Len()
	active := m.app.Views.Active()

	tabs := []string{titleStyle.Render("BizSpark")}
	for _, v := range internal.Views {
		style := tabStyle
		if v == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(v.Label(count)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderConversation() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	loading := m.app.Store.Loading()
	if loading {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render(typingText) + "\n")
	}
	if errMsg := m.app.Store.Error(); errMsg != "" {
		b.WriteString(bannerStyle.Render(errMsg+"  "+dismissHint) + "\n")
	}
	if chips := m.renderSuggestions(loading); chips != "" {
		b.WriteString(chips + "\n")
	}
	b.WriteString(m.textarea.View())
	return b.String()
}

func (m Model) renderSuggestions(disabled bool) string {
	suggestions := m.app.Suggestions.Current()
	if len(suggestions) == 0 {
		return ""
	}
	style := chipStyle
	if disabled {
		style = disabledChipStyle
	}
	var chips []string
	for i, s := range suggestions {
		if i == maxSuggestions {
			break
		}
		chips = append(chips, style.Render(fmt.Sprintf("%d %s", i+1, s)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// renderHistory renders the whole timeline for the viewport
func (m Model) renderHistory() string {
	messages := m.app.Store.Messages()
	if len(messages) == 0 {
		return lipgloss.NewStyle().Bold(true).Render(welcomeTitle) + "\n\n" + mutedStyle.Render(welcomeBody) + "\n"
	}

	var b strings.Builder
	for _, msg := range messages {
		stamp := timeStyle.Render(internal.FormatClock(msg.CreatedAt))
		switch msg.Origin {
		case internal.OriginUser:
			b.WriteString(userLabelStyle.Render("You") + " " + stamp + "\n")
			b.WriteString(msg.Text() + "\n\n")
		case internal.OriginSystem:
			b.WriteString(systemStyle.Render("⚠ "+msg.Text()) + " " + stamp + "\n\n")
		default:
			b.WriteString(assistantLabelStyle.Render("BizSpark") + " " + stamp + "\n")
			b.WriteString(m.renderMarkdown(msg.Text()))
			b.WriteString(m.renderItems(msg.Result))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderItems(result *internal.ExchangeResult) string {
	sel := m.app.Normalizer.SelectItems(result)
	if sel.Kind == internal.ItemNone {
		return ""
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(sel.Kind.Heading()) + "\n")
	for _, rec := range sel.Items {
		b.WriteString(renderItem(rec, sel.Kind == internal.ItemDetail))
	}
	return b.String()
}

func (m Model) renderCatalog() string {
	items := m.app.Catalog.Items()
	if len(items) == 0 {
		return mutedStyle.Render(loadingItems)
	}

	var b strings.Builder
	for _, rec := range items {
		b.WriteString(renderItem(rec, false))
	}
	return b.String()
}

func renderItem(rec internal.ItemRecord, detailed bool) string {
	lines := internal.ItemLines(rec, detailed)
	var b strings.Builder
	for i, line := range lines {
		switch {
		case i == 0:
			b.WriteString("  • " + itemNameStyle.Render(line) + "\n")
		case strings.Contains(line, "in-stock"):
			b.WriteString("    " + inStockStyle.Render(line) + "\n")
		case strings.Contains(line, "low-stock"):
			b.WriteString("    " + lowStockStyle.Render(line) + "\n")
		default:
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

// renderMarkdown renders assistant text, falling back to plain text
func (m Model) renderMarkdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = content + "\n"
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content + "\n"
}
