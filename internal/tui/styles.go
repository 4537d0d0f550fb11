package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("62")
	accent  = lipgloss.Color("42")
	muted   = lipgloss.Color("241")
	danger  = lipgloss.Color("196")
	warning = lipgloss.Color("214")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(primary).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Underline(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(primary)
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	timeStyle           = lipgloss.NewStyle().Foreground(muted)
	systemStyle         = lipgloss.NewStyle().Foreground(danger).Italic(true)
	headingStyle        = lipgloss.NewStyle().Bold(true).Foreground(warning)
	itemNameStyle       = lipgloss.NewStyle().Bold(true)
	mutedStyle          = lipgloss.NewStyle().Foreground(muted)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(danger).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)

	disabledChipStyle = chipStyle.
				Foreground(muted).
				BorderForeground(muted)

	inStockStyle  = lipgloss.NewStyle().Foreground(accent)
	lowStockStyle = lipgloss.NewStyle().Foreground(warning)
)
