package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header        lipgloss.Style
	UserName      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	ErrorBanner   lipgloss.Style
	StatusLine    lipgloss.Style
	CardSelected  lipgloss.Style
	Card          lipgloss.Style
	TitleDone     lipgloss.Style
	Title         lipgloss.Style
	Description   lipgloss.Style
	Meta          lipgloss.Style
	Skeleton      lipgloss.Style
	EmptyState    lipgloss.Style
	Help          lipgloss.Style
	Dialog        lipgloss.Style
	DialogTitle   lipgloss.Style
	FormLabel     lipgloss.Style
	FormError     lipgloss.Style
	FormCounter   lipgloss.Style
	FormSubmitted lipgloss.Style
}

func newStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		UserName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1),
		StatusLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		TitleDone: lipgloss.NewStyle().
			Strikethrough(true).
			Faint(true),
		Title: lipgloss.NewStyle().
			Bold(true),
		Description: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Skeleton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		EmptyState: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		FormLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		FormError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		FormCounter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		FormSubmitted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
	}
}
