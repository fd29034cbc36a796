package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	status  lipgloss.Style
	message lipgloss.Style
	cell    lipgloss.Style
	cursor  lipgloss.Style
	winning lipgloss.Style
	grid    lipgloss.Style
	move    lipgloss.Style
	active  lipgloss.Style
	pointer lipgloss.Style
	dim     lipgloss.Style
	pane    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		status:  lipgloss.NewStyle().Bold(true),
		message: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		cell:    lipgloss.NewStyle(),
		cursor:  lipgloss.NewStyle().Reverse(true),
		winning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("209")).Background(lipgloss.Color("252")),
		grid:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		move:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		active:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		pointer: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		pane:    lipgloss.NewStyle().PaddingRight(4),
	}
}
