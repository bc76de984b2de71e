package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// consoleStyles holds the styles of one output; colors are dropped when the
// output is not a terminal.
type consoleStyles struct {
	time    lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	skipped lipgloss.Style
	failure lipgloss.Style
	detail  lipgloss.Style
}

func newConsoleStyles(w io.Writer) consoleStyles {
	r := lipgloss.NewRenderer(w)

	return consoleStyles{
		time:    r.NewStyle().Faint(true),
		info:    r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		skipped: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		detail:  r.NewStyle().Faint(true),
	}
}
