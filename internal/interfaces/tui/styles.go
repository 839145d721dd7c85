// internal/interfaces/tui/styles.go
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles shared by all pages.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style
	WasPrice  lipgloss.Style
	Selected  lipgloss.Style
	Badge     lipgloss.Style
	OutBadge  lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Help      lipgloss.Style
	InputArea lipgloss.Style
}

// DefaultStyles builds the default dark-terminal palette.
func DefaultStyles() Styles {
	var (
		accent  = lipgloss.Color("#d97706") // burnt orange
		fg      = lipgloss.Color("#e7e5e4")
		muted   = lipgloss.Color("#78716c")
		green   = lipgloss.Color("#22c55e")
		red     = lipgloss.Color("#ef4444")
		surface = lipgloss.Color("#292524")
	)

	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Price:     lipgloss.NewStyle().Foreground(green),
		WasPrice:  lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(fg).Background(surface),
		Badge:     lipgloss.NewStyle().Foreground(green),
		OutBadge:  lipgloss.NewStyle().Foreground(red),
		Error:     lipgloss.NewStyle().Foreground(red),
		Success:   lipgloss.NewStyle().Foreground(green),
		Help:      lipgloss.NewStyle().Foreground(muted),
		InputArea: lipgloss.NewStyle().Foreground(fg),
	}
}
