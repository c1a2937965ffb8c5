// internal/tui/styles.go
//
// Onboard – terminal front-end styles.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#6b7280")
	colorButton  = lipgloss.Color("#101F38")
	colorDimText = lipgloss.Color("#9ca3af")
)

// Styles groups every lipgloss style the form view uses.
type Styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	FocusedLabel   lipgloss.Style
	Error          lipgloss.Style
	Button         lipgloss.Style
	FocusedButton  lipgloss.Style
	DisabledButton lipgloss.Style
	Response       lipgloss.Style
	Section        lipgloss.Style
	Help           lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label:        lipgloss.NewStyle().Width(10),
		FocusedLabel: lipgloss.NewStyle().Width(10).Bold(true).Foreground(colorAccent),
		Error:        lipgloss.NewStyle().Foreground(colorError).PaddingLeft(10),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#f2f2f2")).
			Background(colorButton),
		FocusedButton: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(colorButton).
			Background(colorAccent),
		DisabledButton: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorDimText).
			Strikethrough(true),
		Response: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Section: lipgloss.NewStyle().Bold(true).MarginTop(1),
		Help:    lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
