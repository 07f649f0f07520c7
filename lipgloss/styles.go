package lipgloss

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdview"
)

// Styles maps a Theme to lipgloss styles for terminal rendering.
type Styles struct {
	Heading lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Link    lipgloss.Style
	Code    lipgloss.Style
	Quote   lipgloss.Style
	Focus   lipgloss.Style
	Rule    lipgloss.Style
	Header  lipgloss.Style
	Frame   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t mdview.Theme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).Underline(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Link:    lipgloss.NewStyle().Foreground(ansiColor(t.Link)).Underline(true),
		Code:    lipgloss.NewStyle().Foreground(ansiColor(t.Code)),
		Quote:   lipgloss.NewStyle().Foreground(ansiColor(t.Quote)),
		Focus:   lipgloss.NewStyle().Foreground(ansiColor(t.Focus)).Reverse(true),
		Rule:    lipgloss.NewStyle().Foreground(ansiColor(t.Rule)),
		Header:  lipgloss.NewStyle().Bold(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Rule)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func rgbColor(c mdview.Color) lipgloss.TerminalColor {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
