// Package bubbletea provides a Bubble Tea program that views markdown
// documents through the mdview renderer.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Document is a markdown file open in the viewer.
type Document struct {
	// Name identifies the document. Links whose destination equals the name
	// of another open document switch to it.
	Name string
	Text string
}

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the final model. The context is used for graceful
// shutdown; when cancelled, the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// openedMsg reports the outcome of opening a link destination.
type openedMsg struct {
	URL string
	Err error
}

// savedMsg reports the outcome of writing a document back.
type savedMsg struct {
	Name string
	Err  error
}
