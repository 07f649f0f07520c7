package bubbletea_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdview"
	bt "github.com/fwojciec/mdview/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to render the first
// frame.
func initModel(t *testing.T, docs []bt.Document, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(docs, mdview.DefaultTheme(), opts...)
	return updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

// updateModel sends a message, runs the resulting commands and returns the
// updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return drain(t, model, cmd)
}

// drain runs cmd and feeds its messages back into the model. Quit is not
// fed back.
func drain(t *testing.T, m bt.Model, cmd tea.Cmd) bt.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	default:
		return updateModel(t, m, msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func docs(pairs ...string) []bt.Document {
	var out []bt.Document
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, bt.Document{Name: pairs[i], Text: pairs[i+1]})
	}
	return out
}
