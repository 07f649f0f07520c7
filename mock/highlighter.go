package mock

import (
	"strings"

	"github.com/fwojciec/mdview"
)

var _ mdview.Highlighter = (*Highlighter)(nil)

// Highlighter is a test double for mdview.Highlighter. Without HighlightFn
// it returns the code split into lines.
type Highlighter struct {
	HighlightFn func(code, lang, theme string) []string
}

func (h *Highlighter) Highlight(code, lang, theme string) []string {
	if h.HighlightFn != nil {
		return h.HighlightFn(code, lang, theme)
	}
	return strings.Split(strings.TrimSuffix(code, "\n"), "\n")
}
