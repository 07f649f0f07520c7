// Package chroma highlights code blocks using chroma lexers and styles,
// rendered to terminal escape sequences through lipgloss.
package chroma

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdview"
)

// Interface compliance check.
var _ mdview.Highlighter = (*Highlighter)(nil)

type styleKey struct {
	theme string
	token chroma.TokenType
}

// Highlighter implements mdview.Highlighter. Lexers and token styles are
// cached; a Highlighter is safe for concurrent use.
type Highlighter struct {
	mu     sync.RWMutex
	lexers map[string]chroma.Lexer
	styles map[styleKey]lipgloss.Style
}

// NewHighlighter creates a Highlighter with empty caches.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		lexers: make(map[string]chroma.Lexer),
		styles: make(map[styleKey]lipgloss.Style),
	}
}

// Highlight returns one styled string per line of code.
func (h *Highlighter) Highlight(code, lang, theme string) []string {
	code = strings.TrimSuffix(code, "\n")
	plain := strings.Split(code, "\n")

	lexer := h.lexer(lang)
	if lexer == nil {
		return plain
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain
	}
	style := styles.Get(theme)

	out := make([]string, 0, len(plain))
	for _, line := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		var b strings.Builder
		for _, tok := range line {
			value := strings.TrimSuffix(tok.Value, "\n")
			if value == "" {
				continue
			}
			b.WriteString(h.tokenStyle(theme, style, tok.Type).Render(value))
		}
		out = append(out, b.String())
	}
	// Lexers end the input with a newline, which can add an empty line.
	if len(out) > len(plain) {
		out = out[:len(plain)]
	}
	for len(out) < len(plain) {
		out = append(out, plain[len(out)])
	}
	return out
}

func (h *Highlighter) lexer(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	h.mu.RLock()
	lexer, ok := h.lexers[lang]
	h.mu.RUnlock()
	if ok {
		return lexer
	}

	lexer = lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	h.mu.Lock()
	h.lexers[lang] = lexer
	h.mu.Unlock()
	return lexer
}

func (h *Highlighter) tokenStyle(theme string, style *chroma.Style, tokenType chroma.TokenType) lipgloss.Style {
	key := styleKey{theme: theme, token: tokenType}
	h.mu.RLock()
	s, ok := h.styles[key]
	h.mu.RUnlock()
	if ok {
		return s
	}

	s = toLipgloss(style.Get(tokenType))
	h.mu.Lock()
	h.styles[key] = s
	h.mu.Unlock()
	return s
}

func toLipgloss(entry chroma.StyleEntry) lipgloss.Style {
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}
