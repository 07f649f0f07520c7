// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and the lipgloss canvas for layout.
package markdown

import (
	"github.com/fwojciec/mdview"
	"github.com/fwojciec/mdview/chroma"
	"github.com/fwojciec/mdview/goldmark"
	"github.com/fwojciec/mdview/lipgloss"
)

var (
	parser      = goldmark.NewParser()
	highlighter = chroma.NewHighlighter()
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// truncated, never reflowed. Link destinations follow their text.
func Render(source string, width int, theme mdview.Theme, opts ...mdview.Option) string {
	if source == "" {
		return ""
	}
	c := lipgloss.NewCanvas(width,
		lipgloss.WithTheme(theme),
		lipgloss.WithHighlighter(highlighter),
		lipgloss.WithShowURLs(true),
	)
	v := mdview.NewViewer("print", parser, opts...)
	v.Show(c, mdview.NewCache(), source)
	return c.Render()
}
