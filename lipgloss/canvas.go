// Package lipgloss implements the mdview canvas on a terminal cell grid,
// styled with lipgloss.
//
// A Canvas lays out a single frame. Interaction is emulated with a focus
// index over the interactive widgets painted in the frame: the host moves
// focus between frames and arms an activation, and the focused widget
// reports a click in the next frame.
package lipgloss

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/mdview"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Interface compliance check.
var _ mdview.ScrollCanvas = (*Canvas)(nil)

// unbounded is the width of surfaces that never wrap, such as table cells.
const unbounded = 1 << 20

// TargetKind identifies an interactive widget.
type TargetKind int

const (
	TargetCheckbox  TargetKind = iota // Interactive task checkbox.
	TargetLink                        // Hooked link reporting clicks.
	TargetHyperlink                   // Link navigating to its destination.
)

// Target is an interactive widget painted in a frame, in paint order.
type Target struct {
	Kind        TargetKind
	Destination string
	Pos         mdview.Point
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithTheme sets the colors.
func WithTheme(t mdview.Theme) Option {
	return func(c *Canvas) {
		c.theme = t
		c.styles = NewStyles(t)
	}
}

// WithHighlighter sets the code block highlighter.
func WithHighlighter(h mdview.Highlighter) Option {
	return func(c *Canvas) {
		c.highlighter = h
	}
}

// WithHyperlinks emits OSC 8 sequences so terminals make links clickable.
func WithHyperlinks(enabled bool) Option {
	return func(c *Canvas) {
		c.hyperlinks = enabled
	}
}

// WithShowURLs prints hyperlink destinations after their text.
func WithShowURLs(enabled bool) Option {
	return func(c *Canvas) {
		c.showURLs = enabled
	}
}

// WithViewport sets the visible rows. The viewport height is reported as
// the available height.
func WithViewport(r mdview.Rect) Option {
	return func(c *Canvas) {
		c.viewport = r
	}
}

// WithFocus focuses the interactive widget with the given paint index.
// A negative index focuses nothing.
func WithFocus(index int) Option {
	return func(c *Canvas) {
		c.focus = index
	}
}

// WithFocusAt focuses the interactive widget painted at pos. Positions
// stay stable between frames of an unchanged layout, paint indices do not.
func WithFocusAt(pos mdview.Point) Option {
	return func(c *Canvas) {
		c.focusAt = &pos
	}
}

// WithActivate makes the focused widget report a click.
func WithActivate() Option {
	return func(c *Canvas) {
		c.activate = true
	}
}

// WithNavigate sets the callback invoked when an activated hyperlink
// navigates.
func WithNavigate(fn func(destination string)) Option {
	return func(c *Canvas) {
		c.navigate = fn
	}
}

// Canvas is a terminal implementation of mdview.ScrollCanvas.
type Canvas struct {
	theme       mdview.Theme
	styles      Styles
	highlighter mdview.Highlighter
	hyperlinks  bool
	showURLs    bool
	viewport    mdview.Rect
	minHeight   int
	navigate    func(string)

	focus     int
	focusAt   *mdview.Point
	activate  bool
	targets   []Target
	activated *Target

	s     *surface
	grids []*grid
	// framed is set when the last grid drew its own border.
	framed bool
}

// NewCanvas creates a canvas for one frame, width cells wide.
func NewCanvas(width int, opts ...Option) *Canvas {
	theme := mdview.DefaultTheme()
	c := &Canvas{
		theme:  theme,
		styles: NewStyles(theme),
		focus:  -1,
		s:      newSurface(max(width, 1)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Targets returns the interactive widgets painted so far.
func (c *Canvas) Targets() []Target {
	return append([]Target(nil), c.targets...)
}

// Activated returns the widget that reported a click in this frame.
func (c *Canvas) Activated() (Target, bool) {
	if c.activated == nil {
		return Target{}, false
	}
	return *c.activated, true
}

// Lines returns the painted rows, padded to the minimum height.
func (c *Canvas) Lines() []string {
	lines := c.s.lines()
	for len(lines) < c.minHeight {
		lines = append(lines, "")
	}
	return lines
}

// Render returns the frame as newline separated rows.
func (c *Canvas) Render() string {
	return strings.Join(c.Lines(), "\n")
}

// MinHeight returns the height reserved with SetMinHeight.
func (c *Canvas) MinHeight() int { return c.minHeight }

// Label paints text, wrapping at word boundaries.
func (c *Canvas) Label(text mdview.RichText) {
	st := c.textStyle(text)
	c.s.flow(text.Text, st.Render)
}

func (c *Canvas) textStyle(rt mdview.RichText) lipgloss.Style {
	body, _ := c.TextSizes()
	st := lipgloss.NewStyle()
	if rt.Color != nil {
		st = st.Foreground(rgbColor(*rt.Color))
	}
	switch {
	case rt.Heading:
		st = st.Inherit(c.styles.Heading)
	case rt.Size > body:
		st = st.Inherit(c.styles.Accent)
	}
	if rt.Weak {
		st = st.Inherit(c.styles.Muted)
	}
	if rt.Code {
		st = st.Inherit(c.styles.Code)
	}
	if rt.Small || rt.Raised {
		st = st.Faint(true)
	}
	if rt.Strong {
		st = st.Bold(true)
	}
	if rt.Italic {
		st = st.Italic(true)
	}
	if rt.Strikethrough {
		st = st.Strikethrough(true)
	}
	return st
}

// Newline ends the current row. Inside a quote that has no content yet it
// does nothing.
func (c *Canvas) Newline() {
	if c.s.fresh {
		return
	}
	c.s.wrapRow()
}

// Separator paints a rule to the right edge.
func (c *Canvas) Separator() {
	w := max(c.s.width-c.s.pos.X, 1)
	c.s.put(c.styles.Rule.Render(strings.Repeat("─", w)), w)
}

// Space paints blank cells.
func (c *Canvas) Space(amount int) {
	if amount > 0 {
		c.s.put(strings.Repeat(" ", amount), amount)
	}
}

// Bullet paints a list bullet.
func (c *Canvas) Bullet(hollow bool) {
	glyph := "•"
	if hollow {
		glyph = "◦"
	}
	c.s.put(glyph, runewidth.StringWidth(glyph))
}

// Number paints an ordered list marker.
func (c *Canvas) Number(text string) {
	c.s.put(text, runewidth.StringWidth(text))
}

// HorizontalWrapped opens a region whose wrapped rows start at the current
// column.
func (c *Canvas) HorizontalWrapped(add func()) {
	c.s.push(region{left: c.s.pos.X})
	add()
	c.s.pop()
}

// Horizontal opens a region that never wraps. Inside a grid it becomes the
// next cell of the current row.
func (c *Canvas) Horizontal(add func()) {
	if g := c.grid(); g != nil && !g.inCell {
		g.inCell = true
		lines := c.capture(unbounded, add)
		g.inCell = false
		g.row = append(g.row, strings.TrimRight(strings.Join(lines, "\n"), " "))
		return
	}
	c.s.push(region{left: c.s.pos.X, nowrap: true})
	add()
	c.s.pop()
}

// Frame draws a rounded border around its content. A grid drawn inside
// brings its own border.
func (c *Canvas) Frame(add func()) {
	c.framed = false
	lines := c.capture(max(c.s.width-c.s.left()-2, 1), add)
	if !c.framed {
		lines = strings.Split(c.styles.Frame.Render(strings.Join(lines, "\n")), "\n")
	}
	c.framed = false
	c.s.block(lines)
}

type grid struct {
	rows   [][]string
	row    []string
	inCell bool
}

func (c *Canvas) grid() *grid {
	if len(c.grids) == 0 {
		return nil
	}
	return c.grids[len(c.grids)-1]
}

// Grid collects Horizontal regions into cells and paints them as a table.
// The first row is the header.
func (c *Canvas) Grid(_ string, add func()) {
	g := &grid{}
	c.grids = append(c.grids, g)
	add()
	c.grids = c.grids[:len(c.grids)-1]
	if len(g.row) > 0 {
		g.rows = append(g.rows, g.row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(c.styles.Rule).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			return lipgloss.NewStyle()
		})
	if len(g.rows) > 0 {
		t = t.Headers(g.rows[0]...).Rows(g.rows[1:]...)
	}
	c.s.block(strings.Split(t.Render(), "\n"))
	c.framed = true
}

// EndRow finishes a grid row, or the current row outside a grid.
func (c *Canvas) EndRow() {
	if g := c.grid(); g != nil {
		g.rows = append(g.rows, g.row)
		g.row = nil
		return
	}
	c.s.wrapRow()
}

// Blockquote paints a bar left of its content. Content starts on a fresh
// row and leading newlines are dropped.
func (c *Canvas) Blockquote(accent *mdview.Color, add func()) {
	s := c.s
	if s.pos.X > s.left() {
		s.wrapRow()
	}
	bar := c.styles.Quote
	if accent != nil {
		bar = lipgloss.NewStyle().Foreground(rgbColor(*accent))
	}
	col := s.pos.X
	s.push(region{left: col + 2, barCol: col, bar: &bar})
	s.pos.X = col + 2
	s.fresh = true
	add()
	s.fresh = false
	s.pop()
}

// target registers an interactive widget and reports whether it has focus
// and whether it was clicked.
func (c *Canvas) target(kind TargetKind, destination string) (focused, clicked bool) {
	i := len(c.targets)
	pos := c.s.pos
	c.targets = append(c.targets, Target{Kind: kind, Destination: destination, Pos: pos})
	focused = i == c.focus || (c.focusAt != nil && *c.focusAt == pos)
	clicked = focused && c.activate
	if clicked {
		c.activate = false
		c.activated = &c.targets[i]
	}
	return focused, clicked
}

// Checkbox paints [x] or [ ].
func (c *Canvas) Checkbox(checked, interactive bool) bool {
	glyph := "[ ]"
	if checked {
		glyph = "[x]"
	}
	st := c.styles.Code
	clicked := false
	if interactive {
		var focused bool
		focused, clicked = c.target(TargetCheckbox, "")
		if focused {
			st = c.styles.Focus
		}
	}
	c.s.put(st.Render(glyph), 3)
	return clicked
}

// Link paints text that reports clicks.
func (c *Canvas) Link(text []mdview.RichText) bool {
	focused, clicked := c.target(TargetLink, "")
	c.linkText(text, focused, nil)
	return clicked
}

// Hyperlink paints text that navigates to destination when activated.
func (c *Canvas) Hyperlink(text []mdview.RichText, destination string) {
	focused, clicked := c.target(TargetHyperlink, destination)
	var wrap func(string) string
	if c.hyperlinks {
		wrap = func(s string) string { return termenv.Hyperlink(destination, s) }
	}
	c.linkText(text, focused, wrap)
	if c.showURLs && destination != "" {
		c.s.flow(" ("+destination+")", c.styles.Muted.Render)
	}
	if clicked && c.navigate != nil {
		c.navigate(destination)
	}
}

func (c *Canvas) linkText(text []mdview.RichText, focused bool, wrap func(string) string) {
	for _, rt := range text {
		st := c.textStyle(rt).Inherit(c.styles.Link)
		if focused {
			st = st.Inherit(c.styles.Focus).Reverse(true)
		}
		render := st.Render
		if wrap != nil {
			render = func(s string) string { return wrap(st.Render(s)) }
		}
		c.s.flow(rt.Text, render)
	}
}

// Image paints a placeholder; terminals here cannot show images.
func (c *Canvas) Image(uri string, _ int, alt []mdview.RichText) mdview.ImageState {
	var b strings.Builder
	for _, rt := range alt {
		b.WriteString(rt.Text)
	}
	label := b.String()
	if label == "" {
		label = path.Base(uri)
	}
	c.s.flow("[image: "+label+"]", c.styles.Muted.Render)
	return mdview.ImageFailed
}

// CodeBlock paints highlighted code behind a gutter, one row per line.
// Lines longer than width are truncated.
func (c *Canvas) CodeBlock(lang, code string, width int, theme mdview.SyntaxTheme) {
	var lines []string
	if c.highlighter != nil {
		lines = c.highlighter.Highlight(code, lang, c.theme.SyntaxThemeName(theme))
	} else {
		lines = strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	}

	avail := max(min(width, c.s.width-c.s.left())-2, 1)
	out := make([]string, 0, len(lines)+1)
	if lang != "" {
		out = append(out, c.styles.Muted.Render(lang))
	}
	gutter := c.styles.Code.Render("│") + " "
	for _, l := range lines {
		out = append(out, gutter+ansi.Truncate(l, avail, "…"))
	}
	c.s.block(out)
}

// FootnoteReference paints a bracketed label.
func (c *Canvas) FootnoteReference(label string) {
	text := "[" + label + "]"
	c.s.put(c.styles.Muted.Render(text), runewidth.StringWidth(text))
}

// FootnoteDefinition paints the label that starts a footnote.
func (c *Canvas) FootnoteDefinition(label string) {
	text := label + ". "
	c.s.put(c.styles.Muted.Render(text), runewidth.StringWidth(text))
}

// Cursor returns the cell the next widget is painted at.
func (c *Canvas) Cursor() mdview.Point { return c.s.pos }

// AvailableSize returns the width of the current region and the viewport
// height.
func (c *Canvas) AvailableSize() mdview.Size {
	return mdview.Size{W: c.s.width - c.s.left(), H: c.viewport.Size().H}
}

// Allocate skips size.H rows and size.W cells.
func (c *Canvas) Allocate(size mdview.Size) {
	s := c.s
	if size.H > 0 {
		s.pos = mdview.Point{X: s.left(), Y: s.pos.Y + size.H}
		s.row(s.pos.Y)
	}
	s.pos.X += size.W
}

// TextSizes reports unit sizes: anything larger than the body is a heading.
func (c *Canvas) TextSizes() (body, heading float32) {
	return 1, 2
}

// Viewport returns the visible rows.
func (c *Canvas) Viewport() mdview.Rect { return c.viewport }

// SetMinHeight pads the frame to at least h rows.
func (c *Canvas) SetMinHeight(h int) { c.minHeight = h }

// capture runs add against a fresh surface and returns its rows.
func (c *Canvas) capture(width int, add func()) []string {
	saved := c.s
	c.s = newSurface(width)
	add()
	lines := c.s.lines()
	c.s = saved
	return lines
}
