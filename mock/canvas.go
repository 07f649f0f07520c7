package mock

import (
	"strings"

	"github.com/fwojciec/mdview"
	"github.com/rivo/uniseg"
)

// Interface compliance checks.
var (
	_ mdview.Canvas       = (*Canvas)(nil)
	_ mdview.ScrollCanvas = (*Canvas)(nil)
)

// Op is one recorded canvas call. Region methods record a Begin op before
// running their content and an End op after it.
type Op struct {
	Name        string
	Text        mdview.RichText
	Texts       []mdview.RichText
	Label       string
	Hollow      bool
	Checked     bool
	Interactive bool
	Accent      *mdview.Color
	Lang        string
	Code        string
	Width       int
	Theme       mdview.SyntaxTheme
	Size        mdview.Size
}

// Canvas is a test double for mdview.Canvas and mdview.ScrollCanvas. It
// records every call and tracks a cell cursor: labels advance the column by
// their display width and newlines move to the next row. Interactive calls
// delegate to the Fn fields when set and report no interaction otherwise.
type Canvas struct {
	Ops []Op

	CheckboxFn func(checked, interactive bool) bool
	LinkFn     func(text []mdview.RichText) bool
	ImageFn    func(uri string, maxWidth int) mdview.ImageState

	// Width is the available width; zero means 80.
	Width int
	// View is returned by Viewport.
	View mdview.Rect
	// MinHeight is the last value passed to SetMinHeight.
	MinHeight int

	Body, Heading float32

	pos mdview.Point
	// fresh is set inside a blockquote until it receives content.
	fresh bool
}

func (c *Canvas) record(op Op) {
	c.Ops = append(c.Ops, op)
}

func (c *Canvas) advance(n int) {
	c.pos.X += n
	if n > 0 {
		c.fresh = false
	}
}

// Label records a text run.
func (c *Canvas) Label(text mdview.RichText) {
	c.record(Op{Name: "Label", Text: text})
	c.advance(uniseg.StringWidth(text.Text))
}

// Newline records a row break.
func (c *Canvas) Newline() {
	if c.fresh {
		return
	}
	c.record(Op{Name: "Newline"})
	c.pos = mdview.Point{X: 0, Y: c.pos.Y + 1}
}

// Separator records a horizontal rule.
func (c *Canvas) Separator() {
	c.record(Op{Name: "Separator"})
	c.advance(1)
}

// Space records a gap.
func (c *Canvas) Space(amount int) {
	c.record(Op{Name: "Space", Width: amount})
	c.advance(amount)
}

// Bullet records a list bullet.
func (c *Canvas) Bullet(hollow bool) {
	c.record(Op{Name: "Bullet", Hollow: hollow})
	c.advance(1)
}

// Number records an ordered list marker.
func (c *Canvas) Number(text string) {
	c.record(Op{Name: "Number", Label: text})
	c.advance(len(text))
}

func (c *Canvas) region(name string, add func()) {
	c.record(Op{Name: "Begin" + name})
	add()
	c.record(Op{Name: "End" + name})
}

// HorizontalWrapped records a wrapped flow region.
func (c *Canvas) HorizontalWrapped(add func()) { c.region("Wrapped", add) }

// Horizontal records a single-row region.
func (c *Canvas) Horizontal(add func()) { c.region("Horizontal", add) }

// Frame records a frame.
func (c *Canvas) Frame(add func()) { c.region("Frame", add) }

// Grid records a grid.
func (c *Canvas) Grid(id string, add func()) {
	c.record(Op{Name: "BeginGrid", Label: id})
	add()
	c.record(Op{Name: "EndGrid", Label: id})
}

// EndRow records the end of a grid row and moves to the next row.
func (c *Canvas) EndRow() {
	c.record(Op{Name: "EndRow"})
	c.pos = mdview.Point{X: 0, Y: c.pos.Y + 1}
}

// Blockquote records a quote region. It starts on a fresh row and drops
// newlines issued before the first content.
func (c *Canvas) Blockquote(accent *mdview.Color, add func()) {
	if c.pos.X > 0 {
		c.pos = mdview.Point{X: 0, Y: c.pos.Y + 1}
	}
	c.record(Op{Name: "BeginBlockquote", Accent: accent})
	c.fresh = true
	add()
	c.fresh = false
	c.record(Op{Name: "EndBlockquote", Accent: accent})
}

// Checkbox records a checkbox and delegates to CheckboxFn.
func (c *Canvas) Checkbox(checked, interactive bool) bool {
	c.record(Op{Name: "Checkbox", Checked: checked, Interactive: interactive})
	c.advance(3)
	if c.CheckboxFn != nil {
		return c.CheckboxFn(checked, interactive)
	}
	return false
}

// Link records a hooked link and delegates to LinkFn.
func (c *Canvas) Link(text []mdview.RichText) bool {
	c.record(Op{Name: "Link", Texts: text})
	c.advance(width(text))
	if c.LinkFn != nil {
		return c.LinkFn(text)
	}
	return false
}

// Hyperlink records a navigating link.
func (c *Canvas) Hyperlink(text []mdview.RichText, destination string) {
	c.record(Op{Name: "Hyperlink", Texts: text, Label: destination})
	c.advance(width(text))
}

// Image records an image and delegates to ImageFn. It reports ImagePending
// when ImageFn is unset.
func (c *Canvas) Image(uri string, maxWidth int, alt []mdview.RichText) mdview.ImageState {
	c.record(Op{Name: "Image", Label: uri, Width: maxWidth, Texts: alt})
	c.advance(1)
	if c.ImageFn != nil {
		return c.ImageFn(uri, maxWidth)
	}
	return mdview.ImagePending
}

// CodeBlock records a code block. Each line of code takes one row.
func (c *Canvas) CodeBlock(lang, code string, width int, theme mdview.SyntaxTheme) {
	c.record(Op{Name: "CodeBlock", Lang: lang, Code: code, Width: width, Theme: theme})
	if c.pos.X > 0 {
		c.pos.Y++
	}
	c.pos = mdview.Point{X: 1, Y: c.pos.Y + strings.Count(strings.TrimSuffix(code, "\n"), "\n")}
	c.fresh = false
}

// FootnoteReference records a footnote reference.
func (c *Canvas) FootnoteReference(label string) {
	c.record(Op{Name: "FootnoteReference", Label: label})
	c.advance(len(label))
}

// FootnoteDefinition records a footnote label.
func (c *Canvas) FootnoteDefinition(label string) {
	c.record(Op{Name: "FootnoteDefinition", Label: label})
	c.advance(len(label) + 1)
}

// Cursor returns the tracked cursor.
func (c *Canvas) Cursor() mdview.Point { return c.pos }

// AvailableSize returns Width columns left of the cursor and unbounded rows.
func (c *Canvas) AvailableSize() mdview.Size {
	w := c.Width
	if w == 0 {
		w = 80
	}
	return mdview.Size{W: w, H: 1 << 20}
}

// Allocate records a reservation and moves the cursor past it.
func (c *Canvas) Allocate(size mdview.Size) {
	c.record(Op{Name: "Allocate", Size: size})
	c.pos = mdview.Point{X: c.pos.X + size.W, Y: c.pos.Y + size.H}
}

// TextSizes returns Body and Heading, defaulting to 14 and 28.
func (c *Canvas) TextSizes() (body, heading float32) {
	body, heading = c.Body, c.Heading
	if body == 0 {
		body = 14
	}
	if heading == 0 {
		heading = 28
	}
	return body, heading
}

// Viewport returns View.
func (c *Canvas) Viewport() mdview.Rect { return c.View }

// SetMinHeight records h.
func (c *Canvas) SetMinHeight(h int) { c.MinHeight = h }

// Reset forgets recorded ops and moves the cursor home.
func (c *Canvas) Reset() {
	c.Ops = nil
	c.pos = mdview.Point{}
	c.fresh = false
}

// Names returns the names of the recorded ops.
func (c *Canvas) Names() []string {
	names := make([]string, len(c.Ops))
	for i, op := range c.Ops {
		names[i] = op.Name
	}
	return names
}

// Find returns the recorded ops named name.
func (c *Canvas) Find(name string) []Op {
	var ops []Op
	for _, op := range c.Ops {
		if op.Name == name {
			ops = append(ops, op)
		}
	}
	return ops
}

// Text returns the visible text of the recorded ops with rows separated by
// newlines.
func (c *Canvas) Text() string {
	var b strings.Builder
	for _, op := range c.Ops {
		switch op.Name {
		case "Label":
			b.WriteString(op.Text.Text)
		case "Link", "Hyperlink":
			for _, t := range op.Texts {
				b.WriteString(t.Text)
			}
		case "Number":
			b.WriteString(op.Label)
		case "Bullet":
			if op.Hollow {
				b.WriteString("◦")
			} else {
				b.WriteString("•")
			}
		case "Space":
			b.WriteString(strings.Repeat(" ", op.Width))
		case "Newline", "EndRow":
			b.WriteString("\n")
		case "Checkbox":
			if op.Checked {
				b.WriteString("[x]")
			} else {
				b.WriteString("[ ]")
			}
		}
	}
	return b.String()
}

func width(text []mdview.RichText) int {
	n := 0
	for _, t := range text {
		n += uniseg.StringWidth(t.Text)
	}
	return n
}

// Parser is a test double for mdview.Parser.
type Parser struct {
	ParseFn func(text string) []mdview.Spanned
}

// Interface compliance check.
var _ mdview.Parser = (*Parser)(nil)

// Parse delegates to ParseFn.
func (p *Parser) Parse(text string) []mdview.Spanned {
	return p.ParseFn(text)
}
