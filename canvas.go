package mdview

// Point is a position in canvas units. The terminal host uses cells.
type Point struct {
	X int
	Y int
}

// Size is an extent in canvas units.
type Size struct {
	W int
	H int
}

// Rect is an axis-aligned rectangle with Min inclusive and Max exclusive.
type Rect struct {
	Min Point
	Max Point
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{W: r.Max.X - r.Min.X, H: r.Max.Y - r.Min.Y}
}

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

// RichText is a run of text with the styling the renderer resolved for it.
type RichText struct {
	Text string
	// Size is the font size; zero means body size.
	Size          float32
	Heading       bool
	Strong        bool
	Italic        bool
	Strikethrough bool
	Weak          bool
	Code          bool
	Raised        bool
	Small         bool
	Color         *Color
}

// SyntaxTheme names the highlighting themes for light and dark hosts.
type SyntaxTheme struct {
	Light string
	Dark  string
}

// ImageState reports whether an image resource could be painted yet.
type ImageState int

const (
	ImagePending ImageState = iota // Space reserved, bytes not loaded.
	ImageReady                     // Image painted.
	ImageFailed                    // Loader gave up; alt text may be shown.
)

// Canvas is the immediate-mode host the renderer paints into. Every call
// appends to the current frame at the current cursor; nothing is retained
// between frames. Region methods run add to populate the region and close it
// when add returns.
type Canvas interface {
	// Label paints a run of styled text in the current flow.
	Label(text RichText)
	// Newline ends the current row.
	Newline()
	// Separator paints a horizontal rule across the available width.
	Separator()
	// Space adds a horizontal gap.
	Space(amount int)
	// Bullet paints a filled or hollow bullet glyph.
	Bullet(hollow bool)
	// Number paints an ordered list marker such as "1.".
	Number(text string)

	// HorizontalWrapped opens a flow region whose wrapped rows continue at
	// the column the region started at.
	HorizontalWrapped(add func())
	// Horizontal opens a single-row flow region.
	Horizontal(add func())
	// Frame draws a group frame around its content.
	Frame(add func())
	// Grid opens a grid; every Horizontal region inside it becomes a cell.
	Grid(id string, add func())
	// EndRow finishes the current grid row.
	EndRow()
	// Blockquote indents its content behind an accent bar. A nil accent
	// means the host's weak text color. Content starts on a fresh row and
	// line breaks issued before any content are collapsed.
	Blockquote(accent *Color, add func())

	// Checkbox paints a checkbox and reports whether it was clicked this
	// frame. Non-interactive checkboxes never report clicks.
	Checkbox(checked, interactive bool) bool
	// Link paints clickable text and reports whether it was clicked.
	Link(text []RichText) bool
	// Hyperlink paints text that navigates to destination when activated.
	Hyperlink(text []RichText, destination string)
	// Image paints the image at uri no wider than maxWidth. alt is shown on
	// hover when non-empty.
	Image(uri string, maxWidth int, alt []RichText) ImageState
	// CodeBlock paints a highlighted code box using the theme matching the
	// host's light or dark mode.
	CodeBlock(lang, code string, width int, theme SyntaxTheme)
	// FootnoteReference paints a raised footnote label.
	FootnoteReference(label string)
	// FootnoteDefinition paints a footnote margin note.
	FootnoteDefinition(label string)

	// Cursor returns the position the next widget will be placed at.
	Cursor() Point
	// AvailableSize returns the space left in the current region.
	AvailableSize() Size
	// Allocate reserves blank space.
	Allocate(size Size)
	// TextSizes returns the body and heading font sizes.
	TextSizes() (body, heading float32)
}

// ScrollCanvas is a Canvas hosted inside a vertical scroll area.
type ScrollCanvas interface {
	Canvas
	// Viewport returns the visible rectangle in content coordinates.
	Viewport() Rect
	// SetMinHeight reserves the full content height so scroll offsets stay
	// stable while only part of the document is painted.
	SetMinHeight(h int)
}

// Highlighter colors source code for a terminal. The result holds one
// styled string per line of code, without line terminators. Unknown
// languages or themes fall back to plain lines.
type Highlighter interface {
	Highlight(code, lang, theme string) []string
}
