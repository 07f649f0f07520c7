package mdview

// Span is a byte range [Start, End) into the source text an event came from.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Event is a sealed interface representing one parser event.
// Events are owned by the Parser and only borrowed by the renderer.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// Spanned pairs an event with the source span it was produced from.
type Spanned struct {
	Event Event
	Span  Span
}

// EventStart opens a block or inline container.
type EventStart struct {
	Tag Tag
}

func (EventStart) event() {}

// EventEnd closes the container opened by the matching EventStart.
type EventEnd struct {
	Tag TagKind
}

func (EventEnd) event() {}

// EventText is a run of literal text.
type EventText struct {
	Text string
}

func (EventText) event() {}

// EventCode is an inline code span.
type EventCode struct {
	Text string
}

func (EventCode) event() {}

// EventHTML is raw block HTML. The renderer ignores it.
type EventHTML struct {
	Text string
}

func (EventHTML) event() {}

// EventInlineHTML is raw inline HTML. The renderer ignores it.
type EventInlineHTML struct {
	Text string
}

func (EventInlineHTML) event() {}

// EventFootnoteReference is a reference like [^1] inside running text.
type EventFootnoteReference struct {
	Label string
}

func (EventFootnoteReference) event() {}

// EventSoftBreak is a line ending inside a paragraph.
type EventSoftBreak struct{}

func (EventSoftBreak) event() {}

// EventHardBreak is a forced line break.
type EventHardBreak struct{}

func (EventHardBreak) event() {}

// EventRule is a thematic break.
type EventRule struct{}

func (EventRule) event() {}

// EventTaskListMarker is the [ ] or [x] marker at the start of a task item.
// Its span covers exactly the three marker bytes.
type EventTaskListMarker struct {
	Checked bool
}

func (EventTaskListMarker) event() {}

// Interface compliance checks.
var (
	_ Event = EventStart{}
	_ Event = EventEnd{}
	_ Event = EventText{}
	_ Event = EventCode{}
	_ Event = EventHTML{}
	_ Event = EventInlineHTML{}
	_ Event = EventFootnoteReference{}
	_ Event = EventSoftBreak{}
	_ Event = EventHardBreak{}
	_ Event = EventRule{}
	_ Event = EventTaskListMarker{}
)

// Parser turns markdown text into an ordered, index-addressable event
// sequence. Start and End events must be well nested; the renderer trusts
// this and does not validate it.
type Parser interface {
	Parse(text string) []Spanned
}
