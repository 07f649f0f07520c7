package mdview

import (
	"strconv"
	"strings"
)

// target is the single open accumulation target for inline text. A nil
// target means text is painted directly.
type target interface {
	isTarget()
}

type linkTarget struct {
	destination string
	text        []RichText
}

type imageTarget struct {
	uri string
	alt []RichText
	// parent is the target that was open when the image started, usually a
	// link wrapping the image.
	parent target
}

type codeTarget struct {
	lang    string
	content strings.Builder
}

func (*linkTarget) isTarget()  {}
func (*imageTarget) isTarget() {}
func (*codeTarget) isTarget()  {}

// defListState tracks definition list substates.
type defListState struct {
	firstItem         bool
	pendingDefinition bool
}

// renderer is the state of one render pass.
type renderer struct {
	c        Canvas
	cache    *Cache
	opts     Options
	viewerID string
	maxWidth int
	body     float32
	heading  float32

	style  Style
	list   List
	line   Newline
	active target

	// One-shot flags set by a Start event and consumed by the hook that runs
	// right after it.
	pendingListItem   bool
	pendingTable      bool
	pendingBlockQuote bool
	defList           defListState

	currTable      int
	checkboxEvents []CheckboxClickEvent

	// docStart is set until the first event of the document was processed.
	docStart bool
}

func newRenderer(c Canvas, cache *Cache, opts Options, viewerID string, docStart bool) *renderer {
	body, heading := c.TextSizes()
	return &renderer{
		c:        c,
		cache:    cache,
		opts:     opts,
		viewerID: viewerID,
		maxWidth: opts.maxWidth(c.AvailableSize().W),
		body:     body,
		heading:  heading,
		style:    NewStyle(),
		line:     NewNewline(),
		docStart: docStart,
	}
}

// run processes every event of cur. record, when set, is called for the
// events that may serve as split points: End events met while a list is
// open, and the event closing a top-level block.
func (r *renderer) run(cur *cursor, record func(SplitPoint)) {
	depth := 0
	for {
		from := cur.pos
		_, ev, ok := cur.next()
		if !ok {
			return
		}
		start := r.c.Cursor()
		_, isEnd := ev.Event.(EventEnd)
		inList := isEnd && r.list.InsideList()

		if cur.atDocumentEnd() {
			r.line.EndForced = false
		}

		r.processEvent(cur, ev)

		if r.docStart {
			// A list opened by the first event keeps its own policy until
			// it closes.
			if !r.list.InsideList() {
				r.line.Start = true
			}
			r.docStart = false
		}

		// Hooks may have drained a whole construct after ev.
		consumed := cur.events[from:cur.pos]
		depth += nesting(consumed)
		_, closed := consumed[len(consumed)-1].Event.(EventEnd)
		if record != nil && (inList || (depth == 0 && closed)) {
			record(SplitPoint{
				Index:  cur.base + cur.pos - 1,
				Start:  start,
				End:    r.c.Cursor(),
				Resume: r.snapshot(),
			})
		}
	}
}

// snapshot returns the state a windowed pass needs to resume after the
// current event.
func (r *renderer) snapshot() ResumeState {
	return ResumeState{
		Levels: r.list.Levels(),
		Begun:  r.list.begun,
		Line:   r.line,
		Tables: r.currTable,
	}
}

// resume moves the cursor to where sp left it and restores the state
// recorded there. origin is the cursor position the pass started at.
func (r *renderer) resume(sp *SplitPoint, origin Point) {
	r.c.Allocate(Size{
		W: max(sp.End.X-origin.X, 0),
		H: max(sp.End.Y-origin.Y, 0),
	})
	s := sp.Resume
	r.list.restore(s.Levels, s.Begun)
	r.line = s.Line
	r.currTable = s.Tables
}

// nesting returns the change of container depth over events.
func nesting(events []Spanned) int {
	d := 0
	for _, ev := range events {
		switch ev.Event.(type) {
		case EventStart:
			d++
		case EventEnd:
			d--
		}
	}
	return d
}

// drain processes the rest of cur.
func (r *renderer) drain(cur *cursor) {
	for {
		_, ev, ok := cur.next()
		if !ok {
			return
		}
		r.processEvent(cur, ev)
	}
}

// processEvent dispatches one event and then runs the nested-construct hooks.
// Hook order matters: each one drains its own range from cur before the next
// one looks at its flag.
func (r *renderer) processEvent(cur *cursor, ev Spanned) {
	r.event(ev)
	r.defListDefinitionWrapping(cur)
	r.listItemWrapping(cur)
	r.table(cur)
	r.blockquote(cur)
}

func (r *renderer) event(ev Spanned) {
	switch e := ev.Event.(type) {
	case EventStart:
		r.startTag(e.Tag)
	case EventEnd:
		r.endTag(e.Tag)
	case EventText:
		r.eventText(e.Text)
	case EventCode:
		r.style.Code = true
		r.eventText(e.Text)
		r.style.Code = false
	case EventHTML, EventInlineHTML:
	case EventFootnoteReference:
		r.c.FootnoteReference(e.Label)
	case EventSoftBreak:
		r.eventText(" ")
	case EventHardBreak:
		r.c.Newline()
	case EventRule:
		r.line.TryInsertStart(r.c)
		r.c.Separator()
		if r.line.CanInsertEnd() {
			r.c.Newline()
		}
	case EventTaskListMarker:
		if r.opts.Mutable {
			if r.c.Checkbox(e.Checked, true) {
				r.checkboxEvents = append(r.checkboxEvents, CheckboxClickEvent{
					Checked: !e.Checked,
					Span:    ev.Span,
				})
			}
		} else {
			r.c.Checkbox(e.Checked, false)
		}
	}
}

// eventText routes text to the open target, or paints it.
func (r *renderer) eventText(text string) {
	rt := r.style.RichText(text, r.body, r.heading)
	switch t := r.active.(type) {
	case *imageTarget:
		t.alt = append(t.alt, rt)
	case *codeTarget:
		t.content.WriteString(text)
	case *linkTarget:
		t.text = append(t.text, rt)
	default:
		r.c.Label(rt)
	}
}

func (r *renderer) startTag(tag Tag) {
	switch tag.Kind {
	case TagParagraph:
		r.line.TryInsertStart(r.c)
	case TagHeading:
		// Headings always start on a fresh row.
		if !r.docStart {
			r.c.Newline()
		}
		r.style.Heading = max(tag.Level-1, 0)
	case TagBlockQuote:
		r.pendingBlockQuote = true
	case TagCodeBlock:
		cb := &codeTarget{}
		if tag.Fenced {
			cb.lang = tag.Lang
		}
		r.active = cb
		r.line.TryInsertStart(r.c)
	case TagList:
		if !r.list.InsideList() && r.line.CanInsertStart() {
			r.c.Newline()
		}
		r.list.StartLevel(tag.Ordered, tag.Start)
		r.line.Start, r.line.End = false, false
	case TagItem:
		r.pendingListItem = true
		r.list.StartItem(r.c, r.opts.IndentationSpaces)
	case TagFootnoteDefinition:
		r.line.TryInsertStart(r.c)
		r.line.Start, r.line.End = false, false
		r.c.FootnoteDefinition(tag.Label)
	case TagTable:
		r.pendingTable = true
	case TagEmphasis:
		r.style.Emphasis = true
	case TagStrong:
		r.style.Strong = true
	case TagStrikethrough:
		r.style.Strikethrough = true
	case TagLink:
		r.active = &linkTarget{destination: tag.URL}
	case TagImage:
		r.active = &imageTarget{uri: r.opts.imageURI(tag.URL), parent: r.active}
	case TagDefinitionList:
		r.line.TryInsertStart(r.c)
		r.defList.firstItem = true
	case TagDefinitionListTitle:
		// The list start already broke the line for the first title.
		if r.defList.firstItem {
			r.defList.firstItem = false
		} else {
			r.line.TryInsertStart(r.c)
		}
	case TagDefinitionListDefinition:
		r.defList.pendingDefinition = true
	}
}

func (r *renderer) endTag(kind TagKind) {
	switch kind {
	case TagParagraph:
		r.line.TryInsertEnd(r.c)
	case TagHeading:
		r.line.TryInsertEnd(r.c)
		r.style.Heading = -1
	case TagCodeBlock:
		if cb, ok := r.active.(*codeTarget); ok {
			r.active = nil
			r.c.CodeBlock(cb.lang, cb.content.String(), r.maxWidth, r.opts.SyntaxTheme)
		}
		r.line.TryInsertEnd(r.c)
	case TagList:
		r.list.EndLevel(r.c, r.line.EndForced)
		if !r.list.InsideList() {
			r.line.Start, r.line.End = true, true
		}
	case TagFootnoteDefinition:
		r.line.Start, r.line.End = true, true
		r.line.TryInsertEnd(r.c)
	case TagEmphasis:
		r.style.Emphasis = false
	case TagStrong:
		r.style.Strong = false
	case TagStrikethrough:
		r.style.Strikethrough = false
	case TagLink:
		if l, ok := r.active.(*linkTarget); ok {
			r.active = nil
			r.endLink(l)
		}
	case TagImage:
		if img, ok := r.active.(*imageTarget); ok {
			r.active = img.parent
			r.endImage(img)
		}
	case TagDefinitionList:
		r.line.TryInsertEnd(r.c)
	}
}

func (r *renderer) endLink(l *linkTarget) {
	if _, hooked := r.cache.LinkHook(l.destination); hooked {
		if r.c.Link(l.text) {
			r.cache.setLinkHook(l.destination)
		}
		return
	}
	r.c.Hyperlink(l.text, l.destination)
}

func (r *renderer) endImage(img *imageTarget) {
	width := r.opts.MaxImageWidth
	if width <= 0 {
		width = r.c.AvailableSize().W
	}
	var alt []RichText
	if r.opts.ShowAltTextOnHover {
		alt = img.alt
	}
	r.c.Image(img.uri, width, alt)
}

func (r *renderer) defListDefinitionWrapping(cur *cursor) {
	if !r.defList.pendingDefinition {
		return
	}
	r.defList.pendingDefinition = false

	sub := newCursor(collectUntil(cur, TagDefinitionListDefinition), 0, false)
	r.line.TryInsertStart(r.c)

	// A leading block opener is processed outside the indentation so it does
	// not break the row after the indent.
	r.line.Start = false
	if ev, ok := sub.peek(); ok {
		if _, isStart := ev.Event.(EventStart); isStart {
			sub.next()
			r.processEvent(sub, ev)
		}
	}
	r.c.Label(RichText{Text: strings.Repeat(" ", r.opts.IndentationSpaces)})

	r.line.Start = true
	r.line.End = false
	r.c.HorizontalWrapped(func() {
		r.drain(sub)
	})
	r.line.End = true

	if next, ok := cur.peek(); !ok || !isEnd(next, TagDefinitionList) {
		r.line.TryInsertEnd(r.c)
	}
}

func (r *renderer) listItemWrapping(cur *cursor) {
	if !r.pendingListItem {
		return
	}
	r.pendingListItem = false

	sub := newCursor(collectListItem(cur), 0, false)
	r.line.TryInsertStart(r.c)
	// Wrapped continuation rows align with the item text, not the margin.
	r.c.HorizontalWrapped(func() {
		r.drain(sub)
	})
}

func (r *renderer) table(cur *cursor) {
	if !r.pendingTable {
		return
	}
	r.pendingTable = false

	if !r.docStart {
		r.c.Newline()
	}
	id := r.viewerID + "_table_" + strconv.Itoa(r.currTable)
	r.currTable++

	t := assembleTable(collectUntil(cur, TagTable))
	r.c.Frame(func() {
		r.c.Grid(id, func() {
			for _, cell := range t.header {
				r.tableCell(cell)
			}
			r.c.EndRow()
			for _, row := range t.rows {
				for _, cell := range row {
					r.tableCell(cell)
				}
				r.c.EndRow()
			}
		})
	})

	if cur.atDocumentEnd() {
		r.line.EndForced = false
	}
	if r.line.EndForced {
		r.c.Newline()
	}
}

// tableCell renders one cell as its own flow region. Cell content never
// breaks lines at block boundaries.
func (r *renderer) tableCell(events []Spanned) {
	r.c.Horizontal(func() {
		restore := r.line.suppress()
		sub := newCursor(events, 0, false)
		for {
			_, ev, ok := sub.next()
			if !ok {
				break
			}
			r.line.Start, r.line.End = false, false
			r.processEvent(sub, ev)
		}
		restore()
		r.c.Label(RichText{Text: "  "})
	})
}

func (r *renderer) blockquote(cur *cursor) {
	if !r.pendingBlockQuote {
		return
	}
	r.pendingBlockQuote = false

	events := collectUntil(cur, TagBlockQuote)
	r.line.TryInsertStart(r.c)
	// A quote at the very start of the document still needs its content to
	// break away from the quote's first row.
	r.line.Start = true

	if alert, body, ok := parseAlerts(r.opts.Alerts, events); ok {
		accent := alert.Accent
		r.c.Blockquote(&accent, func() {
			r.c.Label(RichText{Text: alert.Icon, Color: &accent})
			r.c.Space(1)
			r.c.Label(RichText{Text: alert.Name, Color: &accent})
			r.replayQuoted(body)
		})
	} else {
		r.c.Blockquote(nil, func() {
			r.style.Quote = true
			r.replayQuoted(events)
			r.style.Quote = false
		})
	}

	if cur.atDocumentEnd() {
		r.line.EndForced = false
	}
	r.line.TryInsertEnd(r.c)
}

// replayQuoted renders the body of a quote. The last event does not end its
// row; the quote itself does that.
func (r *renderer) replayQuoted(events []Spanned) {
	sub := newCursor(events, 0, false)
	for {
		_, ev, ok := sub.next()
		if !ok {
			return
		}
		if sub.done() {
			end := r.line.End
			r.line.End = false
			r.processEvent(sub, ev)
			if !r.line.End {
				r.line.End = end
			}
			continue
		}
		r.processEvent(sub, ev)
	}
}
