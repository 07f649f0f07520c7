package mdview

// cursor walks an event slice. Lookahead collectors drain from the same
// cursor the caller iterates, so consumed events are never seen twice.
type cursor struct {
	events []Spanned
	// base is the document index of events[0].
	base int
	pos  int
	// final is set when the end of events is the end of the document.
	final bool
}

func newCursor(events []Spanned, base int, final bool) *cursor {
	return &cursor{events: events, base: base, final: final}
}

// next returns the next event and its document index.
func (c *cursor) next() (int, Spanned, bool) {
	if c.pos >= len(c.events) {
		return 0, Spanned{}, false
	}
	ev := c.events[c.pos]
	c.pos++
	return c.base + c.pos - 1, ev, true
}

func (c *cursor) peek() (Spanned, bool) {
	if c.pos >= len(c.events) {
		return Spanned{}, false
	}
	return c.events[c.pos], true
}

func (c *cursor) done() bool { return c.pos >= len(c.events) }

// atDocumentEnd reports whether nothing follows in the whole document.
func (c *cursor) atDocumentEnd() bool { return c.final && c.done() }

// collectUntil drains events up to the End matching an already consumed
// Start of kind. The terminator is consumed but not returned. Reaching the
// end of the stream returns whatever was collected.
func collectUntil(c *cursor, kind TagKind) []Spanned {
	var (
		out   []Spanned
		depth int
	)
	for {
		_, ev, ok := c.next()
		if !ok {
			return out
		}
		switch e := ev.Event.(type) {
		case EventStart:
			if e.Tag.Kind == kind {
				depth++
			}
		case EventEnd:
			if e.Tag == kind {
				if depth == 0 {
					return out
				}
				depth--
			}
		}
		out = append(out, ev)
	}
}

// collectListItem drains the body of a list item. It stops after the item's
// own End(Item), or after a Start(List) directly inside the item so nested
// items are laid out outside the parent's wrapped region. Both terminators
// are included.
func collectListItem(c *cursor) []Spanned {
	var (
		out   []Spanned
		depth int
	)
	for {
		_, ev, ok := c.next()
		if !ok {
			return out
		}
		out = append(out, ev)
		switch e := ev.Event.(type) {
		case EventStart:
			if e.Tag.Kind == TagList && depth == 0 {
				return out
			}
			depth++
		case EventEnd:
			if depth == 0 {
				// Only End(Item) can close at depth zero.
				return out
			}
			depth--
		}
	}
}

// isEnd reports whether ev closes a container of kind.
func isEnd(ev Spanned, kind TagKind) bool {
	e, ok := ev.Event.(EventEnd)
	return ok && e.Tag == kind
}
