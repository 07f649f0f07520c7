package mdview

// Response is the result of one render pass.
type Response struct {
	// Rect is the region the document occupied.
	Rect Rect
	// CheckboxEvents are the task checkboxes toggled during the pass, for the
	// caller to splice back into the source with ApplyCheckboxEvents.
	CheckboxEvents []CheckboxClickEvent
}

// Viewer renders markdown text into a Canvas. A Viewer holds no per-frame
// state; everything that must outlive a frame lives in the Cache passed to
// each call.
type Viewer struct {
	id     string
	parser Parser
	opts   Options
}

// NewViewer creates a viewer. id identifies the viewer's entries in a Cache
// and must be stable across frames.
func NewViewer(id string, parser Parser, opts ...Option) *Viewer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Viewer{id: id, parser: parser, opts: o}
}

// ID returns the viewer identity.
func (v *Viewer) ID() string { return v.id }

// Options returns the effective options.
func (v *Viewer) Options() Options { return v.opts }

// Show renders text in full.
func (v *Viewer) Show(c Canvas, cache *Cache, text string) Response {
	return v.ShowEvents(c, cache, v.parser.Parse(text))
}

// ShowEvents renders an already parsed event sequence in full.
func (v *Viewer) ShowEvents(c Canvas, cache *Cache, events []Spanned) Response {
	return v.render(c, cache, v.opts, events, nil, len(events), nil)
}

// ShowMut renders text with interactive checkboxes and applies toggled
// checkboxes to text.
func (v *Viewer) ShowMut(c Canvas, cache *Cache, text *string) Response {
	opts := v.opts
	opts.Mutable = true
	events := v.parser.Parse(*text)
	resp := v.render(c, cache, opts, events, nil, len(events), nil)
	// Spans come from parsing *text in this call, so they always fit.
	if patched, err := ApplyCheckboxEvents(*text, resp.CheckboxEvents); err == nil {
		*text = patched
	}
	return resp
}

// render runs one pass over the events before last, resuming after from when
// set. record receives split points when set.
func (v *Viewer) render(c Canvas, cache *Cache, opts Options, events []Spanned, from *SplitPoint, last int, record func(SplitPoint)) Response {
	first := 0
	if from != nil {
		first = from.Index + 1
	}
	if cache == nil {
		cache = NewCache()
	}
	cache.resetLinkHooks()

	start := c.Cursor()
	r := newRenderer(c, cache, opts, v.id, from == nil)
	c.HorizontalWrapped(func() {
		if from != nil {
			r.resume(from, start)
		}
		r.run(newCursor(events[first:last], first, last == len(events)), record)
	})
	end := c.Cursor()

	maxY := end.Y
	if end.X > start.X {
		maxY++
	}
	return Response{
		Rect: Rect{
			Min: start,
			Max: Point{X: start.X + r.maxWidth, Y: maxY},
		},
		CheckboxEvents: r.checkboxEvents,
	}
}
