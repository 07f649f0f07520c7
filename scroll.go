package mdview

// ShowScrollable renders text inside a scroll area, painting only the part
// of the document around the viewport once the document layout is known.
//
// The first frame renders everything and records split points and the page
// size in cache. Later frames re-parse text and replay only the events
// between the split points bracketing the viewport. The cached layout
// assumes text is static: call Cache.ClearScrollable when it changes. A
// change of the canvas size drops the cached layout automatically.
func (v *Viewer) ShowScrollable(c ScrollCanvas, cache *Cache, text string) Response {
	if cache == nil {
		cache = NewCache()
	}
	available := c.AvailableSize()

	if sc, ok := cache.Scroll(v.id); ok && sc.AvailableSize != available {
		cache.ClearScrollable(v.id)
	}
	sc := cache.scrollCache(v.id)
	events := v.parser.Parse(text)

	if sc.PageSize == nil {
		sc.SplitPoints = sc.SplitPoints[:0]
		resp := v.render(c, cache, v.opts, events, nil, len(events), sc.addSplitPoint)
		size := resp.Rect.Size()
		sc.PageSize = &size
		sc.AvailableSize = available
		return resp
	}

	c.SetMinHeight(sc.PageSize.H)
	viewport := c.Viewport()
	_, last, from := sc.window(viewport.Min.Y, viewport.Max.Y, len(events))

	start := c.Cursor()
	resp := v.render(c, cache, v.opts, events, from, last, nil)
	resp.Rect.Min = start
	resp.Rect.Max.Y = max(resp.Rect.Max.Y, start.Y+sc.PageSize.H)
	return resp
}
