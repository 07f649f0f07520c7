package mdview

// SplitPoint marks a place where windowed rendering may cut the event list.
// Start and End are the cursor positions before and after the event at Index
// was processed. Resume is the renderer state right after it.
type SplitPoint struct {
	Index  int
	Start  Point
	End    Point
	Resume ResumeState
}

// ResumeState is the part of the renderer state that outlives a split
// point: the open list levels, the newline policy and the table counter.
type ResumeState struct {
	Levels []ListLevel
	Begun  bool
	Line   Newline
	Tables int
}

// ScrollCache is the per-viewer state kept across frames for windowed
// rendering. It is only valid for static text.
type ScrollCache struct {
	// AvailableSize is the canvas size the cache was built for.
	AvailableSize Size
	// PageSize is the laid out size of the whole document once known.
	PageSize *Size
	// SplitPoints are ordered by ascending Index, one per Index.
	SplitPoints []SplitPoint
}

func (s *ScrollCache) addSplitPoint(p SplitPoint) {
	for _, sp := range s.SplitPoints {
		if sp.Index == p.Index {
			return
		}
	}
	s.SplitPoints = append(s.SplitPoints, p)
}

// window returns the event range [first, last) to render for a viewport
// spanning rows [top, bottom), and the split point the range resumes from,
// nil when it starts at the top. One split point of slack is kept on each
// side.
func (s *ScrollCache) window(top, bottom, numEvents int) (first, last int, from *SplitPoint) {
	var above []int
	for i, sp := range s.SplitPoints {
		if sp.End.Y < top {
			above = append(above, i)
		}
	}
	if len(above) >= 2 {
		from = &s.SplitPoints[above[len(above)-2]]
		first = from.Index + 1
	}

	last = numEvents
	seen := 0
	for _, sp := range s.SplitPoints {
		if sp.Start.Y > bottom {
			seen++
			if seen == 2 {
				last = sp.Index
				break
			}
		}
	}
	if last > numEvents {
		last = numEvents
	}
	if first > last {
		first, from = 0, nil
	}
	return first, last, from
}

// Cache holds state that outlives a single frame: scroll caches keyed by
// viewer ID and the link hook registry. The zero value is ready to use.
// A Cache is meant to be used from the single goroutine driving frames.
type Cache struct {
	scroll    map[string]*ScrollCache
	linkHooks map[string]bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Scroll returns the scroll cache of a viewer, if one was created.
func (c *Cache) Scroll(id string) (*ScrollCache, bool) {
	s, ok := c.scroll[id]
	return s, ok
}

func (c *Cache) scrollCache(id string) *ScrollCache {
	if c.scroll == nil {
		c.scroll = make(map[string]*ScrollCache)
	}
	s, ok := c.scroll[id]
	if !ok {
		s = &ScrollCache{}
		c.scroll[id] = s
	}
	return s
}

// ClearScrollable forgets the scroll cache of a viewer. Call it whenever the
// viewer's text changes.
func (c *Cache) ClearScrollable(id string) {
	delete(c.scroll, id)
}

// ClearAllScrollable forgets every scroll cache.
func (c *Cache) ClearAllScrollable() {
	clear(c.scroll)
}

// AddLinkHook registers a link destination. Clicking a link to name sets
// its state instead of navigating.
func (c *Cache) AddLinkHook(name string) {
	if c.linkHooks == nil {
		c.linkHooks = make(map[string]bool)
	}
	c.linkHooks[name] = false
}

// RemoveLinkHook unregisters name and returns its last state.
func (c *Cache) RemoveLinkHook(name string) (state, ok bool) {
	state, ok = c.linkHooks[name]
	delete(c.linkHooks, name)
	return state, ok
}

// LinkHook reports whether the link to name was clicked during the last
// render pass. ok is false when no hook is registered for name.
func (c *Cache) LinkHook(name string) (clicked, ok bool) {
	clicked, ok = c.linkHooks[name]
	return clicked, ok
}

// ClearLinkHooks unregisters all link hooks.
func (c *Cache) ClearLinkHooks() {
	clear(c.linkHooks)
}

func (c *Cache) resetLinkHooks() {
	for k := range c.linkHooks {
		c.linkHooks[k] = false
	}
}

func (c *Cache) setLinkHook(name string) {
	if _, ok := c.linkHooks[name]; ok {
		c.linkHooks[name] = true
	}
}
