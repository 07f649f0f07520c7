package mdview

import (
	"strconv"
	"strings"
)

// itemGap is the space between a list marker and the item content.
const itemGap = 1

// ListLevel is one nesting level of a list. Ordered levels carry the number
// the next item will get.
type ListLevel struct {
	Ordered bool
	Next    uint64
}

// List is the stack of open list levels.
type List struct {
	levels []ListLevel
	// begun is set once the first item of the outermost list was started,
	// so only items after it are preceded by a newline.
	begun bool
}

// StartLevel pushes a level. Ordered levels number their items from start.
func (l *List) StartLevel(ordered bool, start uint64) {
	l.levels = append(l.levels, ListLevel{Ordered: ordered, Next: start})
}

// EndLevel pops the innermost level. Closing the outermost level ends the
// row when insertNewline is set and resets the list for the next one.
func (l *List) EndLevel(c Canvas, insertNewline bool) {
	if len(l.levels) > 0 {
		l.levels = l.levels[:len(l.levels)-1]
	}
	if len(l.levels) == 0 {
		if insertNewline {
			c.Newline()
		}
		l.begun = false
	}
}

// InsideList reports whether any level is open.
func (l *List) InsideList() bool { return len(l.levels) > 0 }

// Depth returns the number of open levels.
func (l *List) Depth() int { return len(l.levels) }

// Levels returns a copy of the open levels, outermost first.
func (l *List) Levels() []ListLevel {
	return append([]ListLevel(nil), l.levels...)
}

// restore replaces the open levels with a copy of levels.
func (l *List) restore(levels []ListLevel, begun bool) {
	l.levels = append([]ListLevel(nil), levels...)
	l.begun = begun
}

// StartItem paints the indentation and marker of a new item.
func (l *List) StartItem(c Canvas, indentSpaces int) {
	if l.begun {
		c.Newline()
	} else {
		l.begun = true
	}

	depth := len(l.levels)
	if depth == 0 {
		// An item outside any list renders as a top-level bullet.
		c.Bullet(false)
		c.Space(itemGap)
		return
	}

	if pad := (depth - 1) * indentSpaces; pad > 0 {
		c.Label(RichText{Text: strings.Repeat(" ", pad)})
	}
	level := &l.levels[depth-1]
	switch {
	case level.Ordered:
		c.Number(strconv.FormatUint(level.Next, 10) + ".")
		level.Next++
	case depth > 1:
		c.Bullet(true)
	default:
		c.Bullet(false)
	}
	c.Space(itemGap)
}
