package lipgloss

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdview"
	"github.com/rivo/uniseg"
)

// region is an open layout region on a surface.
type region struct {
	left   int
	nowrap bool
	// bar, when set, is drawn at barCol on every row from top to bottom.
	bar    *lipgloss.Style
	barCol int
	top    int
	bottom int
}

type line struct {
	b strings.Builder
	w int
}

// surface is a grid of styled rows with a write position. Cells are only
// appended, so a row is a styled string plus its width.
type surface struct {
	width   int
	rows    []*line
	pos     mdview.Point
	regions []region
	// fresh is set while a quote has no content.
	fresh bool
}

func newSurface(width int) *surface {
	return &surface{width: width}
}

func (s *surface) push(r region) {
	r.top, r.bottom = s.pos.Y, s.pos.Y
	s.regions = append(s.regions, r)
}

// pop closes the innermost region. A quote bar also covers the blank rows
// between its painted ones.
func (s *surface) pop() {
	r := s.regions[len(s.regions)-1]
	s.regions = s.regions[:len(s.regions)-1]
	if r.bar == nil {
		return
	}
	for y := r.top; y <= r.bottom; y++ {
		l := s.row(y)
		if l.w > r.barCol {
			continue
		}
		s.pad(l, r.barCol)
		l.b.WriteString(r.bar.Render("│"))
		l.w++
	}
}

func (s *surface) left() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[len(s.regions)-1].left
}

func (s *surface) nowrap() bool {
	for _, r := range s.regions {
		if r.nowrap {
			return true
		}
	}
	return false
}

func (s *surface) row(y int) *line {
	for len(s.rows) <= y {
		s.rows = append(s.rows, &line{})
	}
	return s.rows[y]
}

// fill draws quote bars and pads the current row up to the write position.
func (s *surface) fill() {
	l := s.row(s.pos.Y)
	for _, r := range s.regions {
		if r.bar == nil || l.w > r.barCol || r.barCol >= s.pos.X {
			continue
		}
		s.pad(l, r.barCol)
		l.b.WriteString(r.bar.Render("│"))
		l.w++
	}
	s.pad(l, s.pos.X)
}

func (s *surface) pad(l *line, to int) {
	if to > l.w {
		l.b.WriteString(strings.Repeat(" ", to-l.w))
		l.w = to
	}
}

// put writes a styled string w cells wide at the write position.
func (s *surface) put(styled string, w int) {
	s.fill()
	l := s.row(s.pos.Y)
	l.b.WriteString(styled)
	l.w += w
	s.pos.X += w
	s.fresh = false
	for i := range s.regions {
		s.regions[i].bottom = max(s.regions[i].bottom, s.pos.Y)
	}
}

// wrapRow moves to the start of the next row of the current region.
func (s *surface) wrapRow() {
	s.pos = mdview.Point{X: s.left(), Y: s.pos.Y + 1}
}

// flow writes text word by word, wrapping before words that would cross
// the right edge. Words wider than a whole row are split by grapheme.
func (s *surface) flow(text string, render func(string) string) {
	for _, word := range words(text) {
		w := uniseg.StringWidth(word)
		if s.nowrap() {
			s.put(render(word), w)
			continue
		}
		trimmed := uniseg.StringWidth(strings.TrimRight(word, " "))
		if s.pos.X > s.left() && s.pos.X+trimmed > s.width {
			s.wrapRow()
			word = strings.TrimLeft(word, " ")
			w = uniseg.StringWidth(word)
			trimmed = uniseg.StringWidth(strings.TrimRight(word, " "))
		}
		if s.left()+trimmed <= s.width {
			s.put(render(word), w)
			continue
		}
		s.split(word, render)
	}
}

func (s *surface) split(word string, render func(string) string) {
	var chunk strings.Builder
	cw := 0
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		gw := g.Width()
		if s.pos.X+cw+gw > s.width && (cw > 0 || s.pos.X > s.left()) {
			if cw > 0 {
				s.put(render(chunk.String()), cw)
			}
			chunk.Reset()
			cw = 0
			s.wrapRow()
		}
		chunk.WriteString(g.Str())
		cw += gw
	}
	if cw > 0 {
		s.put(render(chunk.String()), cw)
	}
}

// words splits text into words that keep their trailing spaces.
func words(text string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range text {
		switch {
		case r == ' ':
			inSpace = true
		case inSpace:
			out = append(out, text[start:i])
			start = i
			inSpace = false
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// block paints pre-rendered rows starting at the current region's left
// edge and leaves the write position on the row after them.
func (s *surface) block(lines []string) {
	if s.pos.X > s.left() {
		s.wrapRow()
	}
	for i, l := range lines {
		if i > 0 {
			s.wrapRow()
		}
		s.put(l, lipgloss.Width(l))
	}
	s.wrapRow()
}

// lines returns the rows with trailing blanks trimmed from the end of the
// surface.
func (s *surface) lines() []string {
	out := make([]string, len(s.rows))
	for i, l := range s.rows {
		out[i] = l.b.String()
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}
