package mdview

// Heading size factors for levels 2-6, interpolated between body and heading
// size. Level 1 always uses the full heading size.
var headingFactors = [...]float32{0.835, 0.668, 0.501, 0.334, 0.167}

// Style tracks the inline formatting active at the current event.
// Flags are set on Start and cleared on End. It is not a stack: nested spans
// of the same kind rely on the parser never overlapping them.
type Style struct {
	// Heading is the zero-based heading level, or -1 outside headings.
	Heading       int
	Strong        bool
	Emphasis      bool
	Strikethrough bool
	Quote         bool
	Code          bool
}

// NewStyle returns a Style with no formatting applied.
func NewStyle() Style {
	return Style{Heading: -1}
}

// RichText resolves the active formatting for text. body and heading are the
// canvas font sizes.
func (s Style) RichText(text string, body, heading float32) RichText {
	rt := RichText{Text: text}
	if s.Heading >= 0 {
		rt.Strong = true
		if s.Heading == 0 {
			rt.Heading = true
			rt.Size = heading
		} else {
			i := s.Heading - 1
			if i >= len(headingFactors) {
				i = len(headingFactors) - 1
			}
			rt.Size = body + (heading-body)*headingFactors[i]
		}
	}
	if s.Quote {
		rt.Weak = true
	}
	if s.Strong {
		rt.Strong = true
	}
	if s.Emphasis {
		rt.Italic = true
	}
	if s.Strikethrough {
		rt.Strikethrough = true
	}
	if s.Code {
		rt.Code = true
	}
	return rt
}
