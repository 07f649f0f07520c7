package mdview

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// documents match any color scheme. A negative index means no color.
type Theme struct {
	Accent int // Headings
	Muted  int // Weak text, quote bars, status line
	Link   int // Links and hyperlinks
	Code   int // Inline code and code block gutters
	Quote  int // Block quote bars without an alert accent
	Focus  int // Focused checkbox or link
	Rule   int // Separators and table borders
	Error  int // Status line errors
	Dark   bool
}

// DefaultTheme returns the default ANSI color mapping for dark terminals.
func DefaultTheme() Theme {
	return Theme{
		Accent: 5,
		Muted:  8,
		Link:   4,
		Code:   3,
		Quote:  8,
		Focus:  6,
		Rule:   8,
		Error:  1,
		Dark:   true,
	}
}

// SyntaxThemeName picks the highlighting theme matching the terminal
// background.
func (t Theme) SyntaxThemeName(s SyntaxTheme) string {
	if t.Dark {
		return s.Dark
	}
	return s.Light
}
