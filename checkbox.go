package mdview

import (
	"fmt"
	"sort"
)

// CheckboxClickEvent records a task checkbox toggled during a render pass.
// Span covers the three-byte marker in the source text.
type CheckboxClickEvent struct {
	Checked bool
	Span    Span
}

// Marker returns the literal source marker for the new state.
func (e CheckboxClickEvent) Marker() string {
	if e.Checked {
		return "[x]"
	}
	return "[ ]"
}

// ApplyCheckboxEvents splices the markers of events back into text.
// Events are applied from the end of the text backwards so earlier spans stay
// valid even if a span is not exactly three bytes wide.
func ApplyCheckboxEvents(text string, events []CheckboxClickEvent) (string, error) {
	if len(events) == 0 {
		return text, nil
	}
	sorted := append([]CheckboxClickEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	for _, ev := range sorted {
		s := ev.Span
		if s.Start < 0 || s.End < s.Start || s.End > len(text) {
			return "", fmt.Errorf("checkbox span [%d, %d) in text of length %d: %w", s.Start, s.End, len(text), ErrInvalidSpan)
		}
		text = text[:s.Start] + ev.Marker() + text[s.End:]
	}
	return text, nil
}
