package mdview

import (
	"sort"
	"strings"
)

// Alert is a block quote variant recognized by a leading [!IDENT] marker.
type Alert struct {
	// Identifier is matched case-insensitively inside the marker.
	Identifier string
	// Name is the label painted next to the icon.
	Name   string
	Accent Color
	Icon   string
}

// AlertBundle is the set of recognized alerts keyed by their marker.
// The zero value recognizes nothing.
type AlertBundle struct {
	alerts map[string]Alert
}

// NewAlertBundle builds a bundle from alerts. Later duplicates win.
func NewAlertBundle(alerts ...Alert) AlertBundle {
	b := AlertBundle{alerts: make(map[string]Alert, len(alerts))}
	for _, a := range alerts {
		b.alerts[alertMarker(a.Identifier)] = a
	}
	return b
}

// DefaultAlerts returns the GitHub flavored alert kinds.
func DefaultAlerts() AlertBundle {
	return NewAlertBundle(
		Alert{Identifier: "NOTE", Name: "Note", Accent: Color{10, 80, 210}, Icon: "❕"},
		Alert{Identifier: "TIP", Name: "Tip", Accent: Color{0, 130, 20}, Icon: "💡"},
		Alert{Identifier: "IMPORTANT", Name: "Important", Accent: Color{130, 50, 210}, Icon: "💬"},
		Alert{Identifier: "WARNING", Name: "Warning", Accent: Color{210, 140, 0}, Icon: "⚠"},
		Alert{Identifier: "CAUTION", Name: "Caution", Accent: Color{200, 20, 20}, Icon: "🔴"},
	)
}

// Len returns the number of recognized alerts.
func (b AlertBundle) Len() int { return len(b.alerts) }

// Lookup finds the alert for a literal marker such as "[!tip]".
func (b AlertBundle) Lookup(marker string) (Alert, bool) {
	a, ok := b.alerts[strings.ToUpper(marker)]
	return a, ok
}

// Alerts returns the recognized alerts ordered by identifier.
func (b AlertBundle) Alerts() []Alert {
	out := make([]Alert, 0, len(b.alerts))
	for _, a := range b.alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

func alertMarker(ident string) string {
	return "[!" + strings.ToUpper(ident) + "]"
}

// parseAlerts inspects the start of a collected block quote. On a match the
// marker events are removed from events and the alert is returned.
//
// The marker is the concatenated text before the first soft break, hard
// break or End event. An End means a blank line separated the marker from
// the body: everything up to and including it is dropped. Otherwise index 0
// (the opening Paragraph) is kept and the marker text plus its line break are
// dropped.
func parseAlerts(bundle AlertBundle, events []Spanned) (Alert, []Spanned, bool) {
	if bundle.Len() == 0 {
		return Alert{}, events, false
	}

	var (
		ident        strings.Builder
		endsAt       = -1
		hasExtraLine bool
	)
scan:
	for i, ev := range events {
		switch e := ev.Event.(type) {
		case EventEnd:
			endsAt = i
			hasExtraLine = true
			break scan
		case EventSoftBreak, EventHardBreak:
			endsAt = i
			break scan
		case EventText:
			ident.WriteString(e.Text)
		}
	}

	alert, ok := bundle.Lookup(ident.String())
	if !ok {
		return Alert{}, events, false
	}

	switch {
	case endsAt < 0:
		// The marker is all the quote holds.
		return alert, nil, true
	case hasExtraLine:
		return alert, events[endsAt+1:], true
	default:
		return alert, append(events[:1:1], events[endsAt+1:]...), true
	}
}
