package mdview

import "time"

// State is what a viewer remembers between runs: the document on screen
// and how far each document was scrolled.
type State struct {
	Current   string
	Offsets   map[string]int
	UpdatedAt time.Time
}
