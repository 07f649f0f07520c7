package mdview

// Window exposes window for testing, returning the position the range
// resumes at.
func (s *ScrollCache) Window(top, bottom, numEvents int) (first, last int, offset Point) {
	first, last, from := s.window(top, bottom, numEvents)
	if from != nil {
		offset = from.End
	}
	return first, last, offset
}

// ParseAlerts exposes parseAlerts for testing.
var ParseAlerts = parseAlerts

// AssembleTable exposes assembleTable for testing, returning the header and
// body rows.
func AssembleTable(events []Spanned) (header [][]Spanned, rows [][][]Spanned) {
	t := assembleTable(events)
	return t.header, t.rows
}
