package mdview

// Newline decides whether block boundaries emit a line break.
//
// A start break is emitted when Start is set. An end break needs both End and
// EndForced; EndForced is cleared only for the last event of a document so no
// trailing blank row is painted.
type Newline struct {
	Start     bool
	End       bool
	EndForced bool
}

// NewNewline returns the policy for the beginning of a document: no leading
// break until the first event has been processed.
func NewNewline() Newline {
	return Newline{Start: false, End: true, EndForced: true}
}

// CanInsertStart reports whether a start break would be emitted.
func (n Newline) CanInsertStart() bool { return n.Start }

// CanInsertEnd reports whether an end break would be emitted.
func (n Newline) CanInsertEnd() bool { return n.End && n.EndForced }

// TryInsertStart emits a break if the policy allows it.
func (n Newline) TryInsertStart(c Canvas) {
	if n.CanInsertStart() {
		c.Newline()
	}
}

// TryInsertEnd emits a break if the policy allows it.
func (n Newline) TryInsertEnd(c Canvas) {
	if n.CanInsertEnd() {
		c.Newline()
	}
}

// suppress turns both flags off and returns a function restoring them.
func (n *Newline) suppress() (restore func()) {
	start, end := n.Start, n.End
	n.Start, n.End = false, false
	return func() {
		n.Start, n.End = start, end
	}
}
