package mdview

// table is a buffered table reshaped into per-cell event lists.
type table struct {
	header [][]Spanned
	rows   [][][]Spanned
}

// assembleTable splits the events between Start(Table) and End(Table) into a
// header row and body rows. Cell lists hold only the events inside each
// cell. Ragged rows keep the cells they have.
func assembleTable(events []Spanned) table {
	c := newCursor(events, 0, false)
	t := table{header: collectRow(c)}
	for !c.done() {
		if row := collectRow(c); len(row) > 0 {
			t.rows = append(t.rows, row)
		}
	}
	return t
}

// collectRow drains one row. A TableHead or TableRow end finishes the row.
func collectRow(c *cursor) [][]Spanned {
	var (
		row    [][]Spanned
		cell   []Spanned
		inCell bool
	)
	for {
		_, ev, ok := c.next()
		if !ok {
			if inCell {
				row = append(row, cell)
			}
			return row
		}
		switch e := ev.Event.(type) {
		case EventStart:
			switch e.Tag.Kind {
			case TagTableHead, TagTableRow:
				continue
			case TagTableCell:
				inCell, cell = true, nil
				continue
			}
		case EventEnd:
			switch e.Tag {
			case TagTableCell:
				row = append(row, cell)
				inCell, cell = false, nil
				continue
			case TagTableHead, TagTableRow:
				if inCell {
					row = append(row, cell)
				}
				return row
			}
		}
		cell = append(cell, ev)
	}
}
