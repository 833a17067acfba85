package domain

import "strings"

// Table is the CSV-shaped payload flowing through the pipeline: an ordered
// header plus string rows. Rows coming from spreadsheets may be ragged; use
// FitRow before addressing cells by column index.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, or -1 when absent.
// Header cells are compared after trimming.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// FitRow returns row resized to the header width: short rows are padded
// with empty cells, over-wide rows are truncated. Cells beyond the header
// have no column name, so the redaction rules cannot address them; they
// must never survive.
func (t Table) FitRow(row []string) []string {
	if len(row) == len(t.Header) {
		return row
	}
	fitted := make([]string, len(t.Header))
	copy(fitted, row)
	return fitted
}

// TrimHeader normalizes header cells in place.
func (t *Table) TrimHeader() {
	for i, h := range t.Header {
		t.Header[i] = strings.TrimSpace(h)
	}
}
