package census

import "fmt"

// Table is one fetched ACS result: a header row naming the columns and
// the positional data rows beneath it. Immutable once built.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// NewTable validates and wraps a decoded array-of-arrays response.
// Every data row must match the header's column count; a ragged response
// is malformed and rejected here rather than crashing a transform later.
func NewTable(cells [][]string) (Table, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return Table{}, fmt.Errorf("missing header row")
	}
	header := cells[0]
	rows := cells[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return Table{}, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(header))
		}
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		// First occurrence wins on duplicate headers.
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return Table{header: header, rows: rows, index: index}, nil
}

// Header returns the ordered column names.
func (t Table) Header() []string { return t.header }

// Rows returns the data rows (header excluded).
func (t Table) Rows() [][]string { return t.rows }

// Len reports the number of data rows.
func (t Table) Len() int { return len(t.rows) }

// ColumnIndex returns the position of a named column.
func (t Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}
