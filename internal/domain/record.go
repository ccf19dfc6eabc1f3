// Package domain defines core types shared across the scrape pipeline.
package domain

// Record is one semantic row of an output table: a geography plus the
// recipe-declared numeric fields. A nil value means the field is absent
// for this geography (unresolved variable, empty cell, or unparsable
// cell); absent is a normal state, not an error.
type Record struct {
	Geography string
	Values    map[string]*float64
	Ranks     map[string]int
}

// Value returns the named field value, or (0, false) when absent.
func (r *Record) Value(field string) (float64, bool) {
	v, ok := r.Values[field]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// SetValue stores a present value for the named field.
func (r *Record) SetValue(field string, v float64) {
	if r.Values == nil {
		r.Values = map[string]*float64{}
	}
	r.Values[field] = &v
}

// SetAbsent marks the named field absent.
func (r *Record) SetAbsent(field string) {
	if r.Values == nil {
		r.Values = map[string]*float64{}
	}
	r.Values[field] = nil
}

// SetRank stores a computed rank for the named rank column. Ranks are the
// only mutation applied to a Record after the transform step.
func (r *Record) SetRank(column string, rank int) {
	if r.Ranks == nil {
		r.Ranks = map[string]int{}
	}
	r.Ranks[column] = rank
}

// Column describes one column of an output table's final layout.
type Column struct {
	// Header is the column header as written to the spreadsheet.
	Header string
	// Kind selects how cell values are sourced and formatted.
	Kind ColumnKind
	// Field names the Record value or rank this column reads. Unused for
	// ColumnGeography.
	Field string
}

// ColumnKind enumerates the output column categories.
type ColumnKind int

const (
	// ColumnGeography renders Record.Geography.
	ColumnGeography ColumnKind = iota
	// ColumnRank renders an integer rank from Record.Ranks.
	ColumnRank
	// ColumnPercent renders a numeric field with one decimal and a
	// trailing percent symbol.
	ColumnPercent
	// ColumnNumber renders a plain numeric field with one decimal.
	ColumnNumber
)

// OutputTable is the final product of the pipeline for one configured
// table: ordered ranked records plus presentation metadata for the
// spreadsheet writer. Populated once, then handed off and discarded.
type OutputTable struct {
	ID         string // pipeline table id (e.g. RB002)
	Name       string // display name
	SheetName  string // spreadsheet tab title
	SourceNote string // provenance note placed beside the data
	Columns    []Column
	Records    []*Record
}
