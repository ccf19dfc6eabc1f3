package transform

import (
	"strconv"
	"strings"

	"acs-redbook/internal/census"
	"acs-redbook/internal/domain"
)

// defaultGeoColumn is the header the API uses for the geography name.
const defaultGeoColumn = "NAME"

// resolvedField is a recipe field bound to concrete column positions
// for one fetched table. A nil/empty columns slice means the field is
// unresolved and will be absent on every record.
type resolvedField struct {
	name    string
	columns []int
	derived bool
}

// Apply is the generic transform: it binds each recipe field to a
// variable column via label resolution, then builds one semantic record
// per geography row. year is the effective data year, used to expand
// year-named fields.
//
// Resolution misses, missing columns, empty cells and unparsable cells
// all produce absent values; nothing in here aborts the table.
func Apply(r Recipe, tbl census.Table, vars census.Variables, year int) []*domain.Record {
	geoIdx := 0
	geoColumn := r.GeoColumn
	if geoColumn == "" {
		geoColumn = defaultGeoColumn
	}
	if i, ok := tbl.ColumnIndex(geoColumn); ok {
		geoIdx = i
	}

	fields := make([]resolvedField, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, bind(f, tbl, vars, year))
	}

	records := make([]*domain.Record, 0, tbl.Len())
	for _, row := range tbl.Rows() {
		rec := &domain.Record{
			Geography: row[geoIdx],
			Values:    make(map[string]*float64, len(fields)),
		}
		for _, f := range fields {
			if f.derived {
				applyDerived(rec, f, row)
			} else {
				applyPlain(rec, f, row)
			}
		}
		records = append(records, rec)
	}
	return records
}

// bind resolves a field spec against the label index and maps the
// resulting codes to column positions in the fetched table.
func bind(f FieldSpec, tbl census.Table, vars census.Variables, year int) resolvedField {
	rf := resolvedField{name: expandYear(f.Name, year), derived: len(f.Sum) > 0}

	if !rf.derived {
		if f.Query == nil {
			return rf
		}
		if code, ok := Resolve(vars, f.Query.Required, f.Query.Forbidden); ok {
			if idx, ok := tbl.ColumnIndex(code); ok {
				rf.columns = []int{idx}
			}
		}
		return rf
	}

	// Each contributor resolves independently; a miss drops just that
	// contributor, not the whole derived field.
	for _, q := range f.Sum {
		code, ok := Resolve(vars, q.Required, q.Forbidden)
		if !ok {
			continue
		}
		if idx, ok := tbl.ColumnIndex(code); ok {
			rf.columns = append(rf.columns, idx)
		}
	}
	return rf
}

func applyPlain(rec *domain.Record, f resolvedField, row []string) {
	if len(f.columns) == 0 {
		rec.SetAbsent(f.name)
		return
	}
	if v, ok := parseCell(row[f.columns[0]]); ok {
		rec.SetValue(f.name, v)
	} else {
		rec.SetAbsent(f.name)
	}
}

// applyDerived sums the contributors that parsed. The field is absent
// only when every contributor is absent; otherwise missing contributors
// count as zero and the partial sum is reported. Partial aggregation
// over no-data is a deliberate, known approximation.
func applyDerived(rec *domain.Record, f resolvedField, row []string) {
	sum := 0.0
	present := false
	for _, idx := range f.columns {
		if v, ok := parseCell(row[idx]); ok {
			sum += v
			present = true
		}
	}
	if present {
		rec.SetValue(f.name, sum)
	} else {
		rec.SetAbsent(f.name)
	}
}

func parseCell(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
