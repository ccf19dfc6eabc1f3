package transform

import (
	"fmt"
	"strconv"
	"strings"

	"acs-redbook/internal/domain"
)

// yearToken in field names and column headers is replaced with the
// effective data year at transform time (the fallback year may differ
// from the configured one).
const yearToken = "{year}"

// Excel rejects tab titles longer than 31 characters.
const maxSheetName = 31

// TermQuery is one label search: required substrings ANDed together,
// forbidden substrings excluding overlapping cross-tabulations (e.g.
// the male/female breakdown of an otherwise identical label).
type TermQuery struct {
	Required  []string `yaml:"required"`
	Forbidden []string `yaml:"forbidden,omitempty"`
}

// FieldSpec declares one semantic field of a recipe. Exactly one of
// Query or Sum must be set: Query resolves a single variable, Sum
// declares a derived field adding several independently resolved
// contributors (contiguous age brackets, typically).
type FieldSpec struct {
	Name    string      `yaml:"name"`
	Query   *TermQuery  `yaml:"query,omitempty"`
	Sum     []TermQuery `yaml:"sum,omitempty"`
	Percent bool        `yaml:"percent,omitempty"`
}

// RankSpec declares one rank column: the field it orders by and the
// direction. Descending treats higher values as better; Ascending is
// for lower-is-better percentages.
type RankSpec struct {
	Column    string `yaml:"column"`
	Field     string `yaml:"field"`
	Ascending bool   `yaml:"ascending,omitempty"`
}

// ColumnSpec fixes one column of the output sheet layout.
// Kind is one of "geography", "rank", "percent", "number". Field
// defaults to Header when empty.
type ColumnSpec struct {
	Header string `yaml:"header"`
	Kind   string `yaml:"kind"`
	Field  string `yaml:"field,omitempty"`
}

// Recipe is the full declarative definition of one output table: where
// its data comes from, which fields to resolve, how to rank them, and
// how the sheet is laid out. The five built-in recipes live in
// Defaults; operators can override the set from a YAML file.
type Recipe struct {
	ID         string       `yaml:"id"`       // output table id, e.g. RB002
	TableID    string       `yaml:"table_id"` // ACS table id, e.g. S0101
	Name       string       `yaml:"name"`
	SheetName  string       `yaml:"sheet_name"`
	Geography  string       `yaml:"geography"`
	GeoColumn  string       `yaml:"geo_column,omitempty"` // header of the name column, default NAME
	SourceNote string       `yaml:"source_note,omitempty"`
	Fields     []FieldSpec  `yaml:"fields"`
	Ranks      []RankSpec   `yaml:"ranks,omitempty"`
	Columns    []ColumnSpec `yaml:"columns"`
}

// Validate checks internal consistency of a recipe before it is allowed
// into the pipeline.
func (r Recipe) Validate() error {
	if r.ID == "" || r.TableID == "" || r.Name == "" {
		return fmt.Errorf("recipe %q: id, table_id and name are required", r.ID)
	}
	if r.SheetName == "" {
		return fmt.Errorf("recipe %s: sheet_name is required", r.ID)
	}
	if len(r.SheetName) > maxSheetName {
		return fmt.Errorf("recipe %s: sheet_name %q exceeds %d characters", r.ID, r.SheetName, maxSheetName)
	}
	if r.Geography == "" {
		return fmt.Errorf("recipe %s: geography is required", r.ID)
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("recipe %s: at least one field is required", r.ID)
	}

	fields := map[string]bool{}
	for _, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("recipe %s: field with empty name", r.ID)
		}
		if fields[f.Name] {
			return fmt.Errorf("recipe %s: duplicate field %q", r.ID, f.Name)
		}
		fields[f.Name] = true
		hasQuery := f.Query != nil && len(f.Query.Required) > 0
		hasSum := len(f.Sum) > 0
		if hasQuery == hasSum {
			return fmt.Errorf("recipe %s: field %q must declare exactly one of query or sum", r.ID, f.Name)
		}
		for i, q := range f.Sum {
			if len(q.Required) == 0 {
				return fmt.Errorf("recipe %s: field %q sum contributor %d has no required terms", r.ID, f.Name, i)
			}
		}
	}

	ranks := map[string]bool{}
	for _, rk := range r.Ranks {
		if rk.Column == "" || rk.Field == "" {
			return fmt.Errorf("recipe %s: rank with empty column or field", r.ID)
		}
		if !fields[rk.Field] {
			return fmt.Errorf("recipe %s: rank %q orders by undeclared field %q", r.ID, rk.Column, rk.Field)
		}
		if ranks[rk.Column] {
			return fmt.Errorf("recipe %s: duplicate rank column %q", r.ID, rk.Column)
		}
		ranks[rk.Column] = true
	}

	if len(r.Columns) == 0 {
		return fmt.Errorf("recipe %s: at least one output column is required", r.ID)
	}
	for _, c := range r.Columns {
		field := c.Field
		if field == "" {
			field = c.Header
		}
		switch c.Kind {
		case "geography":
		case "rank":
			if !ranks[field] {
				return fmt.Errorf("recipe %s: column %q references undeclared rank %q", r.ID, c.Header, field)
			}
		case "percent", "number":
			if !fields[field] {
				return fmt.Errorf("recipe %s: column %q references undeclared field %q", r.ID, c.Header, field)
			}
		default:
			return fmt.Errorf("recipe %s: column %q has unknown kind %q", r.ID, c.Header, c.Kind)
		}
	}
	return nil
}

// OutputColumns renders the sheet layout for the effective data year.
func (r Recipe) OutputColumns(year int) []domain.Column {
	out := make([]domain.Column, len(r.Columns))
	for i, c := range r.Columns {
		field := c.Field
		if field == "" {
			field = c.Header
		}
		col := domain.Column{
			Header: expandYear(c.Header, year),
			Field:  expandYear(field, year),
		}
		switch c.Kind {
		case "geography":
			col.Kind = domain.ColumnGeography
		case "rank":
			col.Kind = domain.ColumnRank
		case "percent":
			col.Kind = domain.ColumnPercent
		case "number":
			col.Kind = domain.ColumnNumber
		}
		out[i] = col
	}
	return out
}

// RankKeys renders the rank declarations for the effective data year.
func (r Recipe) RankKeys(year int) []RankSpec {
	out := make([]RankSpec, len(r.Ranks))
	for i, rk := range r.Ranks {
		out[i] = RankSpec{
			Column:    expandYear(rk.Column, year),
			Field:     expandYear(rk.Field, year),
			Ascending: rk.Ascending,
		}
	}
	return out
}

func expandYear(s string, year int) string {
	return strings.ReplaceAll(s, yearToken, strconv.Itoa(year))
}
