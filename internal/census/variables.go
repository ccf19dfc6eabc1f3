package census

import (
	"sort"
	"strings"
)

// Variables is the label index for one (table, year, dataset-path): a
// searchable view over variable codes and their free-text labels.
//
// The ACS metadata endpoint serves the variables as a JSON object, whose
// key order a Go map does not preserve. Codes are therefore kept in a
// lexically sorted slice and all iteration happens in that order, so that
// first-match label resolution is deterministic across runs.
type Variables struct {
	codes  []string
	labels map[string]string
}

// NewVariables builds a label index from a code→label mapping.
func NewVariables(labels map[string]string) Variables {
	codes := make([]string, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return Variables{codes: codes, labels: labels}
}

// Len reports the number of indexed variables.
func (v Variables) Len() int { return len(v.codes) }

// Codes returns the variable codes in lexical order. Callers must not
// modify the returned slice.
func (v Variables) Codes() []string { return v.codes }

// Label returns the label text for a code, or "" when unknown.
func (v Variables) Label(code string) string { return v.labels[code] }

// IsEstimate reports whether a code names a point-estimate column.
// Margin-of-error and annotation codes carry other terminal markers
// (M, EA, MA) and are never eligible for label resolution.
func IsEstimate(code string) bool {
	return strings.HasSuffix(code, "E")
}
