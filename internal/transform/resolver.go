// Package transform turns raw ACS tables into semantic records via
// declarative per-table recipes: label-based variable resolution,
// numeric extraction, and derived sum fields.
package transform

import (
	"strings"

	"acs-redbook/internal/census"
)

// Resolve finds the variable code whose label matches a term query: the
// label (lower-cased) must contain every required term and none of the
// forbidden terms, and the code must be an estimate column. Candidates
// are scanned in the index's lexical code order and the first match
// wins, so resolution is deterministic for a given metadata set.
//
// A miss is not an error: the caller treats ("", false) as "this field
// is absent for every record".
func Resolve(vars census.Variables, required, forbidden []string) (string, bool) {
	for _, code := range vars.Codes() {
		if !census.IsEstimate(code) {
			continue
		}
		label := strings.ToLower(vars.Label(code))
		if containsAll(label, required) && containsNone(label, forbidden) {
			return code, true
		}
	}
	return "", false
}

func containsAll(label string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(label, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

func containsNone(label string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(label, strings.ToLower(term)) {
			return false
		}
	}
	return true
}
