// Package census talks to the Census Bureau ACS API: variable metadata
// lookup, tabular data fetches, and the retry/fallback coordination that
// feeds the transform pipeline.
package census

import "strings"

// Survey variants supported by the pipeline.
const (
	SurveyACS1 = "acs1" // 1-year estimates
	SurveyACS5 = "acs5" // 5-year estimates
)

// DatasetPath maps an ACS table id to its sub-API path. Subject tables
// (S-prefix), data profiles (DP) and comparison profiles (CP) live under
// dedicated paths; detailed tables (B/C) use the bare survey path.
func DatasetPath(tableID, survey string) string {
	switch {
	case strings.HasPrefix(tableID, "DP"):
		return survey + "/profile"
	case strings.HasPrefix(tableID, "CP"):
		return survey + "/cprofile"
	case strings.HasPrefix(tableID, "S"):
		return survey + "/subject"
	default:
		return survey
	}
}
