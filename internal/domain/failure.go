package domain

import "fmt"

// FailureClass partitions per-table failures for the run summary.
type FailureClass string

const (
	// FailureFetch covers exhausted retries, missing data for both the
	// requested and fallback year, and empty or malformed responses.
	FailureFetch FailureClass = "fetch"
	// FailureProcess covers errors or panics raised while transforming or
	// ranking an already-fetched table.
	FailureProcess FailureClass = "process"
)

// Failure records one table that did not make it to the output, with
// enough context for the end-of-run report. Failures never abort sibling
// tables; only the final spreadsheet write can fail the whole run.
type Failure struct {
	TableID string
	Name    string
	Class   FailureClass
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %s failure: %v", f.TableID, f.Name, f.Class, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }
