// Package rank computes per-table rank orderings over semantic records.
package rank

import (
	"sort"

	"acs-redbook/internal/domain"
)

// Direction fixes which end of a sort key ranks first.
type Direction int

const (
	// Descending ranks the highest value first; absent values sort as 0.
	Descending Direction = iota
	// Ascending ranks the lowest value first; absent values sort as 100,
	// the worst case for a lower-is-better percentage.
	Ascending
)

// Key is one independent rank computation: the record field it orders
// by and the rank column it fills in.
type Key struct {
	Column    string
	Field     string
	Direction Direction
}

// Apply assigns a dense 1-based rank per key. Each key re-sorts its own
// copy of the record slice, so keys never affect each other; the sort
// is stable, so ties keep their original relative order and ranks for N
// records are exactly 1..N.
//
// Absent values substitute the worst case for the key's direction, which
// pushes missing data to the bottom of the ranking rather than the top.
func Apply(records []*domain.Record, keys []Key) {
	for _, k := range keys {
		ordered := make([]*domain.Record, len(records))
		copy(ordered, records)
		sort.SliceStable(ordered, func(i, j int) bool {
			a := sortValue(ordered[i], k)
			b := sortValue(ordered[j], k)
			if k.Direction == Ascending {
				return a < b
			}
			return a > b
		})
		for i, rec := range ordered {
			rec.SetRank(k.Column, i+1)
		}
	}
}

func sortValue(rec *domain.Record, k Key) float64 {
	if v, ok := rec.Value(k.Field); ok {
		return v
	}
	if k.Direction == Ascending {
		return 100
	}
	return 0
}
