package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acs-redbook/internal/domain"
)

func record(geo string, field string, value *float64) *domain.Record {
	rec := &domain.Record{Geography: geo, Values: map[string]*float64{field: value}}
	return rec
}

func val(v float64) *float64 { return &v }

func ranksOf(records []*domain.Record, column string) []int {
	out := make([]int, len(records))
	for i, rec := range records {
		out[i] = rec.Ranks[column]
	}
	return out
}

func TestApplyDescending(t *testing.T) {
	records := []*domain.Record{
		record("Alabama", "pct", val(10.0)),
		record("Alaska", "pct", val(30.0)),
		record("Arizona", "pct", val(20.0)),
	}

	Apply(records, []Key{{Column: "Rank", Field: "pct", Direction: Descending}})

	// Ranks land on the original records, input order untouched.
	assert.Equal(t, []int{3, 1, 2}, ranksOf(records, "Rank"))
}

func TestApplyDenseRanks(t *testing.T) {
	records := []*domain.Record{
		record("A", "pct", val(5)),
		record("B", "pct", val(1)),
		record("C", "pct", val(4)),
		record("D", "pct", val(2)),
		record("E", "pct", val(3)),
	}

	Apply(records, []Key{{Column: "Rank", Field: "pct", Direction: Descending}})

	// Every rank in 1..N appears exactly once.
	seen := map[int]bool{}
	for _, rec := range records {
		r := rec.Ranks["Rank"]
		assert.GreaterOrEqual(t, r, 1)
		assert.LessOrEqual(t, r, len(records))
		assert.False(t, seen[r], "rank %d assigned twice", r)
		seen[r] = true
	}
}

func TestApplyTiesKeepInputOrder(t *testing.T) {
	first := record("First", "pct", val(12.0))
	second := record("Second", "pct", val(12.0))

	Apply([]*domain.Record{first, second}, []Key{{Column: "Rank", Field: "pct", Direction: Descending}})

	assert.Equal(t, 1, first.Ranks["Rank"])
	assert.Equal(t, 2, second.Ranks["Rank"])
}

func TestApplyAbsentValues(t *testing.T) {
	t.Run("absent sorts last on descending keys", func(t *testing.T) {
		records := []*domain.Record{
			record("Missing", "pct", nil),
			record("Low", "pct", val(0.1)),
			record("High", "pct", val(9.9)),
		}
		Apply(records, []Key{{Column: "Rank", Field: "pct", Direction: Descending}})
		assert.Equal(t, []int{3, 2, 1}, ranksOf(records, "Rank"))
	})

	t.Run("absent sorts last on ascending keys", func(t *testing.T) {
		// Equivalent to substituting 100 for the missing percentage.
		records := []*domain.Record{
			record("Missing", "pct", nil),
			record("High", "pct", val(99.0)),
			record("Low", "pct", val(2.0)),
		}
		Apply(records, []Key{{Column: "Rank", Field: "pct", Direction: Ascending}})
		assert.Equal(t, []int{3, 2, 1}, ranksOf(records, "Rank"))
	})
}

func TestApplyIsIdempotent(t *testing.T) {
	records := []*domain.Record{
		record("A", "pct", val(3)),
		record("B", "pct", val(1)),
		record("C", "pct", nil),
	}
	keys := []Key{{Column: "Rank", Field: "pct", Direction: Descending}}

	Apply(records, keys)
	first := ranksOf(records, "Rank")
	Apply(records, keys)

	assert.Equal(t, first, ranksOf(records, "Rank"))
}

func TestApplyKeysAreIndependent(t *testing.T) {
	a := &domain.Record{Geography: "A", Values: map[string]*float64{"x": val(1), "y": val(9)}}
	b := &domain.Record{Geography: "B", Values: map[string]*float64{"x": val(2), "y": val(8)}}

	Apply([]*domain.Record{a, b}, []Key{
		{Column: "X Rank", Field: "x", Direction: Descending},
		{Column: "Y Rank", Field: "y", Direction: Descending},
	})

	require.Equal(t, 2, a.Ranks["X Rank"])
	require.Equal(t, 1, b.Ranks["X Rank"])
	// The second key sees the original order, not the first key's sort.
	assert.Equal(t, 1, a.Ranks["Y Rank"])
	assert.Equal(t, 2, b.Ranks["Y Rank"])
}

func TestApplyNoKeys(t *testing.T) {
	records := []*domain.Record{record("A", "pct", val(1))}
	Apply(records, nil)
	assert.Empty(t, records[0].Ranks)
}
