package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acs-redbook/internal/census"
	"acs-redbook/internal/domain"
	"acs-redbook/internal/transform"
)

type stubFetcher struct {
	results map[string]*census.FetchResult
	errs    map[string]error
	calls   []census.FetchRequest
}

func (s *stubFetcher) Fetch(_ context.Context, req census.FetchRequest) (*census.FetchResult, error) {
	s.calls = append(s.calls, req)
	if err, ok := s.errs[req.TableID]; ok {
		return nil, err
	}
	return s.results[req.TableID], nil
}

func ageResult(t *testing.T, year int) *census.FetchResult {
	t.Helper()
	tbl, err := census.NewTable([][]string{
		{"NAME", "S0101_C02_001E"},
		{"Alabama", "21.9"},
		{"Utah", "27.8"},
	})
	require.NoError(t, err)
	return &census.FetchResult{
		Table: tbl,
		Variables: census.NewVariables(map[string]string{
			"S0101_C02_001E": "Estimate!!Percent!!Total population!!AGE!!Under 18 years",
		}),
		Year: year,
	}
}

func ageRecipe() transform.Recipe {
	return transform.Recipe{
		ID:         "RB002",
		TableID:    "S0101",
		Name:       "Age Group by % of Population",
		SheetName:  "Age Group by % of Population",
		Geography:  "state:*",
		SourceNote: "Source: ACS",
		Fields: []transform.FieldSpec{
			{Name: "%<18", Percent: true, Query: &transform.TermQuery{
				Required:  []string{"percent", "under 18"},
				Forbidden: []string{"male", "female"},
			}},
		},
		Ranks: []transform.RankSpec{{Column: "Rank", Field: "%<18"}},
		Columns: []transform.ColumnSpec{
			{Header: "State", Kind: "geography"},
			{Header: "Rank", Kind: "rank"},
			{Header: "%<18", Kind: "percent"},
		},
	}
}

func commuteRecipe() transform.Recipe {
	return transform.Recipe{
		ID:        "RB039",
		TableID:   "B08303",
		Name:      "Metropolitan Commuting",
		SheetName: "Metropolitan Commuting",
		Geography: "metropolitan statistical area/micropolitan statistical area:*",
		Fields: []transform.FieldSpec{
			{Name: "Average Commute Time", Query: &transform.TermQuery{Required: []string{"mean travel time"}}},
		},
		Ranks: []transform.RankSpec{{Column: "Rank", Field: "Average Commute Time"}},
		Columns: []transform.ColumnSpec{
			{Header: "Rank", Kind: "rank"},
			{Header: "Metro Area", Kind: "geography"},
			{Header: "Average Commute Time", Kind: "number"},
		},
	}
}

func TestDriverRun(t *testing.T) {
	t.Run("end to end over one table", func(t *testing.T) {
		fetcher := &stubFetcher{results: map[string]*census.FetchResult{"S0101": ageResult(t, 2023)}}
		d := NewDriver(fetcher, []transform.Recipe{ageRecipe()}, 2023, census.SurveyACS1, nil)

		result := d.Run(context.Background())

		require.Empty(t, result.Failures)
		require.Equal(t, 1, result.Succeeded())

		out := result.Tables["RB002"]
		require.NotNil(t, out)
		assert.Equal(t, "Age Group by % of Population", out.Name)
		assert.Equal(t, "Source: ACS", out.SourceNote)
		require.Len(t, out.Records, 2)

		// Utah has the larger %<18 and ranks first.
		assert.Equal(t, "Alabama", out.Records[0].Geography)
		assert.Equal(t, 2, out.Records[0].Ranks["Rank"])
		assert.Equal(t, 1, out.Records[1].Ranks["Rank"])

		// The fetch request carries the recipe's geography and config year.
		require.Len(t, fetcher.calls, 1)
		assert.Equal(t, "state:*", fetcher.calls[0].Geography)
		assert.Equal(t, 2023, fetcher.calls[0].Year)
	})

	t.Run("a failing table does not stop its siblings", func(t *testing.T) {
		fetcher := &stubFetcher{
			results: map[string]*census.FetchResult{"S0101": ageResult(t, 2023)},
			errs:    map[string]error{"B08303": errors.New("connection refused")},
		}
		d := NewDriver(fetcher, []transform.Recipe{commuteRecipe(), ageRecipe()}, 2023, census.SurveyACS1, nil)

		result := d.Run(context.Background())

		// Both tables were attempted, in order.
		require.Len(t, fetcher.calls, 2)
		assert.Equal(t, "B08303", fetcher.calls[0].TableID)
		assert.Equal(t, "S0101", fetcher.calls[1].TableID)

		assert.Equal(t, 1, result.Succeeded())
		require.Len(t, result.Failures, 1)
		f := result.Failures[0]
		assert.Equal(t, "RB039", f.TableID)
		assert.Equal(t, domain.FailureFetch, f.Class)
	})

	t.Run("fallback year annotates the provenance note", func(t *testing.T) {
		fetcher := &stubFetcher{results: map[string]*census.FetchResult{"S0101": ageResult(t, 2022)}}
		d := NewDriver(fetcher, []transform.Recipe{ageRecipe()}, 2023, census.SurveyACS1, nil)

		result := d.Run(context.Background())

		out := result.Tables["RB002"]
		require.NotNil(t, out)
		assert.Contains(t, out.SourceNote, "2022 data")
		assert.Contains(t, out.SourceNote, "2023 not yet published")
	})

	t.Run("ordered tables follow recipe order", func(t *testing.T) {
		fetcher := &stubFetcher{results: map[string]*census.FetchResult{
			"S0101":  ageResult(t, 2023),
			"B08303": ageResult(t, 2023), // shape is irrelevant here
		}}
		d := NewDriver(fetcher, []transform.Recipe{commuteRecipe(), ageRecipe()}, 2023, census.SurveyACS1, nil)

		result := d.Run(context.Background())

		ordered := result.OrderedTables()
		require.Len(t, ordered, 2)
		assert.Equal(t, "RB039", ordered[0].ID)
		assert.Equal(t, "RB002", ordered[1].ID)
	})

	t.Run("empty fetch result yields an empty table, not a crash", func(t *testing.T) {
		fetcher := &stubFetcher{results: map[string]*census.FetchResult{
			"S0101": {Year: 2023}, // zero-value table and variables
		}}
		d := NewDriver(fetcher, []transform.Recipe{ageRecipe()}, 2023, census.SurveyACS1, nil)

		result := d.Run(context.Background())
		require.Equal(t, 1, result.Succeeded())
		assert.Empty(t, result.Tables["RB002"].Records)
	})
}
