// Package pipeline sequences Fetch → Transform → Rank across the
// configured tables, collecting per-table successes and failures.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"acs-redbook/internal/census"
	"acs-redbook/internal/domain"
	"acs-redbook/internal/rank"
	"acs-redbook/internal/transform"
)

// Fetcher acquires raw rows plus a label index for one table.
type Fetcher interface {
	Fetch(ctx context.Context, req census.FetchRequest) (*census.FetchResult, error)
}

// Result is one full pipeline pass: the output tables that made it end
// to end, in recipe order, plus everything that failed and why.
type Result struct {
	Tables   map[string]*domain.OutputTable
	Order    []string // recipe order, for stable sheet ordering
	Failures []domain.Failure
}

// Succeeded reports the number of completed tables.
func (r *Result) Succeeded() int { return len(r.Tables) }

// OrderedTables returns the completed tables in recipe order.
func (r *Result) OrderedTables() []*domain.OutputTable {
	out := make([]*domain.OutputTable, 0, len(r.Tables))
	for _, id := range r.Order {
		if t, ok := r.Tables[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Driver runs the pipeline: one table at a time, no table's failure
// stopping its siblings.
type Driver struct {
	fetcher Fetcher
	recipes []transform.Recipe
	year    int
	survey  string
	logger  *slog.Logger
}

// NewDriver builds a Driver over the given recipe set.
func NewDriver(fetcher Fetcher, recipes []transform.Recipe, year int, survey string, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		fetcher: fetcher,
		recipes: recipes,
		year:    year,
		survey:  survey,
		logger:  logger.With("component", "pipeline"),
	}
}

// Run processes every configured recipe and never aborts early: fetch
// failures and processing failures are recorded and the driver moves on
// to the next table.
func (d *Driver) Run(ctx context.Context) *Result {
	result := &Result{Tables: make(map[string]*domain.OutputTable, len(d.recipes))}

	for i, rc := range d.recipes {
		result.Order = append(result.Order, rc.ID)
		log := d.logger.With("table", rc.ID, "acs_table", rc.TableID)
		log.Info("fetching table", "progress", fmt.Sprintf("%d/%d", i+1, len(d.recipes)), "name", rc.Name)

		fetched, err := d.fetcher.Fetch(ctx, census.FetchRequest{
			TableID:   rc.TableID,
			Year:      d.year,
			Survey:    d.survey,
			Geography: rc.Geography,
		})
		if err != nil {
			log.Error("fetch failed", "error", err)
			result.Failures = append(result.Failures, domain.Failure{
				TableID: rc.ID, Name: rc.Name, Class: domain.FailureFetch, Err: err,
			})
			continue
		}

		out, err := d.process(rc, fetched)
		if err != nil {
			log.Error("processing failed", "error", err)
			result.Failures = append(result.Failures, domain.Failure{
				TableID: rc.ID, Name: rc.Name, Class: domain.FailureProcess, Err: err,
			})
			continue
		}

		log.Info("table complete", "rows", len(out.Records), "year", fetched.Year)
		result.Tables[rc.ID] = out
	}
	return result
}

// process transforms and ranks one fetched table. A panic from
// unexpected data shapes is contained here, at the per-table boundary,
// and surfaced as that table's processing failure.
func (d *Driver) process(rc transform.Recipe, fetched *census.FetchResult) (out *domain.OutputTable, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("panic while processing %s: %v", rc.ID, p)
		}
	}()

	records := transform.Apply(rc, fetched.Table, fetched.Variables, fetched.Year)

	keys := make([]rank.Key, 0, len(rc.Ranks))
	for _, rk := range rc.RankKeys(fetched.Year) {
		dir := rank.Descending
		if rk.Ascending {
			dir = rank.Ascending
		}
		keys = append(keys, rank.Key{Column: rk.Column, Field: rk.Field, Direction: dir})
	}
	rank.Apply(records, keys)

	note := rc.SourceNote
	if fetched.Year != d.year {
		note = fmt.Sprintf("%s (%d data; %d not yet published)", note, fetched.Year, d.year)
	}

	return &domain.OutputTable{
		ID:         rc.ID,
		Name:       rc.Name,
		SheetName:  rc.SheetName,
		SourceNote: note,
		Columns:    rc.OutputColumns(fetched.Year),
		Records:    records,
	}, nil
}
