package census

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// FetchRequest identifies one table fetch: which ACS table, for which
// survey year and variant, filtered to which geographies.
type FetchRequest struct {
	TableID   string // ACS table id, e.g. S0101
	Year      int
	Survey    string // SurveyACS1 or SurveyACS5
	Geography string // e.g. "state:*"
}

// FetchResult is a successful fetch: the raw table, the label index that
// describes its columns, and the year the data actually came from (one
// less than requested when the year fallback fired).
type FetchResult struct {
	Table     Table
	Variables Variables
	Year      int
}

// Coordinator drives one table fetch end to end: dataset-path routing,
// best-effort metadata, bounded transport retries, and the single
// fallback to the prior year when the requested one is not published
// yet. It never lets an error class it knows about escape as anything
// but a plain error return.
type Coordinator struct {
	client     *Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewCoordinator builds a Coordinator. maxRetries is the number of
// retries after the initial attempt (0 means a single attempt);
// retryDelay is slept between attempts.
func NewCoordinator(client *Client, maxRetries int, retryDelay time.Duration, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		client:     client,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger.With("component", "fetch"),
	}
}

// Fetch acquires (rows, label index) for one table.
//
// Transport failures, malformed bodies, and header-only results all
// consume retry attempts. A 404 does not: it triggers, exactly once, a
// refetch against the prior year (the newest ACS release routinely
// lags the calendar), and a second 404 ends the fetch as a failure.
func (co *Coordinator) Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	path := DatasetPath(req.TableID, req.Survey)
	year := req.Year
	vars := co.variables(ctx, req.TableID, year, path)

	fellBack := false
	retries := 0
	for {
		tbl, err := co.client.TableData(ctx, path, year, req.TableID, req.Geography)
		if err == nil {
			return &FetchResult{Table: tbl, Variables: vars, Year: year}, nil
		}

		if errors.Is(err, ErrNotFound) {
			if fellBack {
				return nil, fmt.Errorf("table %s: no data for %d or %d: %w", req.TableID, req.Year, year, err)
			}
			fellBack = true
			year--
			co.logger.Info("table not published for requested year, trying prior year",
				"table", req.TableID, "requested", req.Year, "fallback", year)
			// The label index is scoped to (table, year, path); refetch it
			// so codes match the data actually returned.
			vars = co.variables(ctx, req.TableID, year, path)
			continue
		}

		if retries >= co.maxRetries {
			return nil, fmt.Errorf("table %s year %d: giving up after %d attempts: %w", req.TableID, year, retries+1, err)
		}
		retries++
		co.logger.Warn("fetch attempt failed, retrying",
			"table", req.TableID, "year", year, "attempt", retries, "max_retries", co.maxRetries, "error", err)
		if err := sleep(ctx, co.retryDelay); err != nil {
			return nil, err
		}
	}
}

// variables degrades metadata failures to an empty index: downstream
// resolution then yields absent fields instead of aborting the table.
func (co *Coordinator) variables(ctx context.Context, tableID string, year int, path string) Variables {
	vars, err := co.client.Variables(ctx, tableID, year, path)
	if err != nil {
		co.logger.Warn("variable metadata unavailable, fields will be absent",
			"table", tableID, "year", year, "error", err)
		return Variables{}
	}
	return vars
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
