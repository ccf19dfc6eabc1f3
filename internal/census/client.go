package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Census API host.
const DefaultBaseURL = "https://api.census.gov"

var (
	// ErrNotFound marks an explicit 404 from the API, typically a table
	// that has no release for the requested year yet.
	ErrNotFound = errors.New("not found")

	// ErrEmptyResult marks a response that parsed but carried no data
	// rows. A header-only table is a failure, not an empty success.
	ErrEmptyResult = errors.New("empty result")
)

// StatusError is a non-2xx response other than the distinguished 404.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// ClientOptions configure a Client. Zero values select defaults.
type ClientOptions struct {
	BaseURL string        // API host, default DefaultBaseURL
	APIKey  string        // optional; raises the upstream rate limit
	Timeout time.Duration // per-request timeout, default 30s
	// Keyless access is throttled upstream, so outbound requests pass
	// through a local limiter. RPS <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *slog.Logger
}

// Client is a thin HTTP client for the two ACS endpoints the pipeline
// needs: group variable metadata and group data fetches.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient builds a Client, applying defaults for unset options.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpc:   &http.Client{Timeout: opts.Timeout},
		limiter: limiter,
		logger:  opts.Logger.With("component", "census-client"),
	}
}

// Variables fetches the variable metadata for one (table, year,
// dataset-path). The caller decides how to degrade on error; this method
// only reports it.
func (c *Client) Variables(ctx context.Context, tableID string, year int, datasetPath string) (Variables, error) {
	u := fmt.Sprintf("%s/data/%d/acs/%s/groups/%s.json", c.baseURL, year, datasetPath, tableID)

	body, err := c.get(ctx, u)
	if err != nil {
		return Variables{}, err
	}

	var payload struct {
		Variables map[string]struct {
			Label string `json:"label"`
		} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Variables{}, fmt.Errorf("decode variable metadata: %w", err)
	}

	labels := make(map[string]string, len(payload.Variables))
	for code, v := range payload.Variables {
		labels[code] = v.Label
	}
	return NewVariables(labels), nil
}

// TableData fetches the raw data rows for one (table, year, geography).
// It returns ErrNotFound on an explicit 404 and ErrEmptyResult when the
// response carries no rows beyond the header.
func (c *Client) TableData(ctx context.Context, datasetPath string, year int, tableID, geography string) (Table, error) {
	q := url.Values{}
	q.Set("get", fmt.Sprintf("group(%s)", tableID))
	q.Set("for", geography)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u := fmt.Sprintf("%s/data/%d/acs/%s?%s", c.baseURL, year, datasetPath, q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return Table{}, err
	}

	var raw [][]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Table{}, fmt.Errorf("decode table %s: %w", tableID, err)
	}
	if len(raw) < 2 {
		return Table{}, fmt.Errorf("table %s year %d: %w", tableID, year, ErrEmptyResult)
	}

	cells := make([][]string, len(raw))
	for i, row := range raw {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = cellString(v)
		}
	}

	tbl, err := NewTable(cells)
	if err != nil {
		return Table{}, fmt.Errorf("malformed table %s: %w", tableID, err)
	}
	return tbl, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", redactKey(u), err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", redactKey(u), ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: redactKey(u)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", redactKey(u), err)
	}
	return body, nil
}

// cellString normalizes a decoded JSON cell. The API serves cells as
// strings, but null and bare numbers do occur.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// redactKey strips the API key from a URL before it reaches logs or
// error messages.
func redactKey(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	q := parsed.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}
