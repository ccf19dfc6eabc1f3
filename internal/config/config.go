// Package config handles run configuration for the scrape pipeline.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"acs-redbook/internal/census"
)

// Config holds everything one pipeline pass needs. Values are resolved
// by the CLI with flag > env > default precedence and passed explicitly;
// there is no process-wide state.
type Config struct {
	Year    int    // ACS data year (default: current year minus two)
	Survey  string // census.SurveyACS1 or census.SurveyACS5
	APIKey  string // optional; raises the upstream request quota
	BaseURL string // API host, overridable for tests

	OutputFile  string // destination xlsx path
	RecipesFile string // optional YAML recipe override; empty = built-ins

	MaxRetries     int           // transport retries after the first attempt
	RetryDelay     time.Duration // sleep between attempts
	RequestTimeout time.Duration // per-request HTTP timeout

	// Local throttle for keyless access; RPS <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string // debug, info, warn, error (default "info")

	// Warnings collects non-fatal notes generated during config loading.
	// The caller logs them once the logger is initialised.
	Warnings []string
}

// Default returns the configuration used when no flags are given. The
// newest ACS release typically trails the calendar by two years.
func Default() *Config {
	return &Config{
		Year:           time.Now().Year() - 2,
		Survey:         census.SurveyACS1,
		BaseURL:        census.DefaultBaseURL,
		OutputFile:     "redbook_acs_output.xlsx",
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		RequestTimeout: 30 * time.Second,
		RateLimitRPS:   2,
		RateLimitBurst: 1,
		LogLevel:       "info",
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks that the configuration is internally consistent.
// Non-fatal findings are appended to Warnings instead of failing.
func (c *Config) Validate() error {
	if c.Survey != census.SurveyACS1 && c.Survey != census.SurveyACS5 {
		return fmt.Errorf("unsupported survey %q: use %s or %s", c.Survey, census.SurveyACS1, census.SurveyACS5)
	}
	// The 1-year ACS first published in 2005.
	if c.Year < 2005 {
		return fmt.Errorf("year %d predates the ACS", c.Year)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be >= 0, got %s", c.RetryDelay)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	if c.APIKey == "" {
		c.Warnings = append(c.Warnings, "no API key set; keyless access is limited to 500 requests/day")
	}
	return nil
}
