// Package app wires the pipeline's components together from a loaded
// configuration: client, coordinator, recipes, driver, and writer.
package app

import (
	"fmt"
	"log/slog"

	"acs-redbook/internal/census"
	"acs-redbook/internal/config"
	"acs-redbook/internal/pipeline"
	"acs-redbook/internal/report"
	"acs-redbook/internal/transform"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// App is the fully wired pipeline, ready for one pass.
type App struct {
	Driver  *pipeline.Driver
	Writer  *report.Writer
	Recipes []transform.Recipe
}

// New wires client, fetch coordinator, recipe set, driver, and writer
// from the provided deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger

	recipes := transform.Defaults()
	if cfg.RecipesFile != "" {
		loaded, err := transform.LoadRecipes(cfg.RecipesFile)
		if err != nil {
			return nil, fmt.Errorf("load recipes: %w", err)
		}
		recipes = loaded
		logger.Info("using recipe overrides", "path", cfg.RecipesFile, "recipes", len(recipes))
	}
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipe: %w", err)
		}
	}

	client := census.NewClient(census.ClientOptions{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Timeout:        cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         logger,
	})
	coordinator := census.NewCoordinator(client, cfg.MaxRetries, cfg.RetryDelay, logger)
	driver := pipeline.NewDriver(coordinator, recipes, cfg.Year, cfg.Survey, logger)

	return &App{
		Driver:  driver,
		Writer:  report.NewWriter(logger),
		Recipes: recipes,
	}, nil
}
