package transform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRecipes reads a recipe set from a YAML file, replacing the
// built-in Defaults for the run. Every recipe is validated before the
// set is accepted.
func LoadRecipes(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	var recipes []Recipe
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse recipes %s: %w", path, err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("recipes %s: no recipes defined", path)
	}

	seen := map[string]bool{}
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("recipes %s: %w", path, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("recipes %s: duplicate recipe id %s", path, r.ID)
		}
		seen[r.ID] = true
	}
	return recipes, nil
}
