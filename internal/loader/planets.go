// Package loader reads survey data and mission configuration from disk and
// turns them into solver inputs.
package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/meridius/solver-pi/internal/models"
)

//go:embed planets.schema.json
var planetsSchemaJSON string

var planetsSchema = jsonschema.MustCompileString("planets.schema.json", planetsSchemaJSON)

// planetJSON mirrors the survey file format: abundances keyed by resource
// name, as fractional percentages straight from the scanner.
type planetJSON struct {
	ID        string             `json:"id"`
	Resources map[string]float64 `json:"resources"`
}

// LoadPlanets reads surveyed planets from a JSON file holding either a
// single planet object or an array of them.
func LoadPlanets(path string) ([]models.Planet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read planets file: %w", err)
	}
	planets, err := ParsePlanets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return planets, nil
}

// ParsePlanets parses and validates survey JSON. Resource names must be
// known raw resources; abundances are rounded to whole percent. Each
// planet's resources come out sorted by name so downstream ordering never
// depends on JSON map order.
func ParsePlanets(data []byte) ([]models.Planet, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse planets JSON: %w", err)
	}
	list, ok := decoded.([]any)
	if !ok {
		list = []any{decoded}
	}
	if err := planetsSchema.Validate(list); err != nil {
		return nil, fmt.Errorf("planets JSON rejected by schema: %w", err)
	}

	normalized, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize planets JSON: %w", err)
	}
	var raw []planetJSON
	if err := json.Unmarshal(normalized, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse planets JSON: %w", err)
	}

	planets := make([]models.Planet, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, rp := range raw {
		if seen[rp.ID] {
			return nil, fmt.Errorf("duplicate planet %q in survey data", rp.ID)
		}
		seen[rp.ID] = true

		names := make([]string, 0, len(rp.Resources))
		for name := range rp.Resources {
			if !models.KnownResource(name) {
				return nil, fmt.Errorf("planet %q offers unknown resource %q", rp.ID, name)
			}
			names = append(names, name)
		}
		sort.Strings(names)

		resources := make([]models.ResourceAbundance, 0, len(names))
		for _, name := range names {
			resources = append(resources, models.ResourceAbundance{
				Resource:  models.Resource(name),
				Abundance: int(math.Round(rp.Resources[name])),
			})
		}
		planets = append(planets, models.Planet{ID: rp.ID, Resources: resources})
	}
	return planets, nil
}
