package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meridius/solver-pi/internal/converter"
	"github.com/meridius/solver-pi/internal/models"
	"github.com/meridius/solver-pi/internal/solver/mission"
)

// MissionConfig is the mission.yaml structure. Characters and targets are
// lists, not maps, so their file order carries through to the solver.
type MissionConfig struct {
	SwitchingCost int             `yaml:"switching_cost"`
	Characters    []CharacterSpec `yaml:"characters"`
	Targets       []TargetSpec    `yaml:"targets"`
}

// CharacterSpec is one character entry in mission.yaml
type CharacterSpec struct {
	Name      string   `yaml:"name"`
	MaxVisits int      `yaml:"max_visits"`
	Banned    []string `yaml:"banned,omitempty"`
}

// TargetSpec is one demand entry in mission.yaml. Resource takes either a
// raw resource name or the refined product made from it.
type TargetSpec struct {
	Resource string `yaml:"resource"`
	Quantity int    `yaml:"quantity"`
}

// LoadMission reads mission.yaml. Omitted switching_cost falls back to the
// solver default; an explicit zero survives for pure-yield planning.
func LoadMission(path string) (MissionConfig, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read mission file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() MissionConfig {
	return MissionConfig{
		SwitchingCost: mission.DefaultSwitchingCost,
	}
}

// Normalize trims whitespace from every name field
func (c *MissionConfig) Normalize() {
	for i := range c.Characters {
		c.Characters[i].Name = strings.TrimSpace(c.Characters[i].Name)
		for j := range c.Characters[i].Banned {
			c.Characters[i].Banned[j] = strings.TrimSpace(c.Characters[i].Banned[j])
		}
	}
	for i := range c.Targets {
		c.Targets[i].Resource = strings.TrimSpace(c.Targets[i].Resource)
	}
}

// Validate rejects configs the solver could only fail on later, with file
// level context the solver cannot give.
func (c *MissionConfig) Validate() error {
	if c.SwitchingCost < 0 {
		return fmt.Errorf("switching_cost must not be negative, got %d", c.SwitchingCost)
	}
	if len(c.Characters) == 0 {
		return fmt.Errorf("mission needs at least one character")
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("mission needs at least one target")
	}

	seen := make(map[string]bool, len(c.Characters))
	for _, cs := range c.Characters {
		if cs.Name == "" {
			return fmt.Errorf("character with empty name")
		}
		if seen[cs.Name] {
			return fmt.Errorf("character %q listed twice", cs.Name)
		}
		seen[cs.Name] = true
		if cs.MaxVisits < 0 {
			return fmt.Errorf("character %q has negative max_visits %d", cs.Name, cs.MaxVisits)
		}
	}

	targetSeen := make(map[models.Resource]bool, len(c.Targets))
	for _, ts := range c.Targets {
		if ts.Resource == "" {
			return fmt.Errorf("target with empty resource name")
		}
		resolved, ok := converter.ResolveResourceName(ts.Resource)
		if !ok {
			return fmt.Errorf("target resource %q is neither a raw resource nor a refined product", ts.Resource)
		}
		if targetSeen[resolved] {
			return fmt.Errorf("target resource %q appears twice (as raw or refined name)", ts.Resource)
		}
		targetSeen[resolved] = true
		if ts.Quantity < 0 {
			return fmt.Errorf("target %q has negative quantity %d", ts.Resource, ts.Quantity)
		}
	}
	return nil
}

// CharacterList converts the config entries to solver characters in file order
func (c *MissionConfig) CharacterList() []models.Character {
	characters := make([]models.Character, 0, len(c.Characters))
	for _, cs := range c.Characters {
		characters = append(characters, models.Character{
			ID:        cs.Name,
			MaxVisits: cs.MaxVisits,
			Banned:    cs.Banned,
		})
	}
	return characters
}

// ResolveTargets translates target entries to raw-resource demand in file
// order. Refined product names are translated to the raw resource they
// consume.
func (c *MissionConfig) ResolveTargets() ([]models.ResourceTarget, error) {
	targets := make([]models.ResourceTarget, 0, len(c.Targets))
	for _, ts := range c.Targets {
		resolved, ok := converter.ResolveResourceName(ts.Resource)
		if !ok {
			return nil, fmt.Errorf("target resource %q is neither a raw resource nor a refined product", ts.Resource)
		}
		targets = append(targets, models.ResourceTarget{
			Resource: resolved,
			Quantity: ts.Quantity,
		})
	}
	return targets, nil
}
