package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every structural validation failure.
var ErrInvalidInput = errors.New("mission: invalid input")

// ValidateInput rejects structurally broken mission inputs before any network
// is built. Infeasible demand is not structural: a valid instance whose
// targets cannot all be met still solves to a partial plan.
func ValidateInput(characters []Character, planets []Planet, targets []ResourceTarget, prior PriorPlan, switchingCost int) error {
	if switchingCost < 0 {
		return fmt.Errorf("%w: negative switching cost %d", ErrInvalidInput, switchingCost)
	}

	charIDs := make(map[string]bool, len(characters))
	for _, c := range characters {
		if c.ID == "" {
			return fmt.Errorf("%w: character with empty id", ErrInvalidInput)
		}
		if charIDs[c.ID] {
			return fmt.Errorf("%w: duplicate character id %q", ErrInvalidInput, c.ID)
		}
		charIDs[c.ID] = true
		if c.MaxVisits < 0 {
			return fmt.Errorf("%w: character %q has negative max_visits %d", ErrInvalidInput, c.ID, c.MaxVisits)
		}
	}

	planetIDs := make(map[string]bool, len(planets))
	for _, p := range planets {
		if p.ID == "" {
			return fmt.Errorf("%w: planet with empty id", ErrInvalidInput)
		}
		if planetIDs[p.ID] {
			return fmt.Errorf("%w: duplicate planet id %q", ErrInvalidInput, p.ID)
		}
		planetIDs[p.ID] = true

		seen := make(map[Resource]bool, len(p.Resources))
		for _, ra := range p.Resources {
			if ra.Resource == "" {
				return fmt.Errorf("%w: planet %q has an unnamed resource", ErrInvalidInput, p.ID)
			}
			if seen[ra.Resource] {
				return fmt.Errorf("%w: planet %q lists resource %q twice", ErrInvalidInput, p.ID, ra.Resource)
			}
			seen[ra.Resource] = true
			if ra.Abundance < 0 {
				return fmt.Errorf("%w: planet %q has negative abundance %d for %q", ErrInvalidInput, p.ID, ra.Abundance, ra.Resource)
			}
		}
	}

	targetSeen := make(map[Resource]bool, len(targets))
	for _, t := range targets {
		if t.Resource == "" {
			return fmt.Errorf("%w: demand target with empty resource name", ErrInvalidInput)
		}
		if targetSeen[t.Resource] {
			return fmt.Errorf("%w: duplicate demand target for %q", ErrInvalidInput, t.Resource)
		}
		targetSeen[t.Resource] = true
		if t.Quantity < 0 {
			return fmt.Errorf("%w: negative demand quantity %d for %q", ErrInvalidInput, t.Quantity, t.Resource)
		}
	}

	// Prior plans may mention resources that are no longer demanded (they just
	// never match during extraction), but unknown characters or planets mean
	// the plan belongs to different inputs.
	for charID, byPlanet := range prior {
		if !charIDs[charID] {
			return fmt.Errorf("%w: prior plan references unknown character %q", ErrInvalidInput, charID)
		}
		for planetID := range byPlanet {
			if !planetIDs[planetID] {
				return fmt.Errorf("%w: prior plan references unknown planet %q", ErrInvalidInput, planetID)
			}
		}
	}

	return nil
}
