package models

// Resource represents a raw planetary resource type (P0 naming)
type Resource string

const (
	AqueousLiquids   Resource = "Aqueous Liquids"
	Autotrophs       Resource = "Autotrophs"
	BaseMetals       Resource = "Base Metals"
	CarbonCompounds  Resource = "Carbon Compounds"
	ComplexOrganisms Resource = "Complex Organisms"
	FelsicMagma      Resource = "Felsic Magma"
	HeavyMetals      Resource = "Heavy Metals"
	IndustrialFibers Resource = "Industrial Fibers"
	IonicSolutions   Resource = "Ionic Solutions"
	Microorganisms   Resource = "Microorganisms"
	NobleGas         Resource = "Noble Gas"
	NobleMetals      Resource = "Noble Metals"
	NonCSCrystals    Resource = "Non-CS Crystals"
	PlankticColonies Resource = "Planktic Colonies"
	ReactiveGas      Resource = "Reactive Gas"
	SuspendedPlasma  Resource = "Suspended Plasma"
)

// AllResources returns all raw resource types in deterministic order
func AllResources() []Resource {
	return []Resource{
		AqueousLiquids, Autotrophs, BaseMetals, CarbonCompounds,
		ComplexOrganisms, FelsicMagma, HeavyMetals, IndustrialFibers,
		IonicSolutions, Microorganisms, NobleGas, NobleMetals,
		NonCSCrystals, PlankticColonies, ReactiveGas, SuspendedPlasma,
	}
}

// KnownResource reports whether name is one of the raw resource types
func KnownResource(name string) bool {
	for _, r := range AllResources() {
		if string(r) == name {
			return true
		}
	}
	return false
}

// ResourceAbundance is one resource offered by a planet with its survey abundance
type ResourceAbundance struct {
	Resource  Resource `json:"resource"`
	Abundance int      `json:"abundance"`
}

// Planet represents a surveyed planet and what it offers.
// Resources keeps a fixed slice order so downstream processing is
// reproducible regardless of where the data came from.
type Planet struct {
	ID        string              `json:"id"`
	Resources []ResourceAbundance `json:"resources"`
}

// Abundance returns the surveyed abundance of a resource on this planet
func (p *Planet) Abundance(r Resource) (int, bool) {
	for _, ra := range p.Resources {
		if ra.Resource == r {
			return ra.Abundance, true
		}
	}
	return 0, false
}

// Character represents a pilot with a visit quota
type Character struct {
	ID        string   `json:"id"`
	MaxVisits int      `json:"max_visits"`
	Banned    []string `json:"banned,omitempty"`
}

// IsBanned reports whether the character may never visit the given planet
func (c *Character) IsBanned(planetID string) bool {
	for _, b := range c.Banned {
		if b == planetID {
			return true
		}
	}
	return false
}

// ResourceTarget is one entry of the demand set
type ResourceTarget struct {
	Resource Resource `json:"resource"`
	Quantity int      `json:"quantity"`
}

// PriorPlan records which resource each character collected at each planet
// in a previously accepted plan. The new solve is biased toward keeping
// these pairings intact.
type PriorPlan map[string]map[string]Resource

// Collected returns the resource the character previously collected at the planet
func (p PriorPlan) Collected(character, planet string) (Resource, bool) {
	if p == nil {
		return "", false
	}
	planets, ok := p[character]
	if !ok {
		return "", false
	}
	r, ok := planets[planet]
	return r, ok
}

// HasCharacter reports whether the plan records any history for the character
func (p PriorPlan) HasCharacter(character string) bool {
	if p == nil {
		return false
	}
	planets, ok := p[character]
	return ok && len(planets) > 0
}

// Visited reports whether the character was assigned to the planet in the prior plan
func (p PriorPlan) Visited(character, planet string) bool {
	_, ok := p.Collected(character, planet)
	return ok
}

// OrderStatus classifies a work order relative to the prior plan
type OrderStatus string

const (
	StatusUnchanged      OrderStatus = "unchanged"
	StatusNewCharacter   OrderStatus = "new_character"
	StatusPlanetSwitch   OrderStatus = "planet_switch"
	StatusResourceSwitch OrderStatus = "resource_switch"
)

// AllOrderStatuses returns all order statuses in deterministic order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{StatusUnchanged, StatusNewCharacter, StatusPlanetSwitch, StatusResourceSwitch}
}

// WorkOrder is one visit in a character's plan. Resource is empty in the
// degenerate case where the visit carries no collection.
type WorkOrder struct {
	Planet   string      `json:"planet"`
	Resource Resource    `json:"resource,omitempty"`
	Yield    int         `json:"yield"`
	Status   OrderStatus `json:"status"`
}

// Collected reports whether the visit actually picks something up
func (w WorkOrder) Collected() bool {
	return w.Resource != ""
}

// CharacterOrders holds one character's work orders in visit order
type CharacterOrders struct {
	Character string      `json:"character"`
	Orders    []WorkOrder `json:"orders"`
}
