// Package converter provides conversions between refined-product (P1) resource
// names used in demand lists and the raw (P0) resource names found in planet
// survey data.
package converter

import (
	"github.com/meridius/solver-pi/internal/models"
)

// RefinedToRaw converts a refined-product name to the raw resource it is made from
func RefinedToRaw(name string) (models.Resource, bool) {
	switch name {
	case "Bacteria":
		return models.Microorganisms, true
	case "Biofuels":
		return models.CarbonCompounds, true
	case "Biomass":
		return models.PlankticColonies, true
	case "Chiral Structures":
		return models.NonCSCrystals, true
	case "Electrolytes":
		return models.IonicSolutions, true
	case "Industrial Fibers":
		return models.Autotrophs, true
	case "Oxidizing Compound":
		return models.ReactiveGas, true
	case "Oxygen":
		return models.NobleGas, true
	case "Plasmoids":
		return models.SuspendedPlasma, true
	case "Precious Metals":
		return models.NobleMetals, true
	case "Proteins":
		return models.ComplexOrganisms, true
	case "Reactive Metals":
		return models.BaseMetals, true
	case "Silicon":
		return models.FelsicMagma, true
	case "Toxic Metals":
		return models.HeavyMetals, true
	case "Water":
		return models.AqueousLiquids, true
	default:
		return "", false
	}
}

// RawToRefined converts a raw resource to the refined-product name it yields
func RawToRefined(r models.Resource) (string, bool) {
	switch r {
	case models.Microorganisms:
		return "Bacteria", true
	case models.CarbonCompounds:
		return "Biofuels", true
	case models.PlankticColonies:
		return "Biomass", true
	case models.NonCSCrystals:
		return "Chiral Structures", true
	case models.IonicSolutions:
		return "Electrolytes", true
	case models.Autotrophs:
		return "Industrial Fibers", true
	case models.ReactiveGas:
		return "Oxidizing Compound", true
	case models.NobleGas:
		return "Oxygen", true
	case models.SuspendedPlasma:
		return "Plasmoids", true
	case models.NobleMetals:
		return "Precious Metals", true
	case models.ComplexOrganisms:
		return "Proteins", true
	case models.BaseMetals:
		return "Reactive Metals", true
	case models.FelsicMagma:
		return "Silicon", true
	case models.HeavyMetals:
		return "Toxic Metals", true
	case models.AqueousLiquids:
		return "Water", true
	default:
		return "", false
	}
}

// ResolveResourceName maps a demand-list name to a raw resource. Refined names
// are translated first, so "Industrial Fibers" resolves to its source resource
// rather than to the raw type of the same name.
func ResolveResourceName(name string) (models.Resource, bool) {
	if raw, ok := RefinedToRaw(name); ok {
		return raw, true
	}
	if models.KnownResource(name) {
		return models.Resource(name), true
	}
	return "", false
}

// DisplayName returns the refined-product name for a raw resource when one
// exists, falling back to the raw name itself.
func DisplayName(r models.Resource) string {
	if refined, ok := RawToRefined(r); ok {
		return refined
	}
	return string(r)
}
