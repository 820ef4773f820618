package mission

import (
	"fmt"
	"strings"

	"github.com/meridius/solver-pi/internal/flownet"
	"github.com/meridius/solver-pi/internal/models"
)

// Layer tags attached to network nodes, ordered source to sink. Rendering
// groups nodes into columns by these.
const (
	LayerSource = iota
	LayerCharacter
	LayerPlanet
	LayerPlanetResource
	LayerResource
	LayerSink
)

const (
	sourceName = "Source"
	sinkName   = "Sink"

	planetResourceSep = "|"
)

// planetResourceName builds the shared node name for a planet/resource pair
func planetResourceName(planetID string, r models.Resource) string {
	return planetID + planetResourceSep + string(r)
}

// ParsePlanetResource splits a planet/resource node name back into its parts.
// Resource names never contain the separator, so splitting on its last
// occurrence is safe even for planet ids that do.
func ParsePlanetResource(name string) (string, models.Resource, bool) {
	i := strings.LastIndex(name, planetResourceSep)
	if i < 0 {
		return "", "", false
	}
	return name[:i], models.Resource(name[i+1:]), true
}

// checkIdentifiers rejects identities that would collide in the shared node
// namespace. Characters, planets, and resources live in one graph, so a name
// appearing in two roles would silently merge two nodes.
func checkIdentifiers(characters []models.Character, planets []models.Planet, targets []models.ResourceTarget) error {
	planetIDs := make(map[string]bool, len(planets))
	for _, p := range planets {
		planetIDs[p.ID] = true
	}
	demanded := make(map[string]bool, len(targets))
	for _, t := range targets {
		demanded[string(t.Resource)] = true
	}

	for _, c := range characters {
		switch {
		case c.ID == sourceName || c.ID == sinkName:
			return fmt.Errorf("%w: character id %q is reserved", models.ErrInvalidInput, c.ID)
		case planetIDs[c.ID]:
			return fmt.Errorf("%w: character id %q collides with a planet id", models.ErrInvalidInput, c.ID)
		case demanded[c.ID]:
			return fmt.Errorf("%w: character id %q collides with a resource name", models.ErrInvalidInput, c.ID)
		}
	}
	for _, p := range planets {
		switch {
		case p.ID == sourceName || p.ID == sinkName:
			return fmt.Errorf("%w: planet id %q is reserved", models.ErrInvalidInput, p.ID)
		case demanded[p.ID]:
			return fmt.Errorf("%w: planet id %q collides with a resource name", models.ErrInvalidInput, p.ID)
		}
	}
	return nil
}

// buildNetwork lays out the five-layer flow network for one solve. Creation
// order follows input order throughout, which fixes edge insertion order and
// with it every downstream tie-break.
//
// Capacities and costs per layer:
//
//	Source -> Character        max_visits      0
//	Character -> Planet        1               0 if the pair is in the prior plan, else switchingCost
//	Planet -> PlanetResource   len(characters) -abundance
//	PlanetResource -> Resource len(characters) 0
//	Resource -> Sink           target quantity 0
//
// Character->Planet edges are omitted for banned planets. PlanetResource
// nodes exist only for demanded resources; Resource nodes exist for every
// demanded resource even when no planet offers it.
func buildNetwork(characters []models.Character, planets []models.Planet, targets []models.ResourceTarget, prior models.PriorPlan, switchingCost int) (*flownet.Network, int, int) {
	net := flownet.New()
	source := net.AddNode(sourceName, LayerSource)

	perPairCap := len(characters)

	for _, c := range characters {
		charIdx := net.AddNode(c.ID, LayerCharacter)
		net.AddEdge(source, charIdx, c.MaxVisits, 0)

		for _, p := range planets {
			if c.IsBanned(p.ID) {
				continue
			}
			planetIdx := net.AddNode(p.ID, LayerPlanet)
			cost := switchingCost
			if prior.Visited(c.ID, p.ID) {
				cost = 0
			}
			net.AddEdge(charIdx, planetIdx, 1, cost)
		}
	}

	demanded := make(map[models.Resource]bool, len(targets))
	for _, t := range targets {
		demanded[t.Resource] = true
	}

	for _, p := range planets {
		planetIdx := net.AddNode(p.ID, LayerPlanet)
		for _, ra := range p.Resources {
			if !demanded[ra.Resource] {
				continue
			}
			prIdx := net.AddNode(planetResourceName(p.ID, ra.Resource), LayerPlanetResource)
			resIdx := net.AddNode(string(ra.Resource), LayerResource)
			net.AddEdge(planetIdx, prIdx, perPairCap, -ra.Abundance)
			net.AddEdge(prIdx, resIdx, perPairCap, 0)
		}
	}

	sink := net.AddNode(sinkName, LayerSink)
	for _, t := range targets {
		resIdx := net.AddNode(string(t.Resource), LayerResource)
		net.AddEdge(resIdx, sink, t.Quantity, 0)
	}

	return net, source, sink
}
