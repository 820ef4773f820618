package mission

import (
	"github.com/meridius/solver-pi/internal/flownet"
	"github.com/meridius/solver-pi/internal/models"
)

// extractOrders converts a solved network back into per-character work
// orders. Planets are processed in input order; at each planet the visiting
// characters are matched to the collected resource units, preferring the
// pairing the prior plan already had. The matching never changes yield or
// cost, both are fixed by the flow; it only decides which character carries
// which unit.
func extractOrders(net *flownet.Network, characters []models.Character, planets []models.Planet, prior models.PriorPlan) ([]models.CharacterOrders, int) {
	byChar := make(map[string][]models.WorkOrder, len(characters))
	for _, c := range characters {
		byChar[c.ID] = make([]models.WorkOrder, 0)
	}

	totalYield := 0
	for _, p := range planets {
		planetIdx, ok := net.NodeIndex(p.ID)
		if !ok {
			continue
		}

		visitors := visitorsOf(net, characters, planetIdx)
		items := itemsOf(net, planetIdx)

		assign := func(charID string, r models.Resource) {
			order := models.WorkOrder{
				Planet:   p.ID,
				Resource: r,
				Status:   classify(prior, charID, p.ID, r),
			}
			if r != "" {
				yield, _ := p.Abundance(r)
				order.Yield = yield
				totalYield += yield
			}
			byChar[charID] = append(byChar[charID], order)
		}

		// Stability pass: a visitor who previously collected one of the
		// pending units here keeps it.
		taken := make([]bool, len(items))
		pending := make([]string, 0, len(visitors))
		for _, charID := range visitors {
			prev, wasHere := prior.Collected(charID, p.ID)
			matched := false
			if wasHere {
				for i, r := range items {
					if !taken[i] && r == prev {
						taken[i] = true
						matched = true
						assign(charID, r)
						break
					}
				}
			}
			if !matched {
				pending = append(pending, charID)
			}
		}

		// Remaining pass: pair leftover visitors with leftover units in
		// order. A visitor past the last unit records a bare visit, which
		// only happens when flow topology needed the visit but every unit
		// here went to someone else.
		remaining := make([]models.Resource, 0, len(items))
		for i, r := range items {
			if !taken[i] {
				remaining = append(remaining, r)
			}
		}
		for i, charID := range pending {
			if i < len(remaining) {
				assign(charID, remaining[i])
			} else {
				assign(charID, "")
			}
		}
	}

	orders := make([]models.CharacterOrders, 0, len(characters))
	for _, c := range characters {
		orders = append(orders, models.CharacterOrders{
			Character: c.ID,
			Orders:    byChar[c.ID],
		})
	}
	return orders, totalYield
}

// visitorsOf returns ids of characters with positive flow into the planet,
// in character input order.
func visitorsOf(net *flownet.Network, characters []models.Character, planetIdx int) []string {
	var visitors []string
	for _, c := range characters {
		charIdx, ok := net.NodeIndex(c.ID)
		if !ok {
			continue
		}
		if net.FlowBetween(charIdx, planetIdx) > 0 {
			visitors = append(visitors, c.ID)
		}
	}
	return visitors
}

// itemsOf expands each planet-to-resource edge's flow into that many units of
// the resource, in edge insertion order.
func itemsOf(net *flownet.Network, planetIdx int) []models.Resource {
	var items []models.Resource
	for _, ei := range net.Outgoing(planetIdx) {
		e := net.Edge(ei)
		if e.IsReverse || e.Flow <= 0 {
			continue
		}
		_, r, ok := ParsePlanetResource(net.Node(e.To).Name)
		if !ok {
			continue
		}
		for k := 0; k < e.Flow; k++ {
			items = append(items, r)
		}
	}
	return items
}

// classify labels an assignment relative to the prior plan. Bare visits fall
// through the same rules with an empty resource: a character who used to
// collect something here and now carries nothing counts as a resource switch.
func classify(prior models.PriorPlan, charID, planetID string, r models.Resource) models.OrderStatus {
	prev, wasHere := prior.Collected(charID, planetID)
	if wasHere {
		if prev == r {
			return models.StatusUnchanged
		}
		return models.StatusResourceSwitch
	}
	if prior.HasCharacter(charID) {
		return models.StatusPlanetSwitch
	}
	return models.StatusNewCharacter
}
