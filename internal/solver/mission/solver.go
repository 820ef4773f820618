// Package mission plans which character visits which planet to collect what.
// It lays the mission out as a five-layer flow network (source, characters,
// planets, planet/resource pairs, resources, sink), solves it for maximum
// collection at minimum cost, then reads the flow back into per-character
// work orders. Planet visits that break with the prior plan carry a
// switching cost, so a high cost makes the solver keep existing assignments
// whenever an equal-yield alternative exists.
package mission

import (
	"github.com/meridius/solver-pi/internal/flownet"
	"github.com/meridius/solver-pi/internal/models"
)

// DefaultSwitchingCost dwarfs any plausible abundance sum, so reassigning a
// character to a new planet is only worth it when demand cannot be met
// otherwise.
const DefaultSwitchingCost = 10000

// Solver holds one mission instance. Slices keep caller order; that order
// drives node creation and with it all deterministic tie-breaking.
type Solver struct {
	Characters    []models.Character
	Planets       []models.Planet
	Targets       []models.ResourceTarget
	Prior         models.PriorPlan
	SwitchingCost int
}

// NewSolver creates a solver for one mission instance
func NewSolver(characters []models.Character, planets []models.Planet, targets []models.ResourceTarget, prior models.PriorPlan, switchingCost int) *Solver {
	return &Solver{
		Characters:    characters,
		Planets:       planets,
		Targets:       targets,
		Prior:         prior,
		SwitchingCost: switchingCost,
	}
}

// Fulfillment reports delivered units against the target for one demanded resource
type Fulfillment struct {
	Resource  models.Resource `json:"resource"`
	Target    int             `json:"target"`
	Delivered int             `json:"delivered"`
}

// Met reports whether the demand target was reached
func (f Fulfillment) Met() bool {
	return f.Delivered >= f.Target
}

// Solution is the result of one solve. The solved network is kept for
// rendering; it is not part of the serialized plan.
type Solution struct {
	Orders        []models.CharacterOrders `json:"orders"`
	TotalYield    int                      `json:"total_yield"`
	UnitsAssigned int                      `json:"units_assigned"`
	FlowCost      int                      `json:"flow_cost"`
	Fulfillment   []Fulfillment            `json:"fulfillment"`

	Net    *flownet.Network `json:"-"`
	Source int              `json:"-"`
	Sink   int              `json:"-"`
}

// FullyMet reports whether every demand target was reached
func (s *Solution) FullyMet() bool {
	for _, f := range s.Fulfillment {
		if !f.Met() {
			return false
		}
	}
	return true
}

// Solve validates the instance, builds and solves the flow network, and
// extracts work orders. Demand that cannot be met is not an error: the
// solution simply reports lower delivered counts in Fulfillment.
func (s *Solver) Solve() (*Solution, error) {
	if err := models.ValidateInput(s.Characters, s.Planets, s.Targets, s.Prior, s.SwitchingCost); err != nil {
		return nil, err
	}
	if err := checkIdentifiers(s.Characters, s.Planets, s.Targets); err != nil {
		return nil, err
	}

	net, source, sink := buildNetwork(s.Characters, s.Planets, s.Targets, s.Prior, s.SwitchingCost)
	res := flownet.NewSolver(net, source, sink).Solve()
	orders, totalYield := extractOrders(net, s.Characters, s.Planets, s.Prior)

	return &Solution{
		Orders:        orders,
		TotalYield:    totalYield,
		UnitsAssigned: res.Flow,
		FlowCost:      res.Cost,
		Fulfillment:   fulfillment(net, s.Targets, sink),
		Net:           net,
		Source:        source,
		Sink:          sink,
	}, nil
}

// fulfillment reads delivered units per demanded resource off the sink edges
func fulfillment(net *flownet.Network, targets []models.ResourceTarget, sink int) []Fulfillment {
	out := make([]Fulfillment, 0, len(targets))
	for _, t := range targets {
		delivered := 0
		if resIdx, ok := net.NodeIndex(string(t.Resource)); ok {
			delivered = net.FlowBetween(resIdx, sink)
		}
		out = append(out, Fulfillment{
			Resource:  t.Resource,
			Target:    t.Quantity,
			Delivered: delivered,
		})
	}
	return out
}
