package mission

import (
	"errors"
	"testing"

	"github.com/meridius/solver-pi/internal/flownet"
	"github.com/meridius/solver-pi/internal/models"
)

// TestBuildNetworkShape verifies the five-layer layout: capacities, costs,
// prior-plan discounts, banned-planet omissions, and node sharing.
func TestBuildNetworkShape(t *testing.T) {
	chars := []models.Character{
		{ID: "Tyler Typical", MaxVisits: 3},
		{ID: "Haulen Datore", MaxVisits: 1, Banned: []string{"J105433 II"}},
	}
	planets := []models.Planet{
		{ID: "J105433 I", Resources: []models.ResourceAbundance{
			{Resource: models.BaseMetals, Abundance: 62},
			{Resource: models.SuspendedPlasma, Abundance: 17},
		}},
		{ID: "J105433 II", Resources: []models.ResourceAbundance{
			{Resource: models.BaseMetals, Abundance: 45},
		}},
	}
	targets := []models.ResourceTarget{
		{Resource: models.BaseMetals, Quantity: 3},
		{Resource: models.FelsicMagma, Quantity: 2},
	}
	prior := models.PriorPlan{"Tyler Typical": {"J105433 I": models.BaseMetals}}

	net, source, sink := buildNetwork(chars, planets, targets, prior, 500)

	if net.Node(source).Layer != LayerSource {
		t.Errorf("source layer = %d", net.Node(source).Layer)
	}
	if net.Node(sink).Layer != LayerSink {
		t.Errorf("sink layer = %d", net.Node(sink).Layer)
	}

	mustIndex := func(name string) int {
		t.Helper()
		idx, ok := net.NodeIndex(name)
		if !ok {
			t.Fatalf("missing node %q", name)
		}
		return idx
	}
	findEdge := func(from, to int) (flownet.Edge, bool) {
		for _, ei := range net.Outgoing(from) {
			e := net.Edge(ei)
			if !e.IsReverse && e.To == to {
				return e, true
			}
		}
		return flownet.Edge{}, false
	}
	edge := func(from, to int) flownet.Edge {
		t.Helper()
		e, ok := findEdge(from, to)
		if !ok {
			t.Fatalf("missing edge %s -> %s", net.Node(from).Name, net.Node(to).Name)
		}
		return e
	}

	tyler := mustIndex("Tyler Typical")
	haulen := mustIndex("Haulen Datore")
	p1 := mustIndex("J105433 I")
	p2 := mustIndex("J105433 II")

	if e := edge(source, tyler); e.Cap != 3 || e.Cost != 0 {
		t.Errorf("source edge cap/cost = %d/%d, want 3/0", e.Cap, e.Cost)
	}
	if e := edge(source, haulen); e.Cap != 1 || e.Cost != 0 {
		t.Errorf("source edge cap/cost = %d/%d, want 1/0", e.Cap, e.Cost)
	}

	// The prior pairing rides free; every other visit pays the switching cost.
	if e := edge(tyler, p1); e.Cap != 1 || e.Cost != 0 {
		t.Errorf("prior visit cap/cost = %d/%d, want 1/0", e.Cap, e.Cost)
	}
	if e := edge(tyler, p2); e.Cap != 1 || e.Cost != 500 {
		t.Errorf("new visit cap/cost = %d/%d, want 1/500", e.Cap, e.Cost)
	}
	if e := edge(haulen, p1); e.Cap != 1 || e.Cost != 500 {
		t.Errorf("new visit cap/cost = %d/%d, want 1/500", e.Cap, e.Cost)
	}
	if _, ok := findEdge(haulen, p2); ok {
		t.Error("banned planet must not get a visit edge")
	}

	pr := mustIndex("J105433 I|Base Metals")
	bm := mustIndex(string(models.BaseMetals))
	if net.Node(pr).Layer != LayerPlanetResource {
		t.Errorf("pair node layer = %d", net.Node(pr).Layer)
	}
	if e := edge(p1, pr); e.Cap != 2 || e.Cost != -62 {
		t.Errorf("collection edge cap/cost = %d/%d, want 2/-62", e.Cap, e.Cost)
	}
	if e := edge(pr, bm); e.Cap != 2 || e.Cost != 0 {
		t.Errorf("delivery edge cap/cost = %d/%d, want 2/0", e.Cap, e.Cost)
	}
	if e := edge(bm, sink); e.Cap != 3 || e.Cost != 0 {
		t.Errorf("demand edge cap/cost = %d/%d, want 3/0", e.Cap, e.Cost)
	}

	// Both planets deliver Base Metals through the same shared resource node.
	if e := edge(mustIndex("J105433 II|Base Metals"), bm); e.Cap != 2 {
		t.Errorf("second delivery edge cap = %d, want 2", e.Cap)
	}

	// Suspended Plasma is offered but not demanded: no pair node.
	if _, ok := net.NodeIndex("J105433 I|Suspended Plasma"); ok {
		t.Error("undemanded resource must not get a pair node")
	}

	// Felsic Magma is demanded but offered nowhere: node exists with only a
	// demand edge, so its fulfillment reads as zero instead of missing.
	fm := mustIndex(string(models.FelsicMagma))
	if e := edge(fm, sink); e.Cap != 2 {
		t.Errorf("unofferable demand edge cap = %d, want 2", e.Cap)
	}
}

func TestParsePlanetResource(t *testing.T) {
	name := planetResourceName("J105433 IV", models.NobleGas)
	planet, resource, ok := ParsePlanetResource(name)
	if !ok {
		t.Fatalf("failed to parse %q", name)
	}
	if planet != "J105433 IV" || resource != models.NobleGas {
		t.Errorf("parsed %q into %q / %q", name, planet, resource)
	}
	if _, _, ok := ParsePlanetResource("J105433 IV"); ok {
		t.Error("expected plain planet name to fail parsing")
	}
}

func TestCheckIdentifiers(t *testing.T) {
	chars := []models.Character{{ID: "Tyler Typical", MaxVisits: 1}}
	planets := []models.Planet{{ID: "J105433 I"}}
	targets := []models.ResourceTarget{{Resource: models.BaseMetals, Quantity: 1}}

	if err := checkIdentifiers(chars, planets, targets); err != nil {
		t.Fatalf("valid identifiers rejected: %v", err)
	}

	tests := []struct {
		name    string
		chars   []models.Character
		planets []models.Planet
	}{
		{"reserved character id", []models.Character{{ID: "Source"}}, planets},
		{"reserved planet id", chars, []models.Planet{{ID: "Sink"}}},
		{"character named like a planet", []models.Character{{ID: "J105433 I"}}, planets},
		{"character named like a resource", []models.Character{{ID: "Base Metals"}}, planets},
		{"planet named like a resource", chars, []models.Planet{{ID: "Base Metals"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkIdentifiers(tt.chars, tt.planets, targets)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
