// Package viz renders a solved mission network as Graphviz DOT so the flow
// structure can be inspected with standard tooling.
package viz

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/meridius/solver-pi/internal/flownet"
	"github.com/meridius/solver-pi/internal/solver/mission"
)

// Fill colors per network layer, source through sink.
var layerFills = map[int]string{
	mission.LayerSource:         "#ff9999",
	mission.LayerCharacter:      "#66b3ff",
	mission.LayerPlanet:         "#99ff99",
	mission.LayerPlanetResource: "#ffcc99",
	mission.LayerResource:       "#c2c2f0",
	mission.LayerSink:           "#ff9999",
}

// WriteDOT renders the network in Graphviz DOT form. Nodes are ranked by
// layer, pair nodes are labeled with their abundance, resource nodes with
// their demand, and planet labels drop the system designation shared by
// every planet. Edges carrying flow are drawn green with a flow/capacity
// label and a width that grows with the flow; idle edges are faded out.
func WriteDOT(w io.Writer, net *flownet.Network) error {
	var buf bytes.Buffer

	buf.WriteString("digraph mission {\n")
	buf.WriteString("\trankdir=LR;\n")
	buf.WriteString("\tlabel=\"Mission Network Flow\";\n")
	buf.WriteString("\tlabelloc=\"t\";\n")
	buf.WriteString("\tnode [style=filled, fontsize=10];\n\n")

	// Demand comes off the Resource->Sink capacities, abundance off the
	// negated Planet->PlanetResource costs.
	demand := make(map[int]int)
	abundance := make(map[int]int)
	for i := 0; i < net.NumEdges(); i++ {
		e := net.Edge(i)
		if e.IsReverse {
			continue
		}
		fromLayer := net.Node(e.From).Layer
		toLayer := net.Node(e.To).Layer
		switch {
		case fromLayer == mission.LayerPlanet && toLayer == mission.LayerPlanetResource:
			abundance[e.To] = -e.Cost
		case fromLayer == mission.LayerResource && toLayer == mission.LayerSink:
			demand[e.From] = e.Cap
		}
	}

	for layer := mission.LayerSource; layer <= mission.LayerSink; layer++ {
		var members []int
		for i := 0; i < net.NumNodes(); i++ {
			if net.Node(i).Layer == layer {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			continue
		}
		buf.WriteString("\t{ rank=same;")
		for _, i := range members {
			fmt.Fprintf(&buf, " n%d;", i)
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("\n")

	prefix := planetPrefix(net)
	for i := 0; i < net.NumNodes(); i++ {
		node := net.Node(i)
		fmt.Fprintf(&buf, "\tn%d [label=%q, fillcolor=%q];\n",
			i, nodeLabel(node, demand, abundance, prefix), layerFills[node.Layer])
	}
	buf.WriteString("\n")

	for i := 0; i < net.NumEdges(); i++ {
		e := net.Edge(i)
		if e.IsReverse {
			continue
		}
		if e.Flow > 0 {
			width := 1.0 + 0.5*float64(e.Flow)
			if width > 4 {
				width = 4
			}
			fmt.Fprintf(&buf, "\tn%d -> n%d [label=\"%d/%d\", color=green, penwidth=%.1f];\n",
				e.From, e.To, e.Flow, e.Cap, width)
		} else {
			fmt.Fprintf(&buf, "\tn%d -> n%d [color=\"#e0e0e0\", penwidth=0.5, arrowhead=none];\n",
				e.From, e.To)
		}
	}

	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// planetPrefix returns the leading system designation shared by every
// planet node name, cut at the last space. Empty when planets span
// systems or carry no space-separated designation.
func planetPrefix(net *flownet.Network) string {
	lcp := ""
	first := true
	for i := 0; i < net.NumNodes(); i++ {
		node := net.Node(i)
		if node.Layer != mission.LayerPlanet {
			continue
		}
		if first {
			lcp = node.Name
			first = false
			continue
		}
		for !strings.HasPrefix(node.Name, lcp) {
			lcp = lcp[:len(lcp)-1]
		}
	}
	if idx := strings.LastIndex(lcp, " "); idx >= 0 {
		return lcp[:idx+1]
	}
	return ""
}

func nodeLabel(node flownet.Node, demand, abundance map[int]int, prefix string) string {
	switch node.Layer {
	case mission.LayerPlanet:
		if trimmed := strings.TrimPrefix(node.Name, prefix); trimmed != "" {
			return trimmed
		}
	case mission.LayerPlanetResource:
		if _, r, ok := mission.ParsePlanetResource(node.Name); ok {
			return fmt.Sprintf("%s (%d)", r, abundance[node.Index])
		}
	case mission.LayerResource:
		return fmt.Sprintf("%s (Req: %d)", node.Name, demand[node.Index])
	}
	return node.Name
}
