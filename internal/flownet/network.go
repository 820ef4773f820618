// Package flownet implements a capacitated min-cost flow network over
// contiguous node and edge arenas. Nodes and edges are addressed by insertion
// index; every forward edge is paired with a zero-capacity reverse twin so the
// residual graph never needs rewriting during a solve. The package knows
// nothing about what the nodes mean: callers tag each node with an opaque
// layer number for their own bookkeeping.
package flownet

import (
	"fmt"
)

// Node is an arena entry. Index is its position in insertion order, Name is
// unique within the network, Layer is a caller-supplied tag.
type Node struct {
	Index int
	Name  string
	Layer int
}

// Edge is a directed arc. Forward edges carry the caller's capacity and cost;
// their reverse twins carry capacity 0 and the negated cost. Rev is the arena
// index of the twin. Flow lives on the forward edge only.
type Edge struct {
	From      int
	To        int
	Cap       int
	Cost      int
	Flow      int
	Rev       int
	IsReverse bool
}

// Network holds the arenas plus per-node adjacency in edge insertion order.
// Topology is fixed once built; solving only mutates flow values.
type Network struct {
	nodes  []Node
	byName map[string]int
	edges  []Edge
	adj    [][]int
}

// New creates an empty network
func New() *Network {
	return &Network{
		byName: make(map[string]int),
	}
}

// AddNode returns the index for the named node, creating it on first use.
// Repeated calls with the same name reuse the existing node; the layer tag of
// the first call wins.
func (n *Network) AddNode(name string, layer int) int {
	if idx, ok := n.byName[name]; ok {
		return idx
	}
	idx := len(n.nodes)
	n.nodes = append(n.nodes, Node{Index: idx, Name: name, Layer: layer})
	n.byName[name] = idx
	n.adj = append(n.adj, nil)
	return idx
}

// NodeIndex looks up a node by name
func (n *Network) NodeIndex(name string) (int, bool) {
	idx, ok := n.byName[name]
	return idx, ok
}

// Node returns a copy of the node at the given index
func (n *Network) Node(i int) Node {
	return n.nodes[i]
}

// NumNodes returns the node count
func (n *Network) NumNodes() int {
	return len(n.nodes)
}

// NumEdges returns the edge count, reverse twins included
func (n *Network) NumEdges() int {
	return len(n.edges)
}

// AddEdge inserts a forward edge and its reverse twin, returning the forward
// edge index. Inputs reaching this point have already passed domain
// validation, so a bad index or negative capacity is a caller bug.
func (n *Network) AddEdge(from, to, capacity, cost int) int {
	if from < 0 || from >= len(n.nodes) || to < 0 || to >= len(n.nodes) {
		panic(fmt.Sprintf("flownet: edge endpoints out of range: %d -> %d with %d nodes", from, to, len(n.nodes)))
	}
	if capacity < 0 {
		panic(fmt.Sprintf("flownet: negative capacity %d on edge %d -> %d", capacity, from, to))
	}

	fwd := len(n.edges)
	rev := fwd + 1
	n.edges = append(n.edges,
		Edge{From: from, To: to, Cap: capacity, Cost: cost, Rev: rev},
		Edge{From: to, To: from, Cap: 0, Cost: -cost, Rev: fwd, IsReverse: true},
	)
	n.adj[from] = append(n.adj[from], fwd)
	n.adj[to] = append(n.adj[to], rev)
	return fwd
}

// Edge returns a copy of the edge at the given index
func (n *Network) Edge(i int) Edge {
	return n.edges[i]
}

// Outgoing returns the edge indices leaving a node in insertion order. The
// slice includes reverse twins; callers traversing only real topology skip
// entries whose IsReverse is set. The returned slice is shared, not a copy.
func (n *Network) Outgoing(node int) []int {
	return n.adj[node]
}

// Residual returns the remaining pushable capacity on an edge: cap minus flow
// on forward edges, the twin's flow on reverse edges.
func (n *Network) Residual(i int) int {
	e := &n.edges[i]
	if e.IsReverse {
		return n.edges[e.Rev].Flow
	}
	return e.Cap - e.Flow
}

// Augment pushes amount units along a path of edge indices, adjusting the
// paired flows atomically. Violating a capacity bound here means the solver
// chose an illegal path, which is unrecoverable.
func (n *Network) Augment(path []int, amount int) {
	if amount <= 0 {
		panic(fmt.Sprintf("flownet: augment amount %d must be positive", amount))
	}
	for _, i := range path {
		if n.Residual(i) < amount {
			panic(fmt.Sprintf("flownet: augmenting %d units over edge %d with residual %d", amount, i, n.Residual(i)))
		}
	}
	for _, i := range path {
		e := &n.edges[i]
		if e.IsReverse {
			n.edges[e.Rev].Flow -= amount
		} else {
			e.Flow += amount
		}
	}
}

// FlowBetween returns the flow on the first forward edge between two nodes,
// or 0 if no such edge exists.
func (n *Network) FlowBetween(from, to int) int {
	for _, i := range n.adj[from] {
		e := &n.edges[i]
		if !e.IsReverse && e.To == to {
			return e.Flow
		}
	}
	return 0
}

// Verify checks the solved-network invariants: flow bounds on every edge,
// conservation at every interior node, and source outflow matching sink
// inflow. It is the test-facing counterpart of the panics the solver uses for
// its own invariants.
func (n *Network) Verify(source, sink int) error {
	for i := range n.edges {
		e := &n.edges[i]
		if e.IsReverse {
			continue
		}
		if e.Flow < 0 {
			return fmt.Errorf("flownet: negative flow %d on edge %s -> %s", e.Flow, n.nodes[e.From].Name, n.nodes[e.To].Name)
		}
		if e.Flow > e.Cap {
			return fmt.Errorf("flownet: flow %d exceeds capacity %d on edge %s -> %s", e.Flow, e.Cap, n.nodes[e.From].Name, n.nodes[e.To].Name)
		}
	}

	balance := make([]int, len(n.nodes))
	for i := range n.edges {
		e := &n.edges[i]
		if e.IsReverse {
			continue
		}
		balance[e.From] -= e.Flow
		balance[e.To] += e.Flow
	}
	for idx, b := range balance {
		if idx == source || idx == sink {
			continue
		}
		if b != 0 {
			return fmt.Errorf("flownet: conservation violated at %s: imbalance %d", n.nodes[idx].Name, b)
		}
	}
	if -balance[source] != balance[sink] {
		return fmt.Errorf("flownet: source outflow %d does not match sink inflow %d", -balance[source], balance[sink])
	}
	return nil
}

// TotalCost returns the cost of the current flow assignment, summing cost
// times flow over forward edges.
func (n *Network) TotalCost() int {
	total := 0
	for i := range n.edges {
		e := &n.edges[i]
		if !e.IsReverse {
			total += e.Cost * e.Flow
		}
	}
	return total
}
