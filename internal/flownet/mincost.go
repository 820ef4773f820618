package flownet

import (
	"fmt"
	"math"
)

// unreachable marks nodes no residual path has touched. Kept far below
// MaxInt so adding edge costs never wraps.
const unreachable = math.MaxInt / 4

// Result summarizes a solve: total units moved from source to sink and the
// total cost of moving them.
type Result struct {
	Flow int
	Cost int
}

// Solver computes a maximum flow of minimum total cost using successive
// shortest augmenting paths with Johnson potentials. The network's negative
// costs are confined to its original acyclic form, so one relaxation pass
// seeds the potentials and every later search runs on non-negative reduced
// costs.
//
// Tie-breaking is deterministic: edges are relaxed in insertion order and the
// frontier pops by (distance, node index), so equal-cost solutions always
// resolve the same way.
type Solver struct {
	net    *Network
	source int
	sink   int

	pot    []int
	dist   []int
	parent []int // edge index used to reach each node, -1 when unreached
	queue  *frontier
}

// NewSolver creates a solver for the given network endpoints
func NewSolver(net *Network, source, sink int) *Solver {
	if source < 0 || source >= net.NumNodes() || sink < 0 || sink >= net.NumNodes() {
		panic(fmt.Sprintf("flownet: solver endpoints out of range: %d, %d with %d nodes", source, sink, net.NumNodes()))
	}
	if source == sink {
		panic("flownet: source and sink must differ")
	}
	n := net.NumNodes()
	return &Solver{
		net:    net,
		source: source,
		sink:   sink,
		pot:    make([]int, n),
		dist:   make([]int, n),
		parent: make([]int, n),
		queue:  newFrontier(),
	}
}

// Solve runs augmentation rounds until the sink is unreachable in the
// residual graph. When demand cannot be fully met the flow simply maxes out
// below it; partial fulfillment is an answer, not an error.
func (s *Solver) Solve() Result {
	s.initPotentials()

	// Every round pushes at least one unit out of the source, so total
	// source capacity bounds the number of rounds.
	budget := 0
	for _, ei := range s.net.adj[s.source] {
		e := &s.net.edges[ei]
		if !e.IsReverse {
			budget += e.Cap
		}
	}

	var res Result
	for round := 0; s.findShortestPath(); round++ {
		if round > budget {
			panic(fmt.Sprintf("flownet: augmentation rounds exceeded source capacity %d", budget))
		}

		path, bottleneck, pathCost := s.tracePath()
		s.net.Augment(path, bottleneck)
		res.Flow += bottleneck
		res.Cost += bottleneck * pathCost

		for v := range s.pot {
			if s.dist[v] < unreachable && s.pot[v] < unreachable {
				s.pot[v] += s.dist[v]
			}
		}
	}
	return res
}

// initPotentials seeds vertex potentials with true shortest distances from
// the source, relaxing edges in insertion order. The pre-flow network is
// acyclic, so relaxation settles within one sweep per node; still changing
// after that many sweeps means a negative cycle, which the layered build
// cannot produce.
func (s *Solver) initPotentials() {
	n := s.net.NumNodes()
	for i := range s.pot {
		s.pot[i] = unreachable
	}
	s.pot[s.source] = 0

	for iter := 0; iter < n; iter++ {
		changed := false
		for i := range s.net.edges {
			if s.net.Residual(i) <= 0 {
				continue
			}
			e := &s.net.edges[i]
			if s.pot[e.From] >= unreachable {
				continue
			}
			if next := s.pot[e.From] + e.Cost; next < s.pot[e.To] {
				s.pot[e.To] = next
				changed = true
			}
		}
		if !changed {
			return
		}
	}
	panic("flownet: negative cycle in cost graph")
}

// findShortestPath runs Dijkstra over reduced costs on the residual graph,
// recording the parent edge of each reached node. Returns false once the sink
// cannot be reached, which is the max-flow termination condition.
func (s *Solver) findShortestPath() bool {
	for i := range s.dist {
		s.dist[i] = unreachable
		s.parent[i] = -1
	}
	s.dist[s.source] = 0
	s.queue.Reset()
	s.queue.Push(frontierEntry{Node: s.source, Dist: 0})

	for !s.queue.Empty() {
		cur := s.queue.Pop()
		if cur.Dist > s.dist[cur.Node] {
			continue
		}
		for _, ei := range s.net.adj[cur.Node] {
			if s.net.Residual(ei) <= 0 {
				continue
			}
			e := &s.net.edges[ei]
			if s.pot[e.To] >= unreachable {
				continue
			}
			reduced := e.Cost + s.pot[e.From] - s.pot[e.To]
			if reduced < 0 {
				panic(fmt.Sprintf("flownet: negative reduced cost %d on edge %d -> %d", reduced, e.From, e.To))
			}
			if next := cur.Dist + reduced; next < s.dist[e.To] {
				s.dist[e.To] = next
				s.parent[e.To] = ei
				s.queue.Push(frontierEntry{Node: e.To, Dist: next})
			}
		}
	}
	return s.dist[s.sink] < unreachable
}

// tracePath walks the parent chain from sink back to source, returning the
// path in forward order with its bottleneck residual and real (non-reduced)
// cost per unit.
func (s *Solver) tracePath() (path []int, bottleneck, cost int) {
	bottleneck = unreachable
	for v := s.sink; v != s.source; {
		ei := s.parent[v]
		if ei < 0 {
			panic("flownet: broken parent chain while tracing augmenting path")
		}
		path = append(path, ei)
		if r := s.net.Residual(ei); r < bottleneck {
			bottleneck = r
		}
		cost += s.net.edges[ei].Cost
		v = s.net.edges[ei].From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, bottleneck, cost
}
