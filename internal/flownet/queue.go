package flownet

// frontierEntry is one pending node in the shortest-path search
type frontierEntry struct {
	Node int
	Dist int
}

// frontier is a priority queue for the shortest-path search, ordered by
// (Dist, Node). The node index as tie-breaker keeps pop order fully
// deterministic when several nodes sit at the same distance.
type frontier struct {
	entries []frontierEntry
}

func newFrontier() *frontier {
	return &frontier{
		entries: make([]frontierEntry, 0),
	}
}

// Push adds an entry in sorted position
func (f *frontier) Push(e frontierEntry) {
	insertIdx := len(f.entries)
	for i, existing := range f.entries {
		if e.Dist < existing.Dist || (e.Dist == existing.Dist && e.Node < existing.Node) {
			insertIdx = i
			break
		}
	}

	f.entries = append(f.entries, frontierEntry{})
	copy(f.entries[insertIdx+1:], f.entries[insertIdx:])
	f.entries[insertIdx] = e
}

// Pop removes and returns the nearest entry
func (f *frontier) Pop() frontierEntry {
	e := f.entries[0]
	f.entries = f.entries[1:]
	return e
}

// Empty returns true if nothing is pending
func (f *frontier) Empty() bool {
	return len(f.entries) == 0
}

// Reset clears the queue for reuse across search rounds
func (f *frontier) Reset() {
	f.entries = f.entries[:0]
}
