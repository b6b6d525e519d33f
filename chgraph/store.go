// Package chgraph holds the read-write-then-read-only graph store the
// preprocessor augments and the query engine searches over.
package chgraph

import "fmt"

// Unranked is the sentinel rank assigned to every node before it is
// contracted.
const Unranked int32 = -1

// NoVia is the sentinel via-node for base (non-shortcut) edges.
const NoVia int32 = -1

// Edge is a directed arc from From to To. Base edges have IsShortcut
// false and Via NoVia; shortcuts carry the id of the node they bypass.
type Edge struct {
	From       int32
	To         int32
	Weight     float64
	IsShortcut bool
	Via        int32
}

type nodeState struct {
	rank       int32
	contracted bool
}

// Store is the graph store. Base edges are loaded at construction;
// shortcuts and ranks are populated during preprocessing. Edges are
// append-only and never mutated or removed once inserted. After
// preprocessing finishes and no further mutation occurs, a Store is
// safe for concurrent read-only use (Out, In, Rank, Contracted,
// Snapshot, NodeCount).
type Store struct {
	nodes []nodeState
	out   [][]Edge
	in    [][]Edge
}

// New allocates an empty graph with n nodes, all uncontracted, all
// ranks Unranked.
func New(n int) *Store {
	s := &Store{
		nodes: make([]nodeState, n),
		out:   make([][]Edge, n),
		in:    make([][]Edge, n),
	}
	for i := range s.nodes {
		s.nodes[i].rank = Unranked
	}
	return s
}

// NodeCount returns the number of nodes the store was constructed
// with.
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

func (s *Store) inRange(id int32) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

// AddEdge inserts a base directed edge u -> v with weight w. Asymmetric:
// to model an undirected road, callers insert both directions. Unlike
// the reference behavior this rejects out-of-range node ids explicitly
// rather than silently ignoring them, per the stronger recommendation
// for caller bugs.
func (s *Store) AddEdge(u, v int32, w float64) error {
	return s.AddCHEdge(u, v, w, false, NoVia)
}

// AddCHEdge inserts a pre-computed edge, used both by the preprocessor
// (to add shortcuts) and when loading a previously built hierarchy
// from an external store. Rejects out-of-range node ids explicitly.
func (s *Store) AddCHEdge(u, v int32, w float64, isShortcut bool, via int32) error {
	if !s.inRange(u) || !s.inRange(v) {
		return fmt.Errorf("chgraph: node id out of range [0,%d): u=%d v=%d", len(s.nodes), u, v)
	}
	e := Edge{From: u, To: v, Weight: w, IsShortcut: isShortcut, Via: via}
	s.out[u] = append(s.out[u], e)
	s.in[v] = append(s.in[v], e)
	return nil
}

// SetRank assigns u's rank, used when loading a pre-built hierarchy.
// An out-of-range u is silently ignored.
func (s *Store) SetRank(u int32, r int32) {
	if !s.inRange(u) {
		return
	}
	s.nodes[u].rank = r
}

// Rank returns u's current rank, or Unranked if u has not been
// contracted (or is out of range).
func (s *Store) Rank(u int32) int32 {
	if !s.inRange(u) {
		return Unranked
	}
	return s.nodes[u].rank
}

// Contracted reports whether u has been contracted.
func (s *Store) Contracted(u int32) bool {
	if !s.inRange(u) {
		return false
	}
	return s.nodes[u].contracted
}

// SetContracted flips u's contracted flag. Monotonic in normal use:
// the preprocessor calls this exactly once per node, transitioning
// false -> true.
func (s *Store) SetContracted(u int32, v bool) {
	if !s.inRange(u) {
		return
	}
	s.nodes[u].contracted = v
}

// Out returns u's outgoing adjacency (base edges and shortcuts alike).
// The returned slice must not be mutated by the caller.
func (s *Store) Out(u int32) []Edge {
	if !s.inRange(u) {
		return nil
	}
	return s.out[u]
}

// In returns u's incoming adjacency. The returned slice must not be
// mutated by the caller.
func (s *Store) In(u int32) []Edge {
	if !s.inRange(u) {
		return nil
	}
	return s.in[u]
}

// Snapshot yields the full edge list (with shortcut metadata) and the
// rank vector, for external persistence.
func (s *Store) Snapshot() ([]Edge, []int32) {
	total := 0
	for _, es := range s.out {
		total += len(es)
	}
	edges := make([]Edge, 0, total)
	for _, es := range s.out {
		edges = append(edges, es...)
	}
	ranks := make([]int32, len(s.nodes))
	for i, n := range s.nodes {
		ranks[i] = n.rank
	}
	return edges, ranks
}
