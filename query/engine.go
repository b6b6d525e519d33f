// Package query implements the bidirectional upward Dijkstra search
// over a preprocessed Contraction Hierarchies graph, plus recursive
// shortcut unpacking to recover the base-edge path.
package query

import (
	"math"

	"github.com/ch-routing/engine/chgraph"
	"github.com/ch-routing/engine/pq"
)

// Divisor converts the store's internal weight units into the
// distance unit Query reports, per the caller convention that weights
// are scaled by 1000 to use integer-like doubles.
const Divisor = 1000.0

// Engine answers shortest-path queries against a Store that has
// already been preprocessed by package preproc. An Engine holds no
// mutable state of its own and is safe for concurrent use once the
// underlying Store is no longer being mutated.
type Engine struct {
	g *chgraph.Store
}

// New wraps g for querying.
func New(g *chgraph.Store) *Engine {
	return &Engine{g: g}
}

// Query returns the base-graph node sequence from origin to dest and
// its total distance (the store's internal weight units divided by
// Divisor). An invalid node id, or no path, returns (nil, 0); the two
// cases are indistinguishable by design (see the error-handling
// section of SPEC_FULL.md).
func (e *Engine) Query(origin, dest int32) ([]int32, float64) {
	n := int32(e.g.NodeCount())
	if origin < 0 || origin >= n || dest < 0 || dest >= n {
		return nil, 0
	}
	if origin == dest {
		return []int32{origin}, 0
	}

	fwd := newSide(e.g, origin, forward)
	bwd := newSide(e.g, dest, backward)

	mu := math.Inf(1)
	meet := int32(-1)
	tryMeet(fwd, bwd, origin, &mu, &meet)
	tryMeet(bwd, fwd, dest, &mu, &meet)

	for fwd.queue.Len() > 0 || bwd.queue.Len() > 0 {
		if fwd.queue.Len() > 0 {
			step(e.g, fwd, bwd, &mu, &meet)
		}
		if bwd.queue.Len() > 0 {
			step(e.g, bwd, fwd, &mu, &meet)
		}
	}

	if meet == -1 {
		return nil, 0
	}

	nodes := reconstruct(fwd, bwd, origin, dest, meet)
	path := make([]int32, 0, len(nodes))
	path = append(path, origin)
	for i := 0; i+1 < len(nodes); i++ {
		path = append(path, unpack(e.g, nodes[i], nodes[i+1])...)
	}
	return path, mu / Divisor
}

type direction int

const (
	forward direction = iota
	backward
)

type side struct {
	dir    direction
	dist   []float64
	parent []int32
	queue  *pq.Queue[int32]
}

func newSide(g *chgraph.Store, root int32, dir direction) *side {
	n := g.NodeCount()
	s := &side{
		dir:    dir,
		dist:   make([]float64, n),
		parent: make([]int32, n),
		queue:  pq.New[int32](),
	}
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
		s.parent[i] = -1
	}
	s.dist[root] = 0
	s.queue.Push(root, 0)
	return s
}

// tryMeet checks whether the opposite side already has a finite
// distance for node, and if so, whether the combined cost improves
// the current best meeting point. Query also calls it on the two roots
// before searching; since Query returns early when origin == dest,
// those calls find no meeting point. A direct origin<->dest edge is
// found when one side relaxes into the other side's root, whose
// distance on that other side is already 0.
func tryMeet(a, other *side, node int32, mu *float64, meet *int32) {
	if math.IsInf(other.dist[node], 1) {
		return
	}
	total := a.dist[node] + other.dist[node]
	if total < *mu {
		*mu = total
		*meet = node
	}
}

// step advances one side's frontier by one popped state: it relaxes
// every upward edge out of the popped node (using out-adjacency for
// the forward side, in-adjacency for the backward side, per the
// upward relaxation rule applied symmetrically to both directions),
// and checks for an improved meeting point on every relaxed neighbor.
func step(g *chgraph.Store, s, other *side, mu *float64, meet *int32) {
	u, d, ok := s.queue.Pop()
	if !ok {
		return
	}
	if d > s.dist[u] {
		// stale entry from an earlier, since-superseded push.
		return
	}
	if d > *mu {
		return
	}

	rankU := g.Rank(u)
	for _, e := range adjacency(g, s.dir, u) {
		v := otherEnd(s.dir, e)
		if g.Rank(v) <= rankU {
			continue
		}
		nd := d + e.Weight
		if nd < s.dist[v] {
			s.dist[v] = nd
			s.parent[v] = u
			s.queue.Push(v, nd)
			tryMeet(s, other, v, mu, meet)
		}
	}
}

// adjacency returns u's outgoing edges for the forward side, or u's
// incoming edges for the backward side.
func adjacency(g *chgraph.Store, dir direction, u int32) []chgraph.Edge {
	if dir == forward {
		return g.Out(u)
	}
	return g.In(u)
}

// otherEnd returns the endpoint of e that isn't the node adjacency
// was queried for.
func otherEnd(dir direction, e chgraph.Edge) int32 {
	if dir == forward {
		return e.To
	}
	return e.From
}

// reconstruct walks both sides' parent pointers and returns the
// pre-unpack node sequence [origin, ..., meet, ..., dest] (each
// consecutive pair corresponds to exactly one stored edge, base or
// shortcut).
func reconstruct(fwd, bwd *side, origin, dest, meet int32) []int32 {
	var up []int32
	for n := meet; n != origin; n = fwd.parent[n] {
		up = append(up, n)
	}
	up = append(up, origin)
	// up is currently [meet, ..., origin]; reverse it.
	for i, j := 0, len(up)-1; i < j; i, j = i+1, j-1 {
		up[i], up[j] = up[j], up[i]
	}

	down := []int32{meet}
	for n := meet; n != dest; n = bwd.parent[n] {
		down = append(down, bwd.parent[n])
	}

	return append(up, down[1:]...)
}

// unpack expands the single stored edge from u to v into the base-edge
// sub-path ending at v (u itself is not included, matching the
// convention that callers already hold u from the previous segment).
// It scans every parallel edge u->v and prefers a shortcut over a
// base edge whenever both exist between the same pair — treating this
// as anything but a hard requirement would let a dominated base edge
// inflate the reconstructed distance.
func unpack(g *chgraph.Store, u, v int32) []int32 {
	var chosen chgraph.Edge
	found := false
	for _, e := range g.Out(u) {
		if e.To != v {
			continue
		}
		if e.IsShortcut {
			chosen = e
			found = true
			break
		}
		if !found {
			chosen = e
			found = true
		}
	}
	if !found {
		return nil
	}
	if !chosen.IsShortcut {
		return []int32{v}
	}
	out := unpack(g, u, chosen.Via)
	out = append(out, unpack(g, chosen.Via, v)...)
	return out
}
