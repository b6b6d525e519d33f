// Package preproc implements the Contraction Hierarchies preprocessor:
// given a node order, it contracts each node in turn, inserting the
// shortcuts necessary to preserve shortest-path distances once the
// node is removed from later searches.
package preproc

import (
	"github.com/ch-routing/engine/chgraph"
	"github.com/ch-routing/engine/pq"
)

// Config exposes the preprocessor's tunable constants by name, so a
// re-implementation (or a caller tuning for a different graph) never
// has to touch the algorithm to change them.
type Config struct {
	// MaxShortcutsPerNode caps the number of shortcuts a single
	// contraction may introduce; once hit, remaining candidate pairs
	// for that node are skipped.
	MaxShortcutsPerNode int
	// ComplexityThreshold is the |IN|*|OUT| value above which the
	// witness-search hop limit is reduced from HopLimitNormal to
	// HopLimitFast.
	ComplexityThreshold int
	// HopLimitNormal is the witness-search hop limit used at or below
	// ComplexityThreshold.
	HopLimitNormal int
	// HopLimitFast is the witness-search hop limit used above
	// ComplexityThreshold.
	HopLimitFast int
}

// DefaultConfig returns the constants named in the design notes:
// max_shortcuts_per_node=100, complexity_threshold=500,
// hop_limit_normal=3, hop_limit_fast=1.
func DefaultConfig() Config {
	return Config{
		MaxShortcutsPerNode: 100,
		ComplexityThreshold: 500,
		HopLimitNormal:      3,
		HopLimitFast:        1,
	}
}

// Stats is optional telemetry about a Build call: how many shortcuts
// were created in total, and how many contractions hit
// Config.MaxShortcutsPerNode before exhausting their candidate pairs.
type Stats struct {
	ShortcutsCreated int
	NodesCapped      int
}

// ProgressFunc is invoked every 5,000 contracted nodes (and once more
// on completion) with the number contracted so far and the total node
// count. Preprocessing never writes to stdout directly; callers that
// want progress reporting supply this callback and route it through
// their own logger.
type ProgressFunc func(done, total int)

const progressInterval = 5000

// Build processes each node in order, assigning it the next rank and
// contracting it. The graph is mutated in place; there is no return
// value beyond the telemetry in Stats. Build does not itself validate
// that order is a permutation of the graph's node ids — an id repeated
// or omitted simply means that node is contracted more than once, or
// never, which is a caller error the core does not guard against.
func Build(g *chgraph.Store, order []int32, cfg Config, progress ProgressFunc) Stats {
	stats := Stats{}
	for i, m := range order {
		g.SetRank(m, int32(i))
		g.SetContracted(m, true)
		capped := contractNode(g, m, cfg, &stats)
		if capped {
			stats.NodesCapped++
		}
		if progress != nil && (i+1)%progressInterval == 0 {
			progress(i+1, len(order))
		}
	}
	if progress != nil && len(order) > 0 && len(order)%progressInterval != 0 {
		progress(len(order), len(order))
	}
	return stats
}

type neighbor struct {
	node   int32
	weight float64
}

// contractNode contracts m: collects its uncontracted in/out
// neighbors, computes the complexity-driven hop limit, and inserts a
// shortcut for every (u, w) pair whose candidate cost has no witness.
// Returns true if MaxShortcutsPerNode was hit before all pairs were
// considered.
func contractNode(g *chgraph.Store, m int32, cfg Config, stats *Stats) bool {
	in := collectInNeighbors(g, m)
	out := collectOutNeighbors(g, m)

	complexity := len(in) * len(out)
	hopLimit := cfg.HopLimitNormal
	if complexity > cfg.ComplexityThreshold {
		hopLimit = cfg.HopLimitFast
	}

	created := 0
	for _, u := range in {
		if created >= cfg.MaxShortcutsPerNode {
			return true
		}
		for _, w := range out {
			if created >= cfg.MaxShortcutsPerNode {
				return true
			}
			if u.node == w.node {
				continue
			}
			cost := u.weight + w.weight
			if witness(g, u.node, w.node, m, cost, hopLimit) {
				continue
			}
			g.AddCHEdge(u.node, w.node, cost, true, m)
			created++
			stats.ShortcutsCreated++
		}
	}
	return false
}

// collectInNeighbors returns m's uncontracted predecessors u, each
// with the cheapest u->m edge weight.
func collectInNeighbors(g *chgraph.Store, m int32) []neighbor {
	return reduceToCheapest(g, g.In(m), func(e chgraph.Edge) int32 { return e.From })
}

// collectOutNeighbors returns m's uncontracted successors w, each with
// the cheapest m->w edge weight.
func collectOutNeighbors(g *chgraph.Store, m int32) []neighbor {
	return reduceToCheapest(g, g.Out(m), func(e chgraph.Edge) int32 { return e.To })
}

// reduceToCheapest reduces edges to one entry per uncontracted other
// endpoint (as picked out by other), keeping the cheapest parallel
// edge and preserving first-seen order.
func reduceToCheapest(g *chgraph.Store, edges []chgraph.Edge, other func(chgraph.Edge) int32) []neighbor {
	best := make(map[int32]float64, len(edges))
	order := make([]int32, 0, len(edges))
	for _, e := range edges {
		id := other(e)
		if g.Contracted(id) {
			continue
		}
		if w, seen := best[id]; !seen || e.Weight < w {
			if _, seen := best[id]; !seen {
				order = append(order, id)
			}
			best[id] = e.Weight
		}
	}
	result := make([]neighbor, 0, len(order))
	for _, id := range order {
		result = append(result, neighbor{node: id, weight: best[id]})
	}
	return result
}

// witness runs a bounded, hop-limited Dijkstra from u, returning true
// iff a path to v of total weight <= maxDist exists with at most
// hopLimit edges, never traversing m.
func witness(g *chgraph.Store, u, v, m int32, maxDist float64, hopLimit int) bool {
	for _, e := range g.Out(u) {
		if e.To == v && e.Weight <= maxDist {
			return true
		}
	}

	type frontierNode struct {
		id   int32
		hops int
	}

	dist := map[int32]float64{u: 0}
	visited := map[int32]bool{}
	queue := pq.New[frontierNode]()
	queue.Push(frontierNode{id: u, hops: 0}, 0)

	for queue.Len() > 0 {
		curr, d, _ := queue.Pop()
		if visited[curr.id] {
			continue
		}
		visited[curr.id] = true
		if d > maxDist {
			return false
		}
		if curr.id == v {
			return true
		}
		if curr.hops >= hopLimit {
			continue
		}
		for _, e := range g.Out(curr.id) {
			if e.To == m {
				continue
			}
			if g.Contracted(e.To) && e.To != v {
				continue
			}
			nd := d + e.Weight
			if prev, ok := dist[e.To]; !ok || nd < prev {
				dist[e.To] = nd
				queue.Push(frontierNode{id: e.To, hops: curr.hops + 1}, nd)
			}
		}
	}
	return false
}
