package chgraph

import "testing"

func TestNewAllUnrankedUncontracted(t *testing.T) {
	s := New(5)
	if s.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d; want 5", s.NodeCount())
	}
	for i := int32(0); i < 5; i++ {
		if s.Rank(i) != Unranked {
			t.Errorf("Rank(%d) = %d; want Unranked", i, s.Rank(i))
		}
		if s.Contracted(i) {
			t.Errorf("Contracted(%d) = true; want false", i)
		}
	}
}

func TestAddEdgeBothAdjacencies(t *testing.T) {
	s := New(3)
	if err := s.AddEdge(0, 1, 10); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	out := s.Out(0)
	if len(out) != 1 || out[0].To != 1 || out[0].Weight != 10 || out[0].IsShortcut {
		t.Errorf("Out(0) = %+v; want single base edge to 1 weight 10", out)
	}
	in := s.In(1)
	if len(in) != 1 || in[0].From != 0 || in[0].Weight != 10 {
		t.Errorf("In(1) = %+v; want single base edge from 0 weight 10", in)
	}
	if len(s.Out(1)) != 0 || len(s.In(0)) != 0 {
		t.Errorf("AddEdge must not add the reverse direction implicitly")
	}
}

func TestAddEdgeOutOfRangeRejected(t *testing.T) {
	s := New(2)
	if err := s.AddEdge(0, 5, 1); err == nil {
		t.Errorf("AddEdge(0, 5, 1) on a 2-node graph: want error, got nil")
	}
	if err := s.AddEdge(-1, 1, 1); err == nil {
		t.Errorf("AddEdge(-1, 1, 1): want error, got nil")
	}
}

func TestAddCHEdgeShortcut(t *testing.T) {
	s := New(3)
	if err := s.AddCHEdge(0, 2, 10, true, 1); err != nil {
		t.Fatalf("AddCHEdge: %v", err)
	}
	out := s.Out(0)
	if len(out) != 1 || !out[0].IsShortcut || out[0].Via != 1 {
		t.Errorf("Out(0) = %+v; want one shortcut via 1", out)
	}
}

func TestSetRankOutOfRangeIgnored(t *testing.T) {
	s := New(2)
	s.SetRank(5, 3) // must not panic
	s.SetRank(-1, 3)
	if s.Rank(0) != Unranked || s.Rank(1) != Unranked {
		t.Errorf("out-of-range SetRank must not affect in-range ranks")
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	s := New(3)
	s.AddEdge(0, 1, 5)
	s.AddEdge(1, 2, 5)
	s.AddCHEdge(0, 2, 10, true, 1)
	s.SetRank(1, 0)
	s.SetRank(0, 1)
	s.SetRank(2, 1)

	edges, ranks := s.Snapshot()
	if len(edges) != 3 {
		t.Fatalf("Snapshot edges = %d; want 3", len(edges))
	}
	if ranks[1] != 0 || ranks[0] != 1 || ranks[2] != 1 {
		t.Errorf("Snapshot ranks = %v; want [1 0 1]", ranks)
	}
	sawShortcut := false
	for _, e := range edges {
		if e.IsShortcut {
			sawShortcut = true
			if e.From != 0 || e.To != 2 || e.Via != 1 {
				t.Errorf("shortcut edge = %+v; want {0 2 _ true 1}", e)
			}
		}
	}
	if !sawShortcut {
		t.Errorf("Snapshot() dropped the shortcut edge")
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	build := func() ([]Edge, []int32) {
		s := New(3)
		s.AddEdge(0, 1, 5)
		s.AddEdge(1, 2, 5)
		s.SetRank(0, 0)
		s.SetRank(1, 1)
		s.SetRank(2, 2)
		return s.Snapshot()
	}
	e1, r1 := build()
	e2, r2 := build()
	if len(e1) != len(e2) {
		t.Fatalf("edge counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d differs between builds: %+v vs %+v", i, e1[i], e2[i])
		}
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Errorf("rank %d differs between builds: %d vs %d", i, r1[i], r2[i])
		}
	}
}
