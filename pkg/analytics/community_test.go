package analytics

import (
	"testing"

	"github.com/netintel/netintel/pkg/graph"
)

func TestCommunitiesEmptyGraph(t *testing.T) {
	assignment, err := Communities(graph.New())
	if err != nil {
		t.Fatal(err)
	}
	if assignment == nil || len(assignment) != 0 {
		t.Errorf("assignment = %v, want empty map", assignment)
	}
}

func TestCommunitiesIsolatedNodes(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"c", "a", "b"} {
		g.UpsertNode(graph.Node{ID: id})
	}

	assignment, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}
	// Every node is its own community; equal sizes tie-break on member ID.
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, w := range want {
		if assignment[id] != w {
			t.Errorf("community[%s] = %d, want %d", id, assignment[id], w)
		}
	}
}

func TestCommunitiesTwoTriangles(t *testing.T) {
	g := graph.New()
	for _, e := range [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "C"},
		{"D", "E"}, {"D", "F"}, {"E", "F"},
		{"C", "D"}, // bridge
	} {
		if err := g.UpsertEdge(graph.Edge{Source: e[0], Target: e[1], Impact: 0.5}); err != nil {
			t.Fatal(err)
		}
	}

	assignment, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}

	// Two modules of equal size; the one containing the smallest ID gets 0.
	want := map[string]int{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1}
	for id, w := range want {
		if assignment[id] != w {
			t.Errorf("community[%s] = %d, want %d", id, assignment[id], w)
		}
	}
}

func TestCommunitiesSinglePair(t *testing.T) {
	g := graph.New()
	if err := g.UpsertEdge(graph.Edge{Source: "A", Target: "B", Impact: 1}); err != nil {
		t.Fatal(err)
	}

	assignment, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}
	if assignment["A"] != assignment["B"] {
		t.Errorf("connected pair split: %v", assignment)
	}
	if assignment["A"] != 0 {
		t.Errorf("community[A] = %d, want 0", assignment["A"])
	}
}

func TestCommunitiesDeterministic(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New()
		for _, e := range [][2]string{
			{"A", "B"}, {"B", "C"}, {"C", "A"},
			{"D", "E"}, {"E", "F"},
			{"C", "D"},
			{"G", "A"},
		} {
			g.UpsertEdge(graph.Edge{Source: e[0], Target: e[1], Impact: 0.5})
		}
		return g
	}

	first, err := Communities(build())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Communities(build())
		if err != nil {
			t.Fatal(err)
		}
		for id, c := range first {
			if again[id] != c {
				t.Fatalf("run %d: community[%s] = %d, want %d", i, id, again[id], c)
			}
		}
	}
}

func TestCommunitiesPartitionIdempotent(t *testing.T) {
	g := graph.New()
	for _, e := range [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"},
	} {
		g.UpsertEdge(graph.Edge{Source: e[0], Target: e[1], Impact: 0.7})
	}

	first, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}
	g.SetCommunities(first)

	// Recomputing on an unchanged graph reproduces the same partition.
	second, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("partition sizes differ: %d vs %d", len(first), len(second))
	}
	for id, c := range first {
		if second[id] != c {
			t.Errorf("community[%s] changed: %d vs %d", id, c, second[id])
		}
	}
}

func TestCommunitiesIgnoreSelfLoops(t *testing.T) {
	g := graph.New()
	g.UpsertEdge(graph.Edge{Source: "A", Target: "A", Impact: 1})
	g.UpsertEdge(graph.Edge{Source: "A", Target: "B", Impact: 1})

	assignment, err := Communities(g)
	if err != nil {
		t.Fatal(err)
	}
	if assignment["A"] != assignment["B"] {
		t.Errorf("self-loop broke the pair merge: %v", assignment)
	}
}
