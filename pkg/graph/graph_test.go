package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestUpsertNode(t *testing.T) {
	tests := []struct {
		name      string
		node      Node
		wantErr   error
		wantID    string
		wantLabel string
	}{
		{name: "Basic", node: Node{ID: "OpenAI", Label: "OpenAI"}, wantID: "OpenAI", wantLabel: "OpenAI"},
		{name: "TrimsID", node: Node{ID: "  Nvidia  ", Label: "Nvidia"}, wantID: "Nvidia", wantLabel: "Nvidia"},
		{name: "LabelDefaultsToID", node: Node{ID: "AMD"}, wantID: "AMD", wantLabel: "AMD"},
		{name: "EmptyID", node: Node{ID: ""}, wantErr: ErrInvalidNodeID},
		{name: "WhitespaceID", node: Node{ID: "   "}, wantErr: ErrInvalidNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := g.UpsertNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpsertNode: err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if g.NodeCount() != 0 {
					t.Errorf("failed upsert changed the graph: %d nodes", g.NodeCount())
				}
				return
			}
			n, ok := g.Node(tt.wantID)
			if !ok {
				t.Fatalf("node %q not found after upsert", tt.wantID)
			}
			if n.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", n.Label, tt.wantLabel)
			}
			if n.Metadata == nil {
				t.Error("metadata is nil, want empty map")
			}
		})
	}
}

func TestUpsertNodeReplacesWholesale(t *testing.T) {
	g := New()
	score := 0.8
	community := 2
	if err := g.UpsertNode(Node{ID: "OpenAI", Category: "AI Lab", Influence: &score, Community: &community}); err != nil {
		t.Fatal(err)
	}

	// Second upsert without derived fields clears them.
	if err := g.UpsertNode(Node{ID: "OpenAI", Category: "Foundation Model Lab"}); err != nil {
		t.Fatal(err)
	}

	n, _ := g.Node("OpenAI")
	if n.Category != "Foundation Model Lab" {
		t.Errorf("category = %q, want %q", n.Category, "Foundation Model Lab")
	}
	if n.Influence != nil {
		t.Errorf("influence = %v, want nil after structural upsert", *n.Influence)
	}
	if n.Community != nil {
		t.Errorf("community = %v, want nil after structural upsert", *n.Community)
	}
	if g.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", g.NodeCount())
	}
}

func TestUpsertEdge(t *testing.T) {
	tests := []struct {
		name       string
		edge       Edge
		wantErr    error
		wantImpact float64
		wantType   string
	}{
		{name: "Basic", edge: Edge{Source: "A", Target: "B", RelationshipType: "investment", Impact: 0.7}, wantImpact: 0.7, wantType: "investment"},
		{name: "ClampsNegative", edge: Edge{Source: "A", Target: "B", RelationshipType: "x", Impact: -5}, wantImpact: 0, wantType: "x"},
		{name: "ClampsLarge", edge: Edge{Source: "A", Target: "B", RelationshipType: "x", Impact: 999}, wantImpact: 1, wantType: "x"},
		{name: "ClampsAboveOne", edge: Edge{Source: "A", Target: "B", RelationshipType: "x", Impact: 1.5}, wantImpact: 1, wantType: "x"},
		{name: "TypeDefaultsToUnknown", edge: Edge{Source: "A", Target: "B", Impact: 0.3}, wantImpact: 0.3, wantType: "unknown"},
		{name: "EmptySource", edge: Edge{Source: "", Target: "B"}, wantErr: ErrInvalidNodeID},
		{name: "EmptyTarget", edge: Edge{Source: "A", Target: "  "}, wantErr: ErrInvalidNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := g.UpsertEdge(tt.edge)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpsertEdge: err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			e, ok := g.Edge("A", "B")
			if !ok {
				t.Fatal("edge not found after upsert")
			}
			if e.Impact != tt.wantImpact {
				t.Errorf("impact = %v, want %v", e.Impact, tt.wantImpact)
			}
			if e.RelationshipType != tt.wantType {
				t.Errorf("relationship type = %q, want %q", e.RelationshipType, tt.wantType)
			}
		})
	}
}

func TestUpsertEdgeAutoCreatesBareNodes(t *testing.T) {
	g := New()
	if err := g.UpsertNode(Node{ID: "OpenAI", Label: "OpenAI", Category: "AI Lab"}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpsertEdge(Edge{Source: "OpenAI", Target: "Nvidia", RelationshipType: "hardware", Impact: 0.9}); err != nil {
		t.Fatal(err)
	}

	n, ok := g.Node("Nvidia")
	if !ok {
		t.Fatal("target node was not auto-created")
	}
	if n.Label != "Nvidia" {
		t.Errorf("auto-created label = %q, want %q", n.Label, "Nvidia")
	}
	if n.Category != "" {
		t.Errorf("auto-created category = %q, want empty", n.Category)
	}

	nodes, edges := g.Summary()
	if nodes != 2 || edges != 1 {
		t.Errorf("summary = (%d, %d), want (2, 1)", nodes, edges)
	}
}

func TestUpsertEdgeLastWriteWins(t *testing.T) {
	g := New()
	if err := g.UpsertEdge(Edge{Source: "A", Target: "B", RelationshipType: "investment", Impact: 0.3}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpsertEdge(Edge{Source: "A", Target: "B", RelationshipType: "cloud", Impact: 0.9}); err != nil {
		t.Fatal(err)
	}

	if g.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1 (no parallel edges)", g.EdgeCount())
	}
	e, _ := g.Edge("A", "B")
	if e.RelationshipType != "cloud" || e.Impact != 0.9 {
		t.Errorf("edge = (%q, %v), want (cloud, 0.9)", e.RelationshipType, e.Impact)
	}

	// The reverse direction is a distinct edge.
	if err := g.UpsertEdge(Edge{Source: "B", Target: "A", Impact: 0.1}); err != nil {
		t.Fatal(err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2 after reverse edge", g.EdgeCount())
	}
}

func TestUpsertEdgeSelfLoop(t *testing.T) {
	g := New()
	if err := g.UpsertEdge(Edge{Source: "A", Target: "A", Impact: 0.5}); err != nil {
		t.Fatalf("self-loop rejected by store: %v", err)
	}
	if _, ok := g.Edge("A", "A"); !ok {
		t.Error("self-loop not stored")
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	g := New()
	for _, e := range []Edge{
		{Source: "A", Target: "B", Impact: 0.5},
		{Source: "C", Target: "A", Impact: 0.5},
		{Source: "B", Target: "C", Impact: 0.5},
	} {
		if err := g.UpsertEdge(e); err != nil {
			t.Fatal(err)
		}
	}

	if !g.DeleteNode("A") {
		t.Fatal("DeleteNode(A) = false, want true")
	}

	nodes, edges := g.Summary()
	if nodes != 2 || edges != 1 {
		t.Errorf("summary = (%d, %d), want (2, 1)", nodes, edges)
	}
	if _, ok := g.Edge("A", "B"); ok {
		t.Error("edge A->B survived node deletion")
	}
	if _, ok := g.Edge("C", "A"); ok {
		t.Error("edge C->A survived node deletion")
	}
	if _, ok := g.Edge("B", "C"); !ok {
		t.Error("unrelated edge B->C was removed")
	}
	if got := g.Neighbors("C"); !slices.Equal(got, []string{"B"}) {
		t.Errorf("Neighbors(C) = %v, want [B]", got)
	}
}

func TestDeleteNodeMissing(t *testing.T) {
	g := New()
	if g.DeleteNode("ghost") {
		t.Error("DeleteNode(ghost) = true, want false")
	}
}

func TestRenameNode(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.UpsertNode(Node{ID: "A", Label: "Alpha"})
		g.UpsertNode(Node{ID: "B"})
		g.UpsertEdge(Edge{Source: "A", Target: "B", RelationshipType: "investment", Impact: 0.4})
		g.UpsertEdge(Edge{Source: "B", Target: "A", RelationshipType: "services", Impact: 0.2})
		return g
	}

	t.Run("RewritesEdges", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("A", "Z", ""); err != nil {
			t.Fatal(err)
		}

		if _, ok := g.Node("A"); ok {
			t.Error("old ID still present")
		}
		n, ok := g.Node("Z")
		if !ok {
			t.Fatal("new ID not present")
		}
		if n.Label != "Alpha" {
			t.Errorf("label = %q, want Alpha (unchanged)", n.Label)
		}

		if e, ok := g.Edge("Z", "B"); !ok || e.RelationshipType != "investment" {
			t.Errorf("outgoing edge not rewritten: %v, %v", e, ok)
		}
		if e, ok := g.Edge("B", "Z"); !ok || e.RelationshipType != "services" {
			t.Errorf("incoming edge not rewritten: %v, %v", e, ok)
		}
		if got := g.Neighbors("B"); !slices.Equal(got, []string{"Z"}) {
			t.Errorf("Neighbors(B) = %v, want [Z]", got)
		}
	})

	t.Run("UpdatesLabel", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("A", "Z", "Zeta"); err != nil {
			t.Fatal(err)
		}
		n, _ := g.Node("Z")
		if n.Label != "Zeta" {
			t.Errorf("label = %q, want Zeta", n.Label)
		}
	})

	t.Run("SameIDLabelOnly", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("A", "A", "Renamed"); err != nil {
			t.Fatal(err)
		}
		n, _ := g.Node("A")
		if n.Label != "Renamed" {
			t.Errorf("label = %q, want Renamed", n.Label)
		}
	})

	t.Run("UnknownNode", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("ghost", "Z", ""); !errors.Is(err, ErrUnknownNode) {
			t.Errorf("err = %v, want ErrUnknownNode", err)
		}
	})

	t.Run("DuplicateID", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("A", "B", ""); !errors.Is(err, ErrDuplicateNodeID) {
			t.Errorf("err = %v, want ErrDuplicateNodeID", err)
		}
		if _, ok := g.Node("A"); !ok {
			t.Error("failed rename removed the node")
		}
	})

	t.Run("EmptyNewID", func(t *testing.T) {
		g := build()
		if err := g.RenameNode("A", "  ", ""); !errors.Is(err, ErrInvalidNodeID) {
			t.Errorf("err = %v, want ErrInvalidNodeID", err)
		}
	})
}

func TestDeleteEdge(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		target     string
		typeFilter string
		want       bool
		wantEdges  int
	}{
		{name: "Exists", source: "A", target: "B", want: true, wantEdges: 0},
		{name: "Missing", source: "A", target: "C", want: false, wantEdges: 1},
		{name: "ReverseDirectionMissing", source: "B", target: "A", want: false, wantEdges: 1},
		{name: "TypeMatches", source: "A", target: "B", typeFilter: "investment", want: true, wantEdges: 0},
		{name: "TypeMismatch", source: "A", target: "B", typeFilter: "cloud", want: false, wantEdges: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if err := g.UpsertEdge(Edge{Source: "A", Target: "B", RelationshipType: "investment", Impact: 0.5}); err != nil {
				t.Fatal(err)
			}
			if got := g.DeleteEdge(tt.source, tt.target, tt.typeFilter); got != tt.want {
				t.Errorf("DeleteEdge = %v, want %v", got, tt.want)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("edge count = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	g := New()
	g.UpsertEdge(Edge{Source: "A", Target: "B", Impact: 0.5})
	g.UpsertEdge(Edge{Source: "B", Target: "A", Impact: 0.5})
	g.UpsertEdge(Edge{Source: "C", Target: "A", Impact: 0.5})

	if got := g.Neighbors("A"); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Neighbors(A) = %v, want [B C]", got)
	}
	if got := g.Neighbors("ghost"); got != nil {
		t.Errorf("Neighbors(ghost) = %v, want nil", got)
	}
}

func TestNodesAndEdgesSorted(t *testing.T) {
	g := New()
	g.UpsertEdge(Edge{Source: "z", Target: "a", Impact: 0.5})
	g.UpsertEdge(Edge{Source: "b", Target: "z", Impact: 0.5})
	g.UpsertNode(Node{ID: "m"})

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if !slices.Equal(ids, []string{"a", "b", "m", "z"}) {
		t.Errorf("node order = %v, want [a b m z]", ids)
	}

	edges := g.Edges()
	if edges[0].Source != "b" || edges[1].Source != "z" {
		t.Errorf("edge order = %s->%s, %s->%s, want b->z, z->a",
			edges[0].Source, edges[0].Target, edges[1].Source, edges[1].Target)
	}
}

func TestClear(t *testing.T) {
	g := New()
	g.UpsertEdge(Edge{Source: "A", Target: "B", Impact: 0.5})
	g.Clear()

	nodes, edges := g.Summary()
	if nodes != 0 || edges != 0 {
		t.Errorf("summary after Clear = (%d, %d), want (0, 0)", nodes, edges)
	}
	if err := g.UpsertNode(Node{ID: "A"}); err != nil {
		t.Errorf("graph unusable after Clear: %v", err)
	}
}

func TestClone(t *testing.T) {
	g := New()
	valuation := 157.0
	if err := g.UpsertNode(Node{
		ID:        "OpenAI",
		Category:  "AI Lab",
		Valuation: &valuation,
		Metadata:  map[string]any{"hq": "San Francisco"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpsertEdge(Edge{Source: "Nvidia", Target: "OpenAI", RelationshipType: "hardware", Impact: 0.9}); err != nil {
		t.Fatal(err)
	}
	g.SetInfluence(map[string]float64{"OpenAI": 1.0})

	clone := g.Clone()
	if !ToDocument(g).Equal(ToDocument(clone)) {
		t.Fatal("clone differs from original")
	}

	// Mutating the original must not show through the clone.
	g.UpsertEdge(Edge{Source: "OpenAI", Target: "Microsoft", Impact: 0.8})
	g.DeleteNode("Nvidia")
	n, _ := g.Node("OpenAI")
	n.Metadata["hq"] = "somewhere else"
	g.SetInfluence(map[string]float64{"OpenAI": 0.2})

	cn, ok := clone.Node("OpenAI")
	if !ok {
		t.Fatal("OpenAI missing from clone")
	}
	if cn.Metadata["hq"] != "San Francisco" {
		t.Errorf("clone metadata hq = %v, want San Francisco", cn.Metadata["hq"])
	}
	if cn.Influence == nil || *cn.Influence != 1.0 {
		t.Errorf("clone influence = %v, want 1.0", cn.Influence)
	}
	if nodes, edges := clone.Summary(); nodes != 2 || edges != 1 {
		t.Errorf("clone summary = (%d, %d), want (2, 1)", nodes, edges)
	}
	if got := clone.Neighbors("OpenAI"); !slices.Equal(got, []string{"Nvidia"}) {
		t.Errorf("clone neighbors = %v, want [Nvidia]", got)
	}
}

func TestSetInfluenceAndCommunities(t *testing.T) {
	g := New()
	g.UpsertNode(Node{ID: "A"})
	g.UpsertNode(Node{ID: "B"})

	g.SetInfluence(map[string]float64{"A": 1.0, "ghost": 0.5})
	g.SetCommunities(map[string]int{"A": 0, "ghost": 3})

	a, _ := g.Node("A")
	if a.Influence == nil || *a.Influence != 1.0 {
		t.Errorf("influence = %v, want 1.0", a.Influence)
	}
	if a.Community == nil || *a.Community != 0 {
		t.Errorf("community = %v, want 0", a.Community)
	}

	b, _ := g.Node("B")
	if b.Influence != nil || b.Community != nil {
		t.Error("node missing from mapping gained derived values")
	}
	if g.NodeCount() != 2 {
		t.Errorf("unknown ID in mapping created a node: %d nodes", g.NodeCount())
	}
}
