package render

import (
	"strings"
	"testing"

	"github.com/netintel/netintel/pkg/graph"
	"github.com/netintel/netintel/pkg/style"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	if err := g.UpsertNode(graph.Node{ID: "OpenAI", Label: "OpenAI", Category: "AI Lab"}); err != nil {
		t.Fatal(err)
	}
	if err := g.UpsertEdge(graph.Edge{Source: "Nvidia", Target: "OpenAI", RelationshipType: "hardware", Impact: 0.9, Directed: true}); err != nil {
		t.Fatal(err)
	}
	g.SetInfluence(map[string]float64{"OpenAI": 1.0, "Nvidia": 0.4})
	g.SetCommunities(map[string]int{"OpenAI": 0, "Nvidia": 0})
	return g
}

func TestToDOT(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, style.DefaultConfig(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`bgcolor="#050816"`,
		`"OpenAI" [`,
		`"Nvidia" [`,
		`"Nvidia" -> "OpenAI"`,
		`fillcolor="#38bdf8"`, // community 0 palette color
		`color="#f97316"`,     // hardware edge color, alpha dropped
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Influence 1.0 maps to the maximum node width (20px / 10).
	if !strings.Contains(dot, "width=2.00") {
		t.Errorf("DOT missing max-influence width:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, style.DefaultConfig(), Options{Detailed: true})

	if !strings.Contains(dot, "AI Lab") {
		t.Errorf("detailed DOT missing category:\n%s", dot)
	}
	if !strings.Contains(dot, "1.000") {
		t.Errorf("detailed DOT missing influence score:\n%s", dot)
	}
	if !strings.Contains(dot, `label="hardware"`) {
		t.Errorf("detailed DOT missing edge label:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	dot := ToDOT(graph.New(), style.DefaultConfig(), Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph produced invalid DOT:\n%s", dot)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rgba(249, 115, 22, 0.95)", "#f97316"},
		{"rgba(148, 163, 184, 0.8)", "#94a3b8"},
		{"#abcdef", "#abcdef"},
		{"rgba(broken", "#888888"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
