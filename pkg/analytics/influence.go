package analytics

import (
	"math"

	"github.com/netintel/netintel/pkg/graph"
)

const (
	// maxIterations caps the power iteration used for eigenvector centrality.
	maxIterations = 1000

	// convergenceTol is the per-node L1 tolerance for declaring convergence.
	convergenceTol = 1e-6
)

// Influence computes a normalized centrality score in [0, 1] for every node.
//
// It first attempts eigenvector centrality over the directed graph using edge
// impact as the weight. When that computation is degenerate (no edges, no
// directed cycle) or fails to converge within the iteration cap, it falls
// back to degree centrality on the undirected projection. The resulting
// vector is divided by its maximum, so at least one node scores exactly 1.0
// unless every raw score was 0.
//
// An empty graph yields an empty map. Influence never fails: all numerical
// trouble degrades to the fallback.
func Influence(g *graph.Graph) map[string]float64 {
	if g.NodeCount() == 0 {
		return map[string]float64{}
	}

	scores, ok := eigenvectorCentrality(g)
	if !ok {
		scores = degreeCentrality(g)
	}
	return normalize(scores)
}

// eigenvectorCentrality runs weighted power iteration on the directed graph.
// A node's score is the impact-weighted sum of its predecessors' scores.
// Reports false when the graph is degenerate for eigenvector centrality or
// the iteration collapses to zero or fails to converge.
func eigenvectorCentrality(g *graph.Graph) (map[string]float64, bool) {
	nodes := g.Nodes()
	n := len(nodes)
	if g.EdgeCount() == 0 {
		return nil, false
	}

	// On an acyclic graph the iteration converges cleanly, but the dominant
	// eigenvector concentrates all mass on the sinks and leaves every node
	// upstream at effectively zero. The converged vector carries no ranking
	// information, so refuse it and let the caller fall back.
	if !hasDirectedCycle(g) {
		return nil, false
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node.ID] = i
	}

	// Row i of the iteration reads the incoming edges of node i.
	type inEdge struct {
		from   int
		weight float64
	}
	in := make([][]inEdge, n)
	for _, e := range g.Edges() {
		s, t := index[e.Source], index[e.Target]
		in[t] = append(in[t], inEdge{from: s, weight: e.Impact})
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)

	for iter := 0; iter < maxIterations; iter++ {
		for i := range next {
			sum := x[i]
			for _, e := range in[i] {
				sum += e.weight * x[e.from]
			}
			next[i] = sum
		}

		var norm float64
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, false
		}

		var delta float64
		for i := range next {
			next[i] /= norm
			delta += math.Abs(next[i] - x[i])
		}
		x, next = next, x

		if delta < float64(n)*convergenceTol {
			scores := make(map[string]float64, n)
			for i, node := range nodes {
				scores[node.ID] = x[i]
			}
			return scores, true
		}
	}

	return nil, false
}

// hasDirectedCycle reports whether the graph contains a directed cycle.
// Self-loops count as cycles.
func hasDirectedCycle(g *graph.Graph) bool {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, g.NodeCount())

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = inProgress
		for _, succ := range g.Successors(id) {
			switch state[succ] {
			case inProgress:
				return true
			case unvisited:
				if visit(succ) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for _, node := range g.Nodes() {
		if state[node.ID] == unvisited && visit(node.ID) {
			return true
		}
	}
	return false
}

// degreeCentrality computes degree centrality on the undirected projection,
// counting each directed edge as one undirected connection.
func degreeCentrality(g *graph.Graph) map[string]float64 {
	adj := undirectedAdjacency(g)
	n := g.NodeCount()

	scale := 1.0
	if n > 1 {
		scale = 1.0 / float64(n-1)
	}

	scores := make(map[string]float64, n)
	for _, node := range g.Nodes() {
		scores[node.ID] = float64(len(adj[node.ID])) * scale
	}
	return scores
}

// normalize divides every score by the maximum observed, leaving all values
// in [0, 1]. A max of exactly 0 is treated as 1 so an all-zero vector stays
// all-zero instead of dividing by zero.
func normalize(scores map[string]float64) map[string]float64 {
	maxVal := 0.0
	for _, v := range scores {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1.0
	}

	out := make(map[string]float64, len(scores))
	for id, v := range scores {
		out[id] = v / maxVal
	}
	return out
}

// undirectedAdjacency projects the directed graph to undirected, merging
// reciprocal edges into a single connection.
func undirectedAdjacency(g *graph.Graph) map[string]map[string]struct{} {
	adj := make(map[string]map[string]struct{}, g.NodeCount())
	for _, node := range g.Nodes() {
		adj[node.ID] = make(map[string]struct{})
	}
	for _, e := range g.Edges() {
		if e.Source == e.Target {
			continue
		}
		adj[e.Source][e.Target] = struct{}{}
		adj[e.Target][e.Source] = struct{}{}
	}
	return adj
}
