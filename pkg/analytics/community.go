package analytics

import (
	"slices"
	"strings"

	"github.com/netintel/netintel/pkg/graph"

	apperrors "github.com/netintel/netintel/pkg/errors"
)

// Communities groups structurally related nodes by greedy modularity
// maximization over the undirected projection of the graph.
//
// Starting from singleton communities, the pair of connected communities
// whose merger yields the largest modularity gain is merged repeatedly until
// no positive-gain merge remains. Community IDs are 0-based integers assigned
// largest-community-first; ties break on the smallest member ID, so repeated
// runs on an unchanged graph produce identical assignments.
//
// An empty graph yields an empty map. The only error condition is a
// malformed projection (an edge referencing a missing node), which cannot
// occur for graphs built through the public store operations.
func Communities(g *graph.Graph) (map[string]int, error) {
	if g.NodeCount() == 0 {
		return map[string]int{}, nil
	}

	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}
	for _, e := range g.Edges() {
		if _, ok := index[e.Source]; !ok {
			return nil, apperrors.New(apperrors.ErrCodeAnalytics, "edge source %q not in graph", e.Source)
		}
		if _, ok := index[e.Target]; !ok {
			return nil, apperrors.New(apperrors.ErrCodeAnalytics, "edge target %q not in graph", e.Target)
		}
	}

	merged := greedyModularityMerge(g)
	return assignIDs(merged), nil
}

// community tracks one cluster during the merge process.
type community struct {
	members []string       // node IDs, kept sorted
	degree  float64        // sum of member degrees in the projection
	links   map[int]float64 // neighbor community -> edge count between them
}

// greedyModularityMerge implements the Clauset-Newman-Moore greedy scheme on
// the unweighted undirected projection.
func greedyModularityMerge(g *graph.Graph) []*community {
	adj := undirectedAdjacency(g)

	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	// Count undirected edges once.
	var m float64
	for _, id := range ids {
		m += float64(len(adj[id]))
	}
	m /= 2

	comms := make(map[int]*community, len(ids))
	nodeComm := make(map[string]int, len(ids))
	for i, id := range ids {
		comms[i] = &community{
			members: []string{id},
			degree:  float64(len(adj[id])),
			links:   make(map[int]float64),
		}
		nodeComm[id] = i
	}
	for _, id := range ids {
		for neighbor := range adj[id] {
			a, b := nodeComm[id], nodeComm[neighbor]
			if a != b {
				comms[a].links[b]++
			}
		}
	}
	if m == 0 {
		return sortedCommunities(comms)
	}

	for {
		bestGain := 0.0
		bestA, bestB := -1, -1

		keys := make([]int, 0, len(comms))
		for k := range comms {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, a := range keys {
			ca := comms[a]
			neighbors := make([]int, 0, len(ca.links))
			for b := range ca.links {
				if b > a {
					neighbors = append(neighbors, b)
				}
			}
			slices.Sort(neighbors)

			for _, b := range neighbors {
				cb := comms[b]
				// Modularity gain of merging a and b: e_ab/m - K_a*K_b/(2m^2).
				gain := ca.links[b]/m - ca.degree*cb.degree/(2*m*m)
				if gain > bestGain {
					bestGain = gain
					bestA, bestB = a, b
				}
			}
		}

		if bestA < 0 || bestGain <= 0 {
			break
		}
		merge(comms, bestA, bestB)
	}

	return sortedCommunities(comms)
}

// merge folds community b into community a and rewires neighbor links.
func merge(comms map[int]*community, a, b int) {
	ca, cb := comms[a], comms[b]
	ca.members = append(ca.members, cb.members...)
	slices.Sort(ca.members)
	ca.degree += cb.degree

	delete(ca.links, b)
	delete(cb.links, a)
	for n, w := range cb.links {
		ca.links[n] += w
		cn := comms[n]
		cn.links[a] += w
		delete(cn.links, b)
	}
	delete(comms, b)
}

// sortedCommunities orders communities largest-first, breaking ties on the
// smallest member ID.
func sortedCommunities(comms map[int]*community) []*community {
	out := make([]*community, 0, len(comms))
	for _, c := range comms {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *community) int {
		if len(a.members) != len(b.members) {
			return len(b.members) - len(a.members)
		}
		return strings.Compare(a.members[0], b.members[0])
	})
	return out
}

// assignIDs flattens ordered communities into a node -> community ID map.
func assignIDs(comms []*community) map[string]int {
	assignment := make(map[string]int)
	for id, c := range comms {
		for _, member := range c.members {
			assignment[member] = id
		}
	}
	return assignment
}
