package graph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [NewNode], [Graph.UpsertNode],
	// [Graph.UpsertEdge] and [Graph.RenameNode] when a node ID is empty after
	// trimming. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownNode is returned by [Graph.RenameNode] when the node to
	// rename does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNodeID is returned by [Graph.RenameNode] when the new ID is
	// already taken by a different node. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// edgeKey identifies an edge by its ordered (source, target) pair.
type edgeKey struct {
	source, target string
}

// Graph is an in-memory directed graph of entities and relationships.
// It is the sole owner of the node and edge collections; exactly one instance
// is live per process.
//
// The zero value is not usable - use New to create a valid instance.
// Graph is not safe for concurrent use without external synchronization:
// callers exposing it behind a concurrent boundary must guarantee at most one
// in-flight mutation at a time.
type Graph struct {
	nodes    map[string]*Node
	edges    map[edgeKey]*Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[edgeKey]*Edge),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// UpsertNode inserts the node or fully replaces the attributes stored under
// its ID. The record is replaced wholesale, which clears any previously
// computed Influence/Community unless the caller set them explicitly on n;
// callers are expected to recompute analytics after structural changes.
//
// Returns ErrInvalidNodeID if the ID is empty after trimming. Failed upserts
// leave the graph unchanged.
func (g *Graph) UpsertNode(n Node) error {
	n, err := NewNode(n)
	if err != nil {
		return err
	}
	node := &n
	if _, exists := g.nodes[n.ID]; !exists {
		g.outgoing[n.ID] = nil
		g.incoming[n.ID] = nil
	}
	g.nodes[n.ID] = node
	return nil
}

// Node returns the node with the given ID and true, or nil and false when not
// found. The returned pointer refers to the stored record; callers must not
// change its ID (use RenameNode instead).
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID for deterministic iteration.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int {
		return strings.Compare(a.ID, b.ID)
	})
	return nodes
}

// DeleteNode removes the node and every edge where it appears as source or
// target. Reports whether a node was found.
func (g *Graph) DeleteNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	for _, succ := range g.outgoing[id] {
		delete(g.edges, edgeKey{id, succ})
		g.incoming[succ] = removeID(g.incoming[succ], id)
	}
	for _, pred := range g.incoming[id] {
		delete(g.edges, edgeKey{pred, id})
		g.outgoing[pred] = removeID(g.outgoing[pred], id)
	}
	delete(g.nodes, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	return true
}

// RenameNode changes a node's ID, rewriting the endpoints of every incident
// edge. The label is updated only when newLabel is non-empty.
//
// Returns ErrInvalidNodeID if newID is empty after trimming, ErrUnknownNode
// if id is absent, or ErrDuplicateNodeID if newID belongs to a different
// node. Failed renames leave the graph unchanged.
func (g *Graph) RenameNode(id, newID, newLabel string) error {
	newID = strings.TrimSpace(newID)
	if newID == "" {
		return ErrInvalidNodeID
	}
	node, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if _, exists := g.nodes[newID]; exists && newID != id {
		return ErrDuplicateNodeID
	}

	if newID != id {
		node.ID = newID
		delete(g.nodes, id)
		g.nodes[newID] = node

		for key, e := range g.edges {
			if key.source != id && key.target != id {
				continue
			}
			delete(g.edges, key)
			if e.Source == id {
				e.Source = newID
			}
			if e.Target == id {
				e.Target = newID
			}
			g.edges[edgeKey{e.Source, e.Target}] = e
		}

		g.outgoing[newID] = g.outgoing[id]
		delete(g.outgoing, id)
		for nid, targets := range g.outgoing {
			for i, t := range targets {
				if t == id {
					g.outgoing[nid][i] = newID
				}
			}
		}

		g.incoming[newID] = g.incoming[id]
		delete(g.incoming, id)
		for nid, sources := range g.incoming {
			for i, s := range sources {
				if s == id {
					g.incoming[nid][i] = newID
				}
			}
		}
	}

	if newLabel != "" {
		node.Label = newLabel
	}
	return nil
}

// UpsertEdge writes or overwrites the edge for the ordered (Source, Target)
// pair. Endpoints that do not exist yet are auto-created as bare nodes whose
// ID and label are the given string. Impact is clamped into [0,1], an empty
// relationship type defaults to "unknown", and nil metadata becomes an empty
// map. A second write for the same ordered pair replaces the prior edge's
// attributes; it never creates a parallel edge.
//
// Returns ErrInvalidNodeID when either endpoint is empty after trimming.
func (g *Graph) UpsertEdge(e Edge) error {
	e.Source = strings.TrimSpace(e.Source)
	e.Target = strings.TrimSpace(e.Target)
	if e.Source == "" || e.Target == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.nodes[e.Source]; !ok {
		if err := g.UpsertNode(Node{ID: e.Source}); err != nil {
			return err
		}
	}
	if _, ok := g.nodes[e.Target]; !ok {
		if err := g.UpsertNode(Node{ID: e.Target}); err != nil {
			return err
		}
	}

	if e.RelationshipType == "" {
		e.RelationshipType = "unknown"
	}
	e.Impact = ClampImpact(e.Impact)
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	key := edgeKey{e.Source, e.Target}
	if _, exists := g.edges[key]; !exists {
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
		g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	}
	g.edges[key] = &e
	return nil
}

// Edge returns the edge for the ordered (source, target) pair and true, or
// nil and false when absent.
func (g *Graph) Edge(source, target string) (*Edge, bool) {
	e, ok := g.edges[edgeKey{source, target}]
	return e, ok
}

// Edges returns all edges sorted by (source, target) for deterministic
// iteration.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b *Edge) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return edges
}

// DeleteEdge removes the edge for the ordered (source, target) pair. When
// typeFilter is non-empty the edge is removed only if its relationship type
// matches exactly (case-sensitive). Reports whether a removal occurred.
func (g *Graph) DeleteEdge(source, target, typeFilter string) bool {
	key := edgeKey{source, target}
	e, ok := g.edges[key]
	if !ok {
		return false
	}
	if typeFilter != "" && e.RelationshipType != typeFilter {
		return false
	}
	delete(g.edges, key)
	g.outgoing[source] = removeID(g.outgoing[source], target)
	g.incoming[target] = removeID(g.incoming[target], source)
	return true
}

// Neighbors returns the deduplicated union of predecessors and successors of
// the node, sorted by ID. Unknown nodes yield an empty slice, not an error.
func (g *Graph) Neighbors(id string) []string {
	if _, ok := g.nodes[id]; !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, s := range g.outgoing[id] {
		seen[s] = struct{}{}
	}
	for _, p := range g.incoming[id] {
		seen[p] = struct{}{}
	}
	neighbors := make([]string, 0, len(seen))
	for n := range seen {
		neighbors = append(neighbors, n)
	}
	slices.Sort(neighbors)
	return neighbors
}

// Successors returns the IDs of nodes this node has edges to.
// The returned slice is a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs of nodes that have edges to this node.
// The returned slice is a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Summary returns (node count, edge count).
func (g *Graph) Summary() (int, int) { return len(g.nodes), len(g.edges) }

// Clear removes all nodes and edges.
func (g *Graph) Clear() {
	g.nodes = make(map[string]*Node)
	g.edges = make(map[edgeKey]*Edge)
	g.outgoing = make(map[string][]string)
	g.incoming = make(map[string][]string)
}

// Clone returns a deep copy of the graph. The copy shares no mutable state
// with the original, so it can be read (persisted, exported) while the
// original continues to change.
func (g *Graph) Clone() *Graph {
	out := New()
	for id, n := range g.nodes {
		c := *n
		if n.Valuation != nil {
			v := *n.Valuation
			c.Valuation = &v
		}
		if n.Influence != nil {
			v := *n.Influence
			c.Influence = &v
		}
		if n.Community != nil {
			v := *n.Community
			c.Community = &v
		}
		c.Metadata = copyMeta(n.Metadata)
		out.nodes[id] = &c
	}
	for key, e := range g.edges {
		c := *e
		c.Metadata = copyMeta(e.Metadata)
		out.edges[key] = &c
	}
	for id, ids := range g.outgoing {
		out.outgoing[id] = slices.Clone(ids)
	}
	for id, ids := range g.incoming {
		out.incoming[id] = slices.Clone(ids)
	}
	return out
}

// SetInfluence merges a score mapping computed by the analytics engine into
// the node records. Scores for unknown node IDs are ignored; nodes missing
// from the mapping keep their current value.
func (g *Graph) SetInfluence(scores map[string]float64) {
	for id, score := range scores {
		if n, ok := g.nodes[id]; ok {
			s := score
			n.Influence = &s
		}
	}
}

// SetCommunities merges a community assignment computed by the analytics
// engine into the node records. Assignments for unknown node IDs are ignored.
func (g *Graph) SetCommunities(assignment map[string]int) {
	for id, community := range assignment {
		if n, ok := g.nodes[id]; ok {
			c := community
			n.Community = &c
		}
	}
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
