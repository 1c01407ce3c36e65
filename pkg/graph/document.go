package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// DocumentVersion is the current serialization format version.
const DocumentVersion = 1

// Document is the canonical serialization format for network graphs.
// Used for API responses, file persistence and database storage.
//
// The format is human-readable and designed for round-trip fidelity:
// FromDocument(ToDocument(g)) reproduces g's node set, edge set and all
// attribute values, analytics included.
type Document struct {
	Version int            `json:"version" bson:"version"`
	Nodes   []NodeDocument `json:"nodes" bson:"nodes"`
	Edges   []EdgeDocument `json:"edges" bson:"edges"`
}

// NodeDocument is the serialized form of a node, including derived analytics.
// Influence defaults to 0.0 for nodes that were never scored; Community is
// null until a partition has been assigned.
type NodeDocument struct {
	ID          string         `json:"id" bson:"id"`
	Label       string         `json:"label" bson:"label"`
	Category    string         `json:"category,omitempty" bson:"category,omitempty"`
	Valuation   *float64       `json:"valuation,omitempty" bson:"valuation,omitempty"`
	Role        string         `json:"role,omitempty" bson:"role,omitempty"`
	CompanyType string         `json:"company_type,omitempty" bson:"company_type,omitempty"`
	LogoURL     string         `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Metadata    map[string]any `json:"metadata" bson:"metadata"`
	Influence   float64        `json:"influence" bson:"influence"`
	Community   *int           `json:"community" bson:"community"`
}

// EdgeDocument is the serialized form of an edge with plain-string endpoints.
type EdgeDocument struct {
	Source           string         `json:"source" bson:"source"`
	Target           string         `json:"target" bson:"target"`
	RelationshipType string         `json:"relationship_type" bson:"relationship_type"`
	Impact           float64        `json:"impact" bson:"impact"`
	Directed         bool           `json:"directed" bson:"directed"`
	Metadata         map[string]any `json:"metadata" bson:"metadata"`
}

// ToDocument exports the graph to its serialization format.
// Nodes are sorted by ID and edges by (source, target) for deterministic
// output.
func ToDocument(g *Graph) Document {
	doc := Document{
		Version: DocumentVersion,
		Nodes:   make([]NodeDocument, 0, g.NodeCount()),
		Edges:   make([]EdgeDocument, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		nd := NodeDocument{
			ID:          n.ID,
			Label:       n.DisplayLabel(),
			Category:    n.Category,
			Valuation:   n.Valuation,
			Role:        n.Role,
			CompanyType: n.CompanyType,
			LogoURL:     n.LogoURL,
			Metadata:    n.Metadata,
			Influence:   n.InfluenceOr(0),
			Community:   n.Community,
		}
		if nd.Metadata == nil {
			nd.Metadata = map[string]any{}
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	for _, e := range g.Edges() {
		ed := EdgeDocument{
			Source:           e.Source,
			Target:           e.Target,
			RelationshipType: e.RelationshipType,
			Impact:           e.Impact,
			Directed:         e.Directed,
			Metadata:         e.Metadata,
		}
		if ed.Metadata == nil {
			ed.Metadata = map[string]any{}
		}
		doc.Edges = append(doc.Edges, ed)
	}

	return doc
}

// FromDocument reconstructs a graph by replaying UpsertNode for every node
// document (restoring influence/community from the document) and then
// UpsertEdge for every edge document in document order.
//
// A node serialized with influence 0 and a null community is treated as
// never scored and comes back with nil analytics fields, so default payload
// sizing survives a round trip.
func FromDocument(doc Document) (*Graph, error) {
	g := New()

	for _, nd := range doc.Nodes {
		n := Node{
			ID:          nd.ID,
			Label:       nd.Label,
			Category:    nd.Category,
			Valuation:   nd.Valuation,
			Role:        nd.Role,
			CompanyType: nd.CompanyType,
			LogoURL:     nd.LogoURL,
			Metadata:    copyMeta(nd.Metadata),
		}
		if nd.Influence != 0 || nd.Community != nil {
			influence := nd.Influence
			n.Influence = &influence
		}
		if nd.Community != nil {
			community := *nd.Community
			n.Community = &community
		}
		if err := g.UpsertNode(n); err != nil {
			return nil, fmt.Errorf("add node %q: %w", nd.ID, err)
		}
	}

	for _, ed := range doc.Edges {
		e := Edge{
			Source:           ed.Source,
			Target:           ed.Target,
			RelationshipType: ed.RelationshipType,
			Impact:           ed.Impact,
			Directed:         ed.Directed,
			Metadata:         copyMeta(ed.Metadata),
		}
		if err := g.UpsertEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ed.Source, ed.Target, err)
		}
	}

	return g, nil
}

// MarshalDocument serializes a graph to indented JSON bytes.
func MarshalDocument(g *Graph) ([]byte, error) {
	return json.MarshalIndent(ToDocument(g), "", "  ")
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Equal reports whether two documents describe the same graph: same node
// set, same edge set and identical attribute values. Node and edge order is
// already canonical in documents produced by ToDocument.
func (d Document) Equal(other Document) bool {
	a, errA := json.Marshal(canonical(d))
	b, errB := json.Marshal(canonical(other))
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

func canonical(d Document) Document {
	slices.SortFunc(d.Nodes, func(a, b NodeDocument) int {
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(d.Edges, func(a, b EdgeDocument) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return d
}

// copyMeta creates a shallow copy of metadata to avoid shared mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
