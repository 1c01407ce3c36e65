package graph

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node represents an entity in the network graph. Identity is defined by ID
// alone: two nodes are equal iff their IDs are equal, independent of every
// other field.
//
// Influence and Community are derived attributes owned by the analytics
// engine. They are nil until the first computation and are cleared whenever
// the node record is structurally replaced through [Graph.UpsertNode].
type Node struct {
	ID          string         // Unique identifier (trimmed, non-empty)
	Label       string         // Display name (defaults to ID)
	Category    string         // Entity category (e.g., "AI Lab")
	Role        string         // Function in the network
	CompanyType string         // Public, Private, Startup, ...
	LogoURL     string         // Logo/avatar image URL
	Valuation   *float64       // Non-negative valuation, nil when unknown
	Metadata    map[string]any // Arbitrary key-value data (never nil after normalization)

	Influence *float64 // Derived centrality score in [0,1], nil until computed
	Community *int     // Derived cluster ID, nil until computed
}

// NewNode validates and normalizes a node record.
// The ID is trimmed; an empty result is an ErrInvalidNodeID. The label
// defaults to the ID and nil metadata is replaced with an empty map.
func NewNode(n Node) (Node, error) {
	n.ID = strings.TrimSpace(n.ID)
	if n.ID == "" {
		return Node{}, ErrInvalidNodeID
	}
	if n.Label == "" {
		n.Label = n.ID
	}
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}
	return n, nil
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// InfluenceOr returns the node's influence score, or def when analytics have
// not been run for this node.
func (n *Node) InfluenceOr(def float64) float64 {
	if n.Influence == nil {
		return def
	}
	return *n.Influence
}

// Edge represents a directed relationship between two nodes. At most one edge
// exists per ordered (Source, Target) pair; a second write overwrites the
// prior edge's attributes.
type Edge struct {
	Source           string         // Source node ID
	Target           string         // Target node ID
	RelationshipType string         // Free-form type, defaults to "unknown"
	Impact           float64        // Relationship strength, clamped to [0,1] on write
	Directed         bool           // Whether the relationship is directional
	Metadata         map[string]any // Arbitrary key-value data (never nil after write)
}

// ClampImpact forces v into the valid impact range [0, 1].
func ClampImpact(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CoerceFloat converts a loosely-typed value (float, int, string or
// json.Number from a decoded request payload) to a float64, falling back to
// def when the value is missing or unparseable.
func CoerceFloat(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}
