package style

import (
	"fmt"
	"strings"

	"github.com/netintel/netintel/pkg/graph"
)

// defaultInfluence sizes nodes before analytics have been run, keeping them
// just above the minimum radius.
const defaultInfluence = 0.01

// NodePayload is a display-ready node: entity attributes plus the derived
// visualization primitives (size, colors, tooltip).
type NodePayload struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	Category       string         `json:"category,omitempty"`
	Valuation      *float64       `json:"valuation,omitempty"`
	Role           string         `json:"role,omitempty"`
	CompanyType    string         `json:"company_type,omitempty"`
	LogoURL        string         `json:"logo_url,omitempty"`
	Metadata       map[string]any `json:"metadata"`
	Size           float64        `json:"size"`
	Influence      float64        `json:"influence"`
	Community      *int           `json:"community"`
	CommunityColor string         `json:"community_color"`
	CategoryColor  string         `json:"category_color"`
	Tooltip        string         `json:"tooltip"`
}

// LinkPayload is a display-ready edge. Impact is passed through as stored
// (already clamped at write time).
type LinkPayload struct {
	Source           string         `json:"source"`
	Target           string         `json:"target"`
	RelationshipType string         `json:"relationship_type"`
	Impact           float64        `json:"impact"`
	Directed         bool           `json:"directed"`
	Metadata         map[string]any `json:"metadata"`
	Color            string         `json:"color"`
	Curvature        float64        `json:"curvature"`
}

// Payload is the complete visualization payload for the renderer.
type Payload struct {
	Nodes []NodePayload `json:"nodes"`
	Links []LinkPayload `json:"links"`
}

// BuildPayload transforms a graph snapshot (analytics populated or not) into
// a display payload under the given styling policy. It is a pure function of
// its inputs: the graph is read, never written.
func BuildPayload(g *graph.Graph, cfg RenderConfig) Payload {
	p := Payload{
		Nodes: make([]NodePayload, 0, g.NodeCount()),
		Links: make([]LinkPayload, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		influence := n.InfluenceOr(defaultInfluence)
		size := cfg.NodeSizeMin + influence*(cfg.NodeSizeMax-cfg.NodeSizeMin)

		np := NodePayload{
			ID:             n.ID,
			Label:          n.DisplayLabel(),
			Category:       n.Category,
			Valuation:      n.Valuation,
			Role:           n.Role,
			CompanyType:    n.CompanyType,
			LogoURL:        n.LogoURL,
			Metadata:       n.Metadata,
			Size:           size,
			Influence:      influence,
			Community:      n.Community,
			CommunityColor: CommunityColor(n.Community),
			CategoryColor:  CategoryColor(n.Category),
			Tooltip:        buildTooltip(n, influence),
		}
		if np.Metadata == nil {
			np.Metadata = map[string]any{}
		}
		p.Nodes = append(p.Nodes, np)
	}

	for _, e := range g.Edges() {
		lp := LinkPayload{
			Source:           e.Source,
			Target:           e.Target,
			RelationshipType: e.RelationshipType,
			Impact:           e.Impact,
			Directed:         e.Directed,
			Metadata:         e.Metadata,
			Color:            EdgeColor(e.RelationshipType),
			Curvature:        cfg.LinkCurvature,
		}
		if lp.Metadata == nil {
			lp.Metadata = map[string]any{}
		}
		p.Links = append(p.Links, lp)
	}

	return p
}

// buildTooltip renders the hover text for a node. The label always leads;
// category, role, type, valuation and community appear only when present;
// influence is always shown with three decimals.
func buildTooltip(n *graph.Node, influence float64) string {
	parts := []string{fmt.Sprintf("<b>%s</b>", n.DisplayLabel())}

	if n.Category != "" {
		parts = append(parts, "Category: "+n.Category)
	}
	if n.Role != "" {
		parts = append(parts, "Role: "+n.Role)
	}
	if n.CompanyType != "" {
		parts = append(parts, "Type: "+n.CompanyType)
	}
	if n.Valuation != nil {
		parts = append(parts, "Valuation: "+FormatValuation(*n.Valuation))
	}
	parts = append(parts, fmt.Sprintf("Influence: %.3f", influence))
	if n.Community != nil {
		parts = append(parts, fmt.Sprintf("Community: %d", *n.Community))
	}

	return strings.Join(parts, "<br/>")
}

// FormatValuation renders a dollar amount with B/M suffixes above the
// billion/million thresholds and comma-grouped digits below.
func FormatValuation(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	default:
		return "$" + groupDigits(fmt.Sprintf("%.0f", v))
	}
}

// groupDigits inserts thousands separators into a plain integer string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
