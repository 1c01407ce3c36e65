package storage

import (
	"github.com/netintel/netintel/pkg/analytics"
	"github.com/netintel/netintel/pkg/graph"
)

// SeedGraph builds the fixed demonstration network: 13 companies in the AI
// supply chain connected by 22 relationships, with analytics precomputed so
// the first render is fully styled.
func SeedGraph() *graph.Graph {
	g := graph.New()

	companies := []graph.Node{
		{
			ID:          "OpenAI",
			Category:    "AI Lab",
			Valuation:   val(80e9),
			Role:        "Model provider",
			CompanyType: "Private",
			Metadata:    map[string]any{"location": "San Francisco"},
		},
		{
			ID:          "Nvidia",
			Category:    "GPU Hardware",
			Valuation:   val(2_500e9),
			Role:        "GPU vendor",
			CompanyType: "Public",
			Metadata:    map[string]any{"ticker": "NVDA"},
		},
		{
			ID:          "Microsoft",
			Category:    "Cloud & Software",
			Valuation:   val(3_100e9),
			Role:        "Cloud provider / Investor",
			CompanyType: "Public",
			Metadata:    map[string]any{"ticker": "MSFT"},
		},
		{
			ID:          "Oracle",
			Category:    "Cloud",
			Valuation:   val(300e9),
			Role:        "Cloud provider",
			CompanyType: "Public",
			Metadata:    map[string]any{"ticker": "ORCL"},
		},
		{
			ID:          "AMD",
			Category:    "GPU Hardware",
			Valuation:   val(300e9),
			Role:        "GPU vendor",
			CompanyType: "Public",
			Metadata:    map[string]any{"ticker": "AMD"},
		},
		{
			ID:          "Intel",
			Category:    "CPU / Foundry",
			Valuation:   val(200e9),
			Role:        "CPU / Foundry",
			CompanyType: "Public",
			Metadata:    map[string]any{"ticker": "INTC"},
		},
		{
			ID:          "xAI",
			Category:    "AI Lab",
			Valuation:   val(24e9),
			Role:        "Model provider",
			CompanyType: "Private",
		},
		{
			ID:          "CoreWeave",
			Category:    "AI Cloud",
			Valuation:   val(19e9),
			Role:        "GPU cloud",
			CompanyType: "Private",
		},
		{
			ID:          "Mistral",
			Label:       "Mistral AI",
			Category:    "AI Lab",
			Valuation:   val(6e9),
			Role:        "Model provider",
			CompanyType: "Startup",
		},
		{
			ID:          "FigureAI",
			Label:       "Figure AI",
			Category:    "Robotics",
			Valuation:   val(2.6e9),
			Role:        "Humanoid robots",
			CompanyType: "Startup",
		},
		{
			ID:          "Anthropic",
			Category:    "AI Lab",
			Valuation:   val(15e9),
			Role:        "Model provider",
			CompanyType: "Private",
		},
		{
			ID:          "Google",
			Category:    "Cloud & AI",
			Valuation:   val(2_000e9),
			Role:        "Cloud + AI",
			CompanyType: "Public",
		},
		{
			ID:          "Amazon",
			Category:    "Cloud",
			Valuation:   val(1_900e9),
			Role:        "Cloud provider",
			CompanyType: "Public",
		},
	}
	for _, c := range companies {
		// Seed data is static and validated by construction.
		_ = g.UpsertNode(c)
	}

	relationships := []graph.Edge{
		// Hardware supply
		{Source: "Nvidia", Target: "OpenAI", RelationshipType: "hardware", Impact: 0.85, Metadata: map[string]any{"note": "GPU supply"}},
		{Source: "Nvidia", Target: "CoreWeave", RelationshipType: "hardware", Impact: 0.8},
		{Source: "Nvidia", Target: "Microsoft", RelationshipType: "hardware", Impact: 0.7},
		{Source: "Nvidia", Target: "Amazon", RelationshipType: "hardware", Impact: 0.7},
		{Source: "Nvidia", Target: "Google", RelationshipType: "hardware", Impact: 0.7},
		{Source: "Nvidia", Target: "xAI", RelationshipType: "hardware", Impact: 0.8},
		{Source: "Nvidia", Target: "Mistral", RelationshipType: "hardware", Impact: 0.6},
		{Source: "AMD", Target: "CoreWeave", RelationshipType: "hardware", Impact: 0.5},
		{Source: "AMD", Target: "Microsoft", RelationshipType: "hardware", Impact: 0.4},
		{Source: "Intel", Target: "Microsoft", RelationshipType: "hardware", Impact: 0.2},
		{Source: "Intel", Target: "Amazon", RelationshipType: "hardware", Impact: 0.2},

		// Cloud
		{Source: "Microsoft", Target: "OpenAI", RelationshipType: "cloud", Impact: 0.9, Metadata: map[string]any{"note": "Azure supercomputing"}},
		{Source: "Oracle", Target: "OpenAI", RelationshipType: "cloud", Impact: 0.6, Metadata: map[string]any{"note": "OCI for training"}},
		{Source: "CoreWeave", Target: "OpenAI", RelationshipType: "cloud", Impact: 0.7, Metadata: map[string]any{"note": "Specialized GPU cloud"}},
		{Source: "Mistral", Target: "CoreWeave", RelationshipType: "cloud", Impact: 0.5},
		{Source: "Anthropic", Target: "Amazon", RelationshipType: "cloud", Impact: 0.8},
		{Source: "Anthropic", Target: "Google", RelationshipType: "cloud", Impact: 0.6},

		// Investment
		{Source: "Microsoft", Target: "FigureAI", RelationshipType: "investment", Impact: 0.7},
		{Source: "Google", Target: "Anthropic", RelationshipType: "investment", Impact: 0.7},
		{Source: "Amazon", Target: "Anthropic", RelationshipType: "investment", Impact: 0.7},

		// Software / services
		{Source: "OpenAI", Target: "FigureAI", RelationshipType: "software", Impact: 0.6, Metadata: map[string]any{"note": "Models for robotics"}},
		{Source: "xAI", Target: "Nvidia", RelationshipType: "services", Impact: 0.4, Metadata: map[string]any{"note": "Model customer"}},
	}
	for _, e := range relationships {
		e.Directed = true
		_ = g.UpsertEdge(e)
	}

	g.SetInfluence(analytics.Influence(g))
	if assignment, err := analytics.Communities(g); err == nil {
		g.SetCommunities(assignment)
	}

	return g
}

func val(v float64) *float64 { return &v }
