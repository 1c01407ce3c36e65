package server

import (
	"strings"

	"github.com/netintel/netintel/pkg/errors"
	"github.com/netintel/netintel/pkg/graph"
)

const maxFieldLen = 100

// validateNode checks an incoming node request and converts it into a store
// record. The store only requires a non-empty id; the API is stricter.
func validateNode(req nodeRequest) (graph.Node, error) {
	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)

	if id == "" {
		return graph.Node{}, errors.New(errors.ErrCodeInvalidEntity, "id is required")
	}
	if name == "" {
		return graph.Node{}, errors.New(errors.ErrCodeInvalidEntity, "name is required")
	}
	if len(id) > maxFieldLen {
		return graph.Node{}, errors.New(errors.ErrCodeInvalidEntity, "id must be at most %d characters", maxFieldLen)
	}
	if len(name) > maxFieldLen {
		return graph.Node{}, errors.New(errors.ErrCodeInvalidEntity, "name must be at most %d characters", maxFieldLen)
	}

	n := graph.Node{
		ID:          id,
		Label:       name,
		Category:    strings.TrimSpace(req.Category),
		Role:        strings.TrimSpace(req.Role),
		CompanyType: strings.TrimSpace(req.CompanyType),
		LogoURL:     strings.TrimSpace(req.LogoURL),
		Metadata:    req.Metadata,
	}

	if req.Valuation != nil {
		v := graph.CoerceFloat(req.Valuation, -1)
		if v < 0 {
			return graph.Node{}, errors.New(errors.ErrCodeInvalidEntity, "valuation must be a non-negative number")
		}
		n.Valuation = &v
	}
	return n, nil
}

// validateEdge checks an incoming edge request. Self-loops are rejected here
// even though the store would accept them.
func validateEdge(req edgeRequest) (graph.Edge, error) {
	source := strings.TrimSpace(req.Source)
	target := strings.TrimSpace(req.Target)

	if source == "" || target == "" {
		return graph.Edge{}, errors.New(errors.ErrCodeInvalidEdge, "source and target are required")
	}
	if source == target {
		return graph.Edge{}, errors.New(errors.ErrCodeInvalidEdge, "source and target must differ")
	}

	impact := 0.5
	if req.Impact != nil {
		impact = graph.CoerceFloat(req.Impact, -1)
		if impact < 0 || impact > 1 {
			return graph.Edge{}, errors.New(errors.ErrCodeInvalidEdge, "impact must be between 0 and 1")
		}
	}

	return graph.Edge{
		Source:           source,
		Target:           target,
		RelationshipType: strings.TrimSpace(req.RelationshipType),
		Impact:           impact,
		Directed:         true,
		Metadata:         req.Metadata,
	}, nil
}
