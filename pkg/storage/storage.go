// Package storage persists graph documents.
//
// Two backends implement the [Store] interface: [FileStore] writes the
// versioned JSON document to a single file (atomic for a single writer), and
// [MongoStore] keeps one document per named graph in a MongoDB collection.
//
// [LoadOrSeed] backs the application bootstrap: it loads an existing graph
// or, when none has been persisted yet, seeds the fixed demonstration
// network and persists it before returning.
package storage

import (
	"context"

	"github.com/netintel/netintel/pkg/graph"

	apperrors "github.com/netintel/netintel/pkg/errors"
)

// Store persists and restores a graph document.
// Load fails with a FILE_NOT_FOUND code when nothing has been persisted yet
// and CORRUPT_DOCUMENT when the stored payload cannot be decoded; a failed
// load never produces a partial graph. Save writes the full document.
type Store interface {
	Load(ctx context.Context) (*graph.Graph, error)
	Save(ctx context.Context, g *graph.Graph) error
}

// LoadOrSeed loads the persisted graph, or seeds the demonstration network
// and persists it when the store is empty. Corrupt documents are surfaced,
// not silently replaced.
func LoadOrSeed(ctx context.Context, s Store) (*graph.Graph, error) {
	g, err := s.Load(ctx)
	if err == nil {
		return g, nil
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) && !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		return nil, err
	}

	g = SeedGraph()
	if err := s.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
