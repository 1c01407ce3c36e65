package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/netintel/netintel/pkg/graph"

	apperrors "github.com/netintel/netintel/pkg/errors"
)

// FileStore persists the graph document as indented JSON in a single file.
// Parent directories are created as needed. Writes go through a temp file
// and rename, so a crash mid-save leaves the previous document intact.
//
// FileStore assumes a single writer; it provides no cross-process locking.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads and decodes the persisted document.
func (s *FileStore) Load(ctx context.Context) (*graph.Graph, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "graph file not found: %s", s.path)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, err, "read graph file %s", s.path)
	}

	doc, err := graph.UnmarshalDocument(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCorrupt, err, "decode graph file %s", s.path)
	}
	g, err := graph.FromDocument(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCorrupt, err, "rebuild graph from %s", s.path)
	}
	return g, nil
}

// Save writes the full document atomically with respect to a single writer.
func (s *FileStore) Save(ctx context.Context, g *graph.Graph) error {
	data, err := graph.MarshalDocument(g)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "encode graph")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "create data dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "write graph file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "close graph file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "replace graph file %s", s.path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)

// String describes the store for logs.
func (s *FileStore) String() string { return fmt.Sprintf("file(%s)", s.path) }
