package server

import (
	"encoding/json"
	"net/http"

	"github.com/netintel/netintel/pkg/errors"
	"github.com/netintel/netintel/pkg/graph"
	"github.com/netintel/netintel/pkg/observability"
	"github.com/netintel/netintel/pkg/storage"
	"github.com/netintel/netintel/pkg/style"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	nodes, edges := s.graph.Summary()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  nodes,
		"edges":  edges,
	})
}

// graphDataResponse is the payload the force-graph frontend consumes.
type graphDataResponse struct {
	Graph         style.Payload      `json:"graph"`
	PhysicsConfig style.RenderConfig `json:"physicsConfig"`
}

// handleGraphData recomputes analytics and returns the full visualization
// payload. Payloads are cached per revision, so repeated reads of an
// unchanged graph skip both the recompute and the payload build.
func (s *Server) handleGraphData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.payloadKey()
	if data, ok, err := s.payloads.Get(ctx, key); err == nil && ok {
		observability.CacheEvents().OnCacheHit(ctx, key)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.CacheEvents().OnCacheMiss(ctx, key)

	if err := s.recompute(ctx, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := graphDataResponse{
		Graph:         style.BuildPayload(s.graph, s.renderCfg),
		PhysicsConfig: s.renderCfg,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode payload"))
		return
	}

	if err := s.payloads.Set(ctx, key, data, payloadTTL); err != nil {
		s.logger.Warn("payload cache write failed", "err", err)
	} else {
		observability.CacheEvents().OnCacheSet(ctx, key, len(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type nodeRequest struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Role        string         `json:"role"`
	CompanyType string         `json:"company_type"`
	LogoURL     string         `json:"logo_url"`
	Valuation   any            `json:"valuation"`
	Metadata    map[string]any `json:"metadata"`
}

// nodeSummary is the trimmed node view returned by the list endpoint.
type nodeSummary struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

func (s *Server) handleNodeList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	nodes := s.graph.Nodes()
	list := make([]nodeSummary, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, nodeSummary{
			ID:       n.ID,
			Label:    n.DisplayLabel(),
			Category: n.Category,
		})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "nodes": list})
}

func (s *Server) handleNodeAdd(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := validateNode(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.mutate(r.Context(), "node-add", func(g *graph.Graph) error {
		return g.UpsertNode(n)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": n.ID})
}

func (s *Server) handleNodeDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ID == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "id is required"))
		return
	}

	var removed bool
	err := s.mutate(r.Context(), "node-delete", func(g *graph.Graph) error {
		removed = g.DeleteNode(req.ID)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}

func (s *Server) handleNodeRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		NewID    string `json:"new_id"`
		NewLabel string `json:"new_label"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ID == "" || req.NewID == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "id and new_id are required"))
		return
	}

	err := s.mutate(r.Context(), "node-rename", func(g *graph.Graph) error {
		switch err := g.RenameNode(req.ID, req.NewID, req.NewLabel); err {
		case nil:
			return nil
		case graph.ErrUnknownNode:
			return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", req.ID)
		case graph.ErrDuplicateNodeID:
			return errors.New(errors.ErrCodeDuplicateID, "node %q already exists", req.NewID)
		case graph.ErrInvalidNodeID:
			return errors.New(errors.ErrCodeInvalidInput, "new_id must not be empty")
		default:
			return errors.Wrap(errors.ErrCodeInternal, err, "rename node")
		}
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": req.NewID})
}

type edgeRequest struct {
	Source           string         `json:"source"`
	Target           string         `json:"target"`
	RelationshipType string         `json:"relationship_type"`
	Impact           any            `json:"impact"`
	Metadata         map[string]any `json:"metadata"`
}

func (s *Server) handleEdgeAdd(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := validateEdge(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	err = s.mutate(r.Context(), "edge-add", func(g *graph.Graph) error {
		return g.UpsertEdge(e)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleEdgeDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source           string `json:"source"`
		Target           string `json:"target"`
		RelationshipType string `json:"relationship_type"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Source == "" || req.Target == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "source and target are required"))
		return
	}

	var removed bool
	err := s.mutate(r.Context(), "edge-delete", func(g *graph.Graph) error {
		removed = g.DeleteEdge(req.Source, req.Target, req.RelationshipType)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}

func (s *Server) handleCommunity(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recompute(r.Context(), true); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.revision++
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recompute(r.Context(), false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.revision++
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleReload discards the in-memory graph and reloads from the store.
// Reload never seeds: a missing document is an error here, unlike startup.
// The store read happens before the lock is taken; reads stay unblocked
// until the swap.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	g, err := s.store.Load(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	s.graph = g
	s.revision++
	s.mu.Unlock()

	nodes, edges := g.Summary()
	observability.Graph().OnMutation(ctx, "reload", nodes, edges)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "nodes": nodes, "edges": edges})
}

// handleSave persists a snapshot taken under the lock; the store write
// itself runs with the lock released.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.graph.Clone()
	s.mu.Unlock()

	if err := s.store.Save(r.Context(), snapshot); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "store": storeName(s.store)})
}

func storeName(s storage.Store) string {
	if str, ok := s.(interface{ String() string }); ok {
		return str.String()
	}
	return "store"
}
