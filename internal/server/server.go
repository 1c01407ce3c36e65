// Package server implements the netintel HTTP API.
//
// The server owns the in-memory graph. All mutations go through a single
// mutex, which gives the graph store the external serialization it requires.
// Successful mutations are persisted to the configured store and bump a
// revision counter that keys the visualization payload cache.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/netintel/netintel/pkg/analytics"
	"github.com/netintel/netintel/pkg/cache"
	"github.com/netintel/netintel/pkg/errors"
	"github.com/netintel/netintel/pkg/graph"
	"github.com/netintel/netintel/pkg/observability"
	"github.com/netintel/netintel/pkg/storage"
	"github.com/netintel/netintel/pkg/style"
)

// payloadTTL bounds how long a cached payload may outlive its revision in
// backends with no explicit invalidation (redis shared across restarts).
const payloadTTL = time.Hour

// Server serves the graph API. Create with [New].
type Server struct {
	mu       sync.Mutex
	graph    *graph.Graph
	revision uint64

	store     storage.Store
	payloads  cache.Cache
	renderCfg style.RenderConfig
	logger    *log.Logger
}

// New creates a server around an already-loaded graph.
func New(g *graph.Graph, store storage.Store, payloads cache.Cache, renderCfg style.RenderConfig, logger *log.Logger) *Server {
	return &Server{
		graph:     g,
		store:     store,
		payloads:  payloads,
		renderCfg: renderCfg,
		logger:    logger,
	}
}

// Handler builds the chi router with all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/graph-data", s.handleGraphData)

	r.Route("/api", func(r chi.Router) {
		r.Route("/nodes", func(r chi.Router) {
			r.Get("/list", s.handleNodeList)
			r.Post("/add", s.handleNodeAdd)
			r.Post("/delete", s.handleNodeDelete)
			r.Post("/rename", s.handleNodeRename)
		})
		r.Route("/edges", func(r chi.Router) {
			r.Post("/add", s.handleEdgeAdd)
			r.Post("/delete", s.handleEdgeDelete)
		})
		r.Route("/graph", func(r chi.Router) {
			r.Post("/community", s.handleCommunity)
			r.Post("/analytics", s.handleAnalytics)
			r.Post("/reload", s.handleReload)
			r.Post("/save", s.handleSave)
		})
	})

	return r
}

// requestID attaches a fresh UUID to each request, reusing chi's context key
// so middleware.GetReqID works downstream.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// mutate runs fn under the writer lock. On success it bumps the revision,
// persists the graph, and reports the mutation to the observability hooks.
// The store write runs on a snapshot taken under the lock, so a slow store
// never blocks graph reads. A failed persist is logged but does not roll
// back the in-memory change; the next successful mutation or explicit save
// writes the full state again.
func (s *Server) mutate(ctx context.Context, op string, fn func(g *graph.Graph) error) error {
	s.mu.Lock()
	if err := fn(s.graph); err != nil {
		s.mu.Unlock()
		return err
	}
	s.revision++
	nodes, edges := s.graph.Summary()
	snapshot := s.graph.Clone()
	s.mu.Unlock()

	observability.Graph().OnMutation(ctx, op, nodes, edges)

	if err := s.store.Save(ctx, snapshot); err != nil {
		s.logger.Error("persist after mutation failed", "op", op, "err", err)
	}
	return nil
}

// recompute refreshes influence and community assignments in place.
// Analytics degrade internally; only malformed graph state surfaces.
func (s *Server) recompute(ctx context.Context, communitiesOnly bool) error {
	start := time.Now()
	kind := "full"
	if communitiesOnly {
		kind = "community"
	}
	observability.Analytics().OnComputeStart(ctx, kind, s.graph.NodeCount())

	if !communitiesOnly {
		s.graph.SetInfluence(analytics.Influence(s.graph))
	}
	assignment, err := analytics.Communities(s.graph)
	observability.Analytics().OnComputeComplete(ctx, kind, s.graph.NodeCount(), time.Since(start), err)
	if err != nil {
		return err
	}
	s.graph.SetCommunities(assignment)
	return nil
}

func (s *Server) payloadKey() string {
	return fmt.Sprintf("payload:%d", s.revision)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status and a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidEntity),
		errors.Is(err, errors.ErrCodeInvalidEdge):
		status = http.StatusBadRequest
		msg = errors.UserMessage(err)
	case errors.Is(err, errors.ErrCodeNodeNotFound), errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
		msg = errors.UserMessage(err)
	case errors.Is(err, errors.ErrCodeDuplicateID):
		status = http.StatusConflict
		msg = errors.UserMessage(err)
	default:
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}

	body := map[string]any{"error": msg}
	if code := errors.GetCode(err); code != "" && status != http.StatusInternalServerError {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
