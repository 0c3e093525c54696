// Package server exposes the rewrite and analysis engines over a small JSON
// HTTP API for callers that prefer a service to a CLI.
package server

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/turboindex/turboindex/pkg/db"
	"github.com/turboindex/turboindex/pkg/profiler"
	"github.com/turboindex/turboindex/pkg/recommender"
	"github.com/turboindex/turboindex/pkg/rewriter"
	"github.com/turboindex/turboindex/pkg/schema"
)

// Server wires the engines to HTTP handlers. conn may be nil, in which case
// the endpoints that need a live database report 503.
type Server struct {
	engine   *rewriter.Engine
	conn     *sql.DB
	resolver rewriter.ColumnResolver
}

// New creates a Server. The connection is optional.
func New(conn *sql.DB) *Server {
	s := &Server{
		engine: rewriter.New(),
		conn:   conn,
	}
	if conn != nil {
		s.resolver = schema.NewCached(schema.NewMySQLResolver(conn))
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/api/rewrite", s.handleRewrite)
	r.Post("/api/recommend", s.handleRecommend)
	r.Post("/api/profile", s.handleProfile)
	return r
}

// RewriteRequest is the payload for POST /api/rewrite.
type RewriteRequest struct {
	SQL  string `json:"sql"`
	Mode string `json:"mode,omitempty"`
}

// AnalyzeRequest is the payload for POST /api/recommend and /api/profile.
type AnalyzeRequest struct {
	Query        string `json:"query"`
	Iterations   int    `json:"iterations,omitempty"`
	MySQLVersion string `json:"mysqlVersion,omitempty"`
}

func (*Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	var req RewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = string(rewriter.TierSafe)
	}

	tier, err := rewriter.ParseTier(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var result *rewriter.Result
	if s.resolver != nil && tier.AtLeast(rewriter.TierModerate) {
		result, err = s.engine.RewriteWithSchema(req.SQL, tier, s.resolver)
	} else {
		result, err = s.engine.Rewrite(req.SQL, tier)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if s.conn == nil {
		http.Error(w, "no database connection configured", http.StatusServiceUnavailable)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := db.Explain(r.Context(), s.conn, req.Query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	serverVersion := db.ServerVersion(r.Context(), s.conn)
	writeJSON(w, recommender.Analyze(req.Query, rows, req.MySQLVersion, serverVersion))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if s.conn == nil {
		http.Error(w, "no database connection configured", http.StatusServiceUnavailable)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Iterations <= 0 {
		req.Iterations = 3
	}

	result, err := profiler.Profile(r.Context(), s.conn, req.Query, req.Iterations, req.MySQLVersion)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result.ToMap())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
