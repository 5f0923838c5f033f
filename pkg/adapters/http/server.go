// Package http exposes problem solving over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/problem"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultMaxBodyBytes bounds the size of a problem definition.
	DefaultMaxBodyBytes = 1 << 20
	// DefaultMaxExpansions bounds the states one posted search may expand.
	DefaultMaxExpansions = 200_000
)

// Config configures the handler. Zero fields get defaults.
type Config struct {
	Registry     *problem.Registry
	Metrics      *prometheus.Registry
	Logger       *slog.Logger
	MaxBodyBytes int64

	// MaxExpansions caps each search. Negative disables the cap.
	MaxExpansions int
}

// Server serves the solve API.
type Server struct {
	registry *problem.Registry
	metrics  *observability.Metrics
	logger   *slog.Logger
	maxBody  int64
	maxExp   int
}

// KindInfo describes one registered problem kind.
type KindInfo struct {
	Name       string   `json:"name"`
	Heuristics []string `json:"heuristics"`
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg Config) http.Handler {
	if cfg.Registry == nil {
		cfg.Registry = problem.DefaultRegistry()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	switch {
	case cfg.MaxExpansions == 0:
		cfg.MaxExpansions = DefaultMaxExpansions
	case cfg.MaxExpansions < 0:
		cfg.MaxExpansions = 0
	}

	s := &Server{
		registry: cfg.Registry,
		metrics:  observability.NewMetrics(cfg.Metrics),
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBodyBytes,
		maxExp:   cfg.MaxExpansions,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})
	r.Get("/kinds", s.Kinds)
	r.Post("/solve", s.Solve)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Kinds handles GET /kinds.
func (s *Server) Kinds(w http.ResponseWriter, r *http.Request) {
	var out []KindInfo
	for _, name := range s.registry.Names() {
		k, err := s.registry.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, KindInfo{Name: name, Heuristics: k.Heuristics()})
	}
	writeJSON(w, http.StatusOK, out, s.logger)
}

// Solve handles POST /solve. The body is one problem definition in JSON.
// Without a format query parameter the report is returned as JSON; with
// one, the search tree is returned rendered in that format. A search that
// hits the expansion cap answers 422; one cut short by the request context
// answers 503.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var format render.Format
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := render.ParseFormat(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}
	frontier, _ := strconv.ParseBool(r.URL.Query().Get("frontier"))
	unexplored, _ := strconv.ParseBool(r.URL.Query().Get("unexplored"))

	var def problem.Definition
	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxBody))
	if err := dec.Decode(&def); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Solve: Invalid request body", "error", err)
		return
	}

	rep, err := s.registry.Solve(def, problem.Config{
		Context:           r.Context(),
		MaxExpansions:     s.maxExp,
		Logger:            s.logger,
		Hooks:             s.metrics.Hooks(),
		IncludeFrontier:   frontier,
		IncludeUnexplored: unexplored,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, problem.ErrUnknownKind),
			errors.Is(err, problem.ErrUnknownHeuristic),
			errors.Is(err, problem.ErrInvalidDefinition):
			status = http.StatusBadRequest
		case errors.Is(err, problem.ErrExpansionLimit):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}
		http.Error(w, fmt.Sprintf("Solve error: %v", err), status)
		s.logger.Warn("Solve failed", "problem", def.Name, "error", err)
		return
	}

	if format == "" {
		writeJSON(w, http.StatusOK, rep, s.logger)
		return
	}
	if !rep.Found {
		http.Error(w, "no path to goal", http.StatusNotFound)
		return
	}

	out, err := render.Render(rep.Tree, format, def.Name)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Render failed", "problem", def.Name, "error", err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	io.WriteString(w, out)
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatJSON:
		return "application/json"
	case render.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
