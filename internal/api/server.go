package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dhalverson/resumescan/internal/analyze"
	"github.com/dhalverson/resumescan/internal/chunker"
	"github.com/dhalverson/resumescan/internal/config"
	"github.com/dhalverson/resumescan/internal/pipeline"
)

// Server wires HTTP handlers to the analysis pipeline.
type Server struct {
	cfg          *Config
	orchestrator *pipeline.Orchestrator
	stats        *analyze.Stats
	logger       *slog.Logger
}

// Config is the subset of service configuration the HTTP layer needs.
type Config struct {
	APIKey         string
	Model          string
	MaxUploadBytes int64
	ChunkDefaults  chunker.Config
}

// ConfigFrom derives the HTTP layer config from service configuration.
func ConfigFrom(c *config.Config) *Config {
	return &Config{
		APIKey:         c.APIKey,
		Model:          c.AnthropicModel,
		MaxUploadBytes: c.MaxUploadBytes,
		ChunkDefaults: chunker.Config{
			ChunkSize:    c.DefaultChunkSize,
			ChunkOverlap: c.DefaultChunkOverlap,
		},
	}
}

func NewServer(cfg *Config, orchestrator *pipeline.Orchestrator, stats *analyze.Stats, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:          cfg,
		orchestrator: orchestrator,
		stats:        stats,
		logger:       logger,
	}
}

// Routes builds the chi router for the service.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.auth)

		r.Post("/analyses", s.handleCreateAnalysis)
		r.Get("/analyses/{jobID}", s.handleGetAnalysis)
		r.Get("/analyses/{jobID}/report", s.handleGetReport)

		r.Post("/structure", s.handleStructure)
		r.Post("/chunk", s.handleChunk)

		r.Get("/stats/llm", s.handleLLMStats)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"model":       s.cfg.Model,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
