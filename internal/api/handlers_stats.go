package api

import "net/http"

// handleLLMStats reports rolling latency percentiles for model calls.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"model":   s.cfg.Model,
		"window":  "1h",
		"latency": s.stats.Snapshot(),
	})
}
