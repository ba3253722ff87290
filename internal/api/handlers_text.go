package api

import (
	"encoding/json"
	"net/http"

	"github.com/dhalverson/resumescan/internal/chunker"
	"github.com/dhalverson/resumescan/internal/structure"
)

const maxTextBytes = 1 << 20

type structureRequest struct {
	Text string `json:"text"`
}

// handleStructure reconstructs structured output from raw analysis prose.
// Useful for callers that run their own models and only want formatting.
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	var req structureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	doc := structure.Reconstruct(req.Text)
	writeJSON(w, http.StatusOK, doc)
}

type chunkRequest struct {
	Text         string `json:"text"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
}

type chunkInfo struct {
	Index           int    `json:"index"`
	Text            string `json:"text"`
	Chars           int    `json:"chars"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

// handleChunk previews how a text would be split, without running analysis.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req chunkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	cfg := s.cfg.ChunkDefaults
	if req.ChunkSize > 0 {
		cfg.ChunkSize = req.ChunkSize
	}
	if req.ChunkOverlap > 0 {
		cfg.ChunkOverlap = req.ChunkOverlap
	}

	chunks, err := chunker.Split(req.Text, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	infos := make([]chunkInfo, 0, len(chunks))
	for i, c := range chunks {
		infos = append(infos, chunkInfo{
			Index:           i,
			Text:            c,
			Chars:           len([]rune(c)),
			EstimatedTokens: chunker.EstimateTokens(c),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chunk_size":    cfg.ChunkSize,
		"chunk_overlap": cfg.ChunkOverlap,
		"count":         len(infos),
		"chunks":        infos,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxTextBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return err
	}
	return nil
}
