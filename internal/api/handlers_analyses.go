package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dhalverson/resumescan/internal/chunker"
	"github.com/dhalverson/resumescan/internal/parser"
	"github.com/dhalverson/resumescan/internal/pipeline"
)

// handleCreateAnalysis accepts a multipart resume upload and queues it for
// analysis. Optional form fields chunk_size and chunk_overlap override the
// chunking defaults for this job.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		writeError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty file")
		return
	}

	size, overlap, err := chunkOverrides(r, s.cfg.ChunkDefaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := pipeline.NewJob(filename, data)
	job.ChunkSize = size
	job.ChunkOverlap = overlap

	s.orchestrator.Submit(job)
	s.logger.Info("analysis submitted", "job_id", job.ID, "filename", filename, "bytes", len(data))

	snap := job.Snapshot()
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     snap.ID,
		"doc_id":     snap.DocID,
		"status":     snap.Status,
		"status_url": "/api/analyses/" + snap.ID,
		"report_url": "/api/analyses/" + snap.ID + "/report",
	})
}

// chunkOverrides parses optional chunking form fields and validates the
// effective config so bad overrides are rejected before a job is queued.
func chunkOverrides(r *http.Request, defaults chunker.Config) (size, overlap int, err error) {
	effective := defaults

	if v := r.FormValue("chunk_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("chunk_size must be an integer")
		}
		size = n
		effective.ChunkSize = n
	}
	if v := r.FormValue("chunk_overlap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("chunk_overlap must be an integer")
		}
		overlap = n
		effective.ChunkOverlap = n
	}

	if err := effective.Validate(); err != nil {
		return 0, 0, err
	}
	return size, overlap, nil
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleGetReport returns the structured report once the job has one.
// Completed and partial jobs both carry reports.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	doc, prose := job.Report()
	if doc == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			writeError(w, http.StatusUnprocessableEntity, "analysis failed")
			return
		}
		writeError(w, http.StatusNotFound, "report not ready")
		return
	}

	snap := job.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"title":    snap.Title,
		"status":   snap.Status,
		"report":   doc,
		"analysis": prose,
	})
}

// sanitizeFilename strips any path components from an uploaded filename.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}
