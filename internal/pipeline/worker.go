package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dhalverson/resumescan/internal/analyze"
	"github.com/dhalverson/resumescan/internal/chunker"
	"github.com/dhalverson/resumescan/internal/parser"
	"github.com/dhalverson/resumescan/internal/structure"
)

// Analyzer produces analysis prose for a prompt. *analyze.Client satisfies
// this; tests substitute a fake.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Processor runs a job through the full pipeline: extract, chunk, analyze,
// format.
type Processor struct {
	analyzer      Analyzer
	chunkDefaults chunker.Config
	maxConcurrent int
	pdfFallback   bool
	logger        *slog.Logger

	// Overridable in tests to avoid real retry waits.
	backoff func(attempt int) time.Duration
}

func NewProcessor(analyzer Analyzer, chunkDefaults chunker.Config, maxConcurrent int, pdfFallback bool, logger *slog.Logger) *Processor {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		analyzer:      analyzer,
		chunkDefaults: chunkDefaults,
		maxConcurrent: maxConcurrent,
		pdfFallback:   pdfFallback,
		logger:        logger,
		backoff:       Backoff,
	}
}

// Process runs the job to a terminal status. It never returns a partial
// in-flight state: on return the job is completed, partial, or failed.
func (p *Processor) Process(ctx context.Context, job *Job) {
	log := p.logger.With("job_id", job.ID, "filename", job.Filename)

	text, title, err := p.extract(job)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extract")
		return
	}
	if title != "" {
		job.SetTitle(title)
	}

	job.SetStatus(StatusChunking, "chunk")
	cfg := p.chunkConfig(job)
	chunks, err := chunker.Split(text, cfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "chunk")
		return
	}
	if len(chunks) == 0 {
		log.Warn("no analyzable text in document")
		job.AddError("document contains no analyzable text")
		job.SetStatus(StatusFailed, "chunk")
		return
	}
	job.SetTotalChunks(len(chunks))
	log.Info("document chunked", "chunks", len(chunks), "chunk_size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)

	job.SetStatus(StatusAnalyzing, "analyze")
	results, failed := p.analyzeChunks(ctx, job, chunks)
	if len(results) == 0 {
		job.SetStatus(StatusFailed, "analyze")
		return
	}

	job.SetStatus(StatusFormatting, "format")
	prose := strings.Join(results, "\n\n")
	doc := structure.Reconstruct(prose)
	job.SetReport(&doc, prose)

	if failed > 0 {
		log.Warn("analysis partially complete", "failed_chunks", failed, "total", len(chunks))
		job.SetStatus(StatusPartial, "done")
		return
	}
	log.Info("analysis complete", "chunks", len(chunks))
	job.SetStatus(StatusCompleted, "done")
}

func (p *Processor) extract(job *Job) (text, title string, err error) {
	job.SetStatus(StatusExtracting, "extract")
	pr, err := parser.ForFile(job.Filename)
	if err != nil {
		return "", "", err
	}
	if pp, ok := pr.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = p.pdfFallback
	}
	resume, err := pr.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", job.Filename, err)
	}
	return resume.Text, resume.Title, nil
}

func (p *Processor) chunkConfig(job *Job) chunker.Config {
	cfg := p.chunkDefaults
	if job.ChunkSize > 0 {
		cfg.ChunkSize = job.ChunkSize
	}
	if job.ChunkOverlap > 0 {
		cfg.ChunkOverlap = job.ChunkOverlap
	}
	return cfg
}

// analyzeChunks fans chunk analysis out over a bounded worker set and
// collects responses in chunk order. Failed chunks are skipped in the
// joined output; the count of failures is returned.
func (p *Processor) analyzeChunks(ctx context.Context, job *Job, chunks []string) ([]string, int) {
	type result struct {
		index int
		text  string
		err   error
	}

	sem := make(chan struct{}, p.maxConcurrent)
	resultCh := make(chan result, len(chunks))

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(index int, chunkText string) {
			defer func() { <-sem }()
			text, err := p.analyzeWithRetry(ctx, job, index, len(chunks), chunkText)
			resultCh <- result{index: index, text: text, err: err}
		}(i, chunk)
	}

	ordered := make([]string, len(chunks))
	failed := 0
	for range chunks {
		res := <-resultCh
		if res.err != nil {
			failed++
			job.AddError(fmt.Sprintf("chunk %d: %v", res.index+1, res.err))
			continue
		}
		ordered[res.index] = res.text
		job.IncrChunksAnalyzed()
	}

	results := make([]string, 0, len(chunks))
	for _, text := range ordered {
		if text != "" {
			results = append(results, text)
		}
	}
	return results, failed
}

func (p *Processor) analyzeWithRetry(ctx context.Context, job *Job, index, total int, chunkText string) (string, error) {
	prompt := analyze.BuildChunkPrompt(job.Title, index, total, chunkText)

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			wait := p.backoff(attempt - 1)
			p.logger.Warn("retrying chunk analysis",
				"job_id", job.ID, "chunk", index+1, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		text, err := p.analyzer.Analyze(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", MaxRetries+1, lastErr)
}
