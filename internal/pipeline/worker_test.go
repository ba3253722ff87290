package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dhalverson/resumescan/internal/analyze"
	"github.com/dhalverson/resumescan/internal/chunker"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, prompt string) (string, error)
}

func (f *fakeAnalyzer) Analyze(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fn(call, prompt)
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProcessor(a Analyzer, cfg chunker.Config) *Processor {
	p := NewProcessor(a, cfg, 2, false, quietLogger())
	p.backoff = func(int) time.Duration { return time.Millisecond }
	return p
}

const sampleResume = `EXPERIENCE:
Led a platform team of six engineers. Delivered a billing migration that reduced invoice errors by 40%.

SKILLS:
Go, PostgreSQL, Kubernetes. Built internal tooling used across three departments.`

func TestProcessCompletes(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(call int, prompt string) (string, error) {
		return fmt.Sprintf("STRENGTHS:\n- Observation %d from the resume.", call), nil
	}}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", job.Status, job.Progress.Errors)
	}
	doc, prose := job.Report()
	if doc == nil {
		t.Fatal("expected a reconstructed report")
	}
	if prose == "" {
		t.Fatal("expected combined analysis prose")
	}
	snap := job.Snapshot()
	if snap.Progress.ChunksAnalyzed != snap.Progress.TotalChunks {
		t.Fatalf("expected all chunks analyzed, got %d/%d",
			snap.Progress.ChunksAnalyzed, snap.Progress.TotalChunks)
	}
}

func TestProcessPreservesChunkOrder(t *testing.T) {
	// Force several chunks and have the analyzer echo the segment number
	// from the prompt; the joined prose must keep ascending order even
	// though chunks finish concurrently.
	fake := &fakeAnalyzer{fn: func(call int, prompt string) (string, error) {
		for _, line := range strings.Split(prompt, "\n") {
			if strings.HasPrefix(line, "Segment: ") {
				return "SEGMENT MARKER " + strings.Fields(line)[1], nil
			}
		}
		return "SEGMENT MARKER 1", nil
	}}
	p := testProcessor(fake, chunker.Config{ChunkSize: 60, ChunkOverlap: 10})

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	_, prose := job.Report()
	last := 0
	for _, f := range strings.Fields(prose) {
		var n int
		if _, err := fmt.Sscanf(f, "%d", &n); err != nil {
			continue
		}
		if n < last {
			t.Fatalf("segment order violated: %d after %d in %q", n, last, prose)
		}
		last = n
	}
	if last < 2 {
		t.Fatalf("expected multiple segments, saw max %d", last)
	}
}

func TestProcessPartialOnChunkFailure(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(call int, prompt string) (string, error) {
		if call == 1 {
			return "", errors.New("model refused")
		}
		return "FEEDBACK:\n- Solid delivery record.", nil
	}}
	p := NewProcessor(fake, chunker.Config{ChunkSize: 60, ChunkOverlap: 10}, 1, false, quietLogger())
	p.backoff = func(int) time.Duration { return time.Millisecond }

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", job.Status)
	}
	if doc, _ := job.Report(); doc == nil {
		t.Fatal("partial jobs should still carry a report from surviving chunks")
	}
	snap := job.Snapshot()
	if len(snap.Progress.Errors) == 0 {
		t.Fatal("expected recorded chunk error")
	}
}

func TestProcessFailsWhenAllChunksFail(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) {
		return "", errors.New("model refused")
	}}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if doc, _ := job.Report(); doc != nil {
		t.Fatal("failed jobs should not carry a report")
	}
}

func TestProcessRetriesTransientErrors(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(call int, prompt string) (string, error) {
		if call == 1 {
			return "", &analyze.RetryableError{StatusCode: 429, Message: "slow down"}
		}
		return "FEEDBACK:\n- Clear progression.", nil
	}}
	p := NewProcessor(fake, chunker.DefaultConfig(), 1, false, quietLogger())
	p.backoff = func(int) time.Duration { return time.Millisecond }

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed after retry, got %s", job.Status)
	}
	if fake.callCount() < 2 {
		t.Fatalf("expected a retry, got %d calls", fake.callCount())
	}
}

func TestProcessDoesNotRetryPermanentErrors(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) {
		return "", errors.New("invalid api key")
	}}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.txt", []byte(sampleResume))
	p.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if fake.callCount() != 1 {
		t.Fatalf("permanent errors should not be retried, got %d calls", fake.callCount())
	}
}

func TestProcessFailsOnUnsupportedExtension(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) { return "ok", nil }}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.xlsx", []byte("whatever"))
	p.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if fake.callCount() != 0 {
		t.Fatal("analyzer should not be called for unparseable files")
	}
}

func TestProcessFailsOnEmptyDocument(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) { return "ok", nil }}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.txt", []byte("   \n\n   "))
	p.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if fake.callCount() != 0 {
		t.Fatal("analyzer should not be called for empty documents")
	}
}

func TestProcessHonorsChunkOverrides(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) {
		return "FEEDBACK:\n- Noted.", nil
	}}
	p := testProcessor(fake, chunker.DefaultConfig())

	job := NewJob("resume.txt", []byte(sampleResume))
	job.ChunkSize = 60
	job.ChunkOverlap = 10
	p.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	if job.Snapshot().Progress.TotalChunks < 2 {
		t.Fatalf("small chunk size should yield multiple chunks, got %d",
			job.Snapshot().Progress.TotalChunks)
	}
}

func TestOrchestratorProcessesQueuedJob(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) {
		return "FEEDBACK:\n- Fine.", nil
	}}
	p := testProcessor(fake, chunker.DefaultConfig())
	store := NewJobStore(time.Hour)
	orch := NewOrchestrator(p, store, 2, 10, quietLogger())
	orch.Start()
	defer orch.Stop()

	job := NewJob("resume.txt", []byte(sampleResume))
	orch.Submit(job)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := orch.GetJob(job.ID); got != nil && got.Snapshot().Status.Terminal() {
			if got.Snapshot().Status != StatusCompleted {
				t.Fatalf("expected completed, got %s", got.Snapshot().Status)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state")
}

func TestOrchestratorSynchronousWhenNoWorkers(t *testing.T) {
	fake := &fakeAnalyzer{fn: func(int, string) (string, error) {
		return "FEEDBACK:\n- Fine.", nil
	}}
	p := testProcessor(fake, chunker.DefaultConfig())
	store := NewJobStore(time.Hour)
	orch := NewOrchestrator(p, store, 0, 10, quietLogger())
	orch.Start()
	defer orch.Stop()

	job := NewJob("resume.txt", []byte(sampleResume))
	orch.Submit(job)

	// With zero workers Submit processes inline, so the job is already done.
	if got := orch.GetJob(job.ID).Snapshot().Status; got != StatusCompleted {
		t.Fatalf("expected completed immediately, got %s", got)
	}
}
