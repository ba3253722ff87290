package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestNewJob(t *testing.T) {
	data := []byte("resume body")
	job := NewJob("resume.txt", data)

	if job.ID == "" {
		t.Fatal("expected a generated job ID")
	}
	if len(job.DocID) != 16 {
		t.Fatalf("expected 16-char doc ID, got %q", job.DocID)
	}
	if job.Status != StatusQueued {
		t.Fatalf("expected queued status, got %s", job.Status)
	}
	if string(job.FileData()) != "resume body" {
		t.Fatal("file data not retained")
	}

	other := NewJob("copy.txt", data)
	if other.DocID != job.DocID {
		t.Fatal("same bytes should produce the same doc ID")
	}
	if other.ID == job.ID {
		t.Fatal("distinct jobs should have distinct IDs")
	}
}

func TestJobStatusTerminal(t *testing.T) {
	terminal := []JobStatus{StatusCompleted, StatusFailed, StatusPartial}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	active := []JobStatus{StatusQueued, StatusExtracting, StatusChunking, StatusAnalyzing, StatusFormatting}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestJobSnapshotErrorsNeverNil(t *testing.T) {
	job := NewJob("resume.txt", []byte("x"))
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Fatal("snapshot errors should be an empty slice, not nil")
	}

	job.AddError("chunk 2: boom")
	snap = job.Snapshot()
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "chunk 2: boom" {
		t.Fatalf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJobSetReportReleasesFileData(t *testing.T) {
	job := NewJob("resume.txt", []byte("large payload"))
	job.SetReport(nil, "analysis prose")

	if job.FileData() != nil {
		t.Fatal("file data should be released once the report exists")
	}
	_, prose := job.Report()
	if prose != "analysis prose" {
		t.Fatalf("unexpected analysis prose %q", prose)
	}
}

func TestJobStoreCleanup(t *testing.T) {
	store := NewJobStore(20 * time.Millisecond)

	stale := NewJob("old.txt", []byte("a"))
	store.Put(stale)
	time.Sleep(40 * time.Millisecond)

	fresh := NewJob("new.txt", []byte("b"))
	store.Put(fresh)

	store.Cleanup()
	if store.Get(stale.ID) != nil {
		t.Fatal("expired job should be evicted")
	}
	if store.Get(fresh.ID) == nil {
		t.Fatal("fresh job should survive cleanup")
	}
}

func TestContentHashHex(t *testing.T) {
	h := ContentHashHex([]byte("hello"))
	if len(h) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h))
	}
	if h != strings.ToLower(h) {
		t.Fatal("hash should be lowercase hex")
	}
	if h == ContentHashHex([]byte("other")) {
		t.Fatal("different content should hash differently")
	}
}
