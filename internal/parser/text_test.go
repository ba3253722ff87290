package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	resume, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resume.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", resume.Title)
	}

	paragraphs := strings.Split(resume.Text, "\n\n")
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paragraphs))
	}
	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if paragraphs[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paragraphs[i])
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	resume, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resume.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", resume.Title)
	}
	if resume.Text != "" {
		t.Errorf("expected empty text, got %q", resume.Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	resume, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resume.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", resume.Text)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	resume, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resume.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", resume.Text)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	cases := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.docx", true},
		{"resume.txt", true},
		{"resume.md", true},
		{"resume.html", true},
		{"RESUME.PDF", true},
		{"resume.exe", false},
		{"resume", false},
	}
	for _, tc := range cases {
		if got := IsSupportedExtension(tc.filename); got != tc.want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
