package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in characters.
	ChunkOverlap int // Overlap between consecutive chunks in characters.
}

// DefaultConfig returns sensible defaults for LLM-bound resume text.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    700,
		ChunkOverlap: 200,
	}
}

// ErrInvalidConfig is returned when a chunking configuration violates the
// contract (non-positive size, negative overlap, or overlap >= size).
var ErrInvalidConfig = errors.New("invalid chunker config")

// Validate checks the config against the chunking contract. Overlap equal to
// or larger than the chunk size is rejected outright rather than clamped.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: overlap must be non-negative, got %d", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// Split breaks text into an ordered sequence of overlapping chunks.
//
// Boundaries prefer sentence terminators over word boundaries over raw cuts,
// but a boundary is only taken when it lies past the midpoint of the current
// window, so chunks never degenerate. Consecutive chunks share up to
// ChunkOverlap characters of context. Every returned chunk is non-empty after
// trimming, and together the chunks cover all non-whitespace content of the
// input in order. Whitespace-only input yields no chunks.
func Split(text string, cfg Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	runes := []rune(text)
	if len(runes) <= cfg.ChunkSize {
		return []string{strings.TrimSpace(text)}, nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + cfg.ChunkSize
		last := false
		if end >= len(runes) {
			end = len(runes)
			last = true
		} else {
			mid := start + cfg.ChunkSize/2
			if b := lastSentenceEnd(runes, start, end); b > mid {
				end = b + 1 // include the terminator
			} else if b := lastWordBreak(runes, start, end); b > mid {
				end = b
			}
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if last {
			break
		}

		// Step back by the overlap, with forward progress guaranteed even
		// when the overlap swallows the whole window.
		next := end - cfg.ChunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks, nil
}

// lastSentenceEnd returns the index of the last sentence terminator in
// runes[start:end], or -1 if there is none.
func lastSentenceEnd(runes []rune, start, end int) int {
	for i := end - 1; i >= start; i-- {
		switch runes[i] {
		case '.', '?', '!':
			return i
		}
	}
	return -1
}

// lastWordBreak returns the index of the last whitespace rune in
// runes[start:end], or -1 if there is none.
func lastWordBreak(runes []rune, start, end int) int {
	for i := end - 1; i >= start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
