package structure

import (
	"regexp"
	"strings"
)

// Presentation helpers composed on top of the reconstructor. All follow the
// same shape: pattern-match classification, then tagged output.

// GradeForScore maps a 0-100 rating onto a letter grade.
func GradeForScore(score int) string {
	switch {
	case score >= 97:
		return "A+"
	case score >= 93:
		return "A"
	case score >= 90:
		return "A-"
	case score >= 87:
		return "B+"
	case score >= 83:
		return "B"
	case score >= 80:
		return "B-"
	case score >= 77:
		return "C+"
	case score >= 73:
		return "C"
	case score >= 70:
		return "C-"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

var titleNoisePattern = regexp.MustCompile(`^\s*(?:[-•*▪–]|\d+[.)])\s*`)

// CleanTitleList normalizes a list of job titles: strips list markers,
// collapses whitespace, and removes empties and case-insensitive duplicates
// while preserving first-seen order.
func CleanTitleList(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	var out []string
	for _, t := range titles {
		t = titleNoisePattern.ReplaceAllString(t, "")
		t = strings.Join(strings.Fields(t), " ")
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

const conjunctionSplitLength = 80

var conjunctionPattern = regexp.MustCompile(`,?\s+\b(?:and|but|while|whereas|although)\b\s+`)

// SplitAtConjunctions breaks a long sentence at coordinating conjunctions
// for display. Short sentences and fragments that would become trivially
// small are left whole.
func SplitAtConjunctions(sentence string) []string {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil
	}
	if len(sentence) <= conjunctionSplitLength {
		return []string{sentence}
	}

	parts := conjunctionPattern.Split(sentence, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= substantialLength {
			out = append(out, p)
		}
	}
	if len(out) < 2 {
		return []string{sentence}
	}
	return out
}
