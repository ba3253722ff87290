package structure

import (
	"reflect"
	"strings"
	"testing"
)

func TestGradeForScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A+"}, {97, "A+"}, {95, "A"}, {90, "A-"},
		{88, "B+"}, {85, "B"}, {80, "B-"},
		{78, "C+"}, {75, "C"}, {70, "C-"},
		{65, "D"}, {59, "F"}, {0, "F"}, {-5, "F"},
	}
	for _, tc := range cases {
		if got := GradeForScore(tc.score); got != tc.want {
			t.Errorf("GradeForScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCleanTitleList(t *testing.T) {
	input := []string{
		"- Senior Software Engineer",
		"1. Staff  Engineer",
		"senior software engineer",
		"",
		"   ",
		"• Engineering Manager",
	}
	want := []string{
		"Senior Software Engineer",
		"Staff Engineer",
		"Engineering Manager",
	}
	got := CleanTitleList(input)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanTitleList = %v, want %v", got, want)
	}
}

func TestCleanTitleList_Empty(t *testing.T) {
	if got := CleanTitleList(nil); len(got) != 0 {
		t.Errorf("expected empty result for nil input, got %v", got)
	}
}

func TestSplitAtConjunctions_ShortSentenceUnchanged(t *testing.T) {
	s := "Led the platform team and shipped on time."
	got := SplitAtConjunctions(s)
	if len(got) != 1 || got[0] != s {
		t.Errorf("expected short sentence unchanged, got %v", got)
	}
}

func TestSplitAtConjunctions_LongSentenceSplit(t *testing.T) {
	s := "Managed the migration of the legacy billing platform to a new architecture, and coordinated the rollout schedule with five downstream consumer teams across two organizations."
	got := SplitAtConjunctions(s)
	if len(got) != 2 {
		t.Fatalf("expected 2 parts, got %d: %v", len(got), got)
	}
	if !strings.HasPrefix(got[0], "Managed") {
		t.Errorf("expected first part to start with %q, got %q", "Managed", got[0])
	}
	if !strings.HasPrefix(got[1], "coordinated") {
		t.Errorf("expected second part to start with %q, got %q", "coordinated", got[1])
	}
}

func TestSplitAtConjunctions_Empty(t *testing.T) {
	if got := SplitAtConjunctions("   "); got != nil {
		t.Errorf("expected nil for blank input, got %v", got)
	}
}
