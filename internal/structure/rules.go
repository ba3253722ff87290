package structure

import (
	"regexp"
	"strings"
)

// Rule is a named line-exclusion predicate. Rules are applied in order
// during noise filtering; the first rule that matches drops the line.
// The default set is tuned against observed generator quirks and is meant
// to be replaced or extended rather than edited in place.
type Rule struct {
	Name string
	Drop func(line string) bool
}

const minContentLength = 4

var (
	bareAcronymPattern   = regexp.MustCompile(`^[A-Z]{2,6}$`)
	brokenSpacingPattern = regexp.MustCompile(`^(?:[A-Za-z] ){3,}[A-Za-z]?$`)
	allCapsFragment      = regexp.MustCompile(`^[A-Z]{2,}(?: [A-Z]{2,}){0,2}$`)
	metaCommentary       = regexp.MustCompile(`(?i)^(?:this (?:analysis|document|section|response|summary)\b|the (?:above|following) (?:analysis|text|content)\b|here (?:is|are) (?:the|my|an?)\b|based on (?:the|this|my) (?:analysis|review|assessment)\b|i (?:have|will) (?:analy[sz]ed?|review(?:ed)?)\b|as an ai\b|let me know\b)`)

	// Section words that must survive the all-caps filter: a bare
	// "EXPERIENCE" line is a header, not debris.
	sectionVocabulary = map[string]bool{
		"experience": true, "education": true, "skills": true,
		"summary": true, "objective": true, "projects": true,
		"achievements": true, "certifications": true, "leadership": true,
		"employment": true, "qualifications": true, "strengths": true,
		"weaknesses": true, "recommendations": true, "overview": true,
	}
)

// DefaultRules returns the built-in noise exclusion set, in application order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "broken-spacing",
			Drop: func(line string) bool {
				return brokenSpacingPattern.MatchString(line)
			},
		},
		{
			Name: "bare-acronym",
			Drop: func(line string) bool {
				return bareAcronymPattern.MatchString(line) && !sectionWord(line)
			},
		},
		{
			Name: "caps-fragment",
			Drop: func(line string) bool {
				if !allCapsFragment.MatchString(line) {
					return false
				}
				// Keep plausible section headers; drop stray title debris
				// like broken PDF extraction artifacts.
				for _, w := range strings.Fields(line) {
					if sectionWord(w) {
						return false
					}
				}
				return true
			},
		},
		{
			Name: "meta-commentary",
			Drop: func(line string) bool {
				return metaCommentary.MatchString(line)
			},
		},
		{
			Name: "short-non-bullet",
			Drop: func(line string) bool {
				return len(line) < minContentLength && !isBullet(line)
			},
		},
	}
}

func sectionWord(w string) bool {
	return sectionVocabulary[strings.ToLower(strings.TrimSuffix(w, ":"))]
}

// filterNoise drops lines matched by any rule, preserving blank lines so
// paragraph boundaries survive into bulletization.
func filterNoise(text string, rules []Rule) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
lineLoop:
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, line)
			continue
		}
		for _, rule := range rules {
			if rule.Drop(trimmed) {
				continue lineLoop
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
