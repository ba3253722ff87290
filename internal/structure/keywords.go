package structure

import "regexp"

// Priority vocabularies. High-impact action verbs outrank softer competency
// language; anything else is low.
var (
	highImpactPattern = regexp.MustCompile(`(?i)\b(achieved|improved|led|built|created|delivered|launched|designed|implemented|developed|architected|increased|reduced|optimi[sz]ed|drove|spearheaded|transformed|automated)\b`)

	competencyPattern = regexp.MustCompile(`(?i)\b(experienced?|assisted|collaborated|supported|participated|contributed|maintained|coordinated|worked|familiar|helped|involved)\b`)
)

// PriorityFor ranks content by matching it against the impact vocabularies.
func PriorityFor(content string) Priority {
	switch {
	case highImpactPattern.MatchString(content):
		return PriorityHigh
	case competencyPattern.MatchString(content):
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// categoryPatterns run in fixed order; the first match wins. Content that
// matches none falls through to CategoryGeneral.
var categoryPatterns = []struct {
	category Category
	pattern  *regexp.Regexp
}{
	{CategoryExperience, regexp.MustCompile(`(?i)\b(experiences?|years?|employment|career|tenure|internships?|positions?|roles?)\b`)},
	{CategoryTechnical, regexp.MustCompile(`(?i)\b(python|java(script)?|typescript|golang|sql|aws|azure|gcp|docker|kubernetes|react|linux|api|database|framework|software|programming|technical|technolog\w*|tools?|skills?|cloud|devops|ci/cd)\b`)},
	{CategoryEducation, regexp.MustCompile(`(?i)\b(degrees?|bachelor'?s?|master'?s?|ph\.?d|mba|education|university|college|certifications?|certified|coursework|gpa|diploma)\b`)},
	{CategoryAchievement, regexp.MustCompile(`(?i)\b(awards?|achievements?|achieved|recognition|recogni[sz]ed|honou?rs?|published|patents?|won|winner)\b`)},
	{CategoryLeadership, regexp.MustCompile(`(?i)\b(led|leads?|leadership|managed|managing|mentored|supervised|directed|team lead|head of)\b`)},
}

// CategoryFor classifies content into the first matching keyword class.
func CategoryFor(content string) Category {
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(content) {
			return cp.category
		}
	}
	return CategoryGeneral
}

// displayTitles maps categories to section titles for grouped output.
var displayTitles = map[Category]string{
	CategoryExperience:  "Experience",
	CategoryTechnical:   "Technical",
	CategoryEducation:   "Education",
	CategoryAchievement: "Achievements",
	CategoryLeadership:  "Leadership",
	CategoryGeneral:     "General",
}
