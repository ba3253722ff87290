// Package structure reconstructs structured analysis documents from
// free-form AI-generated prose: sections, bullets, priorities, categories.
package structure

// Priority is a coarse impact ranking assigned by vocabulary matching.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities for descending sort; higher sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

// Category is the topical classification of a list item.
type Category string

const (
	CategoryExperience  Category = "experience"
	CategoryTechnical   Category = "technical"
	CategoryEducation   Category = "education"
	CategoryAchievement Category = "achievement"
	CategoryLeadership  Category = "leadership"
	CategoryGeneral     Category = "general"
)

// Kind identifies which layout the reconstructor settled on.
type Kind string

const (
	// KindSectioned is chosen when at least one header line was detected.
	KindSectioned Kind = "sectioned"
	// KindGrouped is chosen when multiple bullet lines exist but no headers;
	// items are grouped by category and sorted by priority.
	KindGrouped Kind = "grouped"
	// KindBullets is the flat fallback when neither applies.
	KindBullets Kind = "bullets"
)

// Item is a single classified unit of content.
type Item struct {
	Content  string   `json:"content"`
	Priority Priority `json:"priority"`
	Category Category `json:"category,omitempty"`
}

// Section holds an ordered run of items under an optional title.
type Section struct {
	Title string `json:"title,omitempty"`
	Items []Item `json:"items"`
}

// Document is the reconstructed representation of unstructured input text.
// It is built fresh on every Reconstruct call and never mutated afterward.
type Document struct {
	Kind     Kind      `json:"kind"`
	Sections []Section `json:"sections"`
}

// PlaceholderContent is returned for empty or fully-filtered input.
const PlaceholderContent = "No content available"

func placeholderDocument() Document {
	return Document{
		Kind: KindBullets,
		Sections: []Section{
			{Items: []Item{{Content: PlaceholderContent, Priority: PriorityLow}}},
		},
	}
}
