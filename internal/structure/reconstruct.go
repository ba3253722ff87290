package structure

import (
	"regexp"
	"sort"
	"strings"
)

// Thresholds for bulletization and item splitting, in characters.
const (
	longLineLength    = 100
	substantialLength = 20
)

// Reconstructor turns unstructured prose into a Document. The zero value is
// not usable; construct with New. The rule set is replaceable so noise
// patterns can be tuned without touching the pipeline.
type Reconstructor struct {
	rules []Rule
}

// New returns a Reconstructor with the default noise rules. Passing rules
// overrides the default set entirely.
func New(rules ...Rule) *Reconstructor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Reconstructor{rules: rules}
}

// Reconstruct is a convenience wrapper using the default rule set.
func Reconstruct(text string) Document {
	return New().Reconstruct(text)
}

// Reconstruct runs the full pipeline: noise filtering, markdown stripping,
// bulletization, layout classification, and per-item annotation. It is a
// pure function of its input; empty or fully-filtered input yields the
// placeholder document, never an error.
func (r *Reconstructor) Reconstruct(text string) Document {
	if strings.TrimSpace(text) == "" {
		return placeholderDocument()
	}

	cleaned := stripMarkdown(filterNoise(text, r.rules))
	lines := bulletize(cleaned)
	if len(lines) == 0 {
		return placeholderDocument()
	}

	// Classification runs in fixed order; the first matching layout wins.
	if containsHeader(lines) {
		return buildSectioned(lines)
	}
	if countBullets(lines) > 1 {
		return buildGrouped(lines)
	}
	return buildBullets(lines)
}

// Markdown stripping: emphasis and code-span delimiters go, enclosed text
// stays; blank-line runs collapse to a single blank line; horizontal
// whitespace runs collapse to one space.
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*|\b_([^_]+)_\b`)
	codeSpanPattern   = regexp.MustCompile("`([^`]+)`")
	headingRunPattern = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
	hspaceRunPattern  = regexp.MustCompile(`[ \t]{2,}`)
)

func stripMarkdown(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1$2")
	text = italicPattern.ReplaceAllString(text, "$1$2")
	text = codeSpanPattern.ReplaceAllString(text, "$1")
	text = headingRunPattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = hspaceRunPattern.ReplaceAllString(text, " ")
	return text
}

// Line-shape patterns. Header detection takes precedence over bullet
// detection on the same line.
var (
	headerPattern   = regexp.MustCompile(`^(?:\d+[.)]\s*)?[A-Z][A-Z\s&/]{1,58}:?$`)
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-•*▪–]|\d+[.)]|[a-zA-Z][.)])\s+`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+(?:\s|$)|[^.!?]+$`)
)

func isHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 60 {
		return false
	}
	if !headerPattern.MatchString(line) {
		return false
	}
	return len(strings.Fields(line)) <= 6
}

func isBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

// bulletize converts free prose into a flat list of header, bullet, and
// passthrough lines. Long lines split at sentence boundaries; shorter lines
// with substantial content get a single bullet; headers and existing bullets
// pass through unchanged.
func bulletize(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				continue
			case isHeader(line) || isBullet(line):
				out = append(out, line)
			case len(line) > longLineLength:
				for _, sent := range splitSentences(line) {
					if len(sent) >= minContentLength {
						out = append(out, "• "+sent)
					}
				}
			case len(line) > substantialLength:
				out = append(out, "• "+line)
			default:
				out = append(out, line)
			}
		}
	}
	return out
}

func splitSentences(text string) []string {
	var sentences []string
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func containsHeader(lines []string) bool {
	for _, l := range lines {
		if isHeader(l) {
			return true
		}
	}
	return false
}

func countBullets(lines []string) int {
	n := 0
	for _, l := range lines {
		if isBullet(l) {
			n++
		}
	}
	return n
}

// stripBullet removes a leading list marker, returning the bare content.
func stripBullet(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
}

// cleanHeaderTitle normalizes a header line into a section title.
func cleanHeaderTitle(line string) string {
	line = strings.TrimSpace(line)
	line = regexp.MustCompile(`^\d+[.)]\s*`).ReplaceAllString(line, "")
	return strings.TrimSuffix(line, ":")
}

// buildSectioned groups lines under detected headers. Long item content is
// split at sentence boundaries into multiple items. Categories are not
// assigned in sectioned mode; the header already names the topic.
func buildSectioned(lines []string) Document {
	doc := Document{Kind: KindSectioned}
	current := -1

	appendItem := func(content string) {
		if current < 0 {
			// Content before the first header lands in an untitled section.
			doc.Sections = append(doc.Sections, Section{})
			current = 0
		}
		doc.Sections[current].Items = append(doc.Sections[current].Items, Item{
			Content:  content,
			Priority: PriorityFor(content),
		})
	}

	for _, line := range lines {
		if isHeader(line) {
			doc.Sections = append(doc.Sections, Section{Title: cleanHeaderTitle(line)})
			current = len(doc.Sections) - 1
			continue
		}
		content := stripBullet(line)
		if content == "" {
			continue
		}
		if len(content) > longLineLength {
			for _, sent := range splitSentences(content) {
				if len(sent) >= minContentLength {
					appendItem(sent)
				}
			}
			continue
		}
		appendItem(content)
	}

	return doc
}

// buildGrouped turns a headerless bullet list into category groups, each
// sorted by descending priority. Non-bullet lines of sufficient length
// become items alongside the bullets.
func buildGrouped(lines []string) Document {
	var items []Item
	for _, line := range lines {
		content := line
		if isBullet(line) {
			content = stripBullet(line)
		} else if len(strings.TrimSpace(line)) <= substantialLength {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		items = append(items, Item{
			Content:  content,
			Priority: PriorityFor(content),
			Category: CategoryFor(content),
		})
	}
	if len(items) == 0 {
		return placeholderDocument()
	}

	// Group by category in first-appearance order.
	order := make([]Category, 0, len(displayTitles))
	grouped := make(map[Category][]Item)
	for _, item := range items {
		if _, seen := grouped[item.Category]; !seen {
			order = append(order, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	doc := Document{Kind: KindGrouped}
	for _, cat := range order {
		group := grouped[cat]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Priority.rank() > group[j].Priority.rank()
		})
		doc.Sections = append(doc.Sections, Section{
			Title: displayTitles[cat],
			Items: group,
		})
	}
	return doc
}

// buildBullets is the flat fallback: every remaining line becomes an item.
func buildBullets(lines []string) Document {
	var items []Item
	for _, line := range lines {
		content := stripBullet(line)
		if content == "" {
			continue
		}
		items = append(items, Item{
			Content:  content,
			Priority: PriorityFor(content),
		})
	}
	if len(items) == 0 {
		return placeholderDocument()
	}
	return Document{
		Kind:     KindBullets,
		Sections: []Section{{Items: items}},
	}
}
