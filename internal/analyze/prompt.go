package analyze

import (
	"fmt"
	"strings"
)

// SystemPrompt frames every analysis request.
const SystemPrompt = `You are a resume reviewer. You receive one segment of a candidate's resume at a time and produce a written assessment of that segment.`

// AnalysisPrompt is the per-chunk instruction block.
const AnalysisPrompt = `Analyze the following resume segment. Cover, where the segment gives evidence:

- Notable accomplishments and their impact
- Technical skills and depth signals
- Education and certifications
- Leadership and collaboration signals
- Gaps, vague claims, or red flags

Write plain prose organized under short uppercase section headings (e.g. EXPERIENCE:, SKILLS:). Use hyphen bullets for individual observations. Do not comment on the analysis process itself, only on the resume content. Do not repeat the resume text verbatim.`

// BuildChunkPrompt creates the full prompt for analyzing one chunk,
// including document title and position context so multi-chunk resumes read
// coherently when the responses are joined.
func BuildChunkPrompt(title string, index, total int, chunkText string) string {
	var sb strings.Builder
	sb.WriteString(AnalysisPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Resume: %q\n", title))
	if total > 1 {
		sb.WriteString(fmt.Sprintf("Segment: %d of %d\n", index+1, total))
	}
	sb.WriteString("---\n")
	sb.WriteString(chunkText)
	return sb.String()
}
