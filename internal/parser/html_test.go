package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser(t *testing.T) {
	doc := `<html>
<head><title>Jordan Rivers Resume</title></head>
<body>
<nav>Home | About</nav>
<h1>Jordan Rivers</h1>
<h2>Experience</h2>
<p>Led the data platform team for three years.</p>
<ul><li>Reduced query latency by 60%.</li></ul>
<script>alert("nope")</script>
<footer>Contact me</footer>
</body>
</html>`

	p := &HTMLParser{}
	resume, err := p.Parse(strings.NewReader(doc), "jordan.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resume.Title != "Jordan Rivers Resume" {
		t.Errorf("expected title from <title>, got %q", resume.Title)
	}
	for _, want := range []string{"Jordan Rivers", "Experience", "Led the data platform team", "Reduced query latency"} {
		if !strings.Contains(resume.Text, want) {
			t.Errorf("expected text to contain %q, got:\n%s", want, resume.Text)
		}
	}
	for _, unwanted := range []string{"alert", "Home | About", "Contact me"} {
		if strings.Contains(resume.Text, unwanted) {
			t.Errorf("expected %q to be excluded, got:\n%s", unwanted, resume.Text)
		}
	}
}

func TestHTMLParserHeadingsAreParagraphs(t *testing.T) {
	doc := `<body><h2>Skills</h2><p>Go and PostgreSQL.</p></body>`
	p := &HTMLParser{}
	resume, err := p.Parse(strings.NewReader(doc), "r.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paras := strings.Split(resume.Text, "\n\n")
	if len(paras) != 2 || paras[0] != "Skills" {
		t.Fatalf("expected heading as its own paragraph, got %q", resume.Text)
	}
}
