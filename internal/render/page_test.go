package render

import (
	"strings"
	"testing"

	"portfolio/api/internal/portfolio"
)

func testDocument() portfolio.Document {
	doc := portfolio.DefaultDocument()
	doc["about"] = portfolio.Record{
		"name":        "Ada Lovelace",
		"title":       "Research Engineer",
		"description": "Programs analytical engines.",
		"keywords":    []string{"computing", "mathematics"},
	}
	doc["contact"] = portfolio.Record{
		"email":    "ada@example.com",
		"location": "London",
	}
	doc["experience"] = []portfolio.Record{
		{
			"title":      "Analyst",
			"company":    "Analytical Engine Co",
			"startDate":  "1842",
			"endDate":    "",
			"highlights": []string{"Wrote the first program"},
		},
	}
	doc["projects"] = []portfolio.Record{
		{
			"name":        "Notes on the Engine",
			"date":        "1843",
			"description": "Translation with commentary.",
			"link":        "https://example.com/notes",
		},
	}
	return portfolio.Normalize(doc)
}

func TestPageHTML(t *testing.T) {
	r, err := NewRenderer(AssetURLRewriter{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	html, err := r.PageHTML(testDocument())
	if err != nil {
		t.Fatalf("PageHTML() error = %v", err)
	}

	for _, want := range []string{
		"<h1>Ada Lovelace</h1>",
		"Research Engineer",
		"ada@example.com",
		"<h2>Experience</h2>",
		"<h3>Analyst</h3>",
		"1842 – Present",
		"<li>Wrote the first program</li>",
		"<h2>Projects</h2>",
		`<a href="https://example.com/notes">https://example.com/notes</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// Sections with no records stay off the page entirely.
	if strings.Contains(html, `id="patents"`) {
		t.Error("empty patents section should not render")
	}
}

func TestPageHTMLEscapesFieldValues(t *testing.T) {
	doc := testDocument()
	doc["experience"] = []portfolio.Record{{"title": "<script>alert(1)</script>"}}

	r, err := NewRenderer(AssetURLRewriter{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	html, err := r.PageHTML(portfolio.Normalize(doc))
	if err != nil {
		t.Fatalf("PageHTML() error = %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("field value rendered without escaping")
	}
}

func TestHumanizeField(t *testing.T) {
	cases := map[string]string{
		"startDate":    "Start Date",
		"credentialId": "Credential Id",
		"name":         "Name",
	}
	for in, want := range cases {
		if got := HumanizeField(in); got != want {
			t.Errorf("HumanizeField(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageHTMLKeepsDescriptionLineBreaks(t *testing.T) {
	doc := testDocument()
	doc["projects"] = []portfolio.Record{{
		"name":        "Engine",
		"description": "First line\nSecond & third",
	}}

	r, err := NewRenderer(AssetURLRewriter{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	html, err := r.PageHTML(portfolio.Normalize(doc))
	if err != nil {
		t.Fatalf("PageHTML() error = %v", err)
	}
	if !strings.Contains(html, "First line<br>Second &amp; third") {
		t.Fatal("description line breaks should become <br> with escaped text")
	}
}
