package search

import (
	"strings"
	"testing"

	"portfolio/api/internal/portfolio"
)

func testDocument() portfolio.Document {
	doc := portfolio.DefaultDocument()
	doc["about"] = portfolio.Record{
		"name":        "Ada Lovelace",
		"title":       "Analyst",
		"description": "Writes about analytical engines.",
	}
	doc["experience"] = []portfolio.Record{
		{
			"title":   "Chief Analyst",
			"company": "Babbage & Co",
			"detailedContent": []interface{}{
				map[string]interface{}{
					"type": "paragraph",
					"children": []interface{}{
						map[string]interface{}{"type": "text", "text": "Programmed the difference engine."},
					},
				},
			},
		},
	}
	doc["skills"] = []portfolio.Record{
		{"category": "Mathematics", "skills": []string{"Calculus", "Number theory"}},
	}
	return portfolio.Normalize(doc)
}

func TestDocsFromDocument(t *testing.T) {
	docs := DocsFromDocument(testDocument())

	byID := make(map[string]RecordDoc, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	about, ok := byID["about"]
	if !ok {
		t.Fatal("expected singleton about record in index")
	}
	if about.Title != "Ada Lovelace" {
		t.Fatalf("unexpected about title %q", about.Title)
	}

	work, ok := byID["experience-0"]
	if !ok {
		t.Fatal("expected experience-0 in index")
	}
	if work.Title != "Chief Analyst" {
		t.Fatalf("unexpected work title %q", work.Title)
	}
	if !strings.Contains(work.Body, "difference engine") {
		t.Fatalf("rich description text missing from body: %q", work.Body)
	}

	skill, ok := byID["skills-0"]
	if !ok {
		t.Fatal("expected skills-0 in index")
	}
	if !strings.Contains(skill.Body, "Number theory") {
		t.Fatalf("string list items missing from body: %q", skill.Body)
	}
}

func TestMemorySearch(t *testing.T) {
	mem := NewMemory()
	mem.Replace(DocsFromDocument(testDocument()))

	results, total, err := mem.Search(Query{Text: "difference engine"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("expected one hit, got total=%d results=%d", total, len(results))
	}
	if results[0].Section != "experience" {
		t.Fatalf("unexpected section %q", results[0].Section)
	}
	if !strings.Contains(results[0].Snippet, "difference engine") {
		t.Fatalf("snippet should contain the match: %q", results[0].Snippet)
	}
}

func TestMemorySearchSectionFilter(t *testing.T) {
	mem := NewMemory()
	mem.Replace(DocsFromDocument(testDocument()))

	_, total, err := mem.Search(Query{Text: "analyst", Section: "about"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total != 1 {
		t.Fatalf("expected only the about hit, got %d", total)
	}
}

func TestMemorySearchEmptyQuery(t *testing.T) {
	mem := NewMemory()
	mem.Replace(DocsFromDocument(testDocument()))

	results, total, err := mem.Search(Query{Text: "  "})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total != 0 || len(results) != 0 {
		t.Fatal("blank query should match nothing")
	}
}

func TestMemoryReplaceReportsStale(t *testing.T) {
	mem := NewMemory()
	mem.Replace([]RecordDoc{
		{ID: "skills-0", Section: "skills", Title: "Mathematics"},
		{ID: "skills-1", Section: "skills", Title: "Typography"},
	})

	stale := mem.Replace([]RecordDoc{
		{ID: "skills-0", Section: "skills", Title: "Mathematics"},
	})
	if len(stale) != 1 || stale[0] != "skills-1" {
		t.Fatalf("expected skills-1 reported stale, got %v", stale)
	}

	_, total, err := mem.Search(Query{Text: "typography"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total != 0 {
		t.Fatal("removed record should not match")
	}
}

func TestServiceFallsBackToMemory(t *testing.T) {
	svc := NewService(nil)
	svc.Index(testDocument())

	resp := svc.Search(Query{Text: "analytical"})
	if resp.Total == 0 {
		t.Fatal("expected memory fallback to serve results")
	}
	if resp.Query != "analytical" {
		t.Fatalf("response should echo the query, got %q", resp.Query)
	}
}
