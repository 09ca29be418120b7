// Package search provides full-text search over the published portfolio
// content, backed by Meilisearch with an in-memory fallback.
package search

import (
	"fmt"
	"strings"

	"portfolio/api/internal/portfolio"
)

// Result is a single search hit returned to the caller.
type Result struct {
	Section string `json:"section"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Query describes a search request.
type Query struct {
	Text    string
	Section string // empty = all sections
	Limit   int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// RecordDoc is the flattened form of one portfolio record in the index.
// IDs are positional so reindexing overwrites in place.
type RecordDoc struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// DocsFromDocument flattens a content document into indexable records.
func DocsFromDocument(doc portfolio.Document) []RecordDoc {
	var docs []RecordDoc
	for _, section := range portfolio.Sections {
		if section.Kind == portfolio.Singleton {
			record := doc.SingletonRecord(section.Name)
			if rd, ok := flattenRecord(section, section.Name, record); ok {
				docs = append(docs, rd)
			}
			continue
		}
		for i, record := range doc.ListRecords(section.Name) {
			id := fmt.Sprintf("%s-%d", section.Name, i)
			if rd, ok := flattenRecord(section, id, record); ok {
				docs = append(docs, rd)
			}
		}
	}
	return docs
}

func flattenRecord(section portfolio.Section, id string, record portfolio.Record) (RecordDoc, bool) {
	var title string
	var parts []string
	for _, field := range section.Fields {
		value, ok := record[field.Name]
		if !ok {
			continue
		}
		switch field.Type {
		case portfolio.FieldString:
			s := strings.TrimSpace(record.String(field.Name))
			if s == "" {
				continue
			}
			if title == "" {
				title = s
			}
			parts = append(parts, s)
		case portfolio.FieldStringList:
			for _, s := range record.StringList(field.Name) {
				if s = strings.TrimSpace(s); s != "" {
					parts = append(parts, s)
				}
			}
		case portfolio.FieldRich:
			if text := richText(value); text != "" {
				parts = append(parts, text)
			}
		}
	}
	if title == "" && len(parts) == 0 {
		return RecordDoc{}, false
	}
	return RecordDoc{
		ID:      id,
		Section: section.Name,
		Title:   title,
		Body:    strings.Join(parts, " "),
	}, true
}

// richText pulls the plain text out of a rich-content value, either a
// block tree (text leaves) or a raw string.
func richText(value interface{}) string {
	var parts []string
	collectText(value, &parts)
	return strings.TrimSpace(strings.Join(parts, " "))
}

func collectText(value interface{}, parts *[]string) {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			*parts = append(*parts, s)
		}
	case []interface{}:
		for _, item := range v {
			collectText(item, parts)
		}
	case map[string]interface{}:
		if text, ok := v["text"].(string); ok {
			if s := strings.TrimSpace(text); s != "" {
				*parts = append(*parts, s)
			}
		}
		if children, ok := v["children"].([]interface{}); ok {
			collectText(children, parts)
		}
	}
}
