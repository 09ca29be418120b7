package search

import (
	"strings"
	"sync"
)

// Memory is a substring searcher over the current record snapshot. It is
// the fallback when Meilisearch is absent or down, and doubles as the
// source of truth for which record ids are currently indexed.
type Memory struct {
	mu   sync.RWMutex
	docs []RecordDoc
}

func NewMemory() *Memory {
	return &Memory{}
}

// Replace swaps in a new snapshot and reports the ids that disappeared.
func (m *Memory) Replace(docs []RecordDoc) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keep := make(map[string]bool, len(docs))
	for _, d := range docs {
		keep[d.ID] = true
	}
	var stale []string
	for _, d := range m.docs {
		if !keep[d.ID] {
			stale = append(stale, d.ID)
		}
	}
	m.docs = docs
	return stale
}

func (m *Memory) Healthy() bool {
	return true
}

// Search does case-insensitive substring matching on title and body.
func (m *Memory) Search(q Query) ([]Result, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return []Result{}, 0, nil
	}
	limit := q.Limit
	if limit == 0 {
		limit = 20
	}

	var results []Result
	total := 0
	for _, d := range m.docs {
		if q.Section != "" && d.Section != q.Section {
			continue
		}
		title := strings.ToLower(d.Title)
		body := strings.ToLower(d.Body)
		if !strings.Contains(title, needle) && !strings.Contains(body, needle) {
			continue
		}
		total++
		if len(results) >= limit {
			continue
		}
		results = append(results, Result{
			Section: d.Section,
			ID:      d.ID,
			Title:   d.Title,
			Snippet: snippet(d.Body, needle),
		})
	}
	if results == nil {
		results = []Result{}
	}
	return results, total, nil
}

// snippet returns a window of the body around the first match.
func snippet(body, needle string) string {
	const window = 80

	idx := strings.Index(strings.ToLower(body), needle)
	if idx < 0 {
		if len(body) > window*2 {
			return body[:window*2] + "…"
		}
		return body
	}

	start := idx - window
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + window
	if end > len(body) {
		end = len(body)
	}

	out := body[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(body) {
		out = out + "…"
	}
	return out
}
