package search

import (
	"log"

	"portfolio/api/internal/portfolio"
)

// Service is the facade that tries Meilisearch first and falls back to
// the in-memory searcher. meili may be nil when not configured.
type Service struct {
	meili  *Meili
	memory *Memory
}

func NewService(meili *Meili) *Service {
	return &Service{meili: meili, memory: NewMemory()}
}

// Search tries Meilisearch if healthy, otherwise the in-memory snapshot.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to memory: %v", err)
	}

	results, total, err := s.memory.Search(q)
	if err != nil {
		log.Printf("search: memory error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// Index replaces the searchable snapshot with the given document. The
// in-memory snapshot updates synchronously; Meilisearch is fire-and-forget.
func (s *Service) Index(doc portfolio.Document) {
	docs := DocsFromDocument(doc)
	stale := s.memory.Replace(docs)

	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexRecords(docs); err != nil {
			log.Printf("search: index records: %v", err)
		}
		if err := s.meili.DeleteRecords(stale); err != nil {
			log.Printf("search: prune records: %v", err)
		}
	}()
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
