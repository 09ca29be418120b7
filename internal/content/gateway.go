package content

import (
	"context"
	"fmt"
	"log"
	"sync"

	"portfolio/api/internal/portfolio"
)

// Gateway assembles the full portfolio document from a Source. Sections
// are fetched concurrently; a section that fails degrades to its default
// value so one bad endpoint never takes down the page.
type Gateway struct {
	source Source
	logger *log.Logger
}

func NewGateway(source Source, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{source: source, logger: logger}
}

// FetchDocument returns a complete normalized document. Dated list
// sections come back sorted by descending date; persisted order is not
// modified. An error is returned only when every section failed, which
// means the backend itself is unreachable.
func (g *Gateway) FetchDocument(ctx context.Context) (portfolio.Document, error) {
	type result struct {
		name  string
		value interface{}
		err   error
	}

	results := make([]result, len(portfolio.Sections))
	var wg sync.WaitGroup
	for i, section := range portfolio.Sections {
		wg.Add(1)
		go func(i int, section portfolio.Section) {
			defer wg.Done()
			value, err := g.source.FetchSection(ctx, section)
			results[i] = result{name: section.Name, value: value, err: err}
		}(i, section)
	}
	wg.Wait()

	raw := make(portfolio.Document, len(results))
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			g.logger.Printf("section %s unavailable from %s: %v", res.name, g.source.Name(), res.err)
			continue
		}
		raw[res.name] = res.value
	}
	if failed == len(results) {
		return nil, fmt.Errorf("backend %s unreachable: all sections failed", g.source.Name())
	}

	doc := portfolio.Normalize(raw)
	for _, section := range portfolio.Sections {
		if section.Kind == portfolio.List && section.DateField != "" {
			portfolio.SortRecordsByDate(doc.ListRecords(section.Name), section.DateField)
		}
	}
	return doc, nil
}
