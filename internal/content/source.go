// Package content fetches portfolio sections from whichever backend is
// configured and assembles them into a normalized document.
package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio/api/internal/portfolio"
	"portfolio/api/internal/store"
)

// Source reads one section's raw value from a content backend. The value
// is the decoded JSON payload for that section, in whatever shape the
// backend stores it.
type Source interface {
	Name() string
	FetchSection(ctx context.Context, section portfolio.Section) (interface{}, error)
}

// StoreSource reads sections from the relational store.
type StoreSource struct {
	store *store.Store
}

func NewStoreSource(s *store.Store) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) Name() string { return "local" }

func (s *StoreSource) FetchSection(ctx context.Context, section portfolio.Section) (interface{}, error) {
	raw, err := s.store.GetSection(ctx, section.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch section %s: %w", section.Name, err)
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode section %s: %w", section.Name, err)
	}
	return value, nil
}
