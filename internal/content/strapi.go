package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"portfolio/api/internal/portfolio"
)

// bookkeepingFields are the wrapper fields Strapi attaches to every item.
// They never reach the canonical document.
var bookkeepingFields = []string{"id", "documentId", "createdAt", "updatedAt", "publishedAt"}

// StrapiSource reads sections from a Strapi CMS instance over its public
// read API.
type StrapiSource struct {
	baseURL string
	client  *http.Client
}

func NewStrapiSource(baseURL string, timeout time.Duration) *StrapiSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StrapiSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *StrapiSource) Name() string { return "strapi" }

func (s *StrapiSource) FetchSection(ctx context.Context, section portfolio.Section) (interface{}, error) {
	endpoint := s.baseURL + "/api/" + url.PathEscape(section.Strapi.Endpoint)
	if section.Strapi.Populate {
		endpoint += "?populate=*"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build strapi request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", section.Strapi.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", section.Strapi.Endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", section.Strapi.Endpoint, err)
	}

	var envelope struct {
		Data interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", section.Strapi.Endpoint, err)
	}

	value := stripBookkeeping(envelope.Data)

	if section.Kind == portfolio.List {
		records, _ := value.([]interface{})
		if section.Strapi.DateField != "" && section.Strapi.DateField != section.DateField {
			renameDateField(records, section.Strapi.DateField, section.DateField)
		}
		return records, nil
	}
	return value, nil
}

// stripBookkeeping removes Strapi's wrapper fields from every item,
// recursing into populated nested relations.
func stripBookkeeping(value interface{}) interface{} {
	switch typed := value.(type) {
	case []interface{}:
		for i, item := range typed {
			typed[i] = stripBookkeeping(item)
		}
		return typed
	case map[string]interface{}:
		for _, field := range bookkeepingFields {
			delete(typed, field)
		}
		for key, nested := range typed {
			switch nested.(type) {
			case map[string]interface{}, []interface{}:
				// Rich-content block arrays carry no bookkeeping, but
				// populated relations do; stripping both is harmless.
				typed[key] = stripBookkeeping(nested)
			}
		}
		return typed
	default:
		return value
	}
}

// renameDateField moves the CMS's date field under the canonical name so
// sorting and rendering see one schema.
func renameDateField(records []interface{}, from, to string) {
	for _, item := range records {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if value, ok := record[from]; ok {
			if _, taken := record[to]; !taken {
				record[to] = value
			}
			delete(record, from)
		}
	}
}
