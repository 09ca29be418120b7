package content

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"portfolio/api/internal/portfolio"
)

type fakeSource struct {
	sections map[string]interface{}
	fail     map[string]bool
	failAll  bool
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchSection(_ context.Context, section portfolio.Section) (interface{}, error) {
	if f.failAll || f.fail[section.Name] {
		return nil, errors.New("boom")
	}
	return f.sections[section.Name], nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestFetchDocumentNormalizesAndSorts(t *testing.T) {
	source := &fakeSource{sections: map[string]interface{}{
		"about": map[string]interface{}{"name": "Ada"},
		"experience": []interface{}{
			map[string]interface{}{"title": "Old", "startDate": "Mar 2019"},
			map[string]interface{}{"title": "New", "startDate": "Jun 2023"},
			map[string]interface{}{"title": "Mid", "startDate": "2021"},
		},
	}}
	gw := NewGateway(source, quietLogger())

	doc, err := gw.FetchDocument(context.Background())
	if err != nil {
		t.Fatalf("FetchDocument() error = %v", err)
	}

	if got := doc.SingletonRecord("about").String("name"); got != "Ada" {
		t.Errorf("about name = %q", got)
	}

	records := doc.ListRecords("experience")
	if len(records) != 3 {
		t.Fatalf("expected 3 experience records, got %d", len(records))
	}
	wantOrder := []string{"New", "Mid", "Old"}
	for i, want := range wantOrder {
		if got := records[i].String("title"); got != want {
			t.Errorf("experience[%d] = %q, want %q", i, got, want)
		}
	}

	// Every section key is present even though the source only knew two.
	for _, name := range portfolio.SectionNames() {
		if _, ok := doc[name]; !ok {
			t.Errorf("document missing section %s", name)
		}
	}
}

func TestFetchDocumentDegradesFailedSections(t *testing.T) {
	source := &fakeSource{
		sections: map[string]interface{}{
			"about": map[string]interface{}{"name": "Ada"},
		},
		fail: map[string]bool{"experience": true},
	}
	gw := NewGateway(source, quietLogger())

	doc, err := gw.FetchDocument(context.Background())
	if err != nil {
		t.Fatalf("FetchDocument() error = %v", err)
	}
	if records := doc.ListRecords("experience"); len(records) != 0 {
		t.Errorf("failed section should degrade to empty, got %d records", len(records))
	}
	if got := doc.SingletonRecord("about").String("name"); got != "Ada" {
		t.Errorf("healthy section lost: about name = %q", got)
	}
}

func TestFetchDocumentAllSectionsFailed(t *testing.T) {
	gw := NewGateway(&fakeSource{failAll: true}, quietLogger())
	if _, err := gw.FetchDocument(context.Background()); err == nil {
		t.Fatal("expected error when every section fails")
	}
}
