package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"portfolio/api/internal/portfolio"
)

func testDoc(summary string) portfolio.Document {
	doc := portfolio.DefaultDocument()
	doc["about"] = portfolio.Record{
		"name":    "Ada Lovelace",
		"title":   "Analyst",
		"description": summary,
	}
	return portfolio.Normalize(doc)
}

func TestHistoryLifecycle(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "history"))

	if err := svc.Ensure(testDoc("first"), "admin"); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.dir, contentFile)); err != nil {
		t.Fatalf("content file missing: %v", err)
	}

	// Ensure is idempotent.
	if err := svc.Ensure(testDoc("ignored"), "admin"); err != nil {
		t.Fatalf("second Ensure() error = %v", err)
	}

	commit, err := svc.Commit(testDoc("second"), "admin", "Update portfolio content")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if commit.Hash == "" {
		t.Fatal("expected commit hash")
	}
	if commit.Author != "admin" {
		t.Fatalf("unexpected author %q", commit.Author)
	}

	entries, err := svc.History(10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0].Hash != commit.Hash {
		t.Fatalf("expected newest commit first, got %q", entries[0].Hash)
	}

	doc, err := svc.DocumentAt(commit.Hash)
	if err != nil {
		t.Fatalf("DocumentAt() error = %v", err)
	}
	if got := doc.SingletonRecord("about").String("description"); got != "second" {
		t.Fatalf("unexpected summary at head: %q", got)
	}

	older, err := svc.DocumentAt(entries[1].Hash)
	if err != nil {
		t.Fatalf("DocumentAt() older error = %v", err)
	}
	if got := older.SingletonRecord("about").String("description"); got != "first" {
		t.Fatalf("unexpected summary at baseline: %q", got)
	}
}

func TestCommitUnchangedDocumentReturnsHead(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "history"))

	if err := svc.Ensure(testDoc("same"), "admin"); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	commit, err := svc.Commit(testDoc("same"), "admin", "No-op save")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	entries, err := svc.History(0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single commit, got %d", len(entries))
	}
	if entries[0].Hash != commit.Hash {
		t.Fatalf("expected head commit back, got %q", commit.Hash)
	}
}

func TestConcurrentCommits(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "history"))

	if err := svc.Ensure(testDoc("base"), "admin"); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			doc := testDoc(fmt.Sprintf("version-%02d", idx))
			if _, err := svc.Commit(doc, "admin", fmt.Sprintf("Save %02d", idx)); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			t.Fatalf("Commit() concurrent error = %v", err)
		}
	}

	entries, err := svc.History(0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != writers+1 {
		t.Fatalf("expected %d commits, got %d", writers+1, len(entries))
	}
}
