package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := ApplyMigrations(ctx, db, filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return New(db)
}

func TestReplaceAllSectionsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sections := map[string]json.RawMessage{
		"about":      json.RawMessage(`{"name":"Ada","title":"Engineer"}`),
		"experience": json.RawMessage(`[{"title":"SWE","company":"Acme"}]`),
	}
	if err := s.ReplaceAllSections(ctx, sections, "admin"); err != nil {
		t.Fatalf("replace sections: %v", err)
	}

	stored, err := s.GetAllSections(ctx)
	if err != nil {
		t.Fatalf("get all sections: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(stored))
	}

	about, err := s.GetSection(ctx, "about")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(about, &decoded); err != nil {
		t.Fatalf("decode about: %v", err)
	}
	if decoded["name"] != "Ada" {
		t.Fatalf("expected name Ada, got %q", decoded["name"])
	}

	meta, err := s.SectionMeta(ctx, "about")
	if err != nil {
		t.Fatalf("section meta: %v", err)
	}
	if meta.UpdatedBy != "admin" {
		t.Fatalf("expected updated_by admin, got %q", meta.UpdatedBy)
	}
}

func TestReplaceAllSectionsOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := map[string]json.RawMessage{"about": json.RawMessage(`{"name":"Ada"}`)}
	if err := s.ReplaceAllSections(ctx, first, "admin"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := map[string]json.RawMessage{"about": json.RawMessage(`{"name":"Grace"}`)}
	if err := s.ReplaceAllSections(ctx, second, "admin"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	about, err := s.GetSection(ctx, "about")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	var decoded map[string]string
	_ = json.Unmarshal(about, &decoded)
	if decoded["name"] != "Grace" {
		t.Fatalf("expected overwrite to Grace, got %q", decoded["name"])
	}
}

func TestReplaceAllSectionsRollsBackOnBadSection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ReplaceAllSections(ctx, map[string]json.RawMessage{
		"experience": json.RawMessage(`[{"title":"Old"}]`),
		"projects":   json.RawMessage(`[{"name":"Old Project"}]`),
	}, "admin"); err != nil {
		t.Fatalf("seed save: %v", err)
	}

	err := s.ReplaceAllSections(ctx, map[string]json.RawMessage{
		"experience": json.RawMessage(`[{"title":"New"}]`),
		"projects":   json.RawMessage(`{not json`),
	}, "admin")
	if err == nil {
		t.Fatalf("expected save to fail on invalid section payload")
	}

	experience, err := s.GetSection(ctx, "experience")
	if err != nil {
		t.Fatalf("get experience: %v", err)
	}
	var records []map[string]string
	_ = json.Unmarshal(experience, &records)
	if len(records) != 1 || records[0]["title"] != "Old" {
		t.Fatalf("expected prior experience intact after rollback, got %s", experience)
	}
}

func TestGetSectionMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSection(context.Background(), "about")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty users table, got %d", count)
	}

	if err := s.CreateUser(ctx, "admin", "hash-1"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	user, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.PasswordHash != "hash-1" {
		t.Fatalf("expected hash-1, got %q", user.PasswordHash)
	}

	if err := s.UpdateUserPassword(ctx, "admin", "hash-2"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	user, _ = s.GetUserByUsername(ctx, "admin")
	if user.PasswordHash != "hash-2" {
		t.Fatalf("expected hash-2 after update, got %q", user.PasswordHash)
	}

	if err := s.UpdateUserPassword(ctx, "ghost", "x"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for unknown user, got %v", err)
	}
}
