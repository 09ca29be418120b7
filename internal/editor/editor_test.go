package editor

import (
	"context"
	"errors"
	"testing"

	"portfolio/api/internal/portfolio"
)

type fakeBackend struct {
	doc     portfolio.Document
	saved   []portfolio.Document
	loadErr error
	saveErr error
}

func (f *fakeBackend) Load(context.Context) (portfolio.Document, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.doc, nil
}

func (f *fakeBackend) Save(_ context.Context, doc portfolio.Document) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, doc)
	return nil
}

func loadedEditor(t *testing.T) (*Editor, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{doc: portfolio.Document{
		"about": portfolio.Record{"name": "Ada"},
		"experience": []portfolio.Record{
			{"title": "First", "company": "Acme"},
			{"title": "Second", "company": "Globex"},
		},
	}}
	ed := New(backend)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ed, backend
}

func recordTitles(t *testing.T, ed *Editor, section string) []string {
	t.Helper()
	entries, err := ed.Records(section)
	if err != nil {
		t.Fatalf("Records(%s) error = %v", section, err)
	}
	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		titles = append(titles, entry.Fields.String("title"))
	}
	return titles
}

func TestLoadAssignsStableIDs(t *testing.T) {
	ed, _ := loadedEditor(t)
	entries, err := ed.Records("experience")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Fatalf("entries need distinct non-empty IDs: %q %q", entries[0].ID, entries[1].ID)
	}
	if ed.Dirty() {
		t.Error("freshly loaded editor must be clean")
	}
}

func TestAddEntersEditMode(t *testing.T) {
	ed, _ := loadedEditor(t)
	entry, err := ed.Add("experience")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !entry.Editing {
		t.Error("new record must start in edit mode")
	}
	if entry.Fields.String("title") != "" {
		t.Error("new record must start empty")
	}

	entries, _ := ed.Records("experience")
	if len(entries) != 3 || entries[2].ID != entry.ID {
		t.Error("new record must append at the end")
	}
	if !ed.Dirty() {
		t.Error("Add must mark the editor dirty")
	}

	// A second Add while the first record is still open is refused.
	if _, err := ed.Add("experience"); !errors.Is(err, ErrAlreadyEditing) {
		t.Fatalf("expected ErrAlreadyEditing, got %v", err)
	}
}

func TestEditLifecycle(t *testing.T) {
	ed, _ := loadedEditor(t)
	entries, _ := ed.Records("experience")
	id := entries[0].ID

	// Field updates outside edit mode are refused.
	if err := ed.SetField("experience", id, "title", "Changed"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}

	if err := ed.BeginEdit("experience", id); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := ed.BeginEdit("experience", entries[1].ID); !errors.Is(err, ErrAlreadyEditing) {
		t.Fatalf("expected ErrAlreadyEditing for second record, got %v", err)
	}
	if err := ed.SetField("experience", id, "title", "Changed"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}

	// Done never validates; empty fields are fine.
	if err := ed.SetField("experience", id, "company", ""); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if err := ed.FinishEdit("experience", id); err != nil {
		t.Fatalf("FinishEdit() error = %v", err)
	}

	entries, _ = ed.Records("experience")
	if entries[0].Fields.String("title") != "Changed" {
		t.Errorf("edit not applied: %v", entries[0].Fields)
	}
	if entries[0].Editing {
		t.Error("record must be back in viewing state")
	}

	// The other record can be edited now.
	if err := ed.BeginEdit("experience", entries[1].ID); err != nil {
		t.Fatalf("BeginEdit() after finish error = %v", err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ed, _ := loadedEditor(t)
	entries, _ := ed.Records("experience")
	id := entries[0].ID

	if err := ed.Delete("experience", id, false); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("expected ErrConfirmRequired, got %v", err)
	}
	if got := recordTitles(t, ed, "experience"); len(got) != 2 {
		t.Fatal("unconfirmed delete must not remove anything")
	}

	if err := ed.Delete("experience", id, true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := recordTitles(t, ed, "experience"); len(got) != 1 || got[0] != "Second" {
		t.Fatalf("after delete got %v", got)
	}
}

func TestDeletePreservesOrderOfSurvivors(t *testing.T) {
	ed, _ := loadedEditor(t)
	if _, err := ed.Add("experience"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	entries, _ := ed.Records("experience")
	if err := ed.FinishEdit("experience", entries[2].ID); err != nil {
		t.Fatalf("FinishEdit() error = %v", err)
	}

	if err := ed.Delete("experience", entries[1].ID, true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got := recordTitles(t, ed, "experience")
	want := []string{"First", ""}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("surviving order = %v, want %v", got, want)
	}
}

func TestMoveShiftsBetweenPositions(t *testing.T) {
	ed, _ := loadedEditor(t)
	entries, _ := ed.Records("experience")

	if err := ed.Move("experience", entries[1].ID, 0); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if got := recordTitles(t, ed, "experience"); got[0] != "Second" || got[1] != "First" {
		t.Fatalf("after move got %v", got)
	}

	if err := ed.Move("experience", entries[1].ID, 5); err == nil {
		t.Fatal("expected error for out-of-range position")
	}
	if !ed.Dirty() {
		t.Error("Move must mark the editor dirty")
	}
}

func TestSaveAllCommitsWholeDocument(t *testing.T) {
	ed, backend := loadedEditor(t)
	entries, _ := ed.Records("experience")
	if err := ed.BeginEdit("experience", entries[0].ID); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := ed.SetField("experience", entries[0].ID, "title", "Updated"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if err := ed.SetSingletonField("about", "name", "Grace"); err != nil {
		t.Fatalf("SetSingletonField() error = %v", err)
	}

	if err := ed.SaveAll(context.Background()); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if ed.Dirty() {
		t.Error("editor must be clean after save")
	}
	if len(backend.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(backend.saved))
	}

	saved := backend.saved[0]
	if saved.SingletonRecord("about").String("name") != "Grace" {
		t.Error("singleton edit missing from saved document")
	}
	records := saved.ListRecords("experience")
	if len(records) != 2 || records[0].String("title") != "Updated" {
		t.Errorf("list edit missing from saved document: %v", records)
	}
	// Untouched sections still ride along in the bulk save.
	if _, ok := saved["skills"]; !ok {
		t.Error("saved document must carry every section")
	}
}

func TestSaveAllFailureKeepsLocalState(t *testing.T) {
	ed, backend := loadedEditor(t)
	backend.saveErr = errors.New("backend down")

	entries, _ := ed.Records("experience")
	if err := ed.BeginEdit("experience", entries[0].ID); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := ed.SetField("experience", entries[0].ID, "title", "Kept"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}

	if err := ed.SaveAll(context.Background()); err == nil {
		t.Fatal("expected SaveAll to fail")
	}
	if !ed.Dirty() {
		t.Error("failed save must leave the editor dirty")
	}
	if got := recordTitles(t, ed, "experience"); got[0] != "Kept" {
		t.Errorf("local edit lost after failed save: %v", got)
	}
}

func TestRefreshGuardsUnsavedChanges(t *testing.T) {
	ed, backend := loadedEditor(t)
	if _, err := ed.Add("experience"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := ed.Refresh(context.Background(), false); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	if got := recordTitles(t, ed, "experience"); len(got) != 3 {
		t.Fatal("unconfirmed refresh must not discard edits")
	}

	backend.doc = portfolio.Document{
		"experience": []portfolio.Record{{"title": "Server Copy"}},
	}
	if err := ed.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := recordTitles(t, ed, "experience"); len(got) != 1 || got[0] != "Server Copy" {
		t.Fatalf("after refresh got %v", got)
	}
	if ed.Dirty() {
		t.Error("refreshed editor must be clean")
	}
}

func TestChangeNotifications(t *testing.T) {
	ed, _ := loadedEditor(t)
	var changes []Change
	ed.Subscribe(func(c Change) { changes = append(changes, c) })

	entry, err := ed.Add("experience")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := ed.FinishEdit("experience", entry.ID); err != nil {
		t.Fatalf("FinishEdit() error = %v", err)
	}
	if err := ed.Move("experience", entry.ID, 0); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if err := ed.SaveAll(context.Background()); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	kinds := make([]ChangeKind, 0, len(changes))
	for _, c := range changes {
		kinds = append(kinds, c.Kind)
	}
	want := []ChangeKind{ChangeRecord, ChangeRecord, ChangeOrder, ChangeSaved}
	if len(kinds) != len(want) {
		t.Fatalf("change kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("change kinds = %v, want %v", kinds, want)
		}
	}
}

func TestUnknownAndWrongKindSections(t *testing.T) {
	ed, _ := loadedEditor(t)

	if _, err := ed.Add("nonsense"); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	if _, err := ed.Add("about"); !errors.Is(err, ErrNotListSection) {
		t.Fatalf("expected ErrNotListSection, got %v", err)
	}
	if err := ed.SetSingletonField("experience", "title", "x"); !errors.Is(err, ErrNotSingleton) {
		t.Fatalf("expected ErrNotSingleton, got %v", err)
	}
	if err := ed.BeginEdit("experience", "missing-id"); !errors.Is(err, ErrNoSuchRecord) {
		t.Fatalf("expected ErrNoSuchRecord, got %v", err)
	}
}
