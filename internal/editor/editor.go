// Package editor holds the admin's working copy of the portfolio document
// and the editing rules around it: one record in edit mode per section,
// confirmed deletes, local reordering, and an all-or-nothing save.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"portfolio/api/internal/portfolio"
)

var (
	ErrUnknownSection  = errors.New("unknown section")
	ErrNotListSection  = errors.New("section is not a record list")
	ErrNotSingleton    = errors.New("section is not a singleton")
	ErrNoSuchRecord    = errors.New("no such record")
	ErrAlreadyEditing  = errors.New("another record is already being edited")
	ErrNotEditing      = errors.New("record is not in edit mode")
	ErrConfirmRequired = errors.New("confirmation required")
	ErrUnsavedChanges  = errors.New("unsaved changes present")
)

// Backend loads and saves the whole document. Both the HTTP client and
// the in-process service satisfy it.
type Backend interface {
	Load(ctx context.Context) (portfolio.Document, error)
	Save(ctx context.Context, doc portfolio.Document) error
}

// Entry is one list record with the identity the editor assigned it.
// IDs are local to the session; the persisted format stays positional.
type Entry struct {
	ID      string
	Fields  portfolio.Record
	Editing bool
}

// ChangeKind says what a change notification is about.
type ChangeKind string

const (
	ChangeLoaded ChangeKind = "loaded"
	ChangeRecord ChangeKind = "record"
	ChangeOrder  ChangeKind = "order"
	ChangeSaved  ChangeKind = "saved"
)

type Change struct {
	Kind    ChangeKind
	Section string
}

// Editor is the state container behind the admin UI and CLI.
type Editor struct {
	backend Backend

	mu         sync.Mutex
	singletons map[string]portfolio.Record
	lists      map[string][]*Entry
	editing    map[string]string
	dirty      bool
	listeners  []func(Change)
}

func New(backend Backend) *Editor {
	return &Editor{
		backend:    backend,
		singletons: make(map[string]portfolio.Record),
		lists:      make(map[string][]*Entry),
		editing:    make(map[string]string),
	}
}

// Subscribe registers a change listener. Listeners run synchronously on
// the mutating goroutine and must not call back into the editor.
func (e *Editor) Subscribe(fn func(Change)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) notify(change Change) {
	for _, fn := range e.listeners {
		fn(change)
	}
}

// Load fetches the document and resets all local state.
func (e *Editor) Load(ctx context.Context) error {
	doc, err := e.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.install(portfolio.Normalize(doc))
	e.notify(Change{Kind: ChangeLoaded})
	return nil
}

// Refresh re-fetches the document, discarding local edits. When unsaved
// changes exist the caller must pass confirmed=true; the first call
// reports ErrUnsavedChanges so the UI can warn the user.
func (e *Editor) Refresh(ctx context.Context, confirmed bool) error {
	e.mu.Lock()
	if e.dirty && !confirmed {
		e.mu.Unlock()
		return ErrUnsavedChanges
	}
	e.mu.Unlock()
	return e.Load(ctx)
}

func (e *Editor) install(doc portfolio.Document) {
	e.singletons = make(map[string]portfolio.Record)
	e.lists = make(map[string][]*Entry)
	e.editing = make(map[string]string)
	e.dirty = false

	for _, section := range portfolio.Sections {
		if section.Kind == portfolio.Singleton {
			e.singletons[section.Name] = doc.SingletonRecord(section.Name)
			continue
		}
		records := doc.ListRecords(section.Name)
		entries := make([]*Entry, 0, len(records))
		for _, record := range records {
			entries = append(entries, &Entry{ID: uuid.NewString(), Fields: record})
		}
		e.lists[section.Name] = entries
	}
}

// Dirty reports whether local edits have not been saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Records returns a snapshot of a list section's entries in order.
func (e *Editor) Records(section string) ([]Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entries, err := e.entries(section)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}
	return out, nil
}

// Singleton returns a singleton section's record.
func (e *Editor) Singleton(section string) (portfolio.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := portfolio.SectionByName(section)
	if !ok {
		return nil, ErrUnknownSection
	}
	if meta.Kind != portfolio.Singleton {
		return nil, ErrNotSingleton
	}
	return e.singletons[section], nil
}

// Add appends an all-empty record to a list section and puts it straight
// into edit mode.
func (e *Editor) Add(section string) (Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := portfolio.SectionByName(section)
	if !ok {
		return Entry{}, ErrUnknownSection
	}
	if meta.Kind != portfolio.List {
		return Entry{}, ErrNotListSection
	}
	if _, busy := e.editing[section]; busy {
		return Entry{}, ErrAlreadyEditing
	}

	entry := &Entry{ID: uuid.NewString(), Fields: portfolio.EmptyRecord(meta), Editing: true}
	e.lists[section] = append(e.lists[section], entry)
	e.editing[section] = entry.ID
	e.dirty = true
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return *entry, nil
}

// BeginEdit moves a record from Viewing to Editing.
func (e *Editor) BeginEdit(section, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, err := e.find(section, id)
	if err != nil {
		return err
	}
	if current, busy := e.editing[section]; busy && current != id {
		return ErrAlreadyEditing
	}
	entry.Editing = true
	e.editing[section] = id
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return nil
}

// FinishEdit moves a record back to Viewing. Partial and empty fields are
// allowed; nothing validates on the way out.
func (e *Editor) FinishEdit(section, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, err := e.find(section, id)
	if err != nil {
		return err
	}
	if !entry.Editing {
		return ErrNotEditing
	}
	entry.Editing = false
	delete(e.editing, section)
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return nil
}

// SetField updates one field of a record that is in edit mode.
func (e *Editor) SetField(section, id, field string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, err := e.find(section, id)
	if err != nil {
		return err
	}
	if !entry.Editing {
		return ErrNotEditing
	}
	entry.Fields[field] = value
	e.dirty = true
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return nil
}

// SetSingletonField updates one field of a singleton section.
func (e *Editor) SetSingletonField(section, field string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta, ok := portfolio.SectionByName(section)
	if !ok {
		return ErrUnknownSection
	}
	if meta.Kind != portfolio.Singleton {
		return ErrNotSingleton
	}
	record := e.singletons[section]
	if record == nil {
		record = portfolio.EmptyRecord(meta)
		e.singletons[section] = record
	}
	record[field] = value
	e.dirty = true
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return nil
}

// Delete removes a record. There is no undo, so the first call without
// confirmation reports ErrConfirmRequired.
func (e *Editor) Delete(section, id string, confirmed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entries, err := e.entries(section)
	if err != nil {
		return err
	}
	index := -1
	for i, entry := range entries {
		if entry.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNoSuchRecord
	}
	if !confirmed {
		return ErrConfirmRequired
	}

	e.lists[section] = append(entries[:index], entries[index+1:]...)
	if e.editing[section] == id {
		delete(e.editing, section)
	}
	e.dirty = true
	e.notify(Change{Kind: ChangeRecord, Section: section})
	return nil
}

// Move shifts a record to a new position, sliding everything between.
// It works regardless of edit mode and is local until the next SaveAll.
func (e *Editor) Move(section, id string, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entries, err := e.entries(section)
	if err != nil {
		return err
	}
	from := -1
	for i, entry := range entries {
		if entry.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return ErrNoSuchRecord
	}
	if to < 0 || to >= len(entries) {
		return fmt.Errorf("position %d out of range", to)
	}
	if from == to {
		return nil
	}

	entry := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	entries = append(entries[:to], append([]*Entry{entry}, entries[to:]...)...)
	e.lists[section] = entries
	e.dirty = true
	e.notify(Change{Kind: ChangeOrder, Section: section})
	return nil
}

// SaveAll writes the whole in-memory document back in one operation. On
// success the editor is clean; on failure local state is untouched and
// the user can retry.
func (e *Editor) SaveAll(ctx context.Context) error {
	e.mu.Lock()
	doc := e.document()
	e.mu.Unlock()

	if err := e.backend.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	e.mu.Lock()
	e.dirty = false
	e.notify(Change{Kind: ChangeSaved})
	e.mu.Unlock()
	return nil
}

// Document returns the current in-memory document, local edits included.
func (e *Editor) Document() portfolio.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.document()
}

func (e *Editor) document() portfolio.Document {
	doc := make(portfolio.Document, len(portfolio.Sections))
	for _, section := range portfolio.Sections {
		if section.Kind == portfolio.Singleton {
			doc[section.Name] = e.singletons[section.Name]
			continue
		}
		records := make([]portfolio.Record, 0, len(e.lists[section.Name]))
		for _, entry := range e.lists[section.Name] {
			records = append(records, entry.Fields)
		}
		doc[section.Name] = records
	}
	return doc
}

func (e *Editor) entries(section string) ([]*Entry, error) {
	meta, ok := portfolio.SectionByName(section)
	if !ok {
		return nil, ErrUnknownSection
	}
	if meta.Kind != portfolio.List {
		return nil, ErrNotListSection
	}
	return e.lists[section], nil
}

func (e *Editor) find(section, id string) (*Entry, error) {
	entries, err := e.entries(section)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, ErrNoSuchRecord
}
