package portfolio

// Record is one structured entry within a section. Field values are strings,
// string lists, or raw rich-content trees as decoded from JSON.
type Record map[string]any

// Document is the full set of all sections. Singleton sections map to a
// Record, list sections to a []Record.
type Document map[string]any

// EmptyRecord returns a record with every schema field present: empty
// strings, empty string lists, nil rich content.
func EmptyRecord(section Section) Record {
	record := make(Record, len(section.Fields))
	for _, field := range section.Fields {
		switch field.Type {
		case FieldStringList:
			record[field.Name] = []string{}
		case FieldRich:
			record[field.Name] = nil
		default:
			record[field.Name] = ""
		}
	}
	return record
}

// DefaultDocument returns a complete document with all 14 section keys:
// empty record lists for list sections, all-empty records for singletons.
func DefaultDocument() Document {
	doc := make(Document, len(Sections))
	for _, section := range Sections {
		if section.Kind == Singleton {
			doc[section.Name] = EmptyRecord(section)
		} else {
			doc[section.Name] = []Record{}
		}
	}
	return doc
}

// Normalize coerces an arbitrary decoded document into the canonical shape:
// every known section present, list sections as non-nil []Record, singleton
// sections as records exposing every schema field. Unknown sections are
// dropped; malformed section values degrade to their defaults.
func Normalize(raw Document) Document {
	doc := make(Document, len(Sections))
	for _, section := range Sections {
		value, ok := raw[section.Name]
		if !ok || value == nil {
			if section.Kind == Singleton {
				doc[section.Name] = EmptyRecord(section)
			} else {
				doc[section.Name] = []Record{}
			}
			continue
		}
		if section.Kind == Singleton {
			doc[section.Name] = normalizeRecord(section, value)
		} else {
			doc[section.Name] = normalizeRecords(section, value)
		}
	}
	return doc
}

func normalizeRecord(section Section, value any) Record {
	record := asRecord(value)
	if record == nil {
		return EmptyRecord(section)
	}
	for _, field := range section.Fields {
		current, ok := record[field.Name]
		switch field.Type {
		case FieldStringList:
			record[field.Name] = asStringList(current)
		case FieldRich:
			// Rich content stays as decoded; absent is nil.
		default:
			if !ok || current == nil {
				record[field.Name] = ""
			} else if _, isString := current.(string); !isString {
				record[field.Name] = ""
			}
		}
	}
	return record
}

func normalizeRecords(section Section, value any) []Record {
	var items []any
	switch typed := value.(type) {
	case []any:
		items = typed
	case []Record:
		items = make([]any, 0, len(typed))
		for _, record := range typed {
			items = append(items, record)
		}
	case []map[string]any:
		items = make([]any, 0, len(typed))
		for _, record := range typed {
			items = append(items, record)
		}
	default:
		return []Record{}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if record := asRecord(item); record != nil {
			records = append(records, normalizeRecord(section, record))
		}
	}
	return records
}

func asRecord(value any) Record {
	switch typed := value.(type) {
	case Record:
		return typed
	case map[string]any:
		return Record(typed)
	default:
		return nil
	}
}

func asStringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// String returns the named field as a string, empty when absent or not
// string-typed.
func (r Record) String(field string) string {
	if r == nil {
		return ""
	}
	value, _ := r[field].(string)
	return value
}

// StringList returns the named field as a string slice.
func (r Record) StringList(field string) []string {
	if r == nil {
		return nil
	}
	return asStringList(r[field])
}

// SingletonRecord returns the named singleton section from the document.
func (d Document) SingletonRecord(name string) Record {
	if record := asRecord(d[name]); record != nil {
		return record
	}
	if section, ok := SectionByName(name); ok {
		return EmptyRecord(section)
	}
	return Record{}
}

// ListRecords returns the named list section from the document.
func (d Document) ListRecords(name string) []Record {
	switch typed := d[name].(type) {
	case []Record:
		return typed
	default:
		if section, ok := SectionByName(name); ok {
			return normalizeRecords(section, d[name])
		}
		return nil
	}
}
