// Package portfolio defines the canonical portfolio document model: the
// fixed set of named sections, their record schemas, and the normalization
// rules that keep every loaded document complete.
package portfolio

// Kind distinguishes singleton sections from ordered record lists.
type Kind int

const (
	Singleton Kind = iota
	List
)

// FieldType describes how a record field is stored and rendered.
type FieldType int

const (
	FieldString FieldType = iota
	FieldStringList
	FieldRich
)

type Field struct {
	Name string
	Type FieldType
}

// StrapiBinding maps a section onto the headless-CMS read API.
type StrapiBinding struct {
	Endpoint  string
	Populate  bool
	DateField string
}

// Section describes one named slot in the portfolio document.
type Section struct {
	Name   string
	Kind   Kind
	Fields []Field

	// DateField, when set, is the record field used for descending
	// chronological sort at read time. Persisted order is never touched.
	DateField string

	Strapi StrapiBinding
}

func strFields(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Type: FieldString})
	}
	return fields
}

func withFields(base []Field, extra ...Field) []Field {
	return append(base, extra...)
}

// Sections is the registry of all 14 known sections, in the order the
// public page presents them.
var Sections = []Section{
	{
		Name: "about",
		Kind: Singleton,
		Fields: withFields(strFields("name", "title", "description"),
			Field{Name: "keywords", Type: FieldStringList}),
		Strapi: StrapiBinding{Endpoint: "about"},
	},
	{
		Name:   "experience",
		Kind:   List,
		Fields: withFields(strFields("title", "company", "startDate", "endDate", "location", "description"),
			Field{Name: "highlights", Type: FieldStringList},
			Field{Name: "detailedContent", Type: FieldRich}),
		DateField: "startDate",
		Strapi:    StrapiBinding{Endpoint: "experiences", Populate: true, DateField: "startDate"},
	},
	{
		Name:   "research",
		Kind:   List,
		Fields: withFields(strFields("area", "institution", "period", "description"),
			Field{Name: "detailedContent", Type: FieldRich}),
		DateField: "period",
		Strapi:    StrapiBinding{Endpoint: "researches", Populate: true, DateField: "period"},
	},
	{
		Name: "skills",
		Kind: List,
		Fields: withFields(strFields("category"),
			Field{Name: "skills", Type: FieldStringList}),
		Strapi: StrapiBinding{Endpoint: "skills", Populate: true},
	},
	{
		Name:      "certifications",
		Kind:      List,
		Fields:    strFields("name", "issuer", "date", "credentialId"),
		DateField: "date",
		Strapi:    StrapiBinding{Endpoint: "certifications", Populate: true, DateField: "date"},
	},
	{
		Name: "projects",
		Kind: List,
		Fields: withFields(strFields("name", "date", "description", "link", "linkText"),
			Field{Name: "technologies", Type: FieldStringList},
			Field{Name: "detailedContent", Type: FieldRich}),
		DateField: "date",
		Strapi:    StrapiBinding{Endpoint: "projects", Populate: true, DateField: "date"},
	},
	{
		Name:   "education",
		Kind:   List,
		Fields: strFields("degree", "institution", "startDate", "endDate", "gpa", "honors"),
		Strapi: StrapiBinding{Endpoint: "educations", Populate: true},
	},
	{
		Name: "publications",
		Kind: List,
		Fields: withFields(strFields("title", "authors", "venue", "year", "link"),
			Field{Name: "detailedContent", Type: FieldRich}),
		DateField: "year",
		Strapi:    StrapiBinding{Endpoint: "publications", Populate: true, DateField: "year"},
	},
	{
		Name:      "patents",
		Kind:      List,
		Fields:    strFields("title", "number", "status", "date"),
		DateField: "date",
		Strapi:    StrapiBinding{Endpoint: "patents", Populate: true, DateField: "filingDate"},
	},
	{
		Name:      "honors",
		Kind:      List,
		Fields:    strFields("title", "issuer", "date", "description"),
		DateField: "date",
		Strapi:    StrapiBinding{Endpoint: "honors", Populate: true, DateField: "date"},
	},
	{
		Name:      "service",
		Kind:      List,
		Fields:    strFields("organization", "role", "period", "description"),
		DateField: "period",
		Strapi:    StrapiBinding{Endpoint: "services", Populate: true, DateField: "period"},
	},
	{
		Name:      "affiliations",
		Kind:      List,
		Fields:    strFields("name", "role", "period"),
		DateField: "period",
		Strapi:    StrapiBinding{Endpoint: "affiliations", Populate: true, DateField: "period"},
	},
	{
		Name:   "languages",
		Kind:   List,
		Fields: strFields("name", "proficiency"),
		Strapi: StrapiBinding{Endpoint: "languages", Populate: true},
	},
	{
		Name:   "contact",
		Kind:   Singleton,
		Fields: strFields("email", "phone", "linkedin", "github", "location"),
		Strapi: StrapiBinding{Endpoint: "contact"},
	},
}

// SectionByName returns the registry entry for name.
func SectionByName(name string) (Section, bool) {
	for _, section := range Sections {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}

// SectionNames returns all section names in presentation order.
func SectionNames() []string {
	names := make([]string, 0, len(Sections))
	for _, section := range Sections {
		names = append(names, section.Name)
	}
	return names
}
