package render

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode"

	"portfolio/api/internal/portfolio"
)

//go:embed templates/page.html
var templateFS embed.FS

var sectionTitles = map[string]string{
	"about":          "About",
	"experience":     "Experience",
	"research":       "Research",
	"skills":         "Skills",
	"certifications": "Certifications",
	"projects":       "Projects",
	"education":      "Education",
	"publications":   "Publications",
	"patents":        "Patents",
	"honors":         "Honors & Awards",
	"service":        "Professional Service",
	"affiliations":   "Affiliations",
	"languages":      "Languages",
	"contact":        "Contact",
}

// PageData is the view model behind the public profile page.
type PageData struct {
	Name        string
	Title       string
	Description string
	Keywords    []string
	Contact     portfolio.Record
	Sections    []SectionView
}

type SectionView struct {
	Name  string
	Title string
	Items []ItemView
}

// ItemView is one record flattened for display: a heading line, an
// optional origin line, a date or period, free text, bullet points, and
// the rendered rich-content detail.
type ItemView struct {
	Heading    string
	Subheading string
	Meta       string
	Body       template.HTML
	Bullets    []string
	Link       string
	LinkText   string
	DetailHTML template.HTML
}

type Renderer struct {
	rw   AssetURLRewriter
	tmpl *template.Template
}

func NewRenderer(rw AssetURLRewriter) (*Renderer, error) {
	content, err := templateFS.ReadFile("templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("read page template: %w", err)
	}
	tmpl, err := template.New("page").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{rw: rw, tmpl: tmpl}, nil
}

// PageHTML renders the whole document as a standalone HTML page. Sections
// with no records are omitted rather than rendered empty.
func (r *Renderer) PageHTML(doc portfolio.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.buildData(doc)); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) buildData(doc portfolio.Document) PageData {
	about := doc.SingletonRecord("about")
	data := PageData{
		Name:        about.String("name"),
		Title:       about.String("title"),
		Description: about.String("description"),
		Keywords:    about.StringList("keywords"),
		Contact:     doc.SingletonRecord("contact"),
	}

	for _, section := range portfolio.Sections {
		if section.Kind != portfolio.List {
			continue
		}
		records := doc.ListRecords(section.Name)
		if len(records) == 0 {
			continue
		}
		view := SectionView{
			Name:  section.Name,
			Title: sectionTitles[section.Name],
		}
		for _, record := range records {
			view.Items = append(view.Items, r.buildItem(section, record))
		}
		data.Sections = append(data.Sections, view)
	}
	return data
}

func (r *Renderer) buildItem(section portfolio.Section, record portfolio.Record) ItemView {
	item := ItemView{
		Body:     textHTML(record.String("description")),
		Link:     record.String("link"),
		LinkText: record.String("linkText"),
	}

	for _, field := range section.Fields {
		switch field.Type {
		case portfolio.FieldString:
			switch field.Name {
			case "description", "link", "linkText":
				// already placed
			case "startDate", "endDate", "date", "period", "year":
				// handled below
			default:
				value := record.String(field.Name)
				if value == "" {
					break
				}
				if item.Heading == "" {
					item.Heading = value
				} else if item.Subheading == "" {
					item.Subheading = value
				} else {
					item.Subheading += " · " + value
				}
			}
		case portfolio.FieldStringList:
			item.Bullets = append(item.Bullets, record.StringList(field.Name)...)
		case portfolio.FieldRich:
			item.DetailHTML = template.HTML(RichToHTML(record[field.Name], r.rw))
		}
	}

	item.Meta = recordMeta(record)
	if item.Link != "" && item.LinkText == "" {
		item.LinkText = item.Link
	}
	return item
}

// textHTML escapes plain description text and keeps its line breaks.
func textHTML(text string) template.HTML {
	if text == "" {
		return ""
	}
	escaped := html.EscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// recordMeta builds the date line: a start/end range when present,
// otherwise whichever single date-like field the record carries.
func recordMeta(record portfolio.Record) string {
	start := record.String("startDate")
	end := record.String("endDate")
	if start != "" || end != "" {
		if end == "" {
			end = "Present"
		}
		if start == "" {
			return end
		}
		return start + " – " + end
	}
	for _, name := range []string{"date", "period", "year"} {
		if value := record.String(name); value != "" {
			return value
		}
	}
	return ""
}

// HumanizeField turns a camelCase field name into a display label, for
// the admin list views ("startDate" becomes "Start Date").
func HumanizeField(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
