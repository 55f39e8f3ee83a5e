package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"slices"

	"gamepulse/dashboard/internal/filters"
	"gamepulse/dashboard/internal/insights"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Page is everything the dashboard template needs.
type Page struct {
	Title     string
	Active    insights.Section
	Sections  []insights.SectionInfo
	Source    string
	Rows      int
	Notices   []string
	Options   filters.Options
	Criteria  filters.Criteria
	Result    *insights.Result
	Charts    []Chart
	EchartsJS string
	// Query is the raw query string, carried over to the section links.
	Query template.URL
}

// NewPage assembles a page for one section result.
func NewPage(res *insights.Result, opts filters.Options, c filters.Criteria, source string, rows int, notices []string, query url.Values) *Page {
	return &Page{
		Title:     res.Title,
		Active:    res.Section,
		Sections:  insights.Sections,
		Source:    source,
		Rows:      rows,
		Notices:   notices,
		Options:   opts,
		Criteria:  c,
		Result:    res,
		Charts:    Charts(res),
		EchartsJS: EchartsJS,
		Query:     template.URL(query.Encode()),
	}
}

// Selected reports whether value is chosen in the list criterion named field.
func (p *Page) Selected(field, value string) bool {
	switch field {
	case "platforms":
		return slices.Contains(p.Criteria.Platforms, value)
	case "genres":
		return slices.Contains(p.Criteria.Genres, value)
	}
	return false
}

// Write renders the page as HTML.
func (p *Page) Write(w io.Writer) error {
	if err := pageTpl.Execute(w, p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
