// Package insights computes the KPIs and chart data behind each dashboard section.
package insights

import (
	"errors"
	"fmt"
	"log/slog"

	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/filters"
)

// Section identifies one page of the dashboard.
type Section string

const (
	SectionOverview          Section = "overview"
	SectionTopPublishers     Section = "top-publishers"
	SectionPriceVsPopularity Section = "price-vs-popularity"
	SectionPriceByGenre      Section = "price-by-genre"
	SectionGenreTrends       Section = "genre-trends"
)

// ErrUnknownSection is returned for a section name that is not registered.
var ErrUnknownSection = errors.New("unknown section")

// SectionInfo is the navigation entry of a section.
type SectionInfo struct {
	ID    Section `json:"id"`
	Title string  `json:"title"`
}

// Sections lists the dashboard sections in navigation order.
var Sections = []SectionInfo{
	{SectionOverview, "Overview"},
	{SectionTopPublishers, "Top publishers"},
	{SectionPriceVsPopularity, "Price vs popularity"},
	{SectionPriceByGenre, "Price by genre"},
	{SectionGenreTrends, "Emerging and declining genres"},
}

// ParseSection resolves a section id; an empty id means the overview.
func ParseSection(id string) (SectionInfo, error) {
	if id == "" {
		return Sections[0], nil
	}
	for _, s := range Sections {
		if string(s.ID) == id {
			return s, nil
		}
	}
	return SectionInfo{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
}

// Result is everything needed to draw one section. Only the chart fields of the
// requested section are set.
type Result struct {
	Section        Section           `json:"section"`
	Title          string            `json:"title"`
	KPIs           KPIs              `json:"kpis"`
	ReleasesByYear []YearStat        `json:"releases_by_year,omitempty"`
	Popularity     *Scatter          `json:"price_vs_popularity,omitempty"`
	PriceBoxes     *PriceBoxes       `json:"price_by_genre,omitempty"`
	Publishers     []PublisherOwners `json:"top_publishers,omitempty"`
	Trends         *Trends           `json:"genre_trends,omitempty"`
	// Notices explain why a chart is missing or what was changed to draw it.
	Notices  []string `json:"notices"`
	Warnings []string `json:"warnings"`
}

func (r *Result) notice(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

// chart runs draw and turns a panic into a warning so the rest of the section survives.
func (r *Result) chart(name string, draw func()) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("chart failed", "section", r.Section, "chart", name, "panic", p)
			r.Warnings = append(r.Warnings, fmt.Sprintf("Could not render %s: %v", name, p))
		}
	}()
	draw()
}

// Build filters t with c and computes the data of section id.
func Build(t *dataset.Table, c filters.Criteria, id string) (*Result, error) {
	info, err := ParseSection(id)
	if err != nil {
		return nil, err
	}
	rows := filters.Apply(t, c)
	r := &Result{Section: info.ID, Title: info.Title, Notices: []string{}, Warnings: []string{}}
	r.chart("KPIs", func() { r.KPIs = ComputeKPIs(rows) })

	switch info.ID {
	case SectionOverview:
		r.chart("releases by year", func() {
			if len(rows) == 0 || !t.Has(dataset.ColReleaseYear) {
				r.notice("Not enough data to show releases per year.")
				return
			}
			r.ReleasesByYear = ReleasesByYear(rows)
		})

	case SectionTopPublishers:
		r.chart("top publishers", func() {
			if len(rows) == 0 || !t.Has(dataset.ColPublishers) {
				r.notice("No publisher data for the current selection.")
				return
			}
			r.Publishers = TopPublishersByOwners(rows, TopPublishers)
			if len(r.Publishers) == 0 {
				r.notice("No publisher data for the current selection.")
			}
		})

	case SectionPriceVsPopularity:
		r.chart("price vs popularity", func() {
			if !t.Has(dataset.ColPrice) || !t.Has(dataset.ColOwnersMid) {
				r.notice("Price or owners data is not available.")
				return
			}
			if s := PriceVsOwners(t, rows, false); s != nil {
				r.Popularity = s
				return
			}
			relaxed := filters.Apply(t, c.Relaxed())
			if s := PriceVsOwners(t, relaxed, true); s != nil {
				r.Popularity = s
				r.notice("No games matched the filters; showing all genres with no minimum score or acceptance.")
				return
			}
			r.notice("No games with both a price and an owners estimate.")
		})

	case SectionPriceByGenre:
		r.chart("price by genre", func() {
			if len(rows) == 0 || !t.Has(dataset.ColPrice) || !t.Has(dataset.ColPrimaryGenre) {
				r.notice("Not enough data to compare prices by genre.")
				return
			}
			boxes := PriceByGenre(rows)
			if len(boxes.Boxes) == 0 {
				r.notice("Not enough data to compare prices by genre.")
				return
			}
			r.PriceBoxes = &boxes
		})

	case SectionGenreTrends:
		r.chart("genre trends", func() {
			if !t.Has(dataset.ColReleaseYear) || !t.Has(dataset.ColGenres) {
				r.notice("Release years and genres are needed to compare genre trends.")
				return
			}
			r.Trends = GenreTrends(rows, DefaultTrendOptions)
			if r.Trends == nil {
				r.notice("At least two years of releases are needed to compare genre trends.")
			}
		})
	}
	return r, nil
}
