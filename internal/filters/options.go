package filters

import (
	"fmt"
	"strings"

	"gamepulse/dashboard/internal/dataset"
)

// MaxGenreChoices caps the genre picker to the most frequent genres.
const MaxGenreChoices = 30

// YearOption describes the release-year slider.
type YearOption struct {
	Enabled bool `json:"enabled"`
	// Min is the lowest selectable year: the dataset's first year or the default cutoff, whichever is later.
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	DefaultLo int    `json:"default_lo"`
	DefaultHi int    `json:"default_hi"`
	Caption   string `json:"caption"`
}

// PriceOption describes the price slider.
type PriceOption struct {
	Enabled bool    `json:"enabled"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Caption string  `json:"caption,omitempty"`
}

// Options describes every filter widget for a given table.
type Options struct {
	Years      *YearOption `json:"years,omitempty"`
	Price      PriceOption `json:"price"`
	Platforms  []string    `json:"platforms"`
	Genres     []string    `json:"genres"`
	Acceptance FloatRange  `json:"acceptance"`
	UserScore  FloatRange  `json:"user_score"`
}

// BuildOptions derives the widget bounds from the table. yearsBackDefault limits the
// default (and lowest selectable) year to the last N years.
func BuildOptions(t *dataset.Table, yearsBackDefault int) Options {
	o := Options{
		Platforms:  t.Platforms(),
		Acceptance: FloatRange{Lo: 0, Hi: 100},
		UserScore:  FloatRange{Lo: 0, Hi: 10},
	}
	if o.Platforms == nil {
		o.Platforms = []string{}
	}

	if lo, hi, ok := t.YearSpan(); ok && t.Has(dataset.ColReleaseYear) {
		if lo < hi {
			from := lo
			if yearsBackDefault > 0 {
				from = max(lo, hi-yearsBackDefault+1)
			}
			o.Years = &YearOption{
				Enabled:   true,
				Min:       from,
				Max:       hi,
				DefaultLo: from,
				DefaultHi: hi,
				Caption:   fmt.Sprintf("Dashboard limited to the last %d years: %d–%d.", yearsBackDefault, from, hi),
			}
		} else {
			o.Years = &YearOption{
				Min: lo, Max: hi, DefaultLo: lo, DefaultHi: hi,
				Caption: fmt.Sprintf("Single year in the dataset: %d. Year filter disabled.", lo),
			}
		}
	}

	pMin, pMax, ok := t.PriceSpan()
	if !ok {
		pMin, pMax = 0, 0
	}
	o.Price = PriceOption{Enabled: pMin < pMax, Min: pMin, Max: pMax}
	if !o.Price.Enabled {
		o.Price.Caption = fmt.Sprintf("Single price in the dataset: $%.2f. Price filter disabled.", pMin)
	}

	genres := t.Genres()
	if len(genres) > MaxGenreChoices {
		genres = genres[:MaxGenreChoices]
	}
	o.Genres = make([]string, len(genres))
	for i, g := range genres {
		o.Genres[i] = g.Genre
	}
	return o
}

// Defaults returns the criteria the dashboard starts with.
func (o Options) Defaults() Criteria {
	c := Criteria{Price: &FloatRange{Lo: o.Price.Min, Hi: o.Price.Max}}
	if o.Years != nil {
		c.Years = &IntRange{Lo: o.Years.DefaultLo, Hi: o.Years.DefaultHi}
	}
	return c
}

// Query is the query-string form of the criteria, bound with gin.
// List parameters accept both repeated keys and comma separated values.
type Query struct {
	YearMin       *int     `form:"year_min" json:"year_min"`
	YearMax       *int     `form:"year_max" json:"year_max"`
	PriceMin      *float64 `form:"price_min" json:"price_min"`
	PriceMax      *float64 `form:"price_max" json:"price_max"`
	Platforms     []string `form:"platforms" json:"platforms"`
	Genres        []string `form:"genres" json:"genres"`
	MinAcceptance float64  `form:"min_acceptance" json:"min_acceptance" binding:"min=0,max=100"`
	MinUserScore  float64  `form:"min_user_score" json:"min_user_score" binding:"min=0,max=10"`
}

// Criteria resolves the query against the widget options: missing bounds take the
// defaults and year bounds are clamped to the selectable range.
func (q Query) Criteria(o Options) Criteria {
	c := o.Defaults()

	if c.Years != nil && o.Years.Enabled {
		lo, hi := c.Years.Lo, c.Years.Hi
		if q.YearMin != nil {
			lo = *q.YearMin
		}
		if q.YearMax != nil {
			hi = *q.YearMax
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		c.Years = &IntRange{Lo: clamp(lo, o.Years.Min, o.Years.Max), Hi: clamp(hi, o.Years.Min, o.Years.Max)}
	}

	if o.Price.Enabled {
		lo, hi := c.Price.Lo, c.Price.Hi
		if q.PriceMin != nil {
			lo = *q.PriceMin
		}
		if q.PriceMax != nil {
			hi = *q.PriceMax
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		c.Price = &FloatRange{Lo: lo, Hi: hi}
	}

	c.Platforms = splitValues(q.Platforms)
	c.Genres = splitValues(q.Genres)
	c.MinAcceptance = q.MinAcceptance
	c.MinUserScore = q.MinUserScore
	return c
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func splitValues(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
