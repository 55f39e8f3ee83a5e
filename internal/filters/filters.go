// Package filters narrows the games table according to the dashboard's sidebar selections.
package filters

import (
	"slices"
	"strings"

	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/models"
)

// IntRange is an inclusive range of integers.
type IntRange struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// FloatRange is an inclusive range of decimals.
type FloatRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Criteria is the set of user selections. A nil range or an empty list means
// "no constraint" for that dimension; dimensions are combined with AND.
type Criteria struct {
	Years     *IntRange   `json:"years,omitempty"`
	Price     *FloatRange `json:"price,omitempty"`
	Platforms []string    `json:"platforms,omitempty"`
	Genres    []string    `json:"genres,omitempty"`
	// MinAcceptance is a percentage in 0..100.
	MinAcceptance float64 `json:"min_acceptance"`
	// MinUserScore is on the 0..10 scale.
	MinUserScore float64 `json:"min_user_score"`
}

// Relaxed drops the constraints that most often empty a chart: score thresholds and genres.
func (c Criteria) Relaxed() Criteria {
	c.MinAcceptance = 0
	c.MinUserScore = 0
	c.Genres = nil
	return c
}

// Apply returns the rows of t matching every constraint. The table is not modified.
func Apply(t *dataset.Table, c Criteria) []models.GameRecord {
	return Filter(t.Records(), t, c)
}

// Filter is Apply over an explicit row set; t only tells which columns exist.
//
// Rows without a release year count as year 0 and so fail any year range. Rows
// without a price always pass the price range. The platform constraint keeps a row
// when it supports any of the selected platforms that exist in the table.
func Filter(rows []models.GameRecord, t *dataset.Table, c Criteria) []models.GameRecord {
	years := c.Years
	if !t.Has(dataset.ColReleaseYear) {
		years = nil
	}
	price := c.Price
	if !t.Has(dataset.ColPrice) {
		price = nil
	}
	var platforms []string
	for _, p := range c.Platforms {
		if t.Has(p) {
			platforms = append(platforms, p)
		}
	}
	var genres map[string]bool
	if len(c.Genres) > 0 && t.Has(dataset.ColPrimaryGenre) {
		genres = make(map[string]bool, len(c.Genres))
		for _, g := range c.Genres {
			genres[strings.ToLower(g)] = true
		}
	}

	out := make([]models.GameRecord, 0, len(rows))
	for _, g := range rows {
		if years != nil {
			y := 0
			if g.ReleaseYear != nil {
				y = *g.ReleaseYear
			}
			if y < years.Lo || y > years.Hi {
				continue
			}
		}
		if price != nil && g.Price != nil {
			if *g.Price < price.Lo || *g.Price > price.Hi {
				continue
			}
		}
		if len(platforms) > 0 && !slices.ContainsFunc(platforms, g.Supports) {
			continue
		}
		if genres != nil && !genres[strings.ToLower(g.PrimaryGenre)] {
			continue
		}
		if c.MinAcceptance > 0 && valueOr(g.Acceptance, 0) < c.MinAcceptance {
			continue
		}
		if c.MinUserScore > 0 && valueOr(g.UserScore, 0) < c.MinUserScore {
			continue
		}
		out = append(out, g)
	}
	return out
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
