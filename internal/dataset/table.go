package dataset

import (
	"slices"
	"sort"
	"time"

	"gamepulse/dashboard/internal/models"
)

// Table is the normalized dataset. It is never modified after Finalize returns;
// every accessor hands out copies.
type Table struct {
	records []models.GameRecord
	columns map[string]bool
	genres  []models.GenreCount

	Source   string
	LoadedAt time.Time
	Notices  []string
	// Version is the Provider load that produced the table; 0 outside a Provider.
	Version uint64
}

// NewTable wraps already normalized records, e.g. in tests or from a snapshot.
func NewTable(records []models.GameRecord, cols []string, opts FinalizeOptions) *Table {
	return Finalize(records, toSet(cols), "memory", opts)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.records) == 0 }

// Records returns a copy of the rows.
func (t *Table) Records() []models.GameRecord { return slices.Clone(t.records) }

// Has reports whether the source carried the column.
func (t *Table) Has(col string) bool { return t.columns[col] }

// Columns lists the columns the source carried, sorted.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Genres returns the genre dimension, most frequent first.
func (t *Table) Genres() []models.GenreCount { return slices.Clone(t.genres) }

// YearSpan returns the smallest and largest release year. ok is false when no row has a year.
func (t *Table) YearSpan() (lo, hi int, ok bool) { return yearSpan(t.records) }

// PriceSpan returns the smallest and largest known price. ok is false when no row has a price.
func (t *Table) PriceSpan() (lo, hi float64, ok bool) {
	for _, g := range t.records {
		if g.Price == nil {
			continue
		}
		p := *g.Price
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo = min(lo, p)
		hi = max(hi, p)
	}
	return lo, hi, ok
}

// Platforms lists the platform columns present in the source.
func (t *Table) Platforms() []string {
	var out []string
	for _, p := range models.Platforms {
		if t.columns[p] {
			out = append(out, p)
		}
	}
	return out
}
