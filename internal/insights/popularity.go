package insights

import (
	"math"
	"math/rand/v2"
	"sort"

	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/models"
)

// Thresholds keeping the price-vs-popularity payload small.
const (
	MaxScatterPoints   = 8_000
	TooltipMinimalOver = 2_000
	TooltipNoneOver    = 10_000
	HeatmapOver        = 30_000
	InteractiveUpTo    = 3_000
	HeatmapBins        = 40
	sampleSeed         = 42
)

// ScatterPoint is one game on the price-vs-popularity chart.
type ScatterPoint struct {
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Owners          int64    `json:"owners_mid"`
	Genre           string   `json:"primary_genre"`
	Publisher       string   `json:"publisher,omitempty"`
	UserScore       *float64 `json:"user_score,omitempty"`
	Recommendations int64    `json:"recommendations"`
}

// HeatCell is one bin of the heatmap used instead of a scatter for very large selections.
type HeatCell struct {
	PriceLo  float64 `json:"price_lo"`
	PriceHi  float64 `json:"price_hi"`
	OwnersLo float64 `json:"owners_lo"`
	OwnersHi float64 `json:"owners_hi"`
	Count    int     `json:"count"`
}

// Scatter is the price-vs-popularity payload. Mode is "scatter" or "heatmap".
type Scatter struct {
	Mode        string         `json:"mode"`
	Total       int            `json:"total"`
	Points      []ScatterPoint `json:"points,omitempty"`
	Cells       []HeatCell     `json:"cells,omitempty"`
	Sampled     bool           `json:"sampled"`
	Relaxed     bool           `json:"relaxed"`
	Tooltips    []string       `json:"tooltips"`
	Interactive bool           `json:"interactive"`
}

// plottable keeps rows with a known price and a positive owners midpoint.
func plottable(rows []models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, 0, len(rows))
	for _, g := range rows {
		if g.Price == nil || g.Owners == nil || g.Owners.Mid <= 0 {
			continue
		}
		out = append(out, g)
	}
	return out
}

// PriceVsOwners builds the scatter (or heatmap) for rows; relaxed marks rows that
// come from a relaxed filter. It returns nil when rows has nothing plottable.
func PriceVsOwners(t *dataset.Table, rows []models.GameRecord, relaxed bool) *Scatter {
	rows = plottable(rows)
	if len(rows) == 0 {
		return nil
	}
	s := &Scatter{Total: len(rows), Relaxed: relaxed, Tooltips: []string{}}

	if len(rows) > HeatmapOver {
		s.Mode = "heatmap"
		s.Cells = heatmap(rows, HeatmapBins)
		s.Tooltips = []string{"count"}
		return s
	}

	s.Mode = "scatter"
	if len(rows) > MaxScatterPoints {
		rows = sample(rows, MaxScatterPoints)
		s.Sampled = true
	}
	n := len(rows)
	switch {
	case n > TooltipNoneOver:
	case n > TooltipMinimalOver:
		s.Tooltips = tooltipFields(t, false)
	default:
		s.Tooltips = tooltipFields(t, true)
	}
	s.Interactive = n <= InteractiveUpTo

	s.Points = make([]ScatterPoint, n)
	for i, g := range rows {
		s.Points[i] = ScatterPoint{
			Name:            g.Name,
			Price:           *g.Price,
			Owners:          g.Owners.Mid,
			Genre:           g.PrimaryGenre,
			Publisher:       g.Publisher,
			UserScore:       g.UserScore,
			Recommendations: g.Recommendations,
		}
	}
	return s
}

func tooltipFields(t *dataset.Table, full bool) []string {
	out := []string{"name", "price", "owners_mid", "primary_genre"}
	if !full {
		return out
	}
	if t.Has(dataset.ColPublishers) {
		out = append(out, "publisher")
	}
	if t.Has(dataset.ColUserScore) {
		out = append(out, "user_score")
	}
	return out
}

// sample picks n rows with a fixed seed, preserving their original order.
func sample(rows []models.GameRecord, n int) []models.GameRecord {
	r := rand.New(rand.NewPCG(sampleSeed, sampleSeed))
	idx := r.Perm(len(rows))[:n]
	sort.Ints(idx)
	out := make([]models.GameRecord, n)
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

// heatmap counts rows in a bins×bins grid of equal-width price and owners intervals.
// Empty cells are omitted.
func heatmap(rows []models.GameRecord, bins int) []HeatCell {
	pLo, pHi := math.Inf(1), math.Inf(-1)
	oLo, oHi := math.Inf(1), math.Inf(-1)
	for _, g := range rows {
		p, o := *g.Price, float64(g.Owners.Mid)
		pLo, pHi = math.Min(pLo, p), math.Max(pHi, p)
		oLo, oHi = math.Min(oLo, o), math.Max(oHi, o)
	}
	pw := binWidth(pLo, pHi, bins)
	ow := binWidth(oLo, oHi, bins)

	counts := map[[2]int]int{}
	for _, g := range rows {
		i := binIndex(*g.Price, pLo, pw, bins)
		j := binIndex(float64(g.Owners.Mid), oLo, ow, bins)
		counts[[2]int{i, j}]++
	}

	cells := make([]HeatCell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, HeatCell{
			PriceLo:  pLo + float64(k[0])*pw,
			PriceHi:  pLo + float64(k[0]+1)*pw,
			OwnersLo: oLo + float64(k[1])*ow,
			OwnersHi: oLo + float64(k[1]+1)*ow,
			Count:    n,
		})
	}
	sort.Slice(cells, func(a, b int) bool {
		if cells[a].PriceLo != cells[b].PriceLo {
			return cells[a].PriceLo < cells[b].PriceLo
		}
		return cells[a].OwnersLo < cells[b].OwnersLo
	})
	return cells
}

func binWidth(lo, hi float64, bins int) float64 {
	if hi <= lo {
		return 1
	}
	return (hi - lo) / float64(bins)
}

func binIndex(v, lo, width float64, bins int) int {
	i := int((v - lo) / width)
	return min(max(i, 0), bins-1)
}
