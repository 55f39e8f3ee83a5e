package insights

import (
	"slices"
	"sort"

	"gamepulse/dashboard/internal/models"
)

const (
	BoxplotGenres        = 10
	PrecomputedBoxesOver = 50_000
	TopPublishers        = 15
)

// GenreBox is the five-number summary of prices within one primary genre.
type GenreBox struct {
	Genre  string  `json:"genre"`
	Count  int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// PriceBoxes is the price-by-genre payload. Precomputed tells the renderer the
// boxes were aggregated server-side because the rows of the kept genres were too
// many to ship.
type PriceBoxes struct {
	Boxes       []GenreBox `json:"boxes"`
	Precomputed bool       `json:"precomputed"`
}

// PriceByGenre summarizes prices of the most common primary genres, highest median first.
// Rows without a price are ignored.
func PriceByGenre(rows []models.GameRecord) PriceBoxes {
	byGenre := map[string][]float64{}
	for _, g := range rows {
		if g.Price == nil || g.PrimaryGenre == "" {
			continue
		}
		byGenre[g.PrimaryGenre] = append(byGenre[g.PrimaryGenre], *g.Price)
	}

	counts := make([]models.GenreCount, 0, len(byGenre))
	for genre, prices := range byGenre {
		counts = append(counts, models.GenreCount{Genre: genre, Count: len(prices)})
	}
	sortCounts(counts)
	if len(counts) > BoxplotGenres {
		counts = counts[:BoxplotGenres]
	}

	kept := 0
	for _, c := range counts {
		kept += c.Count
	}
	out := PriceBoxes{Boxes: make([]GenreBox, 0, len(counts)), Precomputed: kept > PrecomputedBoxesOver}
	for _, c := range counts {
		prices := slices.Clone(byGenre[c.Genre])
		slices.Sort(prices)
		out.Boxes = append(out.Boxes, GenreBox{
			Genre:  c.Genre,
			Count:  c.Count,
			Min:    prices[0],
			Q1:     round2(sortedQuantile(prices, 0.25)),
			Median: round2(sortedQuantile(prices, 0.5)),
			Q3:     round2(sortedQuantile(prices, 0.75)),
			Max:    prices[len(prices)-1],
		})
	}
	sort.SliceStable(out.Boxes, func(i, j int) bool { return out.Boxes[i].Median > out.Boxes[j].Median })
	return out
}

// PublisherOwners is the total estimated audience of one publisher.
type PublisherOwners struct {
	Publisher string `json:"publisher"`
	Owners    int64  `json:"owners"`
	Games     int    `json:"games"`
}

// TopPublishersByOwners sums owners midpoints per publisher and keeps the largest.
// Games without a publisher are skipped; unknown owners count as zero.
func TopPublishersByOwners(rows []models.GameRecord, limit int) []PublisherOwners {
	idx := map[string]int{}
	var out []PublisherOwners
	for _, g := range rows {
		if g.Publisher == "" {
			continue
		}
		i, ok := idx[g.Publisher]
		if !ok {
			i = len(out)
			idx[g.Publisher] = i
			out = append(out, PublisherOwners{Publisher: g.Publisher})
		}
		out[i].Games++
		if g.Owners != nil {
			out[i].Owners += g.Owners.Mid
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owners != out[j].Owners {
			return out[i].Owners > out[j].Owners
		}
		return out[i].Publisher < out[j].Publisher
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortCounts(c []models.GenreCount) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Count != c[j].Count {
			return c[i].Count > c[j].Count
		}
		return c[i].Genre < c[j].Genre
	})
}
