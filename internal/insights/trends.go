package insights

import (
	"sort"

	"gamepulse/dashboard/internal/models"
)

// TrendOptions tune the genre-trends comparison.
type TrendOptions struct {
	// Window is the number of years in each of the two compared periods.
	Window int
	// MinReleases is the smallest number of releases, over both periods, a genre
	// needs to be ranked.
	MinReleases int
	// Limit caps each of the rising and falling lists.
	Limit int
}

// DefaultTrendOptions compares the last three years with the three before.
var DefaultTrendOptions = TrendOptions{Window: 3, MinReleases: 5, Limit: 10}

// GenreTrend is the change in a genre's share of releases between two periods.
// Shares are percentages; Delta is in percentage points.
type GenreTrend struct {
	Genre         string  `json:"genre"`
	RecentCount   int     `json:"recent_n"`
	PreviousCount int     `json:"previous_n"`
	RecentShare   float64 `json:"recent_share"`
	PreviousShare float64 `json:"previous_share"`
	Delta         float64 `json:"delta_pp"`
}

// Trends lists the genres gaining and losing share of releases.
type Trends struct {
	RecentFrom   int          `json:"recent_from"`
	RecentTo     int          `json:"recent_to"`
	PreviousFrom int          `json:"previous_from"`
	PreviousTo   int          `json:"previous_to"`
	Rising       []GenreTrend `json:"rising"`
	Falling      []GenreTrend `json:"falling"`
}

// GenreTrends compares how often each genre tag appears among releases of the most
// recent window with the window right before it. The window shrinks when the rows
// span fewer than two full windows. It returns nil when rows cover fewer than two years.
func GenreTrends(rows []models.GameRecord, opts TrendOptions) *Trends {
	lo, hi, ok := yearBounds(rows)
	if !ok || hi == lo {
		return nil
	}
	w := max(1, min(opts.Window, (hi-lo+1)/2))
	tr := &Trends{
		RecentFrom:   hi - w + 1,
		RecentTo:     hi,
		PreviousFrom: hi - 2*w + 1,
		PreviousTo:   hi - w,
	}

	var recentTotal, previousTotal int
	recent, previous := map[string]int{}, map[string]int{}
	for _, g := range rows {
		if g.ReleaseYear == nil {
			continue
		}
		var bucket map[string]int
		switch y := *g.ReleaseYear; {
		case y >= tr.RecentFrom && y <= tr.RecentTo:
			bucket = recent
			recentTotal++
		case y >= tr.PreviousFrom && y <= tr.PreviousTo:
			bucket = previous
			previousTotal++
		default:
			continue
		}
		for _, genre := range uniqueGenres(g.Genres) {
			bucket[genre]++
		}
	}
	if recentTotal == 0 || previousTotal == 0 {
		return nil
	}

	seen := map[string]bool{}
	var all []GenreTrend
	collect := func(genre string) {
		if seen[genre] {
			return
		}
		seen[genre] = true
		r, p := recent[genre], previous[genre]
		if r+p < opts.MinReleases {
			return
		}
		rs := float64(r) / float64(recentTotal) * 100
		ps := float64(p) / float64(previousTotal) * 100
		all = append(all, GenreTrend{
			Genre:         genre,
			RecentCount:   r,
			PreviousCount: p,
			RecentShare:   round2(rs),
			PreviousShare: round2(ps),
			Delta:         round2(rs - ps),
		})
	}
	for genre := range recent {
		collect(genre)
	}
	for genre := range previous {
		collect(genre)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Delta != all[j].Delta {
			return all[i].Delta > all[j].Delta
		}
		return all[i].Genre < all[j].Genre
	})
	tr.Rising = []GenreTrend{}
	tr.Falling = []GenreTrend{}
	for _, t := range all {
		if t.Delta > 0 && len(tr.Rising) < opts.Limit {
			tr.Rising = append(tr.Rising, t)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Delta < all[j].Delta })
	for _, t := range all {
		if t.Delta < 0 && len(tr.Falling) < opts.Limit {
			tr.Falling = append(tr.Falling, t)
		}
	}
	return tr
}

func yearBounds(rows []models.GameRecord) (lo, hi int, ok bool) {
	for _, g := range rows {
		if g.ReleaseYear == nil {
			continue
		}
		y := *g.ReleaseYear
		if !ok {
			lo, hi, ok = y, y, true
			continue
		}
		lo, hi = min(lo, y), max(hi, y)
	}
	return lo, hi, ok
}

func uniqueGenres(genres []string) []string {
	if len(genres) < 2 {
		return genres
	}
	seen := make(map[string]bool, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}
