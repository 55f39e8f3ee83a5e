package insights

import (
	"sort"

	"gamepulse/dashboard/internal/models"
)

// YearStat is one bar (and one line point) of the releases-by-year chart.
type YearStat struct {
	Year          int      `json:"year"`
	Releases      int      `json:"releases"`
	UserScoreMean *float64 `json:"user_score_mean"`
}

// ReleasesByYear counts releases and averages the user score per release year.
// Rows without a year are skipped.
func ReleasesByYear(rows []models.GameRecord) []YearStat {
	type acc struct {
		n      int
		scores []float64
	}
	byYear := map[int]*acc{}
	for _, g := range rows {
		if g.ReleaseYear == nil {
			continue
		}
		a := byYear[*g.ReleaseYear]
		if a == nil {
			a = &acc{}
			byYear[*g.ReleaseYear] = a
		}
		a.n++
		if g.UserScore != nil {
			a.scores = append(a.scores, *g.UserScore)
		}
	}

	out := make([]YearStat, 0, len(byYear))
	for y, a := range byYear {
		s := YearStat{Year: y, Releases: a.n}
		if m, ok := mean(a.scores); ok {
			m = round2(m)
			s.UserScoreMean = &m
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
