package insights

import "gamepulse/dashboard/internal/models"

// KPIs are the headline numbers shown above every section.
// Statistics without data are reported as 0.
type KPIs struct {
	Games          int     `json:"games"`
	FreeToPlayPct  float64 `json:"free_to_play_pct"`
	MedianPrice    float64 `json:"median_price"`
	MeanUserScore  float64 `json:"mean_user_score"`
	MedianOwners   float64 `json:"median_owners"`
	MeanAcceptance float64 `json:"mean_acceptance"`
}

// ComputeKPIs summarizes the filtered rows.
func ComputeKPIs(rows []models.GameRecord) KPIs {
	k := KPIs{Games: len(rows)}
	if len(rows) == 0 {
		return k
	}

	var (
		free               int
		prices, scores     []float64
		owners, acceptance []float64
	)
	for _, g := range rows {
		if g.IsFree {
			free++
		}
		if g.Price != nil {
			prices = append(prices, *g.Price)
		}
		if g.UserScore != nil {
			scores = append(scores, *g.UserScore)
		}
		if g.Owners != nil {
			owners = append(owners, float64(g.Owners.Mid))
		}
		if g.Acceptance != nil {
			acceptance = append(acceptance, *g.Acceptance)
		}
	}

	k.FreeToPlayPct = round2(float64(free) / float64(len(rows)) * 100)
	k.MedianPrice, _ = median(prices)
	k.MeanUserScore, _ = mean(scores)
	k.MedianOwners, _ = median(owners)
	k.MeanAcceptance, _ = mean(acceptance)
	return k
}
