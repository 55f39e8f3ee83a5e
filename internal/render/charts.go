// Package render turns section results into ECharts snippets and the dashboard page.
package render

import (
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"slices"
	"strings"

	"gamepulse/dashboard/internal/insights"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

// EchartsJS is the ECharts runtime the snippets expect on the page.
const EchartsJS = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Chart is one rendered chart: a container element and the script that fills it.
type Chart struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Element template.HTML `json:"-"`
	Script  template.HTML `json:"-"`
	// Option is the ECharts option object, for clients drawing the chart themselves.
	Option string `json:"option"`
}

func newChart(id, title string, r render.Renderer) Chart {
	s := r.RenderSnippet()
	return Chart{
		ID:      id,
		Title:   title,
		Element: template.HTML(s.Element),
		Script:  template.HTML(s.Script),
		Option:  s.Option,
	}
}

func initOpts(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: "100%", Height: "440px"})
}

func title(text, sub string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: text, Subtitle: sub})
}

// Charts renders the charts of r. A chart that fails to render is skipped and
// reported in r.Warnings.
func Charts(r *insights.Result) []Chart {
	var out []Chart
	add := func(name string, build func() Chart) {
		defer func() {
			if p := recover(); p != nil {
				slog.Error("chart render failed", "section", r.Section, "chart", name, "panic", p)
				r.Warnings = append(r.Warnings, fmt.Sprintf("Could not render %s: %v", name, p))
			}
		}()
		out = append(out, build())
	}

	if len(r.ReleasesByYear) > 0 {
		add("releases by year", func() Chart { return releasesChart(r.ReleasesByYear) })
	}
	if len(r.Publishers) > 0 {
		add("top publishers", func() Chart { return publishersChart(r.Publishers) })
	}
	if s := r.Popularity; s != nil {
		if s.Mode == "heatmap" {
			add("price vs popularity", func() Chart { return popularityHeatmap(s) })
		} else {
			add("price vs popularity", func() Chart { return popularityScatter(s) })
		}
	}
	if r.PriceBoxes != nil && len(r.PriceBoxes.Boxes) > 0 {
		add("price by genre", func() Chart { return priceBoxChart(r.PriceBoxes) })
	}
	if t := r.Trends; t != nil {
		if len(t.Rising) > 0 {
			add("emerging genres", func() Chart {
				return trendChart("trend-rising", "Emerging genres", t, t.Rising, "#2f9e44")
			})
		}
		if len(t.Falling) > 0 {
			add("declining genres", func() Chart {
				return trendChart("trend-falling", "Declining genres", t, t.Falling, "#e03131")
			})
		}
	}
	return out
}

func releasesChart(stats []insights.YearStat) Chart {
	years := make([]string, len(stats))
	counts := make([]opts.BarData, len(stats))
	scores := make([]opts.LineData, len(stats))
	for i, s := range stats {
		years[i] = fmt.Sprint(s.Year)
		counts[i] = opts.BarData{Value: s.Releases}
		if s.UserScoreMean != nil {
			scores[i] = opts.LineData{Value: *s.UserScoreMean}
		} else {
			scores[i] = opts.LineData{Value: "-"}
		}
	}

	const id = "releases-by-year"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		title("Releases by year", "bars: releases, line: mean user score"),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Releases"}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "User score", Min: 0, Max: 10})
	bar.SetXAxis(years).AddSeries("Releases", counts)

	line := charts.NewLine()
	line.SetXAxis(years).AddSeries("Mean user score", scores, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
	bar.Overlap(line)
	return newChart(id, "Releases by year", bar)
}

func publishersChart(pubs []insights.PublisherOwners) Chart {
	// largest on top of a reversed axis
	names := make([]string, len(pubs))
	data := make([]opts.BarData, len(pubs))
	for i, p := range pubs {
		j := len(pubs) - 1 - i
		names[j] = p.Publisher
		data[j] = opts.BarData{Value: p.Owners, Name: fmt.Sprintf("%s (%d games)", p.Publisher, p.Games)}
	}

	const id = "top-publishers"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		title("Top publishers by estimated owners", fmt.Sprintf("top %d", len(pubs))),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Owners (sum of midpoints)"}),
		charts.WithGridOpts(opts.Grid{Left: "22%"}),
	)
	bar.SetXAxis(names).AddSeries("Owners", data)
	bar.XYReversal()
	return newChart(id, "Top publishers", bar)
}

// scatterGenres is the number of primary genres drawn as their own series; the rest share one.
const scatterGenres = 10

const otherGenres = "Other"

func popularityScatter(s *insights.Scatter) Chart {
	var maxRec int64
	for _, p := range s.Points {
		maxRec = max(maxRec, p.Recommendations)
	}

	order := scatterSeries(s.Points)
	series := map[string][]opts.ScatterData{}
	for _, p := range s.Points {
		score := "-"
		if p.UserScore != nil {
			score = fmt.Sprintf("%.1f", *p.UserScore)
		}
		name := p.Genre
		if !slices.Contains(order, name) {
			name = otherGenres
		}
		series[name] = append(series[name], opts.ScatterData{
			Value:      []any{p.Price, p.Owners, p.Name, p.Genre, p.Publisher, score},
			SymbolSize: symbolSize(p.Recommendations, maxRec),
		})
	}

	sub := fmt.Sprintf("%d games", s.Total)
	if s.Sampled {
		sub = fmt.Sprintf("sample of %d out of %d games", len(s.Points), s.Total)
	}
	sub += ", size: recommendations"

	tooltip := opts.Tooltip{Show: opts.Bool(false)}
	if len(s.Tooltips) > 0 {
		tooltip = opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: opts.FuncOpts(scatterFormatter(s.Tooltips))}
	}

	const id = "price-vs-popularity"
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		initOpts(id),
		title("Price vs popularity", sub),
		charts.WithTooltipOpts(tooltip),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom", Type: "scroll"}),
		charts.WithAnimation(s.Interactive),
		charts.WithXAxisOpts(opts.XAxis{Name: "Price ($)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Estimated owners", Type: "log"}),
	)
	if s.Interactive {
		sc.SetGlobalOptions(charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}))
	}
	for _, name := range order {
		sc.AddSeries(name, series[name])
	}
	if other := series[otherGenres]; len(other) > 0 && !slices.Contains(order, otherGenres) {
		sc.AddSeries(otherGenres, other)
	}
	return newChart(id, "Price vs popularity", sc)
}

// scatterSeries returns the most frequent primary genres among points, most frequent first.
func scatterSeries(points []insights.ScatterPoint) []string {
	counts := map[string]int{}
	for _, p := range points {
		counts[p.Genre]++
	}
	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	slices.SortFunc(genres, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	if len(genres) > scatterGenres {
		genres = genres[:scatterGenres]
	}
	return genres
}

// symbolSize maps recommendations to a marker diameter whose area grows linearly,
// from 3px for none to 22px for the most recommended game.
func symbolSize(rec, maxRec int64) int {
	if maxRec <= 0 || rec <= 0 {
		return 3
	}
	area := 10 + 490*float64(rec)/float64(maxRec)
	return int(math.Round(math.Sqrt(area)))
}

// scatterFormatter builds the tooltip function for the value layout
// [price, owners, name, genre, publisher, score].
func scatterFormatter(fields []string) string {
	pos := map[string]int{"price": 0, "owners_mid": 1, "name": 2, "primary_genre": 3, "publisher": 4, "user_score": 5}
	label := map[string]string{"price": "Price: $", "owners_mid": "Owners: ", "primary_genre": "Genre: ", "publisher": "Publisher: ", "user_score": "User score: "}

	var parts []string
	if slices.Contains(fields, "name") {
		parts = append(parts, "'<b>' + p.value[2] + '</b>'")
	}
	for _, f := range fields {
		i, ok := pos[f]
		if !ok || f == "name" {
			continue
		}
		parts = append(parts, fmt.Sprintf("'%s' + p.value[%d]", label[f], i))
	}
	return fmt.Sprintf("function (p) { return [%s].join('<br/>'); }", strings.Join(parts, ", "))
}

func popularityHeatmap(s *insights.Scatter) Chart {
	var priceLo, ownersLo []float64
	for _, c := range s.Cells {
		if !slices.Contains(priceLo, c.PriceLo) {
			priceLo = append(priceLo, c.PriceLo)
		}
		if !slices.Contains(ownersLo, c.OwnersLo) {
			ownersLo = append(ownersLo, c.OwnersLo)
		}
	}
	slices.Sort(priceLo)
	slices.Sort(ownersLo)

	xs := make([]string, len(priceLo))
	for i, v := range priceLo {
		xs[i] = fmt.Sprintf("$%.0f", v)
	}
	ys := make([]string, len(ownersLo))
	for i, v := range ownersLo {
		ys[i] = compact(v)
	}

	maxCount := 0
	data := make([]opts.HeatMapData, len(s.Cells))
	for i, c := range s.Cells {
		x := slices.Index(priceLo, c.PriceLo)
		y := slices.Index(ownersLo, c.OwnersLo)
		data[i] = opts.HeatMapData{Value: [3]int{x, y, c.Count}}
		maxCount = max(maxCount, c.Count)
	}

	const id = "price-vs-popularity"
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(id),
		title("Price vs popularity", fmt.Sprintf("%d games binned by price and owners", s.Total)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Price", Type: "category", Data: xs}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Owners", Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: opts.Bool(true), Min: 0, Max: float32(maxCount)}),
	)
	hm.SetXAxis(xs).AddSeries("Games", data)
	return newChart(id, "Price vs popularity", hm)
}

func priceBoxChart(b *insights.PriceBoxes) Chart {
	genres := make([]string, len(b.Boxes))
	data := make([]opts.BoxPlotData, len(b.Boxes))
	for i, box := range b.Boxes {
		genres[i] = box.Genre
		data[i] = opts.BoxPlotData{Name: box.Genre, Value: []float64{box.Min, box.Q1, box.Median, box.Q3, box.Max}}
	}
	sub := "top genres, highest median first"
	if b.Precomputed {
		sub += " (precomputed)"
	}

	const id = "price-by-genre"
	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		initOpts(id),
		title("Price distribution by genre", sub),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price ($)"}),
	)
	bp.SetXAxis(genres).AddSeries("Price", data)
	return newChart(id, "Price by genre", bp)
}

func trendChart(id, name string, t *insights.Trends, trends []insights.GenreTrend, color string) Chart {
	genres := make([]string, len(trends))
	data := make([]opts.BarData, len(trends))
	for i, g := range trends {
		j := len(trends) - 1 - i
		genres[j] = g.Genre
		data[j] = opts.BarData{Value: g.Delta, Name: fmt.Sprintf("%s: %.1f%% → %.1f%%", g.Genre, g.PreviousShare, g.RecentShare)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		title(name, fmt.Sprintf("share of releases %d–%d vs %d–%d (pp)", t.RecentFrom, t.RecentTo, t.PreviousFrom, t.PreviousTo)),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithGridOpts(opts.Grid{Left: "22%"}),
	)
	bar.SetXAxis(genres).AddSeries("Δ share", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	bar.XYReversal()
	return newChart(id, name, bar)
}

func compact(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
