package dataset

import (
	"fmt"
	"sort"
	"strings"

	"gamepulse/dashboard/internal/models"
)

// Column names of the source dataset that the dashboard understands.
const (
	ColAppID           = "AppID"
	ColName            = "Name"
	ColPrice           = "Price"
	ColPositive        = "Positive"
	ColNegative        = "Negative"
	ColRecommendations = "Recommendations"
	ColPeakCCU         = "Peak CCU"
	ColRequiredAge     = "Required age"
	ColUserScore       = "User score"
	ColMetacritic      = "Metacritic score"
	ColOwners          = "Estimated owners"
	ColPublishers      = "Publishers"
	ColGenres          = "Genres"
	ColCategories      = "Categories"
	ColTags            = "Tags"
)

// Derived columns recorded on the Table alongside the source ones.
const (
	ColReleaseYear  = "release_year"
	ColOwnersMid    = "owners_mid"
	ColPrimaryGenre = "primary_genre"
	ColAcceptance   = "acceptance"
)

// Columns checked, in order, to derive the release year. Explicit year columns come first;
// some dumps carry the date in the name column, hence the last two.
var dateCandidates = []string{
	"Year", "year",
	"Release date", "Release Date", "release_date", "ReleaseDate",
	"Date", "date",
	"Name", "name",
}

// Normalize converts a raw frame into records and reports which logical columns were present.
// Duplicate AppIDs keep their first row, then rows without a name are dropped.
func Normalize(f *Frame) ([]models.GameRecord, map[string]bool) {
	cols := map[string]bool{}
	for _, h := range f.Header {
		cols[h] = true
	}

	nameCol, hasName := f.First(ColName, "name")
	genreCol, hasGenres := f.First(ColGenres, "genres")
	yearCol, hasYear := f.First(dateCandidates...)
	yearIsNumber := hasYear && strings.EqualFold(yearCol, "year")

	if hasGenres {
		cols[ColGenres] = true
		cols[ColPrimaryGenre] = true
	}
	if hasYear {
		cols[ColReleaseYear] = true
	}
	if f.Has(ColOwners) {
		cols[ColOwnersMid] = true
	}
	if f.Has(ColPositive) || f.Has(ColNegative) {
		cols[ColAcceptance] = true
	}
	if hasName {
		cols[ColName] = true
	}

	seen := map[int64]bool{}
	out := make([]models.GameRecord, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		g := models.GameRecord{PrimaryGenre: models.UnknownGenre, Genres: []string{}}

		// Duplicates are resolved before nameless rows are dropped, so a nameless
		// first row still claims its AppID.
		if id, ok := parseInt(f.Value(i, ColAppID)); ok && f.Has(ColAppID) {
			if seen[id] {
				continue
			}
			seen[id] = true
			g.AppID = id
		}
		if hasName {
			g.Name = strings.TrimSpace(f.Value(i, nameCol))
			if isMissing(g.Name) {
				continue
			}
		}

		if hasYear {
			raw := f.Value(i, yearCol)
			var (
				y  int
				ok bool
			)
			if yearIsNumber {
				y, ok = yearFromNumber(raw)
			} else {
				y, ok = yearFromDate(raw)
			}
			if ok {
				g.ReleaseYear = &y
			}
		}

		if hasGenres {
			g.Genres = f.List(i, genreCol)
			if len(g.Genres) > 0 {
				g.PrimaryGenre = g.Genres[0]
			}
		}
		if f.Has(ColCategories) {
			g.Categories = f.List(i, ColCategories)
		}
		if f.Has(ColTags) {
			g.Tags = f.List(i, ColTags)
		}

		if f.Has(ColPrice) {
			if p, ok := parseFloat(f.Value(i, ColPrice)); ok {
				g.Price = &p
			}
			g.IsFree = g.Price == nil || *g.Price <= 0
		}

		g.Positive, _ = parseInt(f.Value(i, ColPositive))
		g.Negative, _ = parseInt(f.Value(i, ColNegative))
		g.Recommendations, _ = parseInt(f.Value(i, ColRecommendations))
		g.PeakCCU, _ = parseInt(f.Value(i, ColPeakCCU))
		g.RequiredAge, _ = parseInt(f.Value(i, ColRequiredAge))
		if ratio, ok := models.AcceptanceRatio(g.Positive, g.Negative); ok {
			pct := ratio * 100
			g.Acceptance = &pct
		}

		if s, ok := coerceUserScore(f.Value(i, ColUserScore)); ok {
			g.UserScore = &s
		}
		if m, ok := parseFloat(f.Value(i, ColMetacritic)); ok {
			g.MetacriticScore = &m
		}
		if o, ok := parseOwners(f.Value(i, ColOwners)); ok {
			g.Owners = o
		}

		g.Windows = parseBool(f.Value(i, models.PlatformWindows))
		g.Mac = parseBool(f.Value(i, models.PlatformMac))
		g.Linux = parseBool(f.Value(i, models.PlatformLinux))

		if pubs := f.List(i, ColPublishers); len(pubs) > 0 {
			g.Publisher = pubs[0]
		}

		out = append(out, g)
	}
	return out, cols
}

// FinalizeOptions tunes the table-wide cleanup applied after normalization.
type FinalizeOptions struct {
	// YearsBack keeps only the last N release years of the dataset; 0 disables the cutoff.
	YearsBack int
}

// Finalize applies the table-wide rules every source goes through and builds the Table:
// free games with a Metacritic score of exactly 0 are removed, the release-year cutoff
// is applied and the genre dimension is computed.
func Finalize(records []models.GameRecord, cols map[string]bool, source string, opts FinalizeOptions) *Table {
	t := &Table{columns: cols, Source: source}

	kept := make([]models.GameRecord, 0, len(records))
	for _, g := range records {
		if g.IsFree && g.MetacriticScore != nil && *g.MetacriticScore == 0 {
			continue
		}
		kept = append(kept, g)
	}

	if lo, hi, ok := yearSpan(kept); ok && opts.YearsBack > 0 {
		cutoff := max(lo, hi-opts.YearsBack+1)
		window := kept[:0:0]
		for _, g := range kept {
			if g.ReleaseYear != nil && *g.ReleaseYear >= cutoff && *g.ReleaseYear <= hi {
				window = append(window, g)
			}
		}
		kept = window
		t.Notices = append(t.Notices, fmt.Sprintf("Showing only the last %d years: %d–%d.", opts.YearsBack, cutoff, hi))
	}

	t.records = kept
	t.genres = genreDimension(kept)
	return t
}

func yearSpan(records []models.GameRecord) (lo, hi int, ok bool) {
	for _, g := range records {
		if g.ReleaseYear == nil {
			continue
		}
		y := *g.ReleaseYear
		if !ok {
			lo, hi, ok = y, y, true
			continue
		}
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi, ok
}

// distinctYears counts the different release years present in records.
func distinctYears(records []models.GameRecord) int {
	years := map[int]struct{}{}
	for _, g := range records {
		if g.ReleaseYear != nil {
			years[*g.ReleaseYear] = struct{}{}
		}
	}
	return len(years)
}

func genreDimension(records []models.GameRecord) []models.GenreCount {
	counts := map[string]int{}
	for _, g := range records {
		for _, tag := range g.Genres {
			if tag = strings.TrimSpace(tag); tag != "" {
				counts[tag]++
			}
		}
	}
	dim := make([]models.GenreCount, 0, len(counts))
	for genre, n := range counts {
		dim = append(dim, models.GenreCount{Genre: genre, Count: n})
	}
	sort.Slice(dim, func(i, j int) bool {
		if dim[i].Count != dim[j].Count {
			return dim[i].Count > dim[j].Count
		}
		return dim[i].Genre < dim[j].Genre
	})
	return dim
}
