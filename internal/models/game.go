package models

import "strings"

// Platform names as they appear in the dataset header.
const (
	PlatformWindows = "Windows"
	PlatformMac     = "Mac"
	PlatformLinux   = "Linux"
)

// Platforms lists every platform flag the dataset can carry, in display order.
var Platforms = []string{PlatformWindows, PlatformMac, PlatformLinux}

// UnknownGenre is the primary genre of a game without genre tags.
const UnknownGenre = "Unknown"

// OwnersRange is the parsed form of an "Estimated owners" range such as "0 - 20000".
// Min <= Mid <= Max always holds.
type OwnersRange struct {
	Min int64 `json:"min"`
	Mid int64 `json:"mid"`
	Max int64 `json:"max"`
}

// GameRecord represents a single normalized row of the games dataset.
type GameRecord struct {
	AppID           int64        `json:"app_id,omitempty"`
	Name            string       `json:"name"`
	ReleaseYear     *int         `json:"release_year,omitempty"`
	Genres          []string     `json:"genres"`
	PrimaryGenre    string       `json:"primary_genre"`
	Categories      []string     `json:"categories,omitempty"`
	Tags            []string     `json:"tags,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	IsFree          bool         `json:"is_free"`
	Positive        int64        `json:"positive"`
	Negative        int64        `json:"negative"`
	Recommendations int64        `json:"recommendations"`
	PeakCCU         int64        `json:"peak_ccu"`
	RequiredAge     int64        `json:"required_age"`
	UserScore       *float64     `json:"user_score,omitempty"`
	MetacriticScore *float64     `json:"metacritic_score,omitempty"`
	Acceptance      *float64     `json:"acceptance,omitempty"`
	Owners          *OwnersRange `json:"owners,omitempty"`
	Windows         bool         `json:"windows"`
	Mac             bool         `json:"mac"`
	Linux           bool         `json:"linux"`
	Publisher       string       `json:"publisher,omitempty"`
}

// Supports reports whether the game is flagged as available on the given platform.
func (g GameRecord) Supports(platform string) bool {
	switch platform {
	case PlatformWindows:
		return g.Windows
	case PlatformMac:
		return g.Mac
	case PlatformLinux:
		return g.Linux
	}
	return false
}

// HasGenre reports whether the game carries the genre tag, ignoring case.
func (g GameRecord) HasGenre(genre string) bool {
	for _, tag := range g.Genres {
		if strings.EqualFold(tag, genre) {
			return true
		}
	}
	return false
}

// AcceptanceRatio computes positive / (positive + negative).
// The second return value is false when the game has no reviews.
func AcceptanceRatio(positive, negative int64) (float64, bool) {
	denom := positive + negative
	if denom <= 0 {
		return 0, false
	}
	return float64(positive) / float64(denom), true
}

// GenreCount is one entry of the genre dimension: a genre tag and the number of games carrying it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"n"`
}
