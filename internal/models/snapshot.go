package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameSnapshot is the persisted form of a GameRecord in the snapshot store.
// Optional numbers are nullable columns; list columns are stored as JSON.
type GameSnapshot struct {
	gorm.Model
	AppID           int64  `gorm:"index"`
	Name            string `gorm:"size:512;not null"`
	ReleaseYear     *int   `gorm:"index"`
	Genres          datatypes.JSONSlice[string]
	PrimaryGenre    string `gorm:"size:128;index"`
	Categories      datatypes.JSONSlice[string]
	Tags            datatypes.JSONSlice[string]
	Price           *float64
	IsFree          bool
	Positive        int64
	Negative        int64
	Recommendations int64
	PeakCCU         int64
	RequiredAge     int64
	UserScore       *float64
	MetacriticScore *float64
	OwnersMin       *int64
	OwnersMid       *int64
	OwnersMax       *int64
	Windows         bool
	Mac             bool
	Linux           bool
	Publisher       string `gorm:"size:512"`
}

// SnapshotMeta records where the current snapshot came from.
type SnapshotMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGameSnapshot converts a record into its persisted form.
func NewGameSnapshot(g GameRecord) GameSnapshot {
	s := GameSnapshot{
		AppID:           g.AppID,
		Name:            g.Name,
		ReleaseYear:     g.ReleaseYear,
		Genres:          datatypes.JSONSlice[string](g.Genres),
		PrimaryGenre:    g.PrimaryGenre,
		Categories:      datatypes.JSONSlice[string](g.Categories),
		Tags:            datatypes.JSONSlice[string](g.Tags),
		Price:           g.Price,
		IsFree:          g.IsFree,
		Positive:        g.Positive,
		Negative:        g.Negative,
		Recommendations: g.Recommendations,
		PeakCCU:         g.PeakCCU,
		RequiredAge:     g.RequiredAge,
		UserScore:       g.UserScore,
		MetacriticScore: g.MetacriticScore,
		Windows:         g.Windows,
		Mac:             g.Mac,
		Linux:           g.Linux,
		Publisher:       g.Publisher,
	}
	if g.Owners != nil {
		lo, mid, hi := g.Owners.Min, g.Owners.Mid, g.Owners.Max
		s.OwnersMin, s.OwnersMid, s.OwnersMax = &lo, &mid, &hi
	}
	return s
}

// Record converts the persisted form back into a GameRecord.
// Acceptance is derived again from the review counts.
func (s GameSnapshot) Record() GameRecord {
	g := GameRecord{
		AppID:           s.AppID,
		Name:            s.Name,
		ReleaseYear:     s.ReleaseYear,
		Genres:          []string(s.Genres),
		PrimaryGenre:    s.PrimaryGenre,
		Categories:      []string(s.Categories),
		Tags:            []string(s.Tags),
		Price:           s.Price,
		IsFree:          s.IsFree,
		Positive:        s.Positive,
		Negative:        s.Negative,
		Recommendations: s.Recommendations,
		PeakCCU:         s.PeakCCU,
		RequiredAge:     s.RequiredAge,
		UserScore:       s.UserScore,
		MetacriticScore: s.MetacriticScore,
		Windows:         s.Windows,
		Mac:             s.Mac,
		Linux:           s.Linux,
		Publisher:       s.Publisher,
	}
	if s.OwnersMin != nil && s.OwnersMid != nil && s.OwnersMax != nil {
		g.Owners = &OwnersRange{Min: *s.OwnersMin, Mid: *s.OwnersMid, Max: *s.OwnersMax}
	}
	if ratio, ok := AcceptanceRatio(g.Positive, g.Negative); ok {
		pct := ratio * 100
		g.Acceptance = &pct
	}
	if g.PrimaryGenre == "" {
		g.PrimaryGenre = UnknownGenre
	}
	return g
}
