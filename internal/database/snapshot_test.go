package database

import (
	"context"
	"path/filepath"
	"testing"

	"gamepulse/dashboard/internal/models"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return NewSnapshotStore(db)
}

func ptr[T any](v T) *T { return &v }

func TestSnapshotStore_EmptyLoad(t *testing.T) {
	s := openTestStore(t)
	records, cols, src, err := s.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(records) != 0 || cols != nil || src != "" {
		t.Errorf("expected empty snapshot, got %d records, cols %v, source %q", len(records), cols, src)
	}
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := []models.GameRecord{
		{
			AppID:        1,
			Name:         "Alpha",
			ReleaseYear:  ptr(2019),
			Genres:       []string{"Action", "Indie"},
			PrimaryGenre: "Action",
			Price:        ptr(9.99),
			Positive:     30,
			Negative:     10,
			Owners:       &models.OwnersRange{Min: 0, Mid: 10000, Max: 20000},
			Windows:      true,
			Publisher:    "Valve",
		},
		{AppID: 2, Name: "Beta", Genres: []string{}, PrimaryGenre: models.UnknownGenre, IsFree: true},
	}
	cols := []string{"AppID", "Name", "Price", "release_year"}

	if err := s.SaveSnapshot(ctx, "games.csv", in, cols); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	out, gotCols, src, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if src != "games.csv" {
		t.Errorf("source = %q", src)
	}
	if len(gotCols) != len(cols) {
		t.Errorf("cols = %v, want %v", gotCols, cols)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}

	a := out[0]
	if a.Name != "Alpha" || a.ReleaseYear == nil || *a.ReleaseYear != 2019 {
		t.Errorf("Alpha = %+v", a)
	}
	if len(a.Genres) != 2 || a.Genres[1] != "Indie" {
		t.Errorf("genres = %v", a.Genres)
	}
	if a.Owners == nil || a.Owners.Mid != 10000 {
		t.Errorf("owners = %+v", a.Owners)
	}
	if a.Acceptance == nil || *a.Acceptance != 75 {
		t.Errorf("acceptance = %v, want 75", a.Acceptance)
	}
	if out[1].Owners != nil || out[1].Price != nil || !out[1].IsFree {
		t.Errorf("Beta = %+v", out[1])
	}
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []models.GameRecord{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	if err := s.SaveSnapshot(ctx, "one", first, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, "two", []models.GameRecord{{Name: "Z"}}, nil); err != nil {
		t.Fatal(err)
	}

	out, _, src, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if src != "two" || len(out) != 1 || out[0].Name != "Z" {
		t.Errorf("expected only the second snapshot, got %q %v", src, out)
	}

	hist, err := s.History(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 || hist[0].Source != "two" || hist[0].Rows != 1 {
		t.Errorf("history = %+v", hist)
	}
}
