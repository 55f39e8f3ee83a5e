package dataset

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
)

type parquetGame struct {
	AppID    int64    `parquet:"AppID"`
	Name     string   `parquet:"Name"`
	Released int32    `parquet:"Release date,date"`
	Price    float64  `parquet:"Price"`
	Owners   string   `parquet:"Estimated owners"`
	Genres   []string `parquet:"Genres"`
	Tags     []string `parquet:"Tags"`
}

type parquetStampedGame struct {
	Name     string `parquet:"Name"`
	Released int64  `parquet:"Release date,timestamp(millisecond)"`
}

func epochDay(y int, m time.Month, d int) int32 {
	return int32(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func encodeParquet[T any](t *testing.T, rows []T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := parquet.Write(&buf, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	return buf.Bytes()
}

func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, encodeParquet(t, rows), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func parquetGames() []parquetGame {
	return []parquetGame{
		{AppID: 1, Name: "Blaster", Released: epochDay(2019, time.May, 1), Price: 4.99, Owners: "0 - 20000",
			Genres: []string{"Action", "Indie"}, Tags: []string{"Shoot 'Em Up", "Action", "Indie"}},
		{AppID: 2, Name: "Farmer", Released: epochDay(2021, time.March, 9), Price: 14.99, Owners: "20000 - 50000",
			Genres: []string{"Simulation"}, Tags: []string{}},
		{AppID: 3, Name: "Racer", Released: epochDay(2022, time.July, 30), Price: 0, Owners: "50000 - 100000",
			Genres: []string{"Racing", "Sports"}, Tags: []string{"Racing"}},
	}
}

func TestReadParquet_ListsAndDates(t *testing.T) {
	data := encodeParquet(t, parquetGames())
	frame, err := ReadParquet(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if frame.Len() != 3 {
		t.Fatalf("rows = %d, want 3", frame.Len())
	}
	if got := frame.Value(0, "Release date"); got != "2019-05-01" {
		t.Errorf("release date = %q", got)
	}

	records, cols := Normalize(frame)
	if !cols[ColReleaseYear] || !cols[ColPrimaryGenre] {
		t.Errorf("cols = %v", cols)
	}
	blaster := records[0]
	if want := []string{"Shoot 'Em Up", "Action", "Indie"}; !reflect.DeepEqual(blaster.Tags, want) {
		t.Errorf("tags = %#v, want %#v", blaster.Tags, want)
	}
	if blaster.PrimaryGenre != "Action" || len(blaster.Genres) != 2 {
		t.Errorf("genres = %v primary %q", blaster.Genres, blaster.PrimaryGenre)
	}
	if blaster.ReleaseYear == nil || *blaster.ReleaseYear != 2019 {
		t.Errorf("year = %v", blaster.ReleaseYear)
	}
	if blaster.Owners == nil || blaster.Owners.Mid != 10_000 {
		t.Errorf("owners = %+v", blaster.Owners)
	}
	if len(records[1].Tags) != 0 {
		t.Errorf("empty list = %#v", records[1].Tags)
	}
	if !records[2].IsFree {
		t.Error("zero price should be free")
	}
}

func TestReadParquet_Timestamp(t *testing.T) {
	stamp := time.Date(2015, time.December, 24, 18, 30, 0, 0, time.UTC).UnixMilli()
	data := encodeParquet(t, []parquetStampedGame{{Name: "Sleigh", Released: stamp}})
	frame, err := ReadParquet(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if got := frame.Value(0, "Release date"); got != "2015-12-24" {
		t.Errorf("release date = %q, want 2015-12-24", got)
	}
}

func TestReadParquet_Garbage(t *testing.T) {
	data := []byte("definitely not parquet")
	if _, err := ReadParquet(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected an error")
	}
}

func TestLoader_Parquet(t *testing.T) {
	dir := t.TempDir()
	pq := writeParquet(t, dir, "data/games.parquet", parquetGames())

	tbl, err := NewLoader(testOptions(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Source != pq || tbl.Len() != 3 {
		t.Errorf("source = %q rows = %d", tbl.Source, tbl.Len())
	}
}

func TestLoader_ParquetWinsOverCSV(t *testing.T) {
	dir := t.TempDir()
	pq := writeParquet(t, dir, "games.parquet", parquetGames())
	writeFile(t, dir, "games.csv", gamesCSV)

	tbl, err := NewLoader(testOptions(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Source != pq {
		t.Errorf("source = %q, want %q", tbl.Source, pq)
	}
}

func TestLoader_SingleYearParquetFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	games := parquetGames()
	for i := range games {
		games[i].Released = epochDay(2020, time.January, 1+i)
	}
	writeParquet(t, dir, "data/games.parquet", games)
	full := writeFile(t, dir, "data/games.csv", gamesCSV)

	tbl, err := NewLoader(testOptions(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Source != full {
		t.Errorf("source = %q, want %q", tbl.Source, full)
	}
}

func TestLoader_SingleYearParquetWithoutCSV(t *testing.T) {
	dir := t.TempDir()
	games := parquetGames()[:1]
	pq := writeParquet(t, dir, "data/games.parquet", games)

	tbl, err := NewLoader(testOptions(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Source != pq || tbl.Len() != 1 {
		t.Errorf("source = %q rows = %d", tbl.Source, tbl.Len())
	}
}

func TestLoader_UnreadableParquetFallsBackToCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data/games.parquet", "not a parquet file")
	full := writeFile(t, dir, "data/games.csv", gamesCSV)

	tbl, err := NewLoader(testOptions(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Source != full || tbl.Len() != 4 {
		t.Errorf("source = %q rows = %d", tbl.Source, tbl.Len())
	}
}

func TestLoader_RemoteParquet(t *testing.T) {
	data := encodeParquet(t, parquetGames())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	opts := testOptions(t.TempDir())
	opts.DataURL = srv.URL + "/dump/games.parquet"
	tbl, err := NewLoader(opts).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}
	for _, g := range tbl.Records() {
		if g.Name == "Blaster" && len(g.Tags) != 3 {
			t.Errorf("tags = %#v", g.Tags)
		}
	}
}
