package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gamepulse/dashboard/internal/cache"
	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/hub"
	"gamepulse/dashboard/internal/models"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "handler-test-secret"
	testPassword = "hunter2"
)

func ptr[T any](v T) *T { return &v }

type staticSource struct {
	mu      sync.Mutex
	table   *dataset.Table
	version uint64
	reloads int
}

func (s *staticSource) Current(context.Context) (*dataset.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, nil
}

func (s *staticSource) Reload(context.Context) (*dataset.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
	s.version++
	nt := *s.table
	nt.Version = s.version
	s.table = &nt
	return s.table, nil
}

func (s *staticSource) set(t *dataset.Table, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.version = version
}

func (s *staticSource) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

type fakeSnapshots struct {
	saved   int
	records int
	source  string
}

func (f *fakeSnapshots) SaveSnapshot(_ context.Context, source string, records []models.GameRecord, _ []string) error {
	f.saved++
	f.records = len(records)
	f.source = source
	return nil
}

func (f *fakeSnapshots) History(context.Context, int) ([]models.SnapshotMeta, error) {
	return []models.SnapshotMeta{{ID: 1, Source: "games.csv", Rows: 3}}, nil
}

func fixtureTable() *dataset.Table {
	game := func(name string, year int, price float64, genre, publisher string, mid int64) models.GameRecord {
		return models.GameRecord{
			Name: name, ReleaseYear: ptr(year), Price: ptr(price), IsFree: price <= 0,
			Genres: []string{genre}, PrimaryGenre: genre, Publisher: publisher,
			Owners: &models.OwnersRange{Min: 0, Mid: mid, Max: mid * 2}, Windows: true,
			UserScore: ptr(7.5), Acceptance: ptr(80.0),
		}
	}
	records := []models.GameRecord{
		game("Alpha", 2019, 9.99, "Action", "Valve", 50_000),
		game("Beta", 2020, 19.99, "Strategy", "Paradox", 20_000),
		game("Gamma", 2021, 0, "Action", "Valve", 500_000),
	}
	cols := []string{
		dataset.ColName, dataset.ColReleaseYear, dataset.ColPrice, dataset.ColGenres, dataset.ColPrimaryGenre,
		dataset.ColPublishers, dataset.ColOwnersMid, dataset.ColUserScore, dataset.ColAcceptance, models.PlatformWindows,
	}
	t := dataset.NewTable(records, cols, dataset.FinalizeOptions{})
	t.Source = "games.csv"
	t.Version = 1
	return t
}

type testEnv struct {
	router    *gin.Engine
	source    *staticSource
	hub       *hub.Hub
	snapshots *fakeSnapshots
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		router:    gin.New(),
		source:    &staticSource{table: fixtureTable(), version: 1},
		hub:       hub.NewHub(),
		snapshots: &fakeSnapshots{},
	}
	h := New(env.source, cache.NewMemory(time.Minute, 16), env.hub, env.snapshots, Settings{
		YearsBackDefault:  10,
		JWTSecret:         testSecret,
		AdminPasswordHash: string(hash),
	})
	h.Register(env.router)
	return env
}

func (e *testEnv) do(method, target string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/login", LoginInput{Password: testPassword}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response %s (%v)", w.Body.String(), err)
	}
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/ping", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestGetSection(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/sections/top-publishers", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Section    string              `json:"section"`
		KPIs       struct{ Games int } `json:"kpis"`
		Publishers []struct {
			Publisher string `json:"publisher"`
			Owners    int64  `json:"owners"`
		} `json:"top_publishers"`
		Charts []struct {
			ID string `json:"id"`
		} `json:"charts"`
	}](t, w)
	if resp.Section != "top-publishers" || resp.KPIs.Games != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Publishers) != 2 || resp.Publishers[0].Publisher != "Valve" || resp.Publishers[0].Owners != 550_000 {
		t.Errorf("publishers = %+v", resp.Publishers)
	}
	if len(resp.Charts) != 1 || resp.Charts[0].ID != "top-publishers" {
		t.Errorf("charts = %+v", resp.Charts)
	}

	again := env.do(http.MethodGet, "/api/v1/sections/top-publishers", nil, "")
	if again.Header().Get("X-Cache") != "HIT" || again.Body.String() != w.Body.String() {
		t.Errorf("second request: cache %q", again.Header().Get("X-Cache"))
	}

	env.source.Reload(context.Background())
	if w := env.do(http.MethodGet, "/api/v1/sections/top-publishers", nil, ""); w.Header().Get("X-Cache") != "MISS" {
		t.Error("a reload must invalidate cached sections")
	}
}

func TestGetSection_CacheKeyFollowsServedTable(t *testing.T) {
	env := newTestEnv(t)

	// The source already reports version 2 while still serving the version 1 table,
	// as happens when a reload lands between fetching the table and caching the result.
	env.source.set(fixtureTable(), 2)
	w := env.do(http.MethodGet, "/api/v1/sections/overview", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}

	base := fixtureTable()
	reloaded := dataset.NewTable(base.Records()[:2], base.Columns(), dataset.FinalizeOptions{})
	reloaded.Version = 2
	env.source.set(reloaded, 2)

	w = env.do(http.MethodGet, "/api/v1/sections/overview", nil, "")
	if w.Header().Get("X-Cache") != "MISS" {
		t.Fatal("result computed from the old table was cached under the new version")
	}
	resp := decode[struct {
		KPIs struct {
			Games int `json:"games"`
		} `json:"kpis"`
	}](t, w)
	if resp.KPIs.Games != 2 {
		t.Errorf("games = %d, want 2", resp.KPIs.Games)
	}
}

func TestGetSection_Errors(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		target string
		want   int
	}{
		{"/api/v1/sections/nope", http.StatusNotFound},
		{"/api/v1/sections/overview?min_acceptance=150", http.StatusBadRequest},
		{"/api/v1/sections/overview?year_min=abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := env.do(http.MethodGet, tt.target, nil, "")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if resp := decode[ErrorResponse](t, w); resp.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestGetSection_Filters(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/v1/sections/overview?genres=Strategy", nil, "")
	resp := decode[struct {
		KPIs struct {
			Games int `json:"games"`
		} `json:"kpis"`
		Criteria struct {
			Genres []string `json:"genres"`
		} `json:"criteria"`
	}](t, w)
	if resp.KPIs.Games != 1 || len(resp.Criteria.Genres) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetGames(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query string
		want  []string
		total int64
	}{
		{"default sort by owners", "", []string{"Gamma", "Alpha", "Beta"}, 3},
		{"price ascending", "?sort=price&order=asc", []string{"Gamma", "Alpha", "Beta"}, 3},
		{"name descending", "?sort=name", []string{"Gamma", "Beta", "Alpha"}, 3},
		{"search", "?q=ALP", []string{"Alpha"}, 1},
		{"filter and page", "?genres=Action&limit=1&page=2", []string{"Alpha"}, 2},
		{"page past the end", "?page=9", []string{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/v1/games"+tt.query, nil, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status %d: %s", w.Code, w.Body.String())
			}
			resp := decode[PaginatedGameResponse](t, w)
			names := []string{}
			for _, g := range resp.Data {
				names = append(names, g.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.want, ",") || resp.Meta.TotalItems != tt.total {
				t.Errorf("got %v (total %d), want %v (total %d)", names, resp.Meta.TotalItems, tt.want, tt.total)
			}
		})
	}

	if w := env.do(http.MethodGet, "/api/v1/games?sort=bogus", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad sort: %d", w.Code)
	}
}

func TestGetFiltersAndGenres(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/filters?year_min=2020", nil, "")
	resp := decode[FiltersResponse](t, w)
	if resp.Options.Years == nil || resp.Options.Years.Min != 2019 || resp.Options.Years.Max != 2021 {
		t.Errorf("years = %+v", resp.Options.Years)
	}
	if resp.Applied.Years == nil || resp.Applied.Years.Lo != 2020 || resp.Defaults.Years.Lo != 2019 {
		t.Errorf("applied = %+v defaults = %+v", resp.Applied.Years, resp.Defaults.Years)
	}

	genres := decode[[]models.GenreCount](t, env.do(http.MethodGet, "/api/v1/genres", nil, ""))
	if len(genres) != 2 || genres[0].Genre != "Action" || genres[0].Count != 2 {
		t.Errorf("genres = %+v", genres)
	}

	sections := decode[[]map[string]string](t, env.do(http.MethodGet, "/api/v1/sections", nil, ""))
	if len(sections) != 5 || sections[0]["id"] != "overview" {
		t.Errorf("sections = %v", sections)
	}
}

func TestGetDataset(t *testing.T) {
	env := newTestEnv(t)

	anon := decode[DatasetResponse](t, env.do(http.MethodGet, "/api/v1/dataset", nil, ""))
	if anon.Source != "games.csv" || anon.Rows != 3 || anon.Version != 1 || anon.Snapshots != nil {
		t.Errorf("anonymous = %+v", anon)
	}

	admin := decode[DatasetResponse](t, env.do(http.MethodGet, "/api/v1/dataset", nil, env.login(t)))
	if len(admin.Snapshots) != 1 {
		t.Errorf("admin snapshots = %+v", admin.Snapshots)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	if w := env.do(http.MethodPost, "/api/v1/auth/login", LoginInput{Password: "wrong"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: %d", w.Code)
	}
	if w := env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing password: %d", w.Code)
	}
	env.login(t)
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodPost, "/api/v1/admin/reload", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("reload without token: %d", w.Code)
	}

	token := env.login(t)
	w := env.do(http.MethodPost, "/api/v1/admin/reload", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("reload: %d %s", w.Code, w.Body.String())
	}
	if resp := decode[ReloadResponse](t, w); resp.Version != 2 || resp.Rows != 3 || env.source.reloads != 1 {
		t.Errorf("reload = %+v", resp)
	}

	client := make(hub.Client, 1)
	env.hub.Subscribe(hub.TopicDataset, client)
	w = env.do(http.MethodPost, "/api/v1/admin/snapshot", nil, token)
	if w.Code != http.StatusCreated || env.snapshots.saved != 1 || env.snapshots.records != 3 {
		t.Errorf("snapshot: %d %s", w.Code, w.Body.String())
	}
	if env.snapshots.source != "games.csv" {
		t.Errorf("snapshot source = %q", env.snapshots.source)
	}
	select {
	case msg := <-client:
		if !strings.Contains(string(msg), `"snapshot"`) {
			t.Errorf("event = %s", msg)
		}
	default:
		t.Error("snapshot event not broadcast")
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("got %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "releases-by-year") {
		t.Error("overview page must contain the releases chart")
	}

	w = env.do(http.MethodGet, "/dashboard/price-by-genre?genres=Action", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `id="price-by-genre"`) {
		t.Errorf("price-by-genre: %d", w.Code)
	}

	if w := env.do(http.MethodGet, "/dashboard/nope", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown section: %d", w.Code)
	}
}

func TestStreamEvents(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	readEvent := func() (event, data string) {
		for lines.Scan() {
			line := lines.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			case line == "" && event != "":
				return event, data
			}
		}
		return event, data
	}

	if ev, _ := readEvent(); ev != "hello" {
		t.Fatalf("first event = %q", ev)
	}
	env.hub.Broadcast(hub.TopicDataset, hub.Event{Type: "reloaded", Payload: DatasetEvent{Rows: 3, Version: 2}})
	ev, data := readEvent()
	if ev != "dataset" || !strings.Contains(data, `"reloaded"`) {
		t.Errorf("event = %q data = %q", ev, data)
	}
}

func TestPublishReloads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(&staticSource{table: fixtureTable()}, cache.NewMemory(time.Minute, 4), hub.NewHub(), nil, Settings{})
	client := make(hub.Client, 1)
	h.hub.Subscribe(hub.TopicDataset, client)

	p := dataset.NewProvider(loaderFunc(func(context.Context) (*dataset.Table, error) { return fixtureTable(), nil }), time.Minute)
	h.PublishReloads(p)
	if _, err := p.Current(context.Background()); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-client:
		var ev struct {
			Type    string       `json:"type"`
			Payload DatasetEvent `json:"payload"`
		}
		if err := json.Unmarshal(msg, &ev); err != nil || ev.Type != "reloaded" || ev.Payload.Version != 1 || ev.Payload.Rows != 3 {
			t.Errorf("event = %s (%v)", msg, err)
		}
	default:
		t.Error("no reload event")
	}
}

func TestSaveSnapshot_StripsSnapshotSource(t *testing.T) {
	env := newTestEnv(t)
	restored := fixtureTable()
	restored.Source = dataset.SnapshotSourcePrefix + dataset.SnapshotSourcePrefix + "games.csv"
	env.source.set(restored, 1)

	w := env.do(http.MethodPost, "/api/v1/admin/snapshot", nil, env.login(t))
	if w.Code != http.StatusCreated {
		t.Fatalf("snapshot: %d %s", w.Code, w.Body.String())
	}
	if env.snapshots.source != "games.csv" {
		t.Errorf("stored source = %q, want games.csv", env.snapshots.source)
	}
}

func TestAdminRoutes_WithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	snapshots := &fakeSnapshots{}
	New(&staticSource{table: fixtureTable(), version: 1}, cache.NewMemory(time.Minute, 4), hub.NewHub(), snapshots, Settings{}).Register(router)

	forged, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":  "anyone",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte{})
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []string{"/api/v1/admin/snapshot", "/api/v1/admin/reload"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: %d %s", target, w.Code, w.Body.String())
		}
	}
	if snapshots.saved != 0 {
		t.Error("snapshot written without admin access")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dataset", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if resp := decode[DatasetResponse](t, w); resp.Snapshots != nil {
		t.Errorf("snapshot history exposed: %+v", resp.Snapshots)
	}
}

type loaderFunc func(context.Context) (*dataset.Table, error)

func (f loaderFunc) Load(ctx context.Context) (*dataset.Table, error) { return f(ctx) }
