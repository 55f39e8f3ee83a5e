package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	type crit struct {
		Genres []string `json:"genres"`
	}
	a := Key(1, "overview", crit{Genres: []string{"Action"}})
	if a != Key(1, "overview", crit{Genres: []string{"Action"}}) {
		t.Error("key must be stable")
	}
	for _, other := range []string{
		Key(2, "overview", crit{Genres: []string{"Action"}}),
		Key(1, "top-publishers", crit{Genres: []string{"Action"}}),
		Key(1, "overview", crit{Genres: []string{"Indie"}}),
	} {
		if other == a {
			t.Errorf("%s collides with %s", other, a)
		}
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute, 2)
	m.now = func() time.Time { return now }

	if _, ok := m.Get(ctx, "a"); ok {
		t.Fatal("empty cache hit")
	}
	m.Set(ctx, "a", []byte("1"))
	if v, ok := m.Get(ctx, "a"); !ok || string(v) != "1" {
		t.Fatalf("got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.Get(ctx, "a"); ok {
		t.Error("expired entry returned")
	}

	m.Set(ctx, "b", []byte("2"))
	m.Set(ctx, "c", []byte("3"))
	m.Set(ctx, "d", []byte("4"))
	if len(m.entries) > 2 {
		t.Errorf("size = %d, want at most 2", len(m.entries))
	}
	if v, ok := m.Get(ctx, "d"); !ok || string(v) != "4" {
		t.Error("latest entry must survive eviction")
	}
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis("not a url", time.Minute); err == nil {
		t.Error("expected an error")
	}
}

func TestRedis_UnreachableIsMiss(t *testing.T) {
	r, err := NewRedis("redis://127.0.0.1:1/0", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	r.Set(ctx, "k", []byte("v"))
	if _, ok := r.Get(ctx, "k"); ok {
		t.Error("unreachable server must be a miss")
	}
	if r.Ping(ctx) == nil {
		t.Error("ping must fail")
	}
}
