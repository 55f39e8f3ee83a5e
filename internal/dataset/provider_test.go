package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingLoader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingLoader) Load(ctx context.Context) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return NewTable(nil, nil, FinalizeOptions{}), nil
}

func TestProvider_CachesUntilTTL(t *testing.T) {
	loader := &countingLoader{}
	p := NewProvider(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	ctx := context.Background()
	first, err := p.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	second, _ := p.Current(ctx)
	if first != second || loader.calls != 1 {
		t.Fatalf("expected cached table, calls = %d", loader.calls)
	}

	now = now.Add(2 * time.Minute)
	third, _ := p.Current(ctx)
	if third == first || loader.calls != 2 {
		t.Errorf("expected reload after TTL, calls = %d", loader.calls)
	}
	if p.Version() != 2 {
		t.Errorf("version = %d, want 2", p.Version())
	}
	if first.Version != 1 || third.Version != 2 {
		t.Errorf("table versions = %d, %d, want 1, 2", first.Version, third.Version)
	}
}

func TestProvider_KeepsStaleTableOnFailure(t *testing.T) {
	loader := &countingLoader{}
	p := NewProvider(loader, time.Minute)
	now := time.Now()
	p.now = func() time.Time { return now }

	ctx := context.Background()
	first, err := p.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}

	loader.err = errors.New("disk gone")
	now = now.Add(time.Hour)
	got, err := p.Current(ctx)
	if err != nil {
		t.Fatalf("expected stale table instead of error, got %v", err)
	}
	if got != first {
		t.Error("expected the previous table to be served")
	}

	if _, err := p.Reload(ctx); err == nil {
		t.Error("forced reload should surface the loader error")
	}
}

func TestProvider_FirstLoadError(t *testing.T) {
	p := NewProvider(&countingLoader{err: errors.New("boom")}, time.Minute)
	if _, err := p.Current(context.Background()); err == nil {
		t.Error("expected error when nothing was ever loaded")
	}
}

func TestProvider_OnReload(t *testing.T) {
	p := NewProvider(&countingLoader{}, 0)
	var versions []uint64
	p.OnReload(func(_ *Table, v uint64) { versions = append(versions, v) })

	ctx := context.Background()
	p.Current(ctx)
	p.Current(ctx)
	p.Reload(ctx)
	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Errorf("reload hooks saw versions %v, want [1 2]", versions)
	}
}

func TestProvider_ConcurrentCurrent(t *testing.T) {
	loader := &countingLoader{}
	p := NewProvider(loader, time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Current(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if loader.calls != 1 {
		t.Errorf("expected a single load, got %d", loader.calls)
	}
}
