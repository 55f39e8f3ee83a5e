package dataset

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// TableLoader produces a fresh Table.
type TableLoader interface {
	Load(ctx context.Context) (*Table, error)
}

// Provider serves the current Table and reloads it once it is older than the TTL.
// Readers always get a complete table; a failed reload keeps the previous one.
type Provider struct {
	loader TableLoader
	ttl    time.Duration
	now    func() time.Time

	loadMu sync.Mutex

	mu       sync.RWMutex
	table    *Table
	loadedAt time.Time
	version  uint64
	onReload []func(*Table, uint64)
}

// NewProvider creates a Provider. A non-positive ttl disables expiry.
func NewProvider(loader TableLoader, ttl time.Duration) *Provider {
	return &Provider{loader: loader, ttl: ttl, now: time.Now}
}

// OnReload registers fn to be called after every successful load.
func (p *Provider) OnReload(fn func(t *Table, version uint64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReload = append(p.onReload, fn)
}

// Version increases by one with every successful load.
func (p *Provider) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Current returns the cached table, loading it first if there is none or it expired.
func (p *Provider) Current(ctx context.Context) (*Table, error) {
	p.mu.RLock()
	t, fresh := p.table, p.fresh()
	p.mu.RUnlock()
	if t != nil && fresh {
		return t, nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	// Another caller may have reloaded while we waited.
	p.mu.RLock()
	t, fresh = p.table, p.fresh()
	p.mu.RUnlock()
	if t != nil && fresh {
		return t, nil
	}

	nt, err := p.load(ctx)
	if err != nil {
		if t != nil {
			slog.Warn("dataset reload failed, serving previous table", "error", err)
			return t, nil
		}
		return nil, err
	}
	return nt, nil
}

// Reload loads the dataset unconditionally.
func (p *Provider) Reload(ctx context.Context) (*Table, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.load(ctx)
}

// fresh must be called with mu held.
func (p *Provider) fresh() bool {
	if p.table == nil {
		return false
	}
	if p.ttl <= 0 {
		return true
	}
	return p.now().Sub(p.loadedAt) < p.ttl
}

// load must be called with loadMu held.
func (p *Provider) load(ctx context.Context) (*Table, error) {
	t, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.version++
	version := p.version
	t.Version = version
	p.table = t
	p.loadedAt = p.now()
	hooks := slices.Clone(p.onReload)
	p.mu.Unlock()

	for _, fn := range hooks {
		fn(t, version)
	}
	return t, nil
}
