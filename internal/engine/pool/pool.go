// Package pool implements the string interning pool.
//
// A Pool keeps one canonical copy of every non-empty value it has been asked
// to intern, sorted by byte order. Callers receive their own holder of the
// canonical handle; entries that nobody but the pool still holds are
// reclaimed by a collection pass, which runs at most once per cooldown and
// only when the pool has grown past a size threshold.
//
// Interning takes the pool lock and may trigger an O(n) collection pass, so
// it belongs on setup and configuration paths, not in real-time loops.
package pool

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/intern/internal/adapters/clock" //nolint:depguard // Default time source
	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
)

// Pool is a thread-safe interning pool.
type Pool struct {
	cfg    domain.PoolConfig
	clock  ports.Clock
	logger ports.Logger

	mu             sync.Mutex
	entries        []*domain.InternedString
	collected      bool
	lastCollection uint64
	hits           uint64
	misses         uint64
	collections    uint64
	reclaimed      uint64
}

// Option configures a Pool.
type Option func(*Pool)

// WithConfig sets the collection thresholds.
func WithConfig(cfg domain.PoolConfig) Option {
	return func(p *Pool) {
		p.cfg = cfg
	}
}

// WithClock sets the time source used to throttle collection.
func WithClock(c ports.Clock) Option {
	return func(p *Pool) {
		p.clock = c
	}
}

// WithLogger reports collection passes that reclaimed entries.
func WithLogger(l ports.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

// New creates an empty Pool.
func New(opts ...Option) *Pool {
	p := &Pool{cfg: domain.DefaultPoolConfig()}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = clock.New()
	}
	return p
}

// Intern returns the canonical handle for s.
func (p *Pool) Intern(s string) *domain.InternedString {
	return p.InternKey(domain.StringKey(s))
}

// InternBytes returns the canonical handle for the contents of b.
// b is only copied when the value is not pooled yet.
func (p *Pool) InternBytes(b []byte) *domain.InternedString {
	return p.InternKey(domain.RangeKey{Buf: b, Start: 0, End: len(b)})
}

// InternCString returns the canonical handle for the bytes of b before its
// first zero byte.
func (p *Pool) InternCString(b []byte) *domain.InternedString {
	return p.InternKey(domain.CStringKey(b))
}

// InternRange returns the canonical handle for buf[start:end].
// An empty, inverted or out-of-bounds range yields the empty handle.
func (p *Pool) InternRange(buf []byte, start, end int) *domain.InternedString {
	return p.InternKey(domain.RangeKey{Buf: buf, Start: start, End: end})
}

// InternHandle returns this pool's canonical handle for the value of h.
// h is only read; it may come from another pool.
func (p *Pool) InternHandle(h *domain.InternedString) *domain.InternedString {
	return p.InternKey(h)
}

// InternKey returns the canonical handle for k, inserting a copy when absent.
// The caller owns the returned holder. Empty input yields the empty handle
// and leaves the pool untouched.
func (p *Pool) InternKey(k domain.Key) *domain.InternedString {
	h, _ := p.Insert(k)
	return h
}

// Insert is InternKey that also reports whether k was newly inserted.
func (p *Pool) Insert(k domain.Key) (*domain.InternedString, bool) {
	if k == nil || k.IsEmpty() {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.collectIfDueLocked()
	slot, inserted := p.addLocked(k)
	return slot.Retain(), inserted
}

// Size returns the number of pooled entries.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Contains reports whether s is pooled, without inserting it.
func (p *Pool) Contains(s string) bool {
	if s == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, found := p.searchLocked(domain.StringKey(s))
	return found
}

// Values returns the pooled values in byte order.
func (p *Pool) Values() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	values := make([]string, len(p.entries))
	for i, e := range p.entries {
		values[i] = e.String()
	}
	return values
}

// Stats returns a snapshot of the pool counters and a digest of its contents.
func (p *Pool) Stats() domain.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	hasher := xxhash.New()
	for _, e := range p.entries {
		_, _ = hasher.WriteString(e.String())
		_, _ = hasher.Write([]byte{0})
	}

	return domain.PoolStats{
		Entries:          len(p.entries),
		Hits:             p.hits,
		Misses:           p.misses,
		Collections:      p.collections,
		Reclaimed:        p.reclaimed,
		LastCollectionMs: p.lastCollection,
		Digest:           fmt.Sprintf("%016x", hasher.Sum64()),
	}
}
