package observability

import (
	"context"
	"sync"
	"time"
)

// Counters is an in-process implementation of every hook interface. The
// API server registers one and exposes its Snapshot.
type Counters struct {
	mu sync.Mutex
	s  Snapshot
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Conversions      int64            `json:"conversions"`
	ConversionErrors int64            `json:"conversionErrors"`
	ConvertTime      time.Duration    `json:"convertTimeNs"`
	Elements         int64            `json:"elements"`
	Modes            map[string]int64 `json:"modes"`
	Renders          int64            `json:"renders"`
	RenderErrors     int64            `json:"renderErrors"`
	CacheHits        map[string]int64 `json:"cacheHits"`
	CacheMisses      map[string]int64 `json:"cacheMisses"`
	CacheBytes       int64            `json:"cacheBytes"`
	Requests         int64            `json:"requests"`
	Statuses         map[int]int64    `json:"statuses"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{s: newSnapshot()}
}

func newSnapshot() Snapshot {
	return Snapshot{
		Modes:       map[string]int64{},
		CacheHits:   map[string]int64{},
		CacheMisses: map[string]int64{},
		Statuses:    map[int]int64{},
	}
}

func (c *Counters) OnConvertStart(context.Context, string, int) {}

func (c *Counters) OnConvertComplete(_ context.Context, mode string, elements int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Conversions++
	c.s.ConvertTime += d
	if err != nil {
		c.s.ConversionErrors++
		return
	}
	c.s.Elements += int64(elements)
	c.s.Modes[mode]++
}

func (c *Counters) OnRenderStart(context.Context, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Renders++
	if err != nil {
		c.s.RenderErrors++
	}
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheHits[keyType]++
}

func (c *Counters) OnCacheMiss(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheMisses[keyType]++
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.CacheBytes += int64(size)
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Requests++
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Statuses[status]++
}

// Snapshot returns a copy of the current counts.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.s
	out.Modes = copyMap(c.s.Modes)
	out.CacheHits = copyMap(c.s.CacheHits)
	out.CacheMisses = copyMap(c.s.CacheMisses)
	out.Statuses = copyMap(c.s.Statuses)
	return out
}

func copyMap[K comparable](m map[K]int64) map[K]int64 {
	out := make(map[K]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
