package sysinfo

import (
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/logger"
)

// Cache memoizes the expensive load queries behind a TTL so the per-tick
// refresh path never hits the OS more than once per window. A source
// failure is absorbed: the last known value (initially 0) is returned and
// the failure logged.
type Cache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	cpu cachedMetric
	mem cachedMetric
}

type cachedMetric struct {
	value     float64
	timestamp time.Time
	primed    bool
}

// NewCache builds a cache over provider with the given TTL.
func NewCache(provider Provider, ttl time.Duration) *Cache {
	return NewCacheWithClock(provider, ttl, time.Now)
}

// NewCacheWithClock is NewCache with an injectable clock for tests.
func NewCacheWithClock(provider Provider, ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{
		provider: provider,
		ttl:      ttl,
		now:      now,
	}
}

// CPUPercent returns the cached overall CPU utilization.
func (c *Cache) CPUPercent() float64 {
	return c.lookup(&c.cpu, "cpu_percent", c.provider.CPUPercent)
}

// MemoryPercent returns the cached overall memory utilization.
func (c *Cache) MemoryPercent() float64 {
	return c.lookup(&c.mem, "memory_percent", c.provider.MemoryPercent)
}

func (c *Cache) lookup(m *cachedMetric, name string, query func() (float64, error)) float64 {
	if m.primed && c.now().Sub(m.timestamp) <= c.ttl {
		return m.value
	}

	value, err := query()
	if err != nil {
		logger.Warn().Err(err).Str("metric", name).Msg("Metric query failed, returning last known value")
		return m.value
	}

	m.value = value
	m.timestamp = c.now()
	m.primed = true

	return value
}
