package sysinfo_test

import (
	"testing"
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns a different CPU value on each underlying query
// so cache hits are distinguishable from recomputation.
type scriptedProvider struct {
	cpuValues []float64
	cpuCalls  int
	cpuErr    error

	memValue float64
	memCalls int
	memErr   error
}

func (s *scriptedProvider) CPUPercent() (float64, error) {
	if s.cpuErr != nil {
		return 0, s.cpuErr
	}
	v := s.cpuValues[s.cpuCalls%len(s.cpuValues)]
	s.cpuCalls++
	return v, nil
}

func (s *scriptedProvider) MemoryPercent() (float64, error) {
	if s.memErr != nil {
		return 0, s.memErr
	}
	s.memCalls++
	return s.memValue, nil
}

func (s *scriptedProvider) CPUFrequencyMHz() (float64, float64, error) { return 2400, 3600, nil }

func (s *scriptedProvider) CPUCounts() (int, int, error) { return 4, 8, nil }

func (s *scriptedProvider) CPUIdentity() (string, string, error) {
	return "GenuineIntel", "Test CPU", nil
}

func (s *scriptedProvider) TotalMemoryBytes() (uint64, error) { return 16 << 30, nil }

func (s *scriptedProvider) DiskIOBytes() (uint64, uint64, error) { return 0, 0, nil }

func (s *scriptedProvider) Partitions() ([]sysinfo.Partition, error) { return nil, nil }
func (s *scriptedProvider) Temperatures() ([]sysinfo.TemperatureReading, error) {
	return nil, nil
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCPUPercentWithinTTLIsIdentical(t *testing.T) {
	provider := &scriptedProvider{cpuValues: []float64{10.5, 99.9}}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cache := sysinfo.NewCacheWithClock(provider, 2*time.Second, clock.Now)

	first := cache.CPUPercent()
	clock.Advance(time.Second)
	second := cache.CPUPercent()

	assert.Equal(t, first, second, "values within the TTL window must be bit-for-bit identical")
	assert.Equal(t, 1, provider.cpuCalls, "provider must be queried once within the TTL")
}

func TestCPUPercentRecomputesAfterTTL(t *testing.T) {
	provider := &scriptedProvider{cpuValues: []float64{10.5, 99.9}}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cache := sysinfo.NewCacheWithClock(provider, 2*time.Second, clock.Now)

	first := cache.CPUPercent()
	clock.Advance(3 * time.Second)
	second := cache.CPUPercent()

	require.Equal(t, 2, provider.cpuCalls, "provider must be re-queried after expiry")
	assert.NotEqual(t, first, second)

	// The recompute must refresh the cached timestamp: a read right after
	// it hits the cache again.
	third := cache.CPUPercent()
	assert.Equal(t, second, third)
	assert.Equal(t, 2, provider.cpuCalls)
}

func TestFailedQueryReturnsLastKnownValue(t *testing.T) {
	provider := &scriptedProvider{cpuValues: []float64{42.0}}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cache := sysinfo.NewCacheWithClock(provider, time.Second, clock.Now)

	require.Equal(t, 42.0, cache.CPUPercent())

	provider.cpuErr = errors.New().New(errors.ErrMetricSourceFailed)
	clock.Advance(5 * time.Second)

	assert.Equal(t, 42.0, cache.CPUPercent(), "failure must fall back to the last known value")
}

func TestFailedQueryBeforeFirstSuccessReturnsZero(t *testing.T) {
	provider := &scriptedProvider{memErr: errors.New().New(errors.ErrMetricSourceFailed)}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cache := sysinfo.NewCacheWithClock(provider, time.Second, clock.Now)

	assert.Equal(t, 0.0, cache.MemoryPercent(), "safe default before any successful query")
}
