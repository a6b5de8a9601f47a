package detect

import (
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

// fakeProvider is a fully deterministic Provider for detector tests.
type fakeProvider struct {
	cpuPercent   float64
	memPercent   float64
	freqCurrent  float64
	freqMax      float64
	physical     int
	logical      int
	vendor       string
	brand        string
	identityErr  error
	totalMemory  uint64
	diskRead     uint64
	diskWrite    uint64
	partitions   []sysinfo.Partition
	partitionErr error
	readings     []sysinfo.TemperatureReading
	readingErr   error
}

func (p *fakeProvider) CPUPercent() (float64, error)    { return p.cpuPercent, nil }
func (p *fakeProvider) MemoryPercent() (float64, error) { return p.memPercent, nil }

func (p *fakeProvider) CPUFrequencyMHz() (float64, float64, error) {
	return p.freqCurrent, p.freqMax, nil
}

func (p *fakeProvider) CPUCounts() (int, int, error) {
	return p.physical, p.logical, nil
}

func (p *fakeProvider) CPUIdentity() (string, string, error) {
	return p.vendor, p.brand, p.identityErr
}

func (p *fakeProvider) TotalMemoryBytes() (uint64, error) {
	return p.totalMemory, nil
}

func (p *fakeProvider) DiskIOBytes() (uint64, uint64, error) {
	return p.diskRead, p.diskWrite, nil
}

func (p *fakeProvider) Partitions() ([]sysinfo.Partition, error) {
	return p.partitions, p.partitionErr
}

func (p *fakeProvider) Temperatures() ([]sysinfo.TemperatureReading, error) {
	return p.readings, p.readingErr
}

func newTestCache(p sysinfo.Provider) *sysinfo.Cache {
	return sysinfo.NewCache(p, time.Minute)
}

func testRandom() sensor.RandomSource {
	return sensor.NewRandom(1)
}
