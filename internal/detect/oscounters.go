package detect

import (
	"context"
	"fmt"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

// Base constants and factors for the generic load-derived linear models.
// The contract is clamping and determinism, not physical accuracy.
const (
	cpuPackageBase  = 38.0
	cpuFreqFactor   = 18.0
	cpuLoadFactor   = 30.0
	cpuCoreBase     = 35.0
	cpuCoreFactor   = 25.0
	ramCtrlBase     = 32.0
	ramCtrlFactor   = 20.0
	diskEstBase     = 33.0
	diskIOFactor    = 8.0
	diskLoadFactor  = 6.0
	diskIONormBytes = 256 << 30
)

// osCounters derives CPU, memory and disk temperature estimates from the
// generic utilization and IO counters every platform exposes.
type osCounters struct {
	cache    *sysinfo.Cache
	provider sysinfo.Provider
	rnd      sensor.RandomSource
}

func NewOSCounters(cache *sysinfo.Cache, provider sysinfo.Provider, rnd sensor.RandomSource) Detector {
	return &osCounters{cache: cache, provider: provider, rnd: rnd}
}

func (*osCounters) Name() string { return "os-counters" }

func (d *osCounters) Detect(_ context.Context) (sensor.Map, error) {
	util := d.cache.CPUPercent() / 100
	memUtil := d.cache.MemoryPercent() / 100

	freqNorm := 0.5
	if cur, max, err := d.provider.CPUFrequencyMHz(); err == nil && max > 0 {
		freqNorm = cur / max
	}

	m := make(sensor.Map)

	m["cpu_package"] = newModeled("cpu_package", "CPU Package", sensor.CategoryCPU,
		cpuPackageBase+cpuFreqFactor*freqNorm+cpuLoadFactor*util+sensor.Jitter(d.rnd, 1),
		20, 95, "gopsutil/cpu")

	if physical, _, err := d.provider.CPUCounts(); err == nil {
		for i := 0; i < physical; i++ {
			key := fmt.Sprintf("cpu_core_%d", i)
			m[key] = newModeled(key, fmt.Sprintf("CPU Core %d", i), sensor.CategoryCPU,
				cpuCoreBase+cpuCoreFactor*util+float64(i%4)+sensor.Jitter(d.rnd, 1.5),
				20, 95, "gopsutil/cpu")
		}
	}

	m["ram_controller"] = newModeled("ram_controller", "Memory Controller", sensor.CategoryMemory,
		ramCtrlBase+ramCtrlFactor*memUtil+sensor.Jitter(d.rnd, 1),
		25, 75, "gopsutil/mem")

	if read, write, err := d.provider.DiskIOBytes(); err == nil {
		ioNorm := float64(read+write) / float64(diskIONormBytes)
		if ioNorm > 1 {
			ioNorm = 1
		}
		m["storage_ssd"] = newModeled("storage_ssd", "SSD", sensor.CategoryStorage,
			diskEstBase+diskIOFactor*ioNorm+diskLoadFactor*util+sensor.Jitter(d.rnd, 1),
			25, 60, "gopsutil/disk")
	}

	return m, nil
}
