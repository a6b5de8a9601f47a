// Package synth generates the synthetic sensor set used when hardware
// detection comes up short, and owns the recompute formulas every modeled
// sensor is refreshed with.
package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

const (
	defaultCoreCount = 4
	maxCoreCount     = 16
	maxThreadCount   = 32
	minRAMModules    = 2
	maxRAMModules    = 8
	dimmSlotCount    = 4
	pcieSlotCount    = 3

	// Disk activity between two samples is normalized against this window.
	diskActivityNormBytes = 64 << 20
)

// Inputs is one consistent snapshot of system load. All loads are
// fractions in [0, 1] and are sampled exactly once per refresh so every
// formula in a tick sees the same system state.
type Inputs struct {
	CPULoad      float64
	MemLoad      float64
	GPULoad      float64
	DiskActivity float64
	FreqNorm     float64
}

// Generator derives plausible temperature values from real system load.
// Values are load-derived estimates, not hardware readings, so everything
// it emits carries OriginModeled.
type Generator struct {
	cache    *sysinfo.Cache
	provider sysinfo.Provider
	rnd      sensor.RandomSource

	lastRead  uint64
	lastWrite uint64
	ioPrimed  bool
}

func NewGenerator(cache *sysinfo.Cache, provider sysinfo.Provider, rnd sensor.RandomSource) *Generator {
	return &Generator{
		cache:    cache,
		provider: provider,
		rnd:      rnd,
	}
}

// SampleInputs queries system load once. No real GPU load source exists
// here, so GPU load is drawn fresh each tick.
func (g *Generator) SampleInputs() Inputs {
	in := Inputs{
		CPULoad:  g.cache.CPUPercent() / 100,
		MemLoad:  g.cache.MemoryPercent() / 100,
		GPULoad:  g.rnd.Float64(),
		FreqNorm: 0.5,
	}

	if cur, max, err := g.provider.CPUFrequencyMHz(); err == nil && max > 0 {
		in.FreqNorm = cur / max
	}

	in.DiskActivity = g.sampleDiskActivity()

	return in
}

// sampleDiskActivity returns the normalized IO volume since the previous
// sample. The first sample primes the counters and reports zero.
func (g *Generator) sampleDiskActivity() float64 {
	read, write, err := g.provider.DiskIOBytes()
	if err != nil {
		return 0
	}

	if !g.ioPrimed {
		g.lastRead, g.lastWrite = read, write
		g.ioPrimed = true
		return 0
	}

	var delta uint64
	if read >= g.lastRead {
		delta += read - g.lastRead
	}
	if write >= g.lastWrite {
		delta += write - g.lastWrite
	}
	g.lastRead, g.lastWrite = read, write

	activity := float64(delta) / float64(diskActivityNormBytes)
	if activity > 1 {
		activity = 1
	}

	return activity
}

// GPUCoreValue computes the GPU core estimate for this tick. The other
// GPU formulas take it as a parameter so hotspot stays above core and fan
// stays below it within a single refresh.
func (g *Generator) GPUCoreValue(in Inputs) float64 {
	s := g.build("gpu_core", in, 0)
	return s.Value
}

// FullSet produces the complete synthetic sensor map for a machine whose
// hardware exposes too little. Storage kinds follow the same partition and
// memory heuristics detection uses.
func (g *Generator) FullSet() sensor.Map {
	in := g.SampleInputs()
	gpuCore := g.GPUCoreValue(in)

	keys := []string{
		"cpu_package",
		"ram_controller",
		"gpu_core", "gpu_hotspot", "gpu_memory", "gpu_vrm", "gpu_fan",
		"motherboard", "chipset", "south_bridge", "mb_vrm", "psu",
	}

	cores, threads := defaultCoreCount, 2*defaultCoreCount
	if physical, logical, err := g.provider.CPUCounts(); err == nil && physical > 0 {
		cores = physical
		if cores > maxCoreCount {
			cores = maxCoreCount
		}
		threads = logical
		if threads > maxThreadCount {
			threads = maxThreadCount
		}
	}
	for i := 0; i < cores; i++ {
		keys = append(keys, fmt.Sprintf("cpu_core_%d", i))
	}
	for i := 0; i < threads; i++ {
		keys = append(keys, fmt.Sprintf("cpu_thread_%d", i))
	}

	for i := 0; i < g.ramModuleCount(); i++ {
		keys = append(keys, fmt.Sprintf("ram_module_%d", i))
	}
	for i := 1; i <= dimmSlotCount; i++ {
		keys = append(keys, fmt.Sprintf("dimm_slot_%d", i))
	}

	for i := 1; i <= pcieSlotCount; i++ {
		keys = append(keys, fmt.Sprintf("pcie_slot_%d", i))
	}

	hasSSD, hasHDD, hasNVMe := g.inferStorage()
	if hasSSD {
		keys = append(keys, "storage_ssd")
	}
	if hasHDD {
		keys = append(keys, "storage_hdd")
	}
	if hasNVMe {
		keys = append(keys, "storage_nvme")
	}

	m := make(sensor.Map, len(keys))
	for _, key := range keys {
		s := g.build(key, in, gpuCore)
		if key == "gpu_core" {
			// The other GPU formulas were derived from this exact value.
			s.Value = s.Clamp(gpuCore)
		}
		m[key] = s
	}

	return m
}

// ramModuleCount estimates installed module count as one module per 4 GiB.
func (g *Generator) ramModuleCount() int {
	total, err := g.provider.TotalMemoryBytes()
	if err != nil {
		return minRAMModules
	}

	modules := int(total >> 32)
	if modules < minRAMModules {
		modules = minRAMModules
	}
	if modules > maxRAMModules {
		modules = maxRAMModules
	}

	return modules
}

func (g *Generator) inferStorage() (hasSSD, hasHDD, hasNVMe bool) {
	parts, err := g.provider.Partitions()
	if err == nil {
		for _, p := range parts {
			device := strings.ToLower(p.Device)
			switch {
			case strings.Contains(device, "nvme"):
				hasNVMe = true
			case strings.Contains(device, "sd"):
				hasSSD = true
			case strings.Contains(device, "hd"):
				hasHDD = true
			}
		}
	}

	if hasSSD || hasHDD || hasNVMe {
		return hasSSD, hasHDD, hasNVMe
	}

	total, err := g.provider.TotalMemoryBytes()
	if err != nil {
		return true, false, false
	}
	if total>>30 >= 8 {
		return true, false, total>>30 >= 16
	}

	return false, true, false
}

// Recompute re-derives a modeled sensor from fresh inputs using the same
// formula family it was generated with. gpuCore is the core value computed
// for this tick; passing it keeps the GPU sensors mutually consistent.
func (g *Generator) Recompute(s sensor.Sensor, in Inputs, gpuCore float64) (sensor.Sensor, error) {
	fresh, ok := g.formula(s.Key, in, gpuCore)
	if !ok {
		return s, errors.New().WithData(errors.ErrUnknownSensor, s.Key)
	}

	s.Value = s.Clamp(fresh)

	return s, nil
}

// build constructs a complete synthetic sensor for key. Only called with
// keys the formula table knows.
func (g *Generator) build(key string, in Inputs, gpuCore float64) sensor.Sensor {
	name, cat, lo, hi, unit, method := describe(key)

	s := sensor.Sensor{
		Key:      key,
		Name:     name,
		Category: cat,
		Min:      lo,
		Max:      hi,
		Unit:     unit,
		Method:   method,
		Origin:   sensor.OriginModeled,
	}

	value, _ := g.formula(key, in, gpuCore)
	s.Value = s.Clamp(value)

	return s
}

// formula computes the raw (pre-clamp) value for a known sensor key.
func (g *Generator) formula(key string, in Inputs, gpuCore float64) (float64, bool) {
	j := func(amplitude float64) float64 { return sensor.Jitter(g.rnd, amplitude) }

	switch key {
	case "cpu_package":
		return 38 + 18*in.FreqNorm + 30*in.CPULoad + j(1), true
	case "cpu_vendor":
		return 39 + 28*in.CPULoad + j(1), true
	case "ram_controller":
		return 32 + 20*in.MemLoad + j(1), true
	case "gpu_core":
		return 42 + 28*in.GPULoad + j(2), true
	case "gpu_hotspot":
		return gpuCore + 6 + 4*in.GPULoad + j(1), true
	case "gpu_memory":
		return gpuCore - 4 - 2*in.MemLoad + j(1), true
	case "gpu_vrm":
		return gpuCore + 2 + 3*in.GPULoad + j(1), true
	case "gpu_fan":
		return gpuCore - 10 - 5*in.GPULoad + j(2), true
	case "motherboard":
		return 34 + 9*in.CPULoad + j(1), true
	case "chipset":
		return 36 + 11*in.CPULoad + j(1.5), true
	case "south_bridge":
		return 35 + 9*in.CPULoad + j(1.5), true
	case "mb_vrm":
		return 38 + 20*in.CPULoad + j(1.5), true
	case "psu":
		return 35 + 18*(in.CPULoad+in.MemLoad)/2 + j(1.5), true
	case "storage_ssd":
		return 33 + 8*in.DiskActivity + 6*in.CPULoad + j(1), true
	case "storage_hdd":
		return 38 + 6*in.DiskActivity + 4*in.CPULoad + j(1.5), true
	case "storage_nvme":
		return 40 + 12*in.DiskActivity + 6*in.CPULoad + j(1.5), true
	}

	switch {
	case strings.HasPrefix(key, "cpu_core_"):
		i := keyIndex(key)
		return 35 + 25*in.CPULoad + float64(i%4) + j(1.5), true
	case strings.HasPrefix(key, "cpu_thread_"):
		i := keyIndex(key)
		return 33 + 22*in.CPULoad + 0.5*float64(i%8) + j(1.5), true
	case strings.HasPrefix(key, "ram_module_"):
		i := keyIndex(key)
		return 30 + 15*in.MemLoad + float64(i%2) + j(1), true
	case strings.HasPrefix(key, "dimm_slot_"):
		i := keyIndex(key)
		return 29 + 12*in.MemLoad + 0.5*float64(i%4) + j(1), true
	case strings.HasPrefix(key, "pcie_slot_"):
		i := keyIndex(key)
		return 32 + 8*in.GPULoad + float64(i%3) + j(1), true
	}

	return 0, false
}

func keyIndex(key string) int {
	i, err := strconv.Atoi(key[strings.LastIndex(key, "_")+1:])
	if err != nil {
		return 0
	}
	return i
}

// describe returns the static attributes for a known synthetic sensor key.
func describe(key string) (name string, cat sensor.Category, lo, hi float64, unit, method string) {
	type attrs struct {
		name   string
		cat    sensor.Category
		lo, hi float64
		unit   string
		method string
	}

	table := map[string]attrs{
		"cpu_package":    {"CPU Package", sensor.CategoryCPU, 20, 95, "°C", "model: cpu-load"},
		"ram_controller": {"Memory Controller", sensor.CategoryMemory, 25, 75, "°C", "model: memory-load"},
		"gpu_core":       {"GPU Core", sensor.CategoryGPU, 30, 90, "°C", "model: gpu-load"},
		"gpu_hotspot":    {"GPU Hotspot", sensor.CategoryGPU, 35, 105, "°C", "model: gpu-load"},
		"gpu_memory":     {"GPU Memory", sensor.CategoryGPU, 28, 85, "°C", "model: gpu-load"},
		"gpu_vrm":        {"GPU VRM", sensor.CategoryGPU, 30, 90, "°C", "model: gpu-load"},
		"gpu_fan":        {"GPU Fan", sensor.CategoryGPU, 20, 80, "%", "model: gpu-load"},
		"motherboard":    {"Motherboard", sensor.CategorySystem, 25, 60, "°C", "model: board"},
		"chipset":        {"Chipset", sensor.CategorySystem, 28, 70, "°C", "model: board"},
		"south_bridge":   {"South Bridge", sensor.CategorySystem, 27, 65, "°C", "model: board"},
		"mb_vrm":         {"Motherboard VRM", sensor.CategorySystem, 30, 85, "°C", "model: board"},
		"psu":            {"Power Supply", sensor.CategorySystem, 28, 70, "°C", "model: power"},
		"storage_ssd":    {"SSD", sensor.CategoryStorage, 25, 60, "°C", "model: storage"},
		"storage_hdd":    {"HDD", sensor.CategoryStorage, 28, 65, "°C", "model: storage"},
		"storage_nvme":   {"NVMe SSD", sensor.CategoryStorage, 30, 75, "°C", "model: storage"},
	}

	if a, ok := table[key]; ok {
		return a.name, a.cat, a.lo, a.hi, a.unit, a.method
	}

	i := keyIndex(key)
	switch {
	case strings.HasPrefix(key, "cpu_core_"):
		return fmt.Sprintf("CPU Core %d", i), sensor.CategoryCPU, 20, 95, "°C", "model: cpu-load"
	case strings.HasPrefix(key, "cpu_thread_"):
		return fmt.Sprintf("CPU Thread %d", i), sensor.CategoryCPU, 20, 95, "°C", "model: cpu-load"
	case strings.HasPrefix(key, "ram_module_"):
		return fmt.Sprintf("RAM Module %d", i), sensor.CategoryMemory, 24, 70, "°C", "model: memory-load"
	case strings.HasPrefix(key, "dimm_slot_"):
		return fmt.Sprintf("DIMM Slot %d", i), sensor.CategoryMemory, 22, 65, "°C", "model: memory-load"
	case strings.HasPrefix(key, "pcie_slot_"):
		return fmt.Sprintf("PCIe Slot %d", i), sensor.CategorySystem, 25, 60, "°C", "model: board"
	}

	return key, sensor.CategoryOther, 0, 150, "°C", "model"
}
