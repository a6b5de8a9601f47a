package detect

import (
	"context"
	"strings"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

// Manufacturer-specific idle base temperatures. AMD desktop parts report
// Tctl with an offset, so their base sits a few degrees higher.
const (
	intelBase   = 36.0
	amdBase     = 41.0
	genericBase = 39.0
)

// cpuID identifies the CPU vendor and derives a brand-labelled package
// estimate from a manufacturer base plus a load-proportional term.
type cpuID struct {
	cache    *sysinfo.Cache
	provider sysinfo.Provider
	rnd      sensor.RandomSource
}

func NewCPUID(cache *sysinfo.Cache, provider sysinfo.Provider, rnd sensor.RandomSource) Detector {
	return &cpuID{cache: cache, provider: provider, rnd: rnd}
}

func (*cpuID) Name() string { return "cpu-identification" }

func (d *cpuID) Detect(_ context.Context) (sensor.Map, error) {
	vendor, brand, err := d.provider.CPUIdentity()
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrDetectorFailed, err)
	}

	base := genericBase
	v := strings.ToLower(vendor)
	switch {
	case strings.Contains(v, "intel"):
		base = intelBase
	case strings.Contains(v, "amd"):
		base = amdBase
	}

	name := strings.TrimSpace(brand)
	if name == "" {
		name = "CPU"
	}

	util := d.cache.CPUPercent() / 100

	m := make(sensor.Map)
	m["cpu_vendor"] = newModeled("cpu_vendor", name, sensor.CategoryCPU,
		base+28*util+sensor.Jitter(d.rnd, 1), 20, 95, "cpuid")

	return m, nil
}
