package detect

import (
	"context"
	"strings"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

// Inventory-specific base temperatures. SSDs run cooler than spinning
// disks; NVMe controllers run hotter than both.
const (
	boardBase      = 34.0
	chipsetBase    = 36.0
	psuBase        = 35.0
	ssdBase        = 33.0
	hddBase        = 38.0
	nvmeBase       = 40.0
	smallMemoryGiB = 8
)

// inventory enumerates board, power-supply and disk hardware and derives
// plausible estimates seeded with inventory-specific base constants where
// no raw sensor temperature is exposed.
type inventory struct {
	cache    *sysinfo.Cache
	provider sysinfo.Provider
	rnd      sensor.RandomSource
}

func NewInventory(cache *sysinfo.Cache, provider sysinfo.Provider, rnd sensor.RandomSource) Detector {
	return &inventory{cache: cache, provider: provider, rnd: rnd}
}

func (*inventory) Name() string { return "hardware-inventory" }

func (d *inventory) Detect(_ context.Context) (sensor.Map, error) {
	util := d.cache.CPUPercent() / 100
	memUtil := d.cache.MemoryPercent() / 100

	m := make(sensor.Map)

	m["motherboard"] = newModeled("motherboard", "Motherboard", sensor.CategorySystem,
		boardBase+9*util+sensor.Jitter(d.rnd, 1), 25, 60, "inventory/board")
	m["chipset"] = newModeled("chipset", "Chipset", sensor.CategorySystem,
		chipsetBase+11*util+sensor.Jitter(d.rnd, 1.5), 28, 70, "inventory/board")
	m["psu"] = newModeled("psu", "Power Supply", sensor.CategorySystem,
		psuBase+18*(util+memUtil)/2+sensor.Jitter(d.rnd, 1.5), 28, 70, "inventory/power")

	hasSSD, hasHDD, hasNVMe := d.inferStorage()
	if hasSSD {
		m["storage_ssd"] = newModeled("storage_ssd", "SSD", sensor.CategoryStorage,
			ssdBase+8*util+sensor.Jitter(d.rnd, 1), 25, 60, "inventory/disk")
	}
	if hasHDD {
		m["storage_hdd"] = newModeled("storage_hdd", "HDD", sensor.CategoryStorage,
			hddBase+7*util+sensor.Jitter(d.rnd, 1.5), 28, 65, "inventory/disk")
	}
	if hasNVMe {
		m["storage_nvme"] = newModeled("storage_nvme", "NVMe SSD", sensor.CategoryStorage,
			nvmeBase+10*util+sensor.Jitter(d.rnd, 1.5), 30, 75, "inventory/disk")
	}

	return m, nil
}

// inferStorage guesses the installed disk kinds from partition device
// names, falling back to an installed-memory heuristic when partition
// names carry no signal.
func (d *inventory) inferStorage() (hasSSD, hasHDD, hasNVMe bool) {
	parts, err := d.provider.Partitions()
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

	total, err := d.provider.TotalMemoryBytes()
	if err != nil {
		return true, false, false
	}
	if total>>30 >= smallMemoryGiB {
		return true, false, total>>30 >= 2*smallMemoryGiB
	}

	return false, true, false
}
