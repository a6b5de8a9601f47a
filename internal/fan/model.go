// Package fan models the machine's cooling fans. Speeds follow system
// load between refreshes; callers may override a speed, and the override
// survives one refresh tick before the variation model takes back over.
package fan

import (
	"math"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

const (
	cpuFanMaxRPM  = 2500
	gpuFanMaxRPM  = 3000
	caseFanMaxRPM = 1500

	minRPM     = 200
	minPercent = 10
	maxPercent = 100
)

// Model tracks a fixed set of fans. It is not safe for concurrent use;
// the caller serializes access.
type Model struct {
	cache *sysinfo.Cache
	rnd   sensor.RandomSource
	fans  sensor.FanMap

	// overridden marks fans whose speed was set by a caller since the
	// last refresh. The next refresh honors the override once, then the
	// variation model takes back over.
	overridden map[string]bool
}

func NewModel(cache *sysinfo.Cache, rnd sensor.RandomSource) *Model {
	m := &Model{
		cache:      cache,
		rnd:        rnd,
		overridden: make(map[string]bool),
		fans: sensor.FanMap{
			"cpu_fan":    {ID: "cpu_fan", Name: "CPU Fan", MaxRPM: cpuFanMaxRPM},
			"gpu_fan":    {ID: "gpu_fan", Name: "GPU Fan", MaxRPM: gpuFanMaxRPM},
			"case_fan_1": {ID: "case_fan_1", Name: "Case Fan 1", MaxRPM: caseFanMaxRPM},
			"case_fan_2": {ID: "case_fan_2", Name: "Case Fan 2", MaxRPM: caseFanMaxRPM},
			"case_fan_3": {ID: "case_fan_3", Name: "Case Fan 3", MaxRPM: caseFanMaxRPM},
		},
	}
	m.Refresh()

	return m
}

// Fans returns a copy of the current fan state.
func (m *Model) Fans() sensor.FanMap {
	return m.fans.Clone()
}

// Refresh recomputes every fan from the current system load. The CPU fan
// tracks CPU load across a wide envelope, the GPU fan follows its own
// load, and the case fans idle around a constant baseline. A fan with a
// pending caller override keeps the overridden speed through this tick.
func (m *Model) Refresh() {
	cpuLoad := m.cache.CPUPercent() / 100
	gpuLoad := m.rnd.Float64()

	m.refreshOne("cpu_fan", 30+55*cpuLoad+sensor.Jitter(m.rnd, 5))
	m.refreshOne("gpu_fan", 25+50*gpuLoad+sensor.Jitter(m.rnd, 5))

	for _, id := range []string{"case_fan_1", "case_fan_2", "case_fan_3"} {
		m.refreshOne(id, 35+10*cpuLoad+sensor.Jitter(m.rnd, 6))
	}
}

func (m *Model) refreshOne(id string, percent float64) {
	if m.overridden[id] {
		delete(m.overridden, id)
		return
	}

	m.apply(id, percent)
}

// SetSpeed overrides one fan's speed percent. It reports false when no
// fan with that id exists; the percent is clamped into the valid band.
func (m *Model) SetSpeed(id string, percent int) bool {
	if _, ok := m.fans[id]; !ok {
		return false
	}

	m.apply(id, float64(percent))
	m.overridden[id] = true

	return true
}

// SetAll overrides every fan to the same speed percent.
func (m *Model) SetAll(percent int) {
	for id := range m.fans {
		m.apply(id, float64(percent))
		m.overridden[id] = true
	}
}

// apply sets one fan's percent, deriving RPM and status from it.
func (m *Model) apply(id string, percent float64) {
	f := m.fans[id]

	f.SpeedPercent = clampPercent(int(math.Round(percent)))
	f.RPM = clampRPM(int(math.Round(float64(f.SpeedPercent)/100*float64(f.MaxRPM))), f.MaxRPM)
	f.Status = sensor.StatusForPercent(f.SpeedPercent)

	m.fans[id] = f
}

func clampPercent(p int) int {
	if p < minPercent {
		return minPercent
	}
	if p > maxPercent {
		return maxPercent
	}
	return p
}

func clampRPM(rpm, max int) int {
	if rpm < minRPM {
		return minRPM
	}
	if rpm > max {
		return max
	}
	return rpm
}
