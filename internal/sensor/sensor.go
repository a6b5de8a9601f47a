package sensor

import "math"

// Category groups sensors for display and filtering.
type Category string

const (
	CategoryCPU     Category = "CPU"
	CategoryGPU     Category = "GPU"
	CategoryMemory  Category = "Memory"
	CategoryStorage Category = "Storage"
	CategorySystem  Category = "System"
	CategoryOther   Category = "Other"
)

// Origin records whether a sensor value was read from hardware or derived
// from a load model. It is the sole discriminator between the two; the
// free-text Method field is display provenance only.
type Origin int

const (
	OriginMeasured Origin = iota
	OriginModeled
)

func (o Origin) String() string {
	if o == OriginMeasured {
		return "measured"
	}
	return "modeled"
}

// Sensor is one named telemetry channel with a declared valid range.
type Sensor struct {
	Key      string
	Name     string
	Category Category
	Value    float64
	Min      float64
	Max      float64
	Unit     string
	Method   string
	Origin   Origin
}

// Clamp bounds v to the sensor's declared range, mapping non-finite input
// to the lower bound.
func (s Sensor) Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.Min
	}
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// InRange reports whether the current value is finite and within bounds.
func (s Sensor) InRange() bool {
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return false
	}
	return s.Value >= s.Min && s.Value <= s.Max
}

// Map holds sensors by key. The engine owns its map exclusively; callers
// only ever see copies.
type Map map[string]Sensor

// Clone returns an independent copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every sensor from other into m, overwriting on exact key
// collision (last writer wins).
func (m Map) Merge(other Map) {
	for k, v := range other {
		m[k] = v
	}
}
