package detect

import "github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"

const celsius = "°C"

// newModeled builds a load-derived estimate sensor, clamped to its range.
func newModeled(key, name string, cat sensor.Category, value, lo, hi float64, method string) sensor.Sensor {
	s := sensor.Sensor{
		Key:      key,
		Name:     name,
		Category: cat,
		Min:      lo,
		Max:      hi,
		Unit:     celsius,
		Method:   method,
		Origin:   sensor.OriginModeled,
	}
	s.Value = s.Clamp(value)
	return s
}

// newMeasured builds a sensor around a genuinely queried hardware value.
func newMeasured(key, name string, cat sensor.Category, value, lo, hi float64, unit, method string) sensor.Sensor {
	s := sensor.Sensor{
		Key:      key,
		Name:     name,
		Category: cat,
		Min:      lo,
		Max:      hi,
		Unit:     unit,
		Method:   method,
		Origin:   sensor.OriginMeasured,
	}
	s.Value = s.Clamp(value)
	return s
}
