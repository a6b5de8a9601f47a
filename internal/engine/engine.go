// Package engine ties detection, generation and the fan model together
// behind the public telemetry surface.
package engine

import (
	"context"
	"sync"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/detect"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/fan"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/logger"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/synth"
)

// Measured values drift inside this band between detections.
const (
	measuredJitter = 0.5
	measuredFloor  = 20.0
	measuredCeil   = 100.0
)

// Engine owns the sensor map and the fan model. The sensor key set only
// changes through DetectAllSensors; a refresh updates values in place.
type Engine struct {
	chain      *detect.Chain
	gen        *synth.Generator
	fans       *fan.Model
	rnd        sensor.RandomSource
	minSensors int

	// refreshMu serializes refresh ticks; an overlapping tick is skipped
	// rather than queued. stateMu guards the sensor map and fan model.
	refreshMu sync.Mutex
	stateMu   sync.RWMutex
	sensors   sensor.Map
}

func New(chain *detect.Chain, gen *synth.Generator, fans *fan.Model, rnd sensor.RandomSource, minSensors int) *Engine {
	return &Engine{
		chain:      chain,
		gen:        gen,
		fans:       fans,
		rnd:        rnd,
		minSensors: minSensors,
		sensors:    make(sensor.Map),
	}
}

// DetectAllSensors runs the full detection chain and rebuilds the sensor
// map. When detection finds fewer sensors than the configured minimum,
// the synthetic full set fills the gaps and detected values win on key
// collision. The map is replaced atomically; a concurrent refresh sees
// either the old set or the new one, never a partial mix.
func (e *Engine) DetectAllSensors(ctx context.Context) sensor.Map {
	detected := e.chain.DetectAll(ctx)

	merged := detected
	if len(detected) < e.minSensors {
		logger.Info().
			Int("detected", len(detected)).
			Int("minimum", e.minSensors).
			Msg("Detection below minimum, generating synthetic sensor set")

		merged = e.gen.FullSet()
		merged.Merge(detected)
	}

	e.stateMu.Lock()
	e.sensors = merged
	e.stateMu.Unlock()

	logger.Info().Int("sensors", len(merged)).Msg("Sensor detection complete")

	return merged.Clone()
}

// GetUpdatedSensors refreshes every sensor value and returns a copy of
// the map. Measured values drift by a small jitter; modeled values are
// recomputed from one fresh load sample. If a refresh is already in
// flight the tick is skipped and the last snapshot returned.
func (e *Engine) GetUpdatedSensors() sensor.Map {
	if !e.refreshMu.TryLock() {
		logger.Debug().Msg("Refresh already in flight, returning last snapshot")
		return e.snapshot()
	}
	defer e.refreshMu.Unlock()

	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	in := e.gen.SampleInputs()
	gpuCore := e.refreshGPUCore(in)

	for key, s := range e.sensors {
		if key == "gpu_core" {
			continue
		}
		e.sensors[key] = e.refreshOne(s, in, gpuCore)
	}

	return e.sensors.Clone()
}

// refreshGPUCore updates gpu_core ahead of the rest of the map and
// returns the value the other GPU formulas derive from this tick. Without
// a gpu_core sensor the generator's core estimate stands in.
func (e *Engine) refreshGPUCore(in synth.Inputs) float64 {
	s, ok := e.sensors["gpu_core"]
	if !ok {
		return e.gen.GPUCoreValue(in)
	}

	s = e.refreshOne(s, in, 0)
	e.sensors["gpu_core"] = s

	return s.Value
}

// refreshOne computes a sensor's next value. A recompute failure keeps
// the sensor alive on its last value plus drift.
func (e *Engine) refreshOne(s sensor.Sensor, in synth.Inputs, gpuCore float64) sensor.Sensor {
	if s.Origin == sensor.OriginMeasured {
		return e.drift(s)
	}

	fresh, err := e.gen.Recompute(s, in, gpuCore)
	if err != nil {
		logger.Warn().Err(err).Str("sensor", s.Key).Msg("Recompute failed, drifting last value")
		return e.drift(s)
	}

	return fresh
}

// drift nudges a value by the measured jitter band, bounded to the
// plausible window and the sensor's own range.
func (e *Engine) drift(s sensor.Sensor) sensor.Sensor {
	v := s.Value + sensor.Jitter(e.rnd, measuredJitter)
	if v < measuredFloor {
		v = measuredFloor
	}
	if v > measuredCeil {
		v = measuredCeil
	}
	s.Value = s.Clamp(v)

	return s
}

func (e *Engine) snapshot() sensor.Map {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	return e.sensors.Clone()
}

// GetFanStatus runs one fan refresh tick and returns a copy of the fan
// state. A speed override set since the last call survives this tick.
func (e *Engine) GetFanStatus() sensor.FanMap {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	e.fans.Refresh()

	return e.fans.Fans()
}

// SetFanSpeed overrides one fan's speed percent until the next refresh.
// It reports false when no fan with that id exists.
func (e *Engine) SetFanSpeed(id string, percent int) bool {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	ok := e.fans.SetSpeed(id, percent)
	if !ok {
		logger.Debug().Str("fan", id).Msg("Ignoring speed override for unknown fan")
	}

	return ok
}

// SetAllFanSpeeds overrides every fan to the same speed percent until the
// next refresh.
func (e *Engine) SetAllFanSpeeds(percent int) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	e.fans.SetAll(percent)
}
