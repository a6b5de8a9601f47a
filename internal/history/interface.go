package history

import (
	"context"
	"strings"
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
)

// Recorder persists periodic telemetry snapshots.
type Recorder interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is one persisted view of the sensor and fan state.
type Snapshot struct {
	Timestamp       time.Time
	MaxCPUTemp      float64
	MaxGPUTemp      float64
	MeanTemp        float64
	MeasuredSensors int
	ModeledSensors  int
	CPUFanRPM       int
	CPUFanPercent   int
}

// BuildSnapshot condenses the full sensor and fan maps into the summary
// row that gets persisted. Only Celsius channels enter the temperature
// aggregates.
func BuildSnapshot(ts time.Time, sensors sensor.Map, fans sensor.FanMap) *Snapshot {
	s := &Snapshot{Timestamp: ts}

	var sum float64
	var temps int

	for _, sn := range sensors {
		if sn.Origin == sensor.OriginMeasured {
			s.MeasuredSensors++
		} else {
			s.ModeledSensors++
		}

		if !strings.Contains(sn.Unit, "C") {
			continue
		}

		sum += sn.Value
		temps++

		switch sn.Category {
		case sensor.CategoryCPU:
			if sn.Value > s.MaxCPUTemp {
				s.MaxCPUTemp = sn.Value
			}
		case sensor.CategoryGPU:
			if sn.Value > s.MaxGPUTemp {
				s.MaxGPUTemp = sn.Value
			}
		}
	}

	if temps > 0 {
		s.MeanTemp = sum / float64(temps)
	}

	if f, ok := fans["cpu_fan"]; ok {
		s.CPUFanRPM = f.RPM
		s.CPUFanPercent = f.SpeedPercent
	}

	return s
}
