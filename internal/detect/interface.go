package detect

import (
	"context"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
)

// Detector is one independent strategy for discovering sensors from the
// host platform. A detector returns whatever partial map it could build;
// failure means an empty contribution, never a chain abort.
type Detector interface {
	// Name identifies the detector in logs.
	Name() string

	// Detect discovers sensors, honoring ctx for cancellation. Expensive
	// platform queries (subprocesses, device enumeration) belong here and
	// only here; the steady-state refresh path never calls Detect.
	Detect(ctx context.Context) (sensor.Map, error)
}
