package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/logger"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
)

// Chain runs detectors in a fixed priority order and merges their partial
// maps left-to-right, last writer wins on exact key collision. A detector
// that errors, panics or exceeds its timeout contributes nothing; the
// chain always completes.
type Chain struct {
	detectors       []Detector
	detectorTimeout time.Duration
}

// NewChain builds a chain over the given detectors. Order is fixed so key
// collisions resolve deterministically.
func NewChain(detectorTimeout time.Duration, detectors ...Detector) *Chain {
	return &Chain{
		detectors:       detectors,
		detectorTimeout: detectorTimeout,
	}
}

// DetectAll runs every detector and returns the merged map. ctx bounds the
// aggregate detection time; a cancelled context stops launching further
// detectors but never discards contributions already merged.
func (c *Chain) DetectAll(ctx context.Context) sensor.Map {
	merged := make(sensor.Map)

	for _, d := range c.detectors {
		if ctx.Err() != nil {
			logger.Debug().Str("detector", d.Name()).Msg("Detection window closed, skipping remaining detectors")
			break
		}

		found := c.runOne(ctx, d)
		if len(found) > 0 {
			logger.Debug().Str("detector", d.Name()).Int("sensors", len(found)).Msg("Detector contributed sensors")
		}
		merged.Merge(found)
	}

	return merged
}

// runOne executes a single detector under its individual timeout,
// converting panics and errors into an empty contribution.
func (c *Chain) runOne(ctx context.Context, d Detector) sensor.Map {
	dctx, cancel := context.WithTimeout(ctx, c.detectorTimeout)
	defer cancel()

	type outcome struct {
		found sensor.Map
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", rec)}
			}
		}()
		found, err := d.Detect(dctx)
		done <- outcome{found: found, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			logger.Debug().Err(out.err).Str("detector", d.Name()).Msg("Detector failed")
			return nil
		}
		return out.found
	case <-dctx.Done():
		logger.Debug().Str("detector", d.Name()).Dur("timeout", c.detectorTimeout).Msg("Detector timed out")
		return nil
	}
}
