package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/config"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/detect"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/engine"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/fan"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/history"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/logger"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/pid"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/synth"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Acquire(); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("Cannot start")
		}
		logger.Fatal().Err(err).Msg("Cannot start")
	}
	defer pid.Release()

	recorder, err := history.NewRecorder(history.Config{
		Enabled: cfg.History,
		DBPath:  cfg.HistoryDB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize history recorder")
	}
	defer recorder.Close()

	eng := buildEngine()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	detectCtx, detectCancel := context.WithTimeout(ctx, time.Duration(cfg.DetectTimeout)*time.Second)
	sensors := eng.DetectAllSensors(detectCtx)
	detectCancel()

	logSensorInventory(sensors)

	if err := loop(ctx, eng, recorder); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}

	logger.Info().Msg("Exiting...")
}

func buildEngine() *engine.Engine {
	provider := sysinfo.NewProvider()
	cache := sysinfo.NewCache(provider, time.Duration(cfg.CacheTTL)*time.Second)
	rnd := sensor.NewRandom(time.Now().UnixNano())

	chain := detect.NewChain(time.Duration(cfg.DetectorTimeout)*time.Second,
		detect.NewOSCounters(cache, provider, rnd),
		detect.NewInventory(cache, provider, rnd),
		detect.NewThermal(provider),
		detect.NewGPUInventory(cache, rnd),
		detect.NewCPUID(cache, provider, rnd),
	)

	return engine.New(
		chain,
		synth.NewGenerator(cache, provider, rnd),
		fan.NewModel(cache, rnd),
		rnd,
		cfg.MinSensors,
	)
}

func loop(ctx context.Context, eng *engine.Engine, recorder history.Recorder) error {
	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sensors := eng.GetUpdatedSensors()
			fans := eng.GetFanStatus()

			logStatus(sensors, fans)

			snapshot := history.BuildSnapshot(time.Now(), sensors, fans)
			if err := recorder.Record(ctx, snapshot); err != nil {
				logger.Warn().Err(err).Msg("Failed to record history snapshot")
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func logSensorInventory(sensors sensor.Map) {
	measured := 0
	for _, s := range sensors {
		if s.Origin == sensor.OriginMeasured {
			measured++
		}
	}

	logger.Info().
		Int("sensors", len(sensors)).
		Int("measured", measured).
		Int("modeled", len(sensors)-measured).
		Msg("Sensor inventory ready")
}

func logStatus(sensors sensor.Map, fans sensor.FanMap) {
	event := logger.Info()

	for _, key := range []string{"cpu_package", "gpu_core", "motherboard"} {
		if s, ok := sensors[key]; ok {
			event.Float64(key, s.Value)
		}
	}

	if f, ok := fans["cpu_fan"]; ok {
		event.Int("cpu_fan_rpm", f.RPM)
		event.Int("cpu_fan_percent", f.SpeedPercent)
		event.Str("cpu_fan_status", string(f.Status))
	}

	event.Msg("")
}
