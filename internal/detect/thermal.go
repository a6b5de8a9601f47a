package detect

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
)

// Plausible Celsius window for a genuine reading. Anything outside is a
// misparse or a dead zone and gets dropped.
const (
	minPlausibleC = 0.0
	maxPlausibleC = 150.0
)

// CommandRunner executes an external query, honoring ctx for its hard
// timeout. Injected so tests never spawn processes.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// thermal reads genuinely reported thermal-zone values: platform sensor
// files first, then the lm-sensors utility as a fallback. Everything it
// emits is a measured value.
type thermal struct {
	provider sysinfo.Provider
	run      CommandRunner
}

func NewThermal(provider sysinfo.Provider) Detector {
	return &thermal{provider: provider, run: execRunner}
}

// NewThermalWithRunner is NewThermal with an injectable subprocess runner.
func NewThermalWithRunner(provider sysinfo.Provider, run CommandRunner) Detector {
	return &thermal{provider: provider, run: run}
}

func (*thermal) Name() string { return "thermal-zones" }

func (d *thermal) Detect(ctx context.Context) (sensor.Map, error) {
	readings, err := d.provider.Temperatures()
	if err != nil || len(readings) == 0 {
		readings = d.subprocessReadings(ctx)
	}

	m := make(sensor.Map)
	extra := 0
	for _, r := range readings {
		if r.Celsius < minPlausibleC || r.Celsius > maxPlausibleC {
			continue
		}

		key, name, cat := classifyZone(r.Key)
		if key == "" {
			key = fmt.Sprintf("thermal_zone_%d", extra)
			name = zoneDisplayName(r.Key, extra)
			cat = sensor.CategoryOther
			extra++
		}
		m[key] = newMeasured(key, name, cat, r.Celsius, minPlausibleC, maxPlausibleC, celsius, "thermal-zone")
	}

	return m, nil
}

func (d *thermal) subprocessReadings(ctx context.Context) []sysinfo.TemperatureReading {
	if runtime.GOOS != "linux" {
		return nil
	}

	out, err := d.run(ctx, "sensors", "-u")
	if err != nil {
		return nil
	}

	return ParseThermalOutput(string(out))
}

// ParseThermalOutput extracts temperature readings from free-form
// "key: value" text such as lm-sensors output. The first numeric token of
// each value is taken; kelvin and decikelvin magnitudes are normalized to
// Celsius; implausible values are dropped.
func ParseThermalOutput(text string) []sysinfo.TemperatureReading {
	var readings []sysinfo.TemperatureReading

	for _, line := range strings.Split(text, "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		value, ok := firstNumericToken(rest)
		if !ok {
			continue
		}

		value = normalizeToCelsius(value)
		if value < minPlausibleC || value > maxPlausibleC {
			continue
		}

		readings = append(readings, sysinfo.TemperatureReading{
			Key:     strings.TrimSpace(key),
			Celsius: value,
		})
	}

	return readings
}

func firstNumericToken(s string) (float64, bool) {
	for _, tok := range strings.Fields(s) {
		tok = strings.TrimPrefix(tok, "+")
		tok = strings.TrimSuffix(tok, "°C")
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// normalizeToCelsius converts raw magnitudes: values above 1000 are read
// as decikelvin, values above 200 as kelvin, the rest as Celsius already.
func normalizeToCelsius(v float64) float64 {
	switch {
	case v > 1000:
		return v/10 - 273.15
	case v > 200:
		return v - 273.15
	default:
		return v
	}
}

// classifyZone maps well-known thermal zone labels onto engine sensor keys
// so measured values land on the same keys estimates use.
func classifyZone(zone string) (key, name string, cat sensor.Category) {
	z := strings.ToLower(zone)
	switch {
	case strings.Contains(z, "package"), strings.Contains(z, "tctl"),
		strings.Contains(z, "coretemp"), strings.Contains(z, "k10temp"),
		strings.Contains(z, "cpu"):
		return "cpu_package", "CPU Package", sensor.CategoryCPU
	case strings.Contains(z, "acpitz"), strings.Contains(z, "board"), strings.Contains(z, "pch"):
		return "motherboard", "Motherboard", sensor.CategorySystem
	case strings.Contains(z, "nvme"), strings.Contains(z, "composite"):
		return "storage_nvme", "NVMe SSD", sensor.CategoryStorage
	default:
		return "", "", sensor.CategoryOther
	}
}

func zoneDisplayName(zone string, index int) string {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return fmt.Sprintf("Thermal Zone %d", index)
	}
	return zone
}
