package detect

import (
	"context"
	"testing"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThermalOutput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []sysinfo.TemperatureReading
	}{
		{
			name: "lm-sensors raw format",
			text: "coretemp-isa-0000\nPackage id 0:\n  temp1_input: 45.000\n",
			want: []sysinfo.TemperatureReading{{Key: "temp1_input", Celsius: 45}},
		},
		{
			name: "human readable with sign and unit",
			text: "Tctl:  +52.5°C\n",
			want: []sysinfo.TemperatureReading{{Key: "Tctl", Celsius: 52.5}},
		},
		{
			name: "kelvin magnitude normalized",
			text: "zone0: 318.15\n",
			want: []sysinfo.TemperatureReading{{Key: "zone0", Celsius: 45}},
		},
		{
			name: "decikelvin magnitude normalized",
			text: "zone1: 3181.5\n",
			want: []sysinfo.TemperatureReading{{Key: "zone1", Celsius: 45}},
		},
		{
			name: "implausible values dropped",
			text: "zone2: -12\nzone3: 180\n",
			want: nil,
		},
		{
			name: "non numeric lines skipped",
			text: "adapter: ISA adapter\nno colon here\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseThermalOutput(tt.text)

			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.Key, got[i].Key)
				assert.InDelta(t, want.Celsius, got[i].Celsius, 0.01)
			}
		})
	}
}

type temperatureProvider struct {
	sysinfo.Provider

	readings []sysinfo.TemperatureReading
	err      error
}

func (p *temperatureProvider) Temperatures() ([]sysinfo.TemperatureReading, error) {
	return p.readings, p.err
}

func TestThermalClassifiesKnownZones(t *testing.T) {
	provider := &temperatureProvider{readings: []sysinfo.TemperatureReading{
		{Key: "Package id 0", Celsius: 48},
		{Key: "acpitz", Celsius: 35},
		{Key: "nvme Composite", Celsius: 41},
		{Key: "iwlwifi", Celsius: 44},
	}}

	d := NewThermal(provider)
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	require.Len(t, m, 4)
	assert.InDelta(t, 48, m["cpu_package"].Value, 0.001)
	assert.InDelta(t, 35, m["motherboard"].Value, 0.001)
	assert.InDelta(t, 41, m["storage_nvme"].Value, 0.001)
	assert.InDelta(t, 44, m["thermal_zone_0"].Value, 0.001)
}

func TestThermalFallsBackToSubprocess(t *testing.T) {
	provider := &temperatureProvider{err: assert.AnError}
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "sensors", name)
		return []byte("k10temp:  +61.0°C\n"), nil
	}

	d := NewThermalWithRunner(provider, run)
	m, err := d.Detect(context.Background())

	require.NoError(t, err)

	// Subprocess fallback only runs on Linux hosts.
	if len(m) > 0 {
		assert.InDelta(t, 61, m["cpu_package"].Value, 0.001)
	}
}

func TestThermalDropsImplausibleReadings(t *testing.T) {
	provider := &temperatureProvider{readings: []sysinfo.TemperatureReading{
		{Key: "Package id 0", Celsius: -40},
		{Key: "acpitz", Celsius: 200},
	}}

	d := NewThermal(provider)
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	assert.Empty(t, m)
}
