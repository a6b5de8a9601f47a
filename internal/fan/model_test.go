package fan

import (
	"testing"
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadProvider struct {
	sysinfo.Provider

	cpuPercent float64
}

func (p *loadProvider) CPUPercent() (float64, error)    { return p.cpuPercent, nil }
func (p *loadProvider) MemoryPercent() (float64, error) { return 50, nil }

func newModel(cpuPercent float64) *Model {
	p := &loadProvider{cpuPercent: cpuPercent}
	return NewModel(sysinfo.NewCache(p, time.Minute), sensor.NewRandom(1))
}

func TestModelHasFixedFanSet(t *testing.T) {
	m := newModel(30)

	fans := m.Fans()

	require.Len(t, fans, 5)
	for _, id := range []string{"cpu_fan", "gpu_fan", "case_fan_1", "case_fan_2", "case_fan_3"} {
		assert.Contains(t, fans, id)
	}
}

func TestRefreshKeepsFansInBounds(t *testing.T) {
	for _, load := range []float64{0, 50, 100} {
		m := newModel(load)

		for i := 0; i < 20; i++ {
			m.Refresh()
			for id, f := range m.Fans() {
				assert.GreaterOrEqual(t, f.SpeedPercent, minPercent, "fan %s", id)
				assert.LessOrEqual(t, f.SpeedPercent, maxPercent, "fan %s", id)
				assert.GreaterOrEqual(t, f.RPM, minRPM, "fan %s", id)
				assert.LessOrEqual(t, f.RPM, f.MaxRPM, "fan %s", id)
				assert.Equal(t, sensor.StatusForPercent(f.SpeedPercent), f.Status, "fan %s", id)
			}
		}
	}
}

func TestCPUFanTracksLoad(t *testing.T) {
	idle := newModel(0)
	busy := newModel(100)

	assert.Greater(t, busy.Fans()["cpu_fan"].SpeedPercent, idle.Fans()["cpu_fan"].SpeedPercent)
}

func TestSetSpeedDerivesRPM(t *testing.T) {
	m := newModel(30)

	ok := m.SetSpeed("cpu_fan", 75)

	require.True(t, ok)
	f := m.Fans()["cpu_fan"]
	assert.Equal(t, 75, f.SpeedPercent)
	assert.Equal(t, 1875, f.RPM)
	assert.Equal(t, sensor.FanStatusMedium, f.Status)
}

func TestSetSpeedUnknownFan(t *testing.T) {
	m := newModel(30)
	before := m.Fans()

	ok := m.SetSpeed("chassis_fan_9", 50)

	assert.False(t, ok)
	assert.Equal(t, before, m.Fans())
}

func TestSetSpeedClampsPercent(t *testing.T) {
	m := newModel(30)

	require.True(t, m.SetSpeed("gpu_fan", 150))
	assert.Equal(t, 100, m.Fans()["gpu_fan"].SpeedPercent)

	require.True(t, m.SetSpeed("gpu_fan", 2))
	assert.Equal(t, 10, m.Fans()["gpu_fan"].SpeedPercent)
}

func TestSetAllOverridesEveryFan(t *testing.T) {
	m := newModel(30)

	m.SetAll(90)

	for id, f := range m.Fans() {
		assert.Equal(t, 90, f.SpeedPercent, "fan %s", id)
		assert.Equal(t, sensor.FanStatusHigh, f.Status, "fan %s", id)
	}
}

func TestOverrideSurvivesOneRefresh(t *testing.T) {
	m := newModel(0)

	m.SetAll(100)

	m.Refresh()
	assert.Equal(t, 100, m.Fans()["cpu_fan"].SpeedPercent)

	// Idle load cannot sustain full speed once the model takes back over.
	m.Refresh()
	assert.Less(t, m.Fans()["cpu_fan"].SpeedPercent, 100)
}

func TestStatusThresholds(t *testing.T) {
	assert.Equal(t, sensor.FanStatusNormal, sensor.StatusForPercent(60))
	assert.Equal(t, sensor.FanStatusMedium, sensor.StatusForPercent(61))
	assert.Equal(t, sensor.FanStatusMedium, sensor.StatusForPercent(80))
	assert.Equal(t, sensor.FanStatusHigh, sensor.StatusForPercent(81))
}
