package detect

import (
	"context"
	"testing"

	apperrors "github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGPUDevice struct {
	name    string
	nameErr error
	temp    float64
	tempErr error
	fan     float64
	fanErr  error
	memMiB  uint64
	memErr  error
}

func (d *fakeGPUDevice) Name() (string, error) { return d.name, d.nameErr }

func (d *fakeGPUDevice) TemperatureC() (float64, error) { return d.temp, d.tempErr }

func (d *fakeGPUDevice) FanPercent() (float64, error) { return d.fan, d.fanErr }

func (d *fakeGPUDevice) MemoryMiB() (uint64, error) { return d.memMiB, d.memErr }

type fakeGPULibrary struct {
	initErr    error
	devices    []gpuDevice
	devicesErr error
	shutdowns  int
}

func (l *fakeGPULibrary) Init() error { return l.initErr }
func (l *fakeGPULibrary) Shutdown()   { l.shutdowns++ }

func (l *fakeGPULibrary) Devices() ([]gpuDevice, error) {
	return l.devices, l.devicesErr
}

func TestGPUInventoryEmitsAdapterSensors(t *testing.T) {
	lib := &fakeGPULibrary{devices: []gpuDevice{
		&fakeGPUDevice{name: "GeForce RTX 3070", temp: 58, fan: 42, memMiB: 8192},
	}}
	provider := &fakeProvider{memPercent: 50}

	d := NewGPUInventoryWithLibrary(lib, newTestCache(provider), testRandom())
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	require.Len(t, m, 4)

	assert.Equal(t, sensor.OriginMeasured, m["gpu_core"].Origin)
	assert.InDelta(t, 58, m["gpu_core"].Value, 0.001)
	assert.Equal(t, sensor.OriginMeasured, m["gpu_fan"].Origin)
	assert.InDelta(t, 42, m["gpu_fan"].Value, 0.001)

	assert.Equal(t, sensor.OriginModeled, m["gpu_memory"].Origin)
	assert.True(t, m["gpu_memory"].InRange())
	assert.Equal(t, sensor.OriginModeled, m["gpu_vrm"].Origin)
	assert.True(t, m["gpu_vrm"].InRange())

	assert.Equal(t, 1, lib.shutdowns)
}

func TestGPUInventorySkipsVirtualAdapters(t *testing.T) {
	lib := &fakeGPULibrary{devices: []gpuDevice{
		&fakeGPUDevice{name: "Microsoft Hyper-V Virtual GPU", temp: 50, fan: 30, memMiB: 4096},
	}}
	provider := &fakeProvider{}

	d := NewGPUInventoryWithLibrary(lib, newTestCache(provider), testRandom())
	_, err := d.Detect(context.Background())

	require.Error(t, err)

	var appErr apperrors.Error
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrNoSensorsFound, appErr.Code())
}

func TestGPUInventoryInitFailure(t *testing.T) {
	lib := &fakeGPULibrary{initErr: assert.AnError}

	d := NewGPUInventoryWithLibrary(lib, newTestCache(&fakeProvider{}), testRandom())
	_, err := d.Detect(context.Background())

	require.Error(t, err)

	var appErr apperrors.Error
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrDetectorFailed, appErr.Code())
	assert.Equal(t, 0, lib.shutdowns)
}

func TestGPUInventoryPartialReads(t *testing.T) {
	lib := &fakeGPULibrary{devices: []gpuDevice{
		&fakeGPUDevice{name: "GeForce GTX 1060", temp: 55, fanErr: assert.AnError, memErr: assert.AnError},
	}}

	d := NewGPUInventoryWithLibrary(lib, newTestCache(&fakeProvider{}), testRandom())
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Contains(t, m, "gpu_core")
}
