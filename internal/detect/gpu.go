package detect

import (
	"context"
	"strings"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// gpuDevice abstracts the per-adapter NVML queries for testing.
type gpuDevice interface {
	Name() (string, error)
	TemperatureC() (float64, error)
	FanPercent() (float64, error)
	MemoryMiB() (uint64, error)
}

// gpuLibrary abstracts NVML lifecycle and enumeration.
type gpuLibrary interface {
	Init() error
	Shutdown()
	Devices() ([]gpuDevice, error)
}

// gpuInventory enumerates non-virtual graphics adapters. Core temperature
// and fan speed are genuine NVML reads; memory and VRM values are derived
// from adapter memory size and system memory pressure.
type gpuInventory struct {
	lib   gpuLibrary
	cache *sysinfo.Cache
	rnd   sensor.RandomSource
}

func NewGPUInventory(cache *sysinfo.Cache, rnd sensor.RandomSource) Detector {
	return &gpuInventory{lib: &nvmlLibrary{}, cache: cache, rnd: rnd}
}

// NewGPUInventoryWithLibrary is NewGPUInventory with an injectable NVML
// implementation.
func NewGPUInventoryWithLibrary(lib gpuLibrary, cache *sysinfo.Cache, rnd sensor.RandomSource) Detector {
	return &gpuInventory{lib: lib, cache: cache, rnd: rnd}
}

func (*gpuInventory) Name() string { return "gpu-inventory" }

func (d *gpuInventory) Detect(_ context.Context) (sensor.Map, error) {
	errFactory := errors.New()

	if err := d.lib.Init(); err != nil {
		return nil, errFactory.Wrap(errors.ErrDetectorFailed, err)
	}
	defer d.lib.Shutdown()

	devices, err := d.lib.Devices()
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrDetectorFailed, err)
	}

	memPressure := d.cache.MemoryPercent() / 100
	m := make(sensor.Map)

	for _, dev := range devices {
		name, err := dev.Name()
		if err != nil || strings.Contains(strings.ToLower(name), "virtual") {
			continue
		}

		if temp, err := dev.TemperatureC(); err == nil {
			m["gpu_core"] = newMeasured("gpu_core", "GPU Core", sensor.CategoryGPU,
				temp, 0, 110, celsius, "NVML")
		}
		if fan, err := dev.FanPercent(); err == nil {
			m["gpu_fan"] = newMeasured("gpu_fan", "GPU Fan", sensor.CategoryGPU,
				fan, 0, 100, "%", "NVML")
		}
		if memMiB, err := dev.MemoryMiB(); err == nil {
			memNorm := float64(memMiB) / 24576
			if memNorm > 1 {
				memNorm = 1
			}
			m["gpu_memory"] = newModeled("gpu_memory", "GPU Memory", sensor.CategoryGPU,
				40+10*memNorm+15*memPressure+sensor.Jitter(d.rnd, 1), 28, 85, "NVML inventory")
			m["gpu_vrm"] = newModeled("gpu_vrm", "GPU VRM", sensor.CategoryGPU,
				42+8*memNorm+10*memPressure+sensor.Jitter(d.rnd, 1.5), 30, 90, "NVML inventory")
		}

		// Only the first physical adapter is reported.
		break
	}

	if len(m) == 0 {
		return nil, errFactory.New(errors.ErrNoSensorsFound)
	}

	return m, nil
}

// nvmlLibrary is the production gpuLibrary over go-nvml.
type nvmlLibrary struct{}

func (*nvmlLibrary) Init() error {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return errors.New().WithMessage(errors.ErrInitFailed, nvml.ErrorString(ret))
	}
	return nil
}

func (*nvmlLibrary) Shutdown() {
	nvml.Shutdown()
}

func (*nvmlLibrary) Devices() ([]gpuDevice, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, errors.New().WithMessage(errors.ErrDetectorFailed, nvml.ErrorString(ret))
	}

	devices := make([]gpuDevice, 0, count)
	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue
		}
		devices = append(devices, &nvmlDevice{device: device})
	}

	return devices, nil
}

type nvmlDevice struct {
	device nvml.Device
}

func (d *nvmlDevice) Name() (string, error) {
	name, ret := d.device.GetName()
	if ret != nvml.SUCCESS {
		return "", errors.New().WithMessage(errors.ErrDetectorFailed, nvml.ErrorString(ret))
	}
	return name, nil
}

func (d *nvmlDevice) TemperatureC() (float64, error) {
	temp, ret := d.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return 0, errors.New().WithMessage(errors.ErrDetectorFailed, nvml.ErrorString(ret))
	}
	return float64(temp), nil
}

func (d *nvmlDevice) FanPercent() (float64, error) {
	speed, ret := d.device.GetFanSpeed()
	if ret != nvml.SUCCESS {
		return 0, errors.New().WithMessage(errors.ErrDetectorFailed, nvml.ErrorString(ret))
	}
	return float64(speed), nil
}

func (d *nvmlDevice) MemoryMiB() (uint64, error) {
	info, ret := d.device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return 0, errors.New().WithMessage(errors.ErrDetectorFailed, nvml.ErrorString(ret))
	}
	return info.Total >> 20, nil
}
