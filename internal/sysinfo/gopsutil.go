package sysinfo

import (
	"time"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const cpuSampleWindow = 100 * time.Millisecond

type gopsutilProvider struct{}

// NewProvider returns the gopsutil-backed OS metrics provider.
func NewProvider() Provider {
	return &gopsutilProvider{}
}

func (*gopsutilProvider) CPUPercent() (float64, error) {
	errFactory := errors.New()

	percents, err := cpu.Percent(cpuSampleWindow, false)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrMetricSourceFailed, err)
	}
	if len(percents) == 0 {
		return 0, errFactory.WithMessage(errors.ErrMetricSourceFailed, "empty CPU utilization sample")
	}

	return percents[0], nil
}

func (*gopsutilProvider) MemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	return vm.UsedPercent, nil
}

func (*gopsutilProvider) CPUFrequencyMHz() (float64, float64, error) {
	infos, err := cpu.Info()
	if err != nil {
		return 0, 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}
	if len(infos) == 0 || infos[0].Mhz <= 0 {
		return 0, 0, errors.New().WithMessage(errors.ErrMetricSourceFailed, "no CPU frequency reported")
	}

	// gopsutil reports a single nominal frequency; treat it as both the
	// current and ceiling value when the platform exposes nothing finer.
	return infos[0].Mhz, infos[0].Mhz, nil
}

func (*gopsutilProvider) CPUCounts() (int, int, error) {
	physical, err := cpu.Counts(false)
	if err != nil {
		return 0, 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		return 0, 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	return physical, logical, nil
}

func (*gopsutilProvider) CPUIdentity() (string, string, error) {
	infos, err := cpu.Info()
	if err != nil {
		return "", "", errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}
	if len(infos) == 0 {
		return "", "", errors.New().WithMessage(errors.ErrMetricSourceFailed, "no CPU info reported")
	}

	return infos[0].VendorID, infos[0].ModelName, nil
}

func (*gopsutilProvider) TotalMemoryBytes() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	return vm.Total, nil
}

func (*gopsutilProvider) DiskIOBytes() (uint64, uint64, error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return 0, 0, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	var read, write uint64
	for _, c := range counters {
		read += c.ReadBytes
		write += c.WriteBytes
	}

	return read, write, nil
}

func (*gopsutilProvider) Partitions() ([]Partition, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	out := make([]Partition, 0, len(parts))
	for _, p := range parts {
		out = append(out, Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}

	return out, nil
}

func (*gopsutilProvider) Temperatures() ([]TemperatureReading, error) {
	stats, err := host.SensorsTemperatures()
	if err != nil && len(stats) == 0 {
		return nil, errors.New().Wrap(errors.ErrMetricSourceFailed, err)
	}

	out := make([]TemperatureReading, 0, len(stats))
	for _, s := range stats {
		out = append(out, TemperatureReading{
			Key:     s.SensorKey,
			Celsius: s.Temperature,
		})
	}

	return out, nil
}
