package sysinfo

// Provider abstracts the OS facilities the engine queries, so tests can
// substitute deterministic fakes. The two load metrics are the expensive
// calls and go through the Cache; the rest are cheap one-shot queries used
// during detection and generation.
type Provider interface {
	// CPUPercent returns overall CPU utilization in [0, 100].
	CPUPercent() (float64, error)

	// MemoryPercent returns overall memory utilization in [0, 100].
	MemoryPercent() (float64, error)

	// CPUFrequencyMHz returns the current and maximum CPU frequency.
	CPUFrequencyMHz() (current, max float64, err error)

	// CPUCounts returns physical core and logical thread counts.
	CPUCounts() (physical, logical int, err error)

	// CPUIdentity returns the CPU vendor id and brand string.
	CPUIdentity() (vendor, brand string, err error)

	// TotalMemoryBytes returns the installed memory size.
	TotalMemoryBytes() (uint64, error)

	// DiskIOBytes returns cumulative read and write volume across disks.
	DiskIOBytes() (read, write uint64, err error)

	// Partitions lists mounted partitions for storage-kind inference.
	Partitions() ([]Partition, error)

	// Temperatures returns genuine thermal readings where the platform
	// exposes them.
	Temperatures() ([]TemperatureReading, error)
}

// Partition describes one mounted partition.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
}

// TemperatureReading is one genuine thermal-zone value.
type TemperatureReading struct {
	Key     string
	Celsius float64
}
