package detect

import (
	"context"
	"testing"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sensor"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSCountersEmitsCoreSet(t *testing.T) {
	provider := &fakeProvider{
		cpuPercent:  40,
		memPercent:  60,
		freqCurrent: 3200,
		freqMax:     4000,
		physical:    4,
		diskRead:    64 << 30,
		diskWrite:   32 << 30,
	}

	d := NewOSCounters(newTestCache(provider), provider, testRandom())
	m, err := d.Detect(context.Background())

	require.NoError(t, err)

	assert.Contains(t, m, "cpu_package")
	for _, key := range []string{"cpu_core_0", "cpu_core_1", "cpu_core_2", "cpu_core_3"} {
		assert.Contains(t, m, key)
	}
	assert.Contains(t, m, "ram_controller")
	assert.Contains(t, m, "storage_ssd")

	for key, s := range m {
		assert.True(t, s.InRange(), "sensor %s out of range: %v", key, s.Value)
		assert.Equal(t, sensor.OriginModeled, s.Origin)
	}
}

func TestOSCountersLoadRaisesEstimates(t *testing.T) {
	idle := &fakeProvider{cpuPercent: 5, memPercent: 20, freqCurrent: 1200, freqMax: 4000, physical: 2}
	busy := &fakeProvider{cpuPercent: 95, memPercent: 90, freqCurrent: 4000, freqMax: 4000, physical: 2}

	dIdle := NewOSCounters(newTestCache(idle), idle, testRandom())
	dBusy := NewOSCounters(newTestCache(busy), busy, testRandom())

	mIdle, err := dIdle.Detect(context.Background())
	require.NoError(t, err)
	mBusy, err := dBusy.Detect(context.Background())
	require.NoError(t, err)

	assert.Greater(t, mBusy["cpu_package"].Value, mIdle["cpu_package"].Value)
	assert.Greater(t, mBusy["ram_controller"].Value, mIdle["ram_controller"].Value)
}

func TestInventoryInfersStorageFromPartitions(t *testing.T) {
	provider := &fakeProvider{
		partitions: []sysinfo.Partition{
			{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/sda1", Mountpoint: "/data", Fstype: "ext4"},
		},
	}

	d := NewInventory(newTestCache(provider), provider, testRandom())
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	assert.Contains(t, m, "storage_nvme")
	assert.Contains(t, m, "storage_ssd")
	assert.NotContains(t, m, "storage_hdd")
}

func TestInventoryMemoryFallback(t *testing.T) {
	tests := []struct {
		name     string
		totalGiB uint64
		wantKeys []string
	}{
		{name: "small memory implies hdd", totalGiB: 4, wantKeys: []string{"storage_hdd"}},
		{name: "mid memory implies ssd", totalGiB: 8, wantKeys: []string{"storage_ssd"}},
		{name: "large memory implies ssd and nvme", totalGiB: 32, wantKeys: []string{"storage_ssd", "storage_nvme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{totalMemory: tt.totalGiB << 30}

			d := NewInventory(newTestCache(provider), provider, testRandom())
			m, err := d.Detect(context.Background())

			require.NoError(t, err)
			for _, key := range tt.wantKeys {
				assert.Contains(t, m, key)
			}
		})
	}
}

func TestInventoryAlwaysEmitsBoardSensors(t *testing.T) {
	provider := &fakeProvider{partitionErr: assert.AnError}

	d := NewInventory(newTestCache(provider), provider, testRandom())
	m, err := d.Detect(context.Background())

	require.NoError(t, err)
	assert.Contains(t, m, "motherboard")
	assert.Contains(t, m, "chipset")
	assert.Contains(t, m, "psu")
}
