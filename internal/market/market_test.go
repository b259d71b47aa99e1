package market

import (
	"testing"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenOrInitStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(newTestStore(t), DefaultPricingPolicy())
	require.NoError(t, err)
	return e
}

func gpuDeviceReq() *models.RegisterDeviceReq {
	return &models.RegisterDeviceReq{
		OwnerId:   "owner-1",
		Name:      "ml-rig-01",
		Kind:      models.DeviceKindGpu,
		CpuCores:  8,
		RamGb:     64,
		StorageGb: 1000,
		Gpu: &models.GpuPricing{
			PricePerGpuHour: 8.5,
			GpuModel:        "RTX 4090",
			GpuCount:        1,
		},
		Location: "Shanghai",
	}
}

func cpuDeviceReq() *models.RegisterDeviceReq {
	return &models.RegisterDeviceReq{
		OwnerId:   "owner-2",
		Name:      "batch-box-01",
		Kind:      models.DeviceKindCpu,
		CpuCores:  16,
		RamGb:     32,
		StorageGb: 500,
		Cpu: &models.CpuPricing{
			PricePerCoreHour: 0.5,
		},
		Location: "Beijing",
	}
}

// registerAvailable registers a device and lists it AVAILABLE.
func registerAvailable(t *testing.T, e *Engine, req *models.RegisterDeviceReq) *models.Device {
	t.Helper()
	device, err := e.Registry.Register(req)
	require.NoError(t, err)
	device, err = e.Registry.Transition(device.Id, models.DeviceStatusAvailable)
	require.NoError(t, err)
	return device
}
