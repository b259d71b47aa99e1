package market

import (
	"sync"
	"testing"
	"time"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultsToOffline(t *testing.T) {
	e := newTestEngine(t)

	device, err := e.Registry.Register(gpuDeviceReq())
	require.NoError(t, err)

	assert.NotEmpty(t, device.Id)
	assert.Equal(t, models.DeviceStatusOffline, device.Status)
	assert.Zero(t, device.TotalHours)
	assert.Zero(t, device.Rating)
	assert.False(t, device.CreatedAt.IsZero())
}

func TestRegisterRejectsMixedPricing(t *testing.T) {
	e := newTestEngine(t)

	req := cpuDeviceReq()
	req.Gpu = &models.GpuPricing{PricePerGpuHour: 7, GpuModel: "A100", GpuCount: 1}
	_, err := e.Registry.Register(req)
	assert.ErrorIs(t, err, ErrInvalidPricing)

	req = gpuDeviceReq()
	req.Gpu = nil
	_, err = e.Registry.Register(req)
	assert.ErrorIs(t, err, ErrInvalidPricing)
}

func TestTransitionRules(t *testing.T) {
	e := newTestEngine(t)
	device, err := e.Registry.Register(cpuDeviceReq())
	require.NoError(t, err)

	// OFFLINE -> AVAILABLE
	device, err = e.Registry.Transition(device.Id, models.DeviceStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusAvailable, device.Status)

	// AVAILABLE -> RENTED is only reachable through the claim operation
	_, err = e.Registry.Transition(device.Id, models.DeviceStatusRented)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	// any -> MAINTENANCE, then MAINTENANCE -> AVAILABLE
	device, err = e.Registry.Transition(device.Id, models.DeviceStatusMaintenance)
	require.NoError(t, err)
	device, err = e.Registry.Transition(device.Id, models.DeviceStatusAvailable)
	require.NoError(t, err)

	// a claimed device can still be forced to MAINTENANCE administratively
	_, err = e.Registry.TryClaim(device.Id)
	require.NoError(t, err)
	device, err = e.Registry.Transition(device.Id, models.DeviceStatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusMaintenance, device.Status)

	// MAINTENANCE -> AVAILABLE, but RENTED is still unreachable directly
	_, err = e.Registry.Transition(device.Id, models.DeviceStatusRented)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestTransitionUnknownDevice(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Registry.Transition("no-such-device", models.DeviceStatusAvailable)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestTryClaimOnlyFromAvailable(t *testing.T) {
	e := newTestEngine(t)
	device, err := e.Registry.Register(cpuDeviceReq())
	require.NoError(t, err)

	// OFFLINE device cannot be claimed
	_, err = e.Registry.TryClaim(device.Id)
	assert.ErrorIs(t, err, ErrDeviceNotAvailable)

	_, err = e.Registry.Transition(device.Id, models.DeviceStatusAvailable)
	require.NoError(t, err)

	claimed, err := e.Registry.TryClaim(device.Id)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusRented, claimed.Status)

	// second claim sees RENTED
	_, err = e.Registry.TryClaim(device.Id)
	assert.ErrorIs(t, err, ErrDeviceNotAvailable)
}

func TestConcurrentClaimsYieldExactlyOneWinner(t *testing.T) {
	e := newTestEngine(t)
	device := registerAvailable(t, e, gpuDeviceReq())

	const claimers = 32
	var wg sync.WaitGroup
	results := make(chan error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Registry.TryClaim(device.Id)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrDeviceNotAvailable)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, claimers-1, losses)
}

func TestReleaseCreditsRentedHours(t *testing.T) {
	e := newTestEngine(t)
	device := registerAvailable(t, e, cpuDeviceReq())

	_, err := e.Registry.TryClaim(device.Id)
	require.NoError(t, err)

	released, err := e.Registry.Release(device.Id, 24)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusAvailable, released.Status)
	assert.Equal(t, 24, released.TotalHours)

	// releasing a device nobody claimed is a state error
	_, err = e.Registry.Release(device.Id, 1)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestUpdateRefusesPricingChangeWhileRented(t *testing.T) {
	e := newTestEngine(t)
	device := registerAvailable(t, e, cpuDeviceReq())
	_, err := e.Registry.TryClaim(device.Id)
	require.NoError(t, err)

	_, err = e.Registry.Update(device.Id, &models.UpdateDeviceReq{
		Cpu: &models.CpuPricing{PricePerCoreHour: 2.0},
	})
	assert.ErrorIs(t, err, ErrDeviceBusy)

	// non-pricing fields stay editable during a rental
	name := "renamed"
	updated, err := e.Registry.Update(device.Id, &models.UpdateDeviceReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestUpdateRefreshesLastActive(t *testing.T) {
	e := newTestEngine(t)
	device, err := e.Registry.Register(cpuDeviceReq())
	require.NoError(t, err)

	later := device.LastActive.Add(90 * time.Minute)
	e.Registry.now = func() time.Time { return later }

	location := "Shenzhen"
	updated, err := e.Registry.Update(device.Id, &models.UpdateDeviceReq{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, later, updated.LastActive)
	assert.Equal(t, "Shenzhen", updated.Location)
}

func TestTransitionKeepsMemoryOnStoreFailure(t *testing.T) {
	store := newTestStore(t)
	registry, err := NewDeviceRegistry(store)
	require.NoError(t, err)

	device, err := registry.Register(gpuDeviceReq())
	require.NoError(t, err)
	device, err = registry.Transition(device.Id, models.DeviceStatusAvailable)
	require.NoError(t, err)

	// a closed store rejects every write
	require.NoError(t, store.Close())

	_, err = registry.Transition(device.Id, models.DeviceStatusOffline)
	require.Error(t, err)

	snapshot, err := registry.Get(device.Id)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusAvailable, snapshot.Status)
}

func TestUpdateKeepsMemoryOnStoreFailure(t *testing.T) {
	store := newTestStore(t)
	registry, err := NewDeviceRegistry(store)
	require.NoError(t, err)

	device, err := registry.Register(cpuDeviceReq())
	require.NoError(t, err)

	require.NoError(t, store.Close())

	name := "renamed-box"
	_, err = registry.Update(device.Id, &models.UpdateDeviceReq{
		Name: &name,
		Cpu:  &models.CpuPricing{PricePerCoreHour: 0.9},
	})
	require.Error(t, err)

	snapshot, err := registry.Get(device.Id)
	require.NoError(t, err)
	assert.Equal(t, "batch-box-01", snapshot.Name)
	assert.Equal(t, 0.5, snapshot.Cpu.PricePerCoreHour)
}

func TestListFilters(t *testing.T) {
	e := newTestEngine(t)
	registerAvailable(t, e, gpuDeviceReq())
	cpu, err := e.Registry.Register(cpuDeviceReq())
	require.NoError(t, err)

	all := e.Registry.List(nil)
	assert.Len(t, all, 2)

	offline := e.Registry.List(&models.DeviceFilter{Status: models.DeviceStatusOffline})
	require.Len(t, offline, 1)
	assert.Equal(t, cpu.Id, offline[0].Id)

	gpus := e.Registry.List(&models.DeviceFilter{Kind: models.DeviceKindGpu})
	assert.Len(t, gpus, 1)

	owned := e.Registry.List(&models.DeviceFilter{OwnerId: "owner-2"})
	require.Len(t, owned, 1)
	assert.Equal(t, cpu.Id, owned[0].Id)
}
