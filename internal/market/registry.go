package market

import (
	"sync"
	"time"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/google/uuid"
)

// deviceHandle pairs a device record with the mutex that serializes every
// mutation of it. The device is the unit of mutual exclusion: claims on
// different devices never contend.
type deviceHandle struct {
	mu  sync.Mutex
	dev *models.Device
}

// DeviceRegistry owns device records and their status machine. All writes go
// through it; callers only ever see cloned snapshots.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]*deviceHandle
	store   *Store
	now     func() time.Time
}

func NewDeviceRegistry(store *Store) (*DeviceRegistry, error) {
	r := &DeviceRegistry{
		devices: make(map[string]*deviceHandle),
		store:   store,
		now:     time.Now,
	}
	persisted, err := store.ListDevices()
	if err != nil {
		return nil, err
	}
	for _, dev := range persisted {
		r.devices[dev.Id] = &deviceHandle{dev: dev}
	}
	if len(persisted) > 0 {
		logs.GetLogger().Infof("device registry loaded %d devices from datastore", len(persisted))
	}
	return r, nil
}

func validatePricing(kind models.DeviceKind, cpu *models.CpuPricing, gpu *models.GpuPricing, cores int) error {
	switch kind {
	case models.DeviceKindCpu:
		if cpu == nil || gpu != nil || cpu.PricePerCoreHour <= 0 || cores <= 0 {
			return ErrInvalidPricing
		}
	case models.DeviceKindGpu:
		if gpu == nil || cpu != nil || gpu.PricePerGpuHour <= 0 || gpu.GpuCount <= 0 || gpu.GpuModel == "" {
			return ErrInvalidPricing
		}
	default:
		return ErrInvalidPricing
	}
	return nil
}

// Register creates the device OFFLINE with zeroed telemetry. The owner lists
// it AVAILABLE in a separate step.
func (r *DeviceRegistry) Register(req *models.RegisterDeviceReq) (*models.Device, error) {
	if err := validatePricing(req.Kind, req.Cpu, req.Gpu, req.CpuCores); err != nil {
		return nil, err
	}

	now := r.now()
	device := &models.Device{
		Id:         uuid.NewString(),
		OwnerId:    req.OwnerId,
		Name:       req.Name,
		Kind:       req.Kind,
		CpuCores:   req.CpuCores,
		RamGb:      req.RamGb,
		StorageGb:  req.StorageGb,
		Cpu:        req.Cpu,
		Gpu:        req.Gpu,
		Status:     models.DeviceStatusOffline,
		Location:   req.Location,
		CreatedAt:  now,
		LastActive: now,
	}

	if err := r.store.PutDevice(device); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.devices[device.Id] = &deviceHandle{dev: device}
	r.mu.Unlock()

	return device.Clone(), nil
}

func (r *DeviceRegistry) handle(deviceId string) (*deviceHandle, error) {
	r.mu.RLock()
	h, ok := r.devices[deviceId]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return h, nil
}

func (r *DeviceRegistry) Get(deviceId string) (*models.Device, error) {
	h, err := r.handle(deviceId)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dev.Clone(), nil
}

func (r *DeviceRegistry) List(filter *models.DeviceFilter) []*models.Device {
	r.mu.RLock()
	handles := make([]*deviceHandle, 0, len(r.devices))
	for _, h := range r.devices {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	var devices []*models.Device
	for _, h := range handles {
		h.mu.Lock()
		dev := h.dev.Clone()
		h.mu.Unlock()
		if filter != nil {
			if filter.Status != "" && dev.Status != filter.Status {
				continue
			}
			if filter.Kind != "" && dev.Kind != filter.Kind {
				continue
			}
			if filter.OwnerId != "" && dev.OwnerId != filter.OwnerId {
				continue
			}
		}
		devices = append(devices, dev)
	}
	return devices
}

// legalTransition covers the administrative status changes. AVAILABLE→RENTED
// only ever happens through TryClaim, and RENTED→AVAILABLE through Release.
func legalTransition(from, to models.DeviceStatus) bool {
	switch to {
	case models.DeviceStatusAvailable:
		return from == models.DeviceStatusOffline || from == models.DeviceStatusMaintenance
	case models.DeviceStatusOffline, models.DeviceStatusMaintenance:
		return true
	}
	return false
}

// Transition applies an owner/admin status change.
func (r *DeviceRegistry) Transition(deviceId string, newStatus models.DeviceStatus) (*models.Device, error) {
	h, err := r.handle(deviceId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !legalTransition(h.dev.Status, newStatus) {
		return nil, ErrInvalidStateTransition
	}
	// mutate a copy and swap it in only after the write lands, so a store
	// failure never leaves memory ahead of disk
	updated := h.dev.Clone()
	updated.Status = newStatus
	updated.LastActive = r.now()
	if err := r.store.PutDevice(updated); err != nil {
		return nil, err
	}
	h.dev = updated
	return updated.Clone(), nil
}

// TryClaim flips exactly AVAILABLE→RENTED under the device lock, so N
// concurrent claims on one device yield one winner. Called only by the order
// manager.
func (r *DeviceRegistry) TryClaim(deviceId string) (*models.Device, error) {
	h, err := r.handle(deviceId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dev.Status != models.DeviceStatusAvailable {
		return nil, ErrDeviceNotAvailable
	}
	h.dev.Status = models.DeviceStatusRented
	h.dev.LastActive = r.now()
	if err := r.store.PutDevice(h.dev); err != nil {
		h.dev.Status = models.DeviceStatusAvailable
		return nil, err
	}
	return h.dev.Clone(), nil
}

// Release returns a RENTED device to AVAILABLE and credits rentedHours to its
// cumulative total. Used on order completion, cancellation and claim
// rollback (rentedHours = 0 for the latter two).
func (r *DeviceRegistry) Release(deviceId string, rentedHours int) (*models.Device, error) {
	h, err := r.handle(deviceId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dev.Status != models.DeviceStatusRented {
		return nil, ErrInvalidStateTransition
	}
	updated := h.dev.Clone()
	updated.Status = models.DeviceStatusAvailable
	updated.TotalHours += rentedHours
	updated.LastActive = r.now()
	if err := r.store.PutDevice(updated); err != nil {
		return nil, err
	}
	h.dev = updated
	return updated.Clone(), nil
}

// Update mutates the owner-editable fields and refreshes last-active as part
// of its contract. Pricing and capacity changes are refused while the device
// is RENTED; the active order's cost is frozen, future orders see the new
// pricing once the device is released.
func (r *DeviceRegistry) Update(deviceId string, req *models.UpdateDeviceReq) (*models.Device, error) {
	h, err := r.handle(deviceId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	pricingChange := req.Cpu != nil || req.Gpu != nil ||
		req.CpuCores != nil || req.RamGb != nil || req.StorageGb != nil
	if pricingChange && h.dev.Status == models.DeviceStatusRented {
		return nil, ErrDeviceBusy
	}

	dev := h.dev.Clone()

	cpu, gpu, cores := dev.Cpu, dev.Gpu, dev.CpuCores
	if req.Cpu != nil {
		cpu = req.Cpu
	}
	if req.Gpu != nil {
		gpu = req.Gpu
	}
	if req.CpuCores != nil {
		cores = *req.CpuCores
	}
	if pricingChange {
		if err := validatePricing(dev.Kind, cpu, gpu, cores); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		dev.Name = *req.Name
	}
	if req.Location != nil {
		dev.Location = *req.Location
	}
	dev.Cpu, dev.Gpu, dev.CpuCores = cpu, gpu, cores
	if req.RamGb != nil {
		dev.RamGb = *req.RamGb
	}
	if req.StorageGb != nil {
		dev.StorageGb = *req.StorageGb
	}
	dev.LastActive = r.now()

	if err := r.store.PutDevice(dev); err != nil {
		return nil, err
	}
	h.dev = dev
	return dev.Clone(), nil
}
