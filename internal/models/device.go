package models

import "time"

type DeviceKind string

const (
	DeviceKindCpu DeviceKind = "CPU"
	DeviceKindGpu DeviceKind = "GPU"
)

type DeviceStatus string

const (
	DeviceStatusAvailable   DeviceStatus = "AVAILABLE"
	DeviceStatusRented      DeviceStatus = "RENTED"
	DeviceStatusOffline     DeviceStatus = "OFFLINE"
	DeviceStatusMaintenance DeviceStatus = "MAINTENANCE"
)

// CpuPricing is carried only by CPU-kind devices.
type CpuPricing struct {
	PricePerCoreHour float64 `json:"price_per_core_hour"`
}

// GpuPricing is carried only by GPU-kind devices.
type GpuPricing struct {
	PricePerGpuHour float64 `json:"price_per_gpu_hour"`
	GpuModel        string  `json:"gpu_model"`
	GpuCount        int     `json:"gpu_count"`
}

// Device is a compute machine listed for hourly rental. The kind tag decides
// which pricing block is present: exactly one of Cpu/Gpu is non-nil.
type Device struct {
	Id      string     `json:"id"`
	OwnerId string     `json:"owner_id"`
	Name    string     `json:"name"`
	Kind    DeviceKind `json:"kind"`

	CpuCores  int `json:"cpu_cores"`
	RamGb     int `json:"ram_gb"`
	StorageGb int `json:"storage_gb"`

	Cpu *CpuPricing `json:"cpu_pricing,omitempty"`
	Gpu *GpuPricing `json:"gpu_pricing,omitempty"`

	Status   DeviceStatus `json:"status"`
	Location string       `json:"location"`

	Uptime     float64 `json:"uptime"`
	Rating     float64 `json:"rating"`
	TotalHours int     `json:"total_hours"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Clone returns a deep copy, so snapshots handed to readers never alias the
// record guarded by the registry lock.
func (d *Device) Clone() *Device {
	out := *d
	if d.Cpu != nil {
		cpu := *d.Cpu
		out.Cpu = &cpu
	}
	if d.Gpu != nil {
		gpu := *d.Gpu
		out.Gpu = &gpu
	}
	return &out
}

type RegisterDeviceReq struct {
	OwnerId string     `json:"owner_id"`
	Name    string     `json:"name"`
	Kind    DeviceKind `json:"kind"`

	CpuCores  int `json:"cpu_cores"`
	RamGb     int `json:"ram_gb"`
	StorageGb int `json:"storage_gb"`

	Cpu *CpuPricing `json:"cpu_pricing,omitempty"`
	Gpu *GpuPricing `json:"gpu_pricing,omitempty"`

	Location string `json:"location"`
}

// UpdateDeviceReq carries the owner-mutable fields; nil means unchanged.
type UpdateDeviceReq struct {
	Name      *string     `json:"name,omitempty"`
	Location  *string     `json:"location,omitempty"`
	CpuCores  *int        `json:"cpu_cores,omitempty"`
	RamGb     *int        `json:"ram_gb,omitempty"`
	StorageGb *int        `json:"storage_gb,omitempty"`
	Cpu       *CpuPricing `json:"cpu_pricing,omitempty"`
	Gpu       *GpuPricing `json:"gpu_pricing,omitempty"`
}

type DeviceFilter struct {
	Status  DeviceStatus `form:"status"`
	Kind    DeviceKind   `form:"kind"`
	OwnerId string       `form:"owner_id"`
}

type SetDeviceStatusReq struct {
	Status DeviceStatus `json:"status"`
}
