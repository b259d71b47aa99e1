package market

import "github.com/flexicompute/go-rental-provider/internal/models"

type IncompatibleReason string

const (
	ReasonInsufficientCpu     IncompatibleReason = "INSUFFICIENT_CPU"
	ReasonInsufficientRam     IncompatibleReason = "INSUFFICIENT_RAM"
	ReasonInsufficientStorage IncompatibleReason = "INSUFFICIENT_STORAGE"
	ReasonGpuRequired         IncompatibleReason = "GPU_REQUIRED"
)

type CompatResult struct {
	Compatible bool               `json:"compatible"`
	Reason     IncompatibleReason `json:"reason,omitempty"`
}

// CheckCompatibility decides whether the device satisfies every minimum the
// template declares. Dimensions are evaluated in a fixed order (cpu, ram,
// storage, gpu) so the reason for a failing pair is deterministic. The check
// is monotone: growing any device resource can only flip a fail to a pass.
func CheckCompatibility(device *models.Device, template *models.ApplicationTemplate) CompatResult {
	if device.CpuCores < template.MinCpuCores {
		return CompatResult{Reason: ReasonInsufficientCpu}
	}
	if device.RamGb < template.MinRamGb {
		return CompatResult{Reason: ReasonInsufficientRam}
	}
	if device.StorageGb < template.MinStorageGb {
		return CompatResult{Reason: ReasonInsufficientStorage}
	}
	if template.RequiredGpu {
		if device.Kind != models.DeviceKindGpu || device.Gpu == nil || device.Gpu.GpuModel == "" {
			return CompatResult{Reason: ReasonGpuRequired}
		}
	}
	return CompatResult{Compatible: true}
}
