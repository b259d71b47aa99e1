package market

import (
	"github.com/flexicompute/go-rental-provider/constants"
	"github.com/flexicompute/go-rental-provider/internal/models"
)

// PriceBand is the advisory listing range for a device's effective hourly
// rate. Listing outside it is never an error, only a warning to the owner.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricingPolicy holds per unit-hour bounds, normally loaded from config.toml.
type PricingPolicy struct {
	CpuCoreHourMin float64
	CpuCoreHourMax float64
	GpuHourMin     float64
	GpuHourMax     float64
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		CpuCoreHourMin: constants.DEFAULT_CPU_CORE_HOUR_MIN,
		CpuCoreHourMax: constants.DEFAULT_CPU_CORE_HOUR_MAX,
		GpuHourMin:     constants.DEFAULT_GPU_HOUR_MIN,
		GpuHourMax:     constants.DEFAULT_GPU_HOUR_MAX,
	}
}

// EffectiveHourlyRate normalizes the device's pricing model into a single
// per-hour rate: per-core × cores for CPU devices, per-GPU × count for GPU
// devices.
func EffectiveHourlyRate(device *models.Device) (float64, error) {
	switch device.Kind {
	case models.DeviceKindCpu:
		if device.Cpu == nil || device.Cpu.PricePerCoreHour <= 0 || device.CpuCores <= 0 {
			return 0, ErrInvalidPricing
		}
		return device.Cpu.PricePerCoreHour * float64(device.CpuCores), nil
	case models.DeviceKindGpu:
		if device.Gpu == nil || device.Gpu.PricePerGpuHour <= 0 || device.Gpu.GpuCount <= 0 {
			return 0, ErrInvalidPricing
		}
		return device.Gpu.PricePerGpuHour * float64(device.Gpu.GpuCount), nil
	}
	return 0, ErrInvalidPricing
}

// TotalCost prices a rental of durationHours at the device's current rate.
func TotalCost(device *models.Device, durationHours int) (float64, error) {
	if durationHours <= 0 {
		return 0, ErrInvalidDuration
	}
	rate, err := EffectiveHourlyRate(device)
	if err != nil {
		return 0, err
	}
	return rate * float64(durationHours), nil
}

// RecommendRange scales the per-unit policy band by the device's unit count,
// giving the advisory band for the effective hourly rate.
func (p PricingPolicy) RecommendRange(device *models.Device) PriceBand {
	switch device.Kind {
	case models.DeviceKindCpu:
		cores := float64(device.CpuCores)
		return PriceBand{Min: p.CpuCoreHourMin * cores, Max: p.CpuCoreHourMax * cores}
	case models.DeviceKindGpu:
		var count float64
		if device.Gpu != nil {
			count = float64(device.Gpu.GpuCount)
		}
		return PriceBand{Min: p.GpuHourMin * count, Max: p.GpuHourMax * count}
	}
	return PriceBand{}
}

// PriceWarning returns a non-empty note when the device's effective rate
// falls outside the advisory band. Invalid pricing yields no warning here,
// it fails hard at rent time instead.
func (p PricingPolicy) PriceWarning(device *models.Device) string {
	rate, err := EffectiveHourlyRate(device)
	if err != nil {
		return ""
	}
	band := p.RecommendRange(device)
	if rate < band.Min {
		return "listed price is below the recommended range"
	}
	if rate > band.Max {
		return "listed price is above the recommended range"
	}
	return ""
}
