package market

import (
	"testing"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCheckCompatibilityPasses(t *testing.T) {
	device := &models.Device{
		Kind:      models.DeviceKindGpu,
		CpuCores:  16,
		RamGb:     64,
		StorageGb: 1000,
		Gpu:       &models.GpuPricing{PricePerGpuHour: 8.5, GpuModel: "RTX 4090", GpuCount: 1},
	}
	template := &models.ApplicationTemplate{
		MinCpuCores: 8, MinRamGb: 32, MinStorageGb: 100, RequiredGpu: true,
	}

	result := CheckCompatibility(device, template)
	assert.True(t, result.Compatible)
	assert.Empty(t, result.Reason)
}

func TestCheckCompatibilityGpuRequiredAgainstCpuDevice(t *testing.T) {
	device := &models.Device{
		Kind:      models.DeviceKindCpu,
		CpuCores:  16,
		RamGb:     32,
		StorageGb: 500,
		Cpu:       &models.CpuPricing{PricePerCoreHour: 0.5},
	}
	template := &models.ApplicationTemplate{MinRamGb: 16, RequiredGpu: true}

	result := CheckCompatibility(device, template)
	assert.False(t, result.Compatible)
	assert.Equal(t, ReasonGpuRequired, result.Reason)
}

func TestCheckCompatibilityReasonOrderIsDeterministic(t *testing.T) {
	// every dimension fails; the reason must name the first in the fixed order
	device := &models.Device{Kind: models.DeviceKindCpu, CpuCores: 1, RamGb: 1, StorageGb: 1}
	template := &models.ApplicationTemplate{
		MinCpuCores: 8, MinRamGb: 32, MinStorageGb: 100, RequiredGpu: true,
	}

	result := CheckCompatibility(device, template)
	assert.Equal(t, ReasonInsufficientCpu, result.Reason)

	device.CpuCores = 8
	assert.Equal(t, ReasonInsufficientRam, CheckCompatibility(device, template).Reason)

	device.RamGb = 32
	assert.Equal(t, ReasonInsufficientStorage, CheckCompatibility(device, template).Reason)

	device.StorageGb = 100
	assert.Equal(t, ReasonGpuRequired, CheckCompatibility(device, template).Reason)
}

func TestCheckCompatibilityRequiresNonEmptyGpuModel(t *testing.T) {
	device := &models.Device{
		Kind:      models.DeviceKindGpu,
		CpuCores:  16,
		RamGb:     64,
		StorageGb: 500,
		Gpu:       &models.GpuPricing{PricePerGpuHour: 8.5, GpuCount: 1},
	}
	template := &models.ApplicationTemplate{RequiredGpu: true}

	assert.Equal(t, ReasonGpuRequired, CheckCompatibility(device, template).Reason)
}

// Growing any device resource can only move a failing check to passing,
// never the reverse.
func TestCheckCompatibilityIsMonotone(t *testing.T) {
	template := &models.ApplicationTemplate{
		MinCpuCores: 4, MinRamGb: 16, MinStorageGb: 200, RequiredGpu: false,
	}

	dims := []int{2, 4, 8, 64}
	for _, cores := range dims {
		for _, ram := range dims {
			for _, storage := range dims {
				device := &models.Device{
					Kind: models.DeviceKindCpu, CpuCores: cores, RamGb: ram * 4, StorageGb: storage * 50,
				}
				if !CheckCompatibility(device, template).Compatible {
					continue
				}
				// every device dominating a compatible one must also pass
				for _, extra := range []int{0, 1, 100} {
					dominating := &models.Device{
						Kind:      models.DeviceKindCpu,
						CpuCores:  device.CpuCores + extra,
						RamGb:     device.RamGb + extra,
						StorageGb: device.StorageGb + extra,
					}
					assert.True(t, CheckCompatibility(dominating, template).Compatible,
						"dominating device must stay compatible: cores=%d ram=%d storage=%d extra=%d",
						cores, ram, storage, extra)
				}
			}
		}
	}
}
