package market

import (
	"testing"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveHourlyRateGpu(t *testing.T) {
	device := &models.Device{
		Kind:     models.DeviceKindGpu,
		CpuCores: 8,
		Gpu:      &models.GpuPricing{PricePerGpuHour: 8.5, GpuModel: "RTX 4090", GpuCount: 1},
	}

	rate, err := EffectiveHourlyRate(device)
	require.NoError(t, err)
	assert.Equal(t, 8.5, rate)

	cost, err := TotalCost(device, 24)
	require.NoError(t, err)
	assert.Equal(t, 204.0, cost)
}

func TestEffectiveHourlyRateCpu(t *testing.T) {
	device := &models.Device{
		Kind:     models.DeviceKindCpu,
		CpuCores: 16,
		Cpu:      &models.CpuPricing{PricePerCoreHour: 0.5},
	}

	rate, err := EffectiveHourlyRate(device)
	require.NoError(t, err)
	assert.Equal(t, 8.0, rate)
}

func TestEffectiveHourlyRateInvalid(t *testing.T) {
	cases := map[string]*models.Device{
		"missing cpu pricing": {Kind: models.DeviceKindCpu, CpuCores: 8},
		"zero core price":     {Kind: models.DeviceKindCpu, CpuCores: 8, Cpu: &models.CpuPricing{}},
		"negative gpu price": {Kind: models.DeviceKindGpu,
			Gpu: &models.GpuPricing{PricePerGpuHour: -1, GpuModel: "A100", GpuCount: 2}},
		"zero gpu count": {Kind: models.DeviceKindGpu,
			Gpu: &models.GpuPricing{PricePerGpuHour: 7, GpuModel: "A100"}},
		"unknown kind": {Kind: "TPU"},
	}
	for name, device := range cases {
		_, err := EffectiveHourlyRate(device)
		assert.ErrorIs(t, err, ErrInvalidPricing, name)
	}
}

func TestTotalCostRejectsNonPositiveDuration(t *testing.T) {
	device := &models.Device{
		Kind:     models.DeviceKindCpu,
		CpuCores: 4,
		Cpu:      &models.CpuPricing{PricePerCoreHour: 0.5},
	}
	for _, hours := range []int{0, -5} {
		_, err := TotalCost(device, hours)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}

func TestTotalCostStableAcrossRepeatedComputation(t *testing.T) {
	device := &models.Device{
		Kind:     models.DeviceKindGpu,
		Gpu:      &models.GpuPricing{PricePerGpuHour: 6.9, GpuModel: "L40S", GpuCount: 3},
		CpuCores: 32,
	}
	first, err := TotalCost(device, 72)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := TotalCost(device, 72)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendRangeScalesWithUnits(t *testing.T) {
	policy := DefaultPricingPolicy()

	cpu := &models.Device{Kind: models.DeviceKindCpu, CpuCores: 10,
		Cpu: &models.CpuPricing{PricePerCoreHour: 0.5}}
	band := policy.RecommendRange(cpu)
	assert.Equal(t, 3.0, band.Min)
	assert.Equal(t, 12.0, band.Max)

	gpu := &models.Device{Kind: models.DeviceKindGpu,
		Gpu: &models.GpuPricing{PricePerGpuHour: 8.5, GpuModel: "RTX 4090", GpuCount: 2}}
	band = policy.RecommendRange(gpu)
	assert.Equal(t, 12.0, band.Min)
	assert.Equal(t, 24.0, band.Max)
}

func TestPriceWarningIsAdvisoryOnly(t *testing.T) {
	policy := DefaultPricingPolicy()

	inBand := &models.Device{Kind: models.DeviceKindGpu,
		Gpu: &models.GpuPricing{PricePerGpuHour: 8.5, GpuModel: "RTX 4090", GpuCount: 1}}
	assert.Empty(t, policy.PriceWarning(inBand))

	below := &models.Device{Kind: models.DeviceKindGpu,
		Gpu: &models.GpuPricing{PricePerGpuHour: 1.0, GpuModel: "RTX 3060", GpuCount: 1}}
	assert.Contains(t, policy.PriceWarning(below), "below")

	above := &models.Device{Kind: models.DeviceKindCpu, CpuCores: 4,
		Cpu: &models.CpuPricing{PricePerCoreHour: 5.0}}
	assert.Contains(t, policy.PriceWarning(above), "above")

	// out-of-band pricing still rents fine
	cost, err := TotalCost(below, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cost)
}
