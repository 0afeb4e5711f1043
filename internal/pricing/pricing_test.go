package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseUnitPrice(t *testing.T) {
	assert.Equal(t, 4.50, BaseUnitPrice("t-shirts"))
	assert.Equal(t, 4.50, BaseUnitPrice(" T-Shirts "))
	assert.Equal(t, 12.00, BaseUnitPrice("hoodies"))
	assert.Equal(t, genericBaseUnitPrice, BaseUnitPrice("socks"))
}

func TestComplexityFactor(t *testing.T) {
	assert.Equal(t, 1.0, ComplexityFactor("cotton", nil))
	assert.Equal(t, 1.25, ComplexityFactor("organic cotton", nil))
	assert.Equal(t, 1.16, ComplexityFactor("", []string{"print", "embroidery"}))
	assert.Equal(t, 1.33, ComplexityFactor("organic cotton", []string{"print"}))
}

func TestVolumeDiscountTiers(t *testing.T) {
	tests := []struct {
		qty  int
		want float64
	}{
		{50, 1.00},
		{999, 1.00},
		{1000, 0.95},
		{4999, 0.95},
		{5000, 0.90},
		{10000, 0.85},
		{50000, 0.80},
		{100000, 0.80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VolumeDiscount(tt.qty), "qty %d", tt.qty)
	}
}

func TestQuoteBreakdown(t *testing.T) {
	b := Quote("t-shirts", "cotton", nil, 1000)

	assert.Equal(t, 4.50, b.BaseUnitPrice)
	assert.Equal(t, 1.0, b.ComplexityFactor)
	assert.Equal(t, 0.95, b.VolumeDiscount)
	assert.Equal(t, 4.28, b.FinalUnitPrice) // 4.50 * 0.95 rounded
	assert.Equal(t, 4280.0, b.TotalPrice)
	assert.Positive(t, b.EstimatedDeliveryDays)
	require.NotEmpty(t, b.Timeline)

	days := 0
	for _, ts := range b.Timeline {
		assert.NotEmpty(t, ts.Stage)
		assert.NotEmpty(t, ts.Label)
		assert.Positive(t, ts.Days)
		days += ts.Days
	}
	assert.Equal(t, days, b.EstimatedDeliveryDays)
}

func TestQuoteDeterministic(t *testing.T) {
	a := Quote("hoodies", "merino wool", []string{"embroidery"}, 5000)
	b := Quote("hoodies", "merino wool", []string{"embroidery"}, 5000)
	assert.Equal(t, a, b)
}

func TestLargerRunsNeverRaiseUnitPrice(t *testing.T) {
	prev := Quote("polo", "", nil, 50).FinalUnitPrice
	for _, qty := range []int{500, 1000, 5000, 10000, 50000, 100000} {
		unit := Quote("polo", "", nil, qty).FinalUnitPrice
		assert.LessOrEqual(t, unit, prev, "qty %d", qty)
		prev = unit
	}
}
