package taxcalc_test

import (
	"testing"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/taxcalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestSimulate_SellingAtCostBasisYieldsNoGainAndNoTax(t *testing.T) {
	result := taxcalc.Simulate(taxcalc.SaleInput{
		Quantity:       d("50"),
		CurrentPrice:   d("12.50"),
		AvgBuyPrice:    d("12.50"),
		TaxRatePercent: d("26"),
		OwnedQuantity:  d("50"),
	})

	assert.True(t, result.Gain.IsZero(), "gain should be zero, got %s", result.Gain)
	assert.True(t, result.Tax.IsZero(), "tax should be zero, got %s", result.Tax)
	assert.True(t, result.SaleValue.Equal(d("625")), "sale value %s", result.SaleValue)
	assert.True(t, result.NetProceeds.Equal(result.SaleValue))
	assert.False(t, result.ExceedsOwned)
}

func TestSimulate_ClampsToOwnedQuantityWithAdvisoryFlag(t *testing.T) {
	result := taxcalc.Simulate(taxcalc.SaleInput{
		Quantity:       d("100"),
		CurrentPrice:   d("10"),
		AvgBuyPrice:    d("8"),
		TaxRatePercent: d("26"),
		OwnedQuantity:  d("50"),
	})

	assert.True(t, result.ExceedsOwned)
	assert.True(t, result.Quantity.Equal(d("50")), "clamped quantity %s", result.Quantity)
	assert.True(t, result.SaleValue.Equal(d("500")))
	assert.True(t, result.CostBasis.Equal(d("400")))
	assert.True(t, result.Gain.Equal(d("100")))
	assert.True(t, result.Tax.Equal(d("26")))
	assert.True(t, result.NetProceeds.Equal(d("474")))
}

func TestSimulate_LossNeverProducesNegativeTax(t *testing.T) {
	result := taxcalc.Simulate(taxcalc.SaleInput{
		Quantity:       d("10"),
		CurrentPrice:   d("5"),
		AvgBuyPrice:    d("9"),
		TaxRatePercent: d("26"),
		OwnedQuantity:  d("10"),
	})

	assert.True(t, result.Gain.Equal(d("-40")), "gain %s", result.Gain)
	assert.True(t, result.Tax.IsZero())
	assert.True(t, result.NetProceeds.Equal(result.SaleValue))
}

func TestSimulate_BackDerivesQuantityFromTargetValue(t *testing.T) {
	result := taxcalc.Simulate(taxcalc.SaleInput{
		TargetValue:    d("500"),
		CurrentPrice:   d("25"),
		AvgBuyPrice:    d("20"),
		TaxRatePercent: d("26"),
		OwnedQuantity:  d("100"),
	})

	assert.True(t, result.Quantity.Equal(d("20")), "derived quantity %s", result.Quantity)
	assert.True(t, result.SaleValue.Equal(d("500")))
	assert.False(t, result.ExceedsOwned)
}

func TestSimulate_ZeroAndNegativeRequestsNormalizeToZero(t *testing.T) {
	tests := []struct {
		name  string
		input taxcalc.SaleInput
	}{
		{
			name: "zero quantity and no target",
			input: taxcalc.SaleInput{
				CurrentPrice:   d("10"),
				AvgBuyPrice:    d("5"),
				TaxRatePercent: d("26"),
				OwnedQuantity:  d("10"),
			},
		},
		{
			name: "negative quantity",
			input: taxcalc.SaleInput{
				Quantity:       d("-3"),
				CurrentPrice:   d("10"),
				AvgBuyPrice:    d("5"),
				TaxRatePercent: d("26"),
				OwnedQuantity:  d("10"),
			},
		},
		{
			name: "target value with zero price cannot derive",
			input: taxcalc.SaleInput{
				TargetValue:    d("500"),
				TaxRatePercent: d("26"),
				OwnedQuantity:  d("10"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := taxcalc.Simulate(tt.input)
			assert.True(t, result.Quantity.IsZero())
			assert.True(t, result.SaleValue.IsZero())
			assert.True(t, result.CostBasis.IsZero())
			assert.True(t, result.Gain.IsZero())
			assert.True(t, result.Tax.IsZero())
			assert.True(t, result.NetProceeds.IsZero())
			assert.False(t, result.ExceedsOwned)
		})
	}
}
