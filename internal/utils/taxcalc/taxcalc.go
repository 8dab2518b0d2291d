package taxcalc

import (
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SaleInput holds the four scalars of a sale simulation plus the holding's
// owned quantity. Quantity wins when both Quantity and TargetValue are set;
// a zero Quantity with a positive TargetValue back-derives the quantity by
// dividing the target gross sale value by the current unit price.
type SaleInput struct {
	Quantity       decimal.Decimal
	TargetValue    decimal.Decimal
	CurrentPrice   decimal.Decimal
	AvgBuyPrice    decimal.Decimal
	TaxRatePercent decimal.Decimal
	OwnedQuantity  decimal.Decimal
}

// Simulate computes sale value, cost basis, gain, tax and net proceeds.
// The quantity is clamped to the owned quantity and the clamp is reported
// through ExceedsOwned instead of an error. Tax applies only to a strictly
// positive gain, a loss never produces negative tax. Zero or negative
// requested quantities normalize to an all-zero result.
func Simulate(in SaleInput) domain.TaxSimulation {
	qty := in.Quantity
	if qty.Sign() <= 0 && in.TargetValue.IsPositive() && in.CurrentPrice.IsPositive() {
		qty = in.TargetValue.Div(in.CurrentPrice)
	}
	if qty.Sign() <= 0 {
		return domain.TaxSimulation{
			Quantity:    decimal.Zero,
			SaleValue:   decimal.Zero,
			CostBasis:   decimal.Zero,
			Gain:        decimal.Zero,
			Tax:         decimal.Zero,
			NetProceeds: decimal.Zero,
		}
	}

	owned := in.OwnedQuantity
	if owned.Sign() < 0 {
		owned = decimal.Zero
	}
	exceedsOwned := qty.GreaterThan(owned)
	if exceedsOwned {
		qty = owned
	}

	saleValue := qty.Mul(in.CurrentPrice)
	costBasis := qty.Mul(in.AvgBuyPrice)
	gain := saleValue.Sub(costBasis)

	tax := decimal.Zero
	if gain.IsPositive() {
		tax = gain.Mul(in.TaxRatePercent).Div(hundred)
	}

	return domain.TaxSimulation{
		Quantity:     qty,
		SaleValue:    saleValue,
		CostBasis:    costBasis,
		Gain:         gain,
		Tax:          tax,
		NetProceeds:  saleValue.Sub(tax),
		ExceedsOwned: exceedsOwned,
	}
}
