package domain

import "github.com/shopspring/decimal"

// TaxSimulation is the outcome of a simulated sale. ExceedsOwned is an
// advisory flag raised when the requested quantity was clamped to the owned
// quantity; it never rejects the simulation.
type TaxSimulation struct {
	Quantity     decimal.Decimal `json:"quantity"` // Clamped quantity actually simulated
	SaleValue    decimal.Decimal `json:"saleValue"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	Gain         decimal.Decimal `json:"gain"`
	Tax          decimal.Decimal `json:"tax"` // Zero when the gain is not positive
	NetProceeds  decimal.Decimal `json:"netProceeds"`
	ExceedsOwned bool            `json:"exceedsOwned"`
}
