package domain

import "github.com/shopspring/decimal"

// Quote is one price observation from an upstream provider. A price of zero
// or less means the ticker is unavailable upstream, not an internal error.
type Quote struct {
	Ticker   string          `json:"ticker"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// Available reports whether the quote carries a usable price.
func (q Quote) Available() bool {
	return q.Price.IsPositive()
}

// QuoteRefreshResult summarizes a batch price refresh over a user's assets.
type QuoteRefreshResult struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed"` // Tickers that could not be refreshed
}
