package dto

import (
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

// QuoteResponse defines the data returned for a single price quote.
type QuoteResponse struct {
	Ticker       string          `json:"ticker"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	DisplayPrice string          `json:"displayPrice"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		Ticker:       q.Ticker,
		Price:        q.Price,
		Currency:     q.Currency,
		DisplayPrice: utils.FormatMoney(q.Price, q.Currency),
	}
}

// QuoteRefreshResponse summarizes a batch price refresh.
type QuoteRefreshResponse struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed"`
}

// ToQuoteRefreshResponse converts a domain refresh result to a DTO response.
func ToQuoteRefreshResponse(r *domain.QuoteRefreshResult) QuoteRefreshResponse {
	failed := r.Failed
	if failed == nil {
		failed = []string{}
	}
	return QuoteRefreshResponse{Updated: r.Updated, Failed: failed}
}
