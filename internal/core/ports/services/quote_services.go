package services

import (
	"context"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
)

// QuoteProvider is the outbound port for upstream price sources. Adapters
// return a quote with a non-positive price when the ticker has no usable
// price upstream; that is "unavailable", not an adapter error.
type QuoteProvider interface {
	GetQuote(ctx context.Context, ticker string) (domain.Quote, error)
}

// QuoteSvcFacade defines price retrieval and the batch refresh over a
// user's portfolio.
type QuoteSvcFacade interface {
	// GetQuote fetches the current quote for one ticker. An unavailable
	// upstream price maps to not-found semantics.
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)

	// RefreshPrices fetches quotes for every non-deleted asset of the user
	// and writes the fetched prices onto the asset rows. Tickers that fail or
	// come back unavailable are collected, never abort the batch.
	RefreshPrices(ctx context.Context, userID string) (*domain.QuoteRefreshResult, error)
}
