package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
)

// chainProvider asks each source in order and returns the first usable
// quote. A source error or an unavailable price falls through to the next.
type chainProvider struct {
	sources []portssvc.QuoteProvider
}

// NewChainProvider combines quote providers with fallback semantics.
func NewChainProvider(sources ...portssvc.QuoteProvider) portssvc.QuoteProvider {
	return &chainProvider{sources: sources}
}

var _ portssvc.QuoteProvider = (*chainProvider)(nil)

func (p *chainProvider) GetQuote(ctx context.Context, ticker string) (domain.Quote, error) {
	var errs []error
	for _, source := range p.sources {
		quote, err := source.GetQuote(ctx, ticker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if quote.Available() {
			return quote, nil
		}
	}
	if len(errs) > 0 {
		return domain.Quote{}, fmt.Errorf("no provider returned a quote for %s: %w", ticker, errors.Join(errs...))
	}
	return domain.Quote{Ticker: ticker}, nil
}
