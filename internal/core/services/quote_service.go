package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// quoteService implements the QuoteSvcFacade interface
type quoteService struct {
	BaseService
	provider    portssvc.QuoteProvider
	assetRepo   portsrepo.AssetRepositoryFacade
	concurrency int
}

// NewQuoteService creates a new quote service. concurrency bounds the number
// of in-flight upstream requests during a batch refresh.
func NewQuoteService(provider portssvc.QuoteProvider, assetRepo portsrepo.AssetRepositoryFacade, concurrency int) portssvc.QuoteSvcFacade {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &quoteService{provider: provider, assetRepo: assetRepo, concurrency: concurrency}
}

// Ensure quoteService implements the QuoteSvcFacade interface
var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

func (s *quoteService) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", apperrors.ErrValidation)
	}

	quote, err := s.provider.GetQuote(ctx, ticker)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch quote", "ticker", ticker)
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	if !quote.Available() {
		return nil, fmt.Errorf("%w: no price available for %s", apperrors.ErrNotFound, ticker)
	}
	return &quote, nil
}

// RefreshPrices fetches quotes for every non-deleted asset concurrently and
// writes each fetched price onto the asset row. Individual failures are
// collected into the result, they never abort the batch.
func (s *quoteService) RefreshPrices(ctx context.Context, userID string) (*domain.QuoteRefreshResult, error) {
	assets, err := s.assetRepo.ListAssets(ctx, userID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets for price refresh")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var mu sync.Mutex
	result := &domain.QuoteRefreshResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, asset := range assets {
		asset := asset
		// Cash-equivalent holdings have no upstream price.
		if asset.Kind == domain.AssetKindCash {
			continue
		}
		g.Go(func() error {
			quote, err := s.provider.GetQuote(gctx, asset.Ticker)
			if err != nil || !quote.Available() {
				if err != nil {
					s.LogWarn(gctx, "Quote fetch failed", "ticker", asset.Ticker, "error", err.Error())
				}
				mu.Lock()
				result.Failed = append(result.Failed, asset.Ticker)
				mu.Unlock()
				return nil
			}

			if err := s.assetRepo.UpdateAssetPrice(gctx, asset.AssetID, quote.Price, userID, time.Now()); err != nil {
				s.LogError(gctx, err, "Failed to store refreshed price", "ticker", asset.Ticker)
				mu.Lock()
				result.Failed = append(result.Failed, asset.Ticker)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Prices refreshed", "updated", result.Updated, "failed", len(result.Failed))
	return result, nil
}
