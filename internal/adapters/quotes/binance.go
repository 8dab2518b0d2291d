package quotes

import (
	"context"
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// binanceProvider fetches spot prices from Binance. Tickers are Binance
// symbols, e.g. BTCUSDT; the quote currency is the symbol's quote asset so
// no currency is reported.
type binanceProvider struct {
	client *binance.Client
}

// NewBinanceProvider creates a quote provider over the Binance spot API.
// Public price endpoints work with empty credentials.
func NewBinanceProvider(apiKey, secretKey string) portssvc.QuoteProvider {
	return &binanceProvider{client: binance.NewClient(apiKey, secretKey)}
}

var _ portssvc.QuoteProvider = (*binanceProvider)(nil)

func (p *binanceProvider) GetQuote(ctx context.Context, ticker string) (domain.Quote, error) {
	prices, err := p.client.NewListPricesService().Symbol(ticker).Do(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("binance price request for %s failed: %w", ticker, err)
	}
	if len(prices) == 0 {
		return domain.Quote{}, fmt.Errorf("binance API returned empty prices for %s", ticker)
	}

	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("binance returned unparsable price %q for %s: %w", prices[0].Price, ticker, err)
	}
	return domain.Quote{Ticker: ticker, Price: price}, nil
}
