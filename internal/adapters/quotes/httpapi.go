package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// httpAPIProvider fetches quotes from a configurable JSON price API. The
// price and currency are extracted from the response with JSONPath
// expressions so the provider works against different upstream shapes
// without code changes.
type httpAPIProvider struct {
	client       *http.Client
	baseURL      string
	pricePath    string
	currencyPath string
}

// NewHTTPAPIProvider creates a quote provider over a JSON price API.
// baseURL receives the ticker as its single query parameter "symbol".
func NewHTTPAPIProvider(baseURL, pricePath, currencyPath string) portssvc.QuoteProvider {
	return &httpAPIProvider{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
		pricePath:    pricePath,
		currencyPath: currencyPath,
	}
}

var _ portssvc.QuoteProvider = (*httpAPIProvider)(nil)

func (p *httpAPIProvider) GetQuote(ctx context.Context, ticker string) (domain.Quote, error) {
	reqURL, err := url.Parse(p.baseURL)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("invalid quote API base URL: %w", err)
	}
	q := reqURL.Query()
	q.Set("symbol", ticker)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return domain.Quote{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote request for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("quote API returned %s for %s", resp.Status, ticker)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode quote response for %s: %w", ticker, err)
	}

	price, err := p.extractDecimal(jobj, p.pricePath)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to extract price for %s: %w", ticker, err)
	}

	quote := domain.Quote{Ticker: ticker, Price: price}
	if p.currencyPath != "" {
		if currency, err := p.extractString(jobj, p.currencyPath); err == nil {
			quote.Currency = currency
		}
	}
	return quote, nil
}

// unwrap keeps the first element when jsonpath returns a list-of-one
// instead of the scalar itself.
func unwrap(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func (p *httpAPIProvider) extractDecimal(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	switch v := unwrap(jval).(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("jsonpath %q: not a number: %q", path, v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("jsonpath %q: unexpected value %v", path, jval)
	}
}

func (p *httpAPIProvider) extractString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("jsonpath %q: %w", path, err)
	}
	s, ok := unwrap(jval).(string)
	if !ok {
		return "", fmt.Errorf("jsonpath %q: not a string: %v", path, jval)
	}
	return s, nil
}
