// Package currency provides the exchange-rate client used to normalize
// turnovers before threshold comparison. Rates come from a public provider
// and are cached with a TTL; a manual override always wins over a live rate.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/t4p/competition-toolkit/internal/config"
	"github.com/t4p/competition-toolkit/pkg/mathutil"
	"github.com/t4p/competition-toolkit/pkg/merger"
	"go.uber.org/zap"
)

// Client fetches and caches exchange rates.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.Mutex
	cache map[string]cachedRates
}

type cachedRates struct {
	rates     map[string]float64
	fetchedAt time.Time
}

type rateResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// NewClient builds a rate client from configuration.
func NewClient(cfg config.CurrencyConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		ttl:        time.Duration(cfg.CacheTTLSeconds) * time.Second,
		logger:     logger,
		now:        time.Now,
		cache:      make(map[string]cachedRates),
	}
}

// Rate returns the live exchange rate from base to target, consulting the
// cache first. Identical currencies always yield 1.
func (c *Client) Rate(ctx context.Context, base, target string) (float64, error) {
	if base == target {
		return 1, nil
	}

	rates, err := c.ratesFor(ctx, base)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[target]
	if !ok {
		return 0, fmt.Errorf("rate provider has no %s rate for base %s", target, base)
	}
	return rate, nil
}

// Convert converts an amount between currencies, rounding the result to
// cents. A non-nil manualRate takes precedence over any live rate; without
// one, a failed fetch surfaces as an error so the caller can prompt for a
// manual rate.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string, manualRate *float64) (float64, error) {
	if from == to {
		return amount, nil
	}
	if manualRate != nil {
		return mathutil.Round(amount * *manualRate), nil
	}

	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("no live rate for %s/%s: %w", from, to, err)
	}
	return mathutil.Round(amount * rate), nil
}

// ConverterFor adapts the client into the converter shape the merger
// calculator consumes, binding a context and optional manual rate.
func (c *Client) ConverterFor(ctx context.Context, manualRate *float64) merger.Converter {
	return func(amount float64, from, to string) (float64, error) {
		return c.Convert(ctx, amount, from, to, manualRate)
	}
}

func (c *Client) ratesFor(ctx context.Context, base string) (map[string]float64, error) {
	c.mu.Lock()
	if cached, ok := c.cache[base]; ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return cached.rates, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/%s", c.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("rate provider returned result %q", payload.Result)
	}

	c.mu.Lock()
	c.cache[base] = cachedRates{rates: payload.Rates, fetchedAt: c.now()}
	c.mu.Unlock()

	c.logger.Debug("fetched exchange rates",
		zap.String("op", "currency.ratesFor"),
		zap.String("base", base),
		zap.Int("rates", len(payload.Rates)),
	)

	return payload.Rates, nil
}
