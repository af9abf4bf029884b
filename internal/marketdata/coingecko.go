// Package marketdata proxies third-party market data (CoinGecko) and
// serves the static news feed. Gateway failures surface as gateway
// errors, never as domain errors, and the rest of the service depends
// on this package only through small capability interfaces.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

// CoinGeckoClient fetches cryptocurrency market data from the CoinGecko
// API, with an optional short-lived Redis cache in front of it.
type CoinGeckoClient struct {
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewCoinGeckoClient creates a client. cache may be nil, in which case
// every call goes to the upstream API.
func NewCoinGeckoClient(baseURL string, cache *redis.Client, cacheTTL time.Duration) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

type marketCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                int64   `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	High24h                  float64 `json:"high_24h"`
	Low24h                   float64 `json:"low_24h"`
	TotalVolume              float64 `json:"total_volume"`
}

func (m *marketCoin) toModel() models.Crypto {
	return models.Crypto{
		ID:            m.ID,
		Symbol:        strings.ToUpper(m.Symbol),
		Name:          m.Name,
		Image:         m.Image,
		CurrentPrice:  m.CurrentPrice,
		MarketCap:     m.MarketCap,
		MarketCapRank: m.MarketCapRank,
		PriceChange24: m.PriceChangePercentage24h,
		High24:        m.High24h,
		Low24:         m.Low24h,
		TotalVolume:   m.TotalVolume,
	}
}

// TopCryptos returns the top cryptocurrencies by market cap
func (c *CoinGeckoClient) TopCryptos(ctx context.Context, limit int) ([]models.Crypto, error) {
	cacheKey := fmt.Sprintf("crypto:top:%d", limit)
	var cryptos []models.Crypto
	if c.cacheGet(ctx, cacheKey, &cryptos) {
		return cryptos, nil
	}

	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	var coins []marketCoin
	if err := c.get(ctx, "/coins/markets?"+params.Encode(), &coins); err != nil {
		return nil, err
	}

	cryptos = make([]models.Crypto, 0, len(coins))
	for i := range coins {
		cryptos = append(cryptos, coins[i].toModel())
	}

	c.cacheSet(ctx, cacheKey, cryptos)
	return cryptos, nil
}

type searchResponse struct {
	Coins []struct {
		ID string `json:"id"`
	} `json:"coins"`
}

type coinDetail struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Image      struct {
		Large string `json:"large"`
	} `json:"image"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		TotalVolume              map[string]float64 `json:"total_volume"`
	} `json:"market_data"`
}

// CryptoBySymbol resolves a symbol via the CoinGecko search endpoint
// and returns the detail for the best match. An unmatched symbol is a
// not-found outcome, not a gateway failure.
func (c *CoinGeckoClient) CryptoBySymbol(ctx context.Context, symbol string) (*models.Crypto, error) {
	cacheKey := "crypto:symbol:" + strings.ToUpper(symbol)
	var cached models.Crypto
	if c.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var search searchResponse
	if err := c.get(ctx, "/search?query="+url.QueryEscape(symbol), &search); err != nil {
		return nil, err
	}
	if len(search.Coins) == 0 {
		return nil, fmt.Errorf("cryptocurrency %s: %w", symbol, apperr.ErrNotFound)
	}

	var detail coinDetail
	path := "/coins/" + url.PathEscape(search.Coins[0].ID) + "?localization=false&tickers=false&community_data=false&developer_data=false"
	if err := c.get(ctx, path, &detail); err != nil {
		return nil, err
	}

	crypto := models.Crypto{
		ID:            detail.ID,
		Symbol:        strings.ToUpper(detail.Symbol),
		Name:          detail.Name,
		Image:         detail.Image.Large,
		CurrentPrice:  detail.MarketData.CurrentPrice["usd"],
		MarketCap:     int64(detail.MarketData.MarketCap["usd"]),
		PriceChange24: detail.MarketData.PriceChangePercentage24h,
		High24:        detail.MarketData.High24h["usd"],
		Low24:         detail.MarketData.Low24h["usd"],
		TotalVolume:   detail.MarketData.TotalVolume["usd"],
	}

	c.cacheSet(ctx, cacheKey, &crypto)
	return &crypto, nil
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: coingecko request failed: %v", apperr.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: coingecko returned status %d", apperr.ErrGateway, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode coingecko response: %v", apperr.ErrGateway, err)
	}
	return nil
}

// cacheGet loads a cached value into out. Cache misses and cache
// failures both fall through to the upstream API.
func (c *CoinGeckoClient) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if c.cache == nil {
		return false
	}
	data, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (c *CoinGeckoClient) cacheSet(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
}
