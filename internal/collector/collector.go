package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"TradeScope/internal/cache"
	"TradeScope/internal/model"
)

const (
	quoteTTL   = 5 * time.Minute
	candlesTTL = 5 * time.Minute
)

// defaultAliases maps friendly symbols to provider tickers.
var defaultAliases = map[string]string{
	"KOSPI":   "^KS11",
	"KOSDAQ":  "^KQ11",
	"SP500":   "^GSPC",
	"SPX":     "^GSPC",
	"NASDAQ":  "^IXIC",
	"DOW":     "^DJI",
	"VIX":     "^VIX",
	"USD/KRW": "KRW=X",
	"BTC":     "BTC-USD",
}

// Collector serves quotes and bar series through the provider chain, caching
// results and falling back to stale cache entries when every provider fails.
type Collector struct {
	fetcher Fetcher
	cache   cache.Cache
	aliases map[string]string
	log     *zap.Logger
}

func New(fetcher Fetcher, c cache.Cache, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		fetcher: fetcher,
		cache:   c,
		aliases: defaultAliases,
		log:     log,
	}
}

// Resolve maps a friendly symbol to its provider ticker. Unknown symbols pass
// through unchanged, uppercased.
func (c *Collector) Resolve(symbol string) string {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if ticker, ok := c.aliases[key]; ok {
		return ticker
	}
	return key
}

// Quote returns the latest snapshot for symbol, served from cache when fresh.
func (c *Collector) Quote(ctx context.Context, symbol string) (model.MarketQuote, error) {
	ticker := c.Resolve(symbol)
	key := "quote:" + ticker

	if v, ok := c.cache.Get(key); ok {
		return v.(model.MarketQuote), nil
	}

	quote, err := c.fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		if v, ok := c.cache.GetStale(key); ok {
			c.log.Warn("serving stale quote", zap.String("symbol", symbol), zap.Error(err))
			return v.(model.MarketQuote), nil
		}
		return model.MarketQuote{}, fmt.Errorf("quote %s: %w", symbol, err)
	}
	quote.Symbol = strings.ToUpper(strings.TrimSpace(symbol))

	c.cache.Put(key, quote, quoteTTL)
	return quote, nil
}

// DailyBars returns up to days daily bars for symbol, ascending by time.
func (c *Collector) DailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	ticker := c.Resolve(symbol)
	key := fmt.Sprintf("bars:%s:%d", ticker, days)

	if v, ok := c.cache.Get(key); ok {
		return v.([]model.OHLCV), nil
	}

	bars, err := c.fetcher.FetchDailyBars(ctx, ticker, days)
	if err != nil {
		if v, ok := c.cache.GetStale(key); ok {
			c.log.Warn("serving stale bars", zap.String("symbol", symbol), zap.Error(err))
			return v.([]model.OHLCV), nil
		}
		return nil, fmt.Errorf("daily bars %s: %w", symbol, err)
	}

	c.cache.Put(key, bars, candlesTTL)
	return bars, nil
}

// Overview fetches quotes for a list of symbols, skipping those that fail.
func (c *Collector) Overview(ctx context.Context, symbols []string) []model.MarketQuote {
	quotes := make([]model.MarketQuote, 0, len(symbols))
	for _, s := range symbols {
		quote, err := c.Quote(ctx, s)
		if err != nil {
			c.log.Warn("overview quote failed", zap.String("symbol", s), zap.Error(err))
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}
