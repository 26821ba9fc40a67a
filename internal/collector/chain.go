package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TradeScope/internal/model"
)

const (
	chainAttempts = 3
	chainBackoff  = 500 * time.Millisecond
)

// ChainFetcher tries each provider in order, retrying transient failures with
// exponential backoff. A rate limited provider is skipped without retries.
type ChainFetcher struct {
	fetchers []Fetcher
	log      *zap.Logger
	sleep    func(time.Duration)
}

var _ Fetcher = (*ChainFetcher)(nil)

func NewChainFetcher(log *zap.Logger, fetchers ...Fetcher) *ChainFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChainFetcher{fetchers: fetchers, log: log, sleep: time.Sleep}
}

func (c *ChainFetcher) Name() string { return "chain" }

func (c *ChainFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	var bars []model.OHLCV
	err := c.try(ctx, symbol, "daily bars", func(f Fetcher) error {
		var err error
		bars, err = f.FetchDailyBars(ctx, symbol, days)
		return err
	})
	return bars, err
}

func (c *ChainFetcher) FetchQuote(ctx context.Context, symbol string) (model.MarketQuote, error) {
	var quote model.MarketQuote
	err := c.try(ctx, symbol, "quote", func(f Fetcher) error {
		var err error
		quote, err = f.FetchQuote(ctx, symbol)
		return err
	})
	return quote, err
}

func (c *ChainFetcher) try(ctx context.Context, symbol, what string, fetch func(Fetcher) error) error {
	if len(c.fetchers) == 0 {
		return errors.New("no fetchers configured")
	}

	var lastErr error
	for _, f := range c.fetchers {
		backoff := chainBackoff
		for attempt := 1; attempt <= chainAttempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := fetch(f)
			if err == nil {
				return nil
			}
			lastErr = err
			c.log.Warn("fetch failed",
				zap.String("provider", f.Name()),
				zap.String("symbol", symbol),
				zap.String("what", what),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNoData) {
				break // retrying the same provider will not help
			}
			if attempt < chainAttempts {
				c.sleep(backoff)
				backoff *= 2
			}
		}
	}
	return fmt.Errorf("all providers failed for %s: %w", symbol, lastErr)
}
