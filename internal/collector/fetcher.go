// Package collector fetches quotes and daily bar series from external market
// data providers, with provider fallback and a TTL cache in front.
package collector

import (
	"context"
	"errors"

	"TradeScope/internal/model"
)

// Fetcher is one market data provider.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	FetchQuote(ctx context.Context, symbol string) (model.MarketQuote, error)
	Name() string
}

// ErrNoData is returned when a provider responds successfully but carries no
// usable bars or quote for the symbol.
var ErrNoData = errors.New("no data returned")

// ErrRateLimited is returned when a provider rejects the request because its
// call budget is exhausted. The chain treats it as a signal to fall through
// to the next provider immediately instead of retrying.
var ErrRateLimited = errors.New("provider rate limited")
