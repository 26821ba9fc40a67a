package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"TradeScope/internal/cache"
	"TradeScope/internal/model"
)

// stubFetcher counts calls and returns canned data or a fixed error.
type stubFetcher struct {
	name      string
	bars      []model.OHLCV
	quote     model.MarketQuote
	err       error
	barCalls  int
	quoteCall int
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) FetchDailyBars(_ context.Context, _ string, _ int) ([]model.OHLCV, error) {
	s.barCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.bars, nil
}

func (s *stubFetcher) FetchQuote(_ context.Context, _ string) (model.MarketQuote, error) {
	s.quoteCall++
	if s.err != nil {
		return model.MarketQuote{}, s.err
	}
	return s.quote, nil
}

func sampleBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: time.Unix(int64(1700000000+i*86400), 0),
			Open: 100, High: 101, Low: 99, Close: 100, Volume: 1,
		}
	}
	return bars
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	primary := &stubFetcher{name: "primary", err: errors.New("boom")}
	secondary := &stubFetcher{name: "secondary", bars: sampleBars(3)}
	chain := NewChainFetcher(nil, primary, secondary)
	chain.sleep = func(time.Duration) {}

	bars, err := chain.FetchDailyBars(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Errorf("bars = %d, want 3", len(bars))
	}
	if primary.barCalls != chainAttempts {
		t.Errorf("primary attempts = %d, want %d", primary.barCalls, chainAttempts)
	}
	if secondary.barCalls != 1 {
		t.Errorf("secondary attempts = %d, want 1", secondary.barCalls)
	}
}

func TestChainSkipsRateLimitedProviderWithoutRetry(t *testing.T) {
	limited := &stubFetcher{name: "limited", err: ErrRateLimited}
	backup := &stubFetcher{name: "backup", quote: model.MarketQuote{Current: 42}}
	chain := NewChainFetcher(nil, limited, backup)
	chain.sleep = func(time.Duration) {}

	quote, err := chain.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Current != 42 {
		t.Errorf("quote = %v, want 42", quote.Current)
	}
	if limited.quoteCall != 1 {
		t.Errorf("rate limited provider was retried %d times", limited.quoteCall)
	}
}

func TestChainAllProvidersFail(t *testing.T) {
	broken := &stubFetcher{name: "broken", err: errors.New("down")}
	chain := NewChainFetcher(nil, broken)
	chain.sleep = func(time.Duration) {}

	if _, err := chain.FetchQuote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected an error when every provider fails")
	}
}

func TestCollectorCachesBars(t *testing.T) {
	stub := &stubFetcher{name: "stub", bars: sampleBars(5)}
	c := New(stub, cache.NewMemory(), nil)

	for i := 0; i < 3; i++ {
		bars, err := c.DailyBars(context.Background(), "AAPL", 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 5 {
			t.Errorf("bars = %d, want 5", len(bars))
		}
	}
	if stub.barCalls != 1 {
		t.Errorf("provider called %d times, want 1 (cache hit expected)", stub.barCalls)
	}
}

func TestCollectorServesStaleOnOutage(t *testing.T) {
	stub := &stubFetcher{name: "stub", quote: model.MarketQuote{Current: 100}}
	mem := cache.NewMemory()
	c := New(stub, mem, nil)

	if _, err := c.Quote(context.Background(), "KOSPI"); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	// expire the entry, then break the provider
	mem.Put("quote:^KS11", model.MarketQuote{Symbol: "KOSPI", Current: 100}, -time.Second)
	stub.err = errors.New("provider down")

	quote, err := c.Quote(context.Background(), "KOSPI")
	if err != nil {
		t.Fatalf("stale fallback should not error: %v", err)
	}
	if quote.Current != 100 {
		t.Errorf("stale quote = %v, want 100", quote.Current)
	}
}

func TestCollectorResolvesAliases(t *testing.T) {
	c := New(&stubFetcher{name: "stub"}, cache.NewMemory(), nil)
	tests := []struct {
		in, want string
	}{
		{"KOSPI", "^KS11"},
		{"kospi", "^KS11"},
		{"SP500", "^GSPC"},
		{"aapl", "AAPL"},
		{" NASDAQ ", "^IXIC"},
	}
	for _, tt := range tests {
		if got := c.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollectorOverviewSkipsFailures(t *testing.T) {
	stub := &stubFetcher{name: "stub", err: errors.New("down")}
	c := New(stub, cache.NewMemory(), nil)

	quotes := c.Overview(context.Background(), []string{"KOSPI", "SP500"})
	if len(quotes) != 0 {
		t.Errorf("quotes = %d, want 0 when every fetch fails", len(quotes))
	}
}
