package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"TradeScope/internal/model"
)

// AlphaVantageFetcher reads the Alpha Vantage REST API. The free tier allows
// only a handful of calls per minute, so Note/Information payloads are
// surfaced as ErrRateLimited and the chain falls through to the next
// provider.
type AlphaVantageFetcher struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewAlphaVantageFetcher(apiKey string) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://www.alphavantage.co",
		APIKey:  apiKey,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

func (f *AlphaVantageFetcher) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", f.APIKey)
	u := f.BaseURL + "/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d", resp.StatusCode)
	}

	// rate limit responses come back as 200 with a Note or Information field
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if _, ok := envelope["Note"]; ok {
		return nil, fmt.Errorf("alphavantage: %w", ErrRateLimited)
	}
	if _, ok := envelope["Information"]; ok {
		return nil, fmt.Errorf("alphavantage: %w", ErrRateLimited)
	}
	if msg, ok := envelope["Error Message"]; ok {
		return nil, fmt.Errorf("alphavantage api error: %s", msg)
	}
	return body, nil
}

type alphaDaily struct {
	Series map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"6. volume"`
	} `json:"Time Series (Daily)"`
}

func (f *AlphaVantageFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY_ADJUSTED")
	params.Set("symbol", symbol)
	params.Set("outputsize", "full")
	if days <= 100 {
		params.Set("outputsize", "compact")
	}

	body, err := f.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var daily alphaDaily
	if err := json.Unmarshal(body, &daily); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if len(daily.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: %w", ErrNoData)
	}

	bars := make([]model.OHLCV, 0, len(daily.Series))
	for date, row := range daily.Series {
		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   parseFloat(row.Open),
			High:   parseFloat(row.High),
			Low:    parseFloat(row.Low),
			Close:  parseFloat(row.Close),
			Volume: parseFloat(row.Volume),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

type alphaQuote struct {
	Quote struct {
		Symbol        string `json:"01. symbol"`
		Open          string `json:"02. open"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		PreviousClose string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (model.MarketQuote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)

	body, err := f.get(ctx, params)
	if err != nil {
		return model.MarketQuote{}, err
	}
	var q alphaQuote
	if err := json.Unmarshal(body, &q); err != nil {
		return model.MarketQuote{}, fmt.Errorf("alphavantage decode: %w", err)
	}
	if q.Quote.Price == "" {
		return model.MarketQuote{}, fmt.Errorf("alphavantage: %w", ErrNoData)
	}

	return model.MarketQuote{
		Symbol:        symbol,
		Current:       parseFloat(q.Quote.Price),
		Change:        parseFloat(q.Quote.Change),
		Percent:       parsePercent(q.Quote.ChangePercent),
		High:          parseFloat(q.Quote.High),
		Low:           parseFloat(q.Quote.Low),
		Open:          parseFloat(q.Quote.Open),
		PreviousClose: parseFloat(q.Quote.PreviousClose),
		Timestamp:     time.Now(),
	}, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parsePercent(s string) float64 {
	if n := len(s); n > 0 && s[n-1] == '%' {
		s = s[:n-1]
	}
	return parseFloat(s)
}
