package backtest

import (
	"math"
	"testing"
	"time"

	"TradeScope/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  time.Unix(int64(1700000000+i*86400), 0),
			Open:  c,
			High:  c * 1.005,
			Low:   c * 0.995,
			Close: c, Volume: 1000,
		}
	}
	return bars
}

func cyclicalCloses(n int, base, amplitude float64, period int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	return out
}

func TestOutcomeWinRate(t *testing.T) {
	if got := (Outcome{}).WinRate(); got != 0 {
		t.Errorf("win rate of empty outcome = %v, want 0", got)
	}
	if got := (Outcome{Signals: 4, Wins: 3}).WinRate(); got != 0.75 {
		t.Errorf("win rate = %v, want 0.75", got)
	}
}

func TestRunProducesConsistentCounts(t *testing.T) {
	bars := barsFromCloses(cyclicalCloses(300, 100, 15, 40))
	report := Run("CYCLE", bars)

	if report.Bars != 300 {
		t.Errorf("bars = %d, want 300", report.Bars)
	}
	for name, o := range map[string]Outcome{
		"rsi": report.RSI, "macd": report.MACD,
		"bollinger": report.Bollinger, "composite": report.Composite,
	} {
		if o.Wins > o.Signals {
			t.Errorf("%s: wins %d exceed signals %d", name, o.Wins, o.Signals)
		}
		if rate := o.WinRate(); rate < 0 || rate > 1 {
			t.Errorf("%s: win rate %v out of [0, 1]", name, rate)
		}
	}
	if report.LevelHoldRate < 0 || report.LevelHoldRate > 1 {
		t.Errorf("level hold rate = %v out of [0, 1]", report.LevelHoldRate)
	}
}

func TestRunCyclicalSeriesFiresRules(t *testing.T) {
	// a strong sine wave swings RSI through both extremes and touches the
	// bands repeatedly
	bars := barsFromCloses(cyclicalCloses(300, 100, 20, 30))
	report := Run("SINE", bars)

	if report.RSI.Signals == 0 {
		t.Error("RSI rule never fired on a strongly cyclical series")
	}
	if report.Bollinger.Signals == 0 {
		t.Error("Bollinger rule never fired on a strongly cyclical series")
	}
	if report.MACD.Signals == 0 {
		t.Error("MACD crossovers never fired on a strongly cyclical series")
	}
}

func TestRunShortSeries(t *testing.T) {
	report := Run("SHORT", barsFromCloses(cyclicalCloses(20, 100, 5, 10)))
	if report.Composite.Signals != 0 {
		t.Errorf("composite should not fire before the warmup, got %d", report.Composite.Signals)
	}
	if report.LevelsTested != 0 {
		t.Errorf("levels tested = %d, want 0 on a short series", report.LevelsTested)
	}
}

func TestRunDeterministic(t *testing.T) {
	bars := barsFromCloses(cyclicalCloses(250, 100, 12, 25))
	first := Run("DET", bars)
	second := Run("DET", bars)
	if first != second {
		t.Errorf("same input produced different reports:\n%+v\n%+v", first, second)
	}
}
