// Package backtest replays historical bars through the indicator rules and
// the composite signal to measure how often each one called the subsequent
// move correctly.
package backtest

import (
	"TradeScope/internal/analysis"
	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// Evaluation horizons and thresholds per rule.
const (
	rsiHorizon       = 5
	rsiBuyBelow      = 30.0
	rsiSellAbove     = 75.0
	macdHorizon      = 10
	bollingerHorizon = 5
	signalHorizon    = 10
	levelTolerance   = 0.05
	minWarmup        = 60
)

// Outcome counts signals of one rule and how many were judged successful.
type Outcome struct {
	Signals int `json:"signals"`
	Wins    int `json:"wins"`
}

// WinRate is Wins/Signals, zero when the rule never fired.
func (o Outcome) WinRate() float64 {
	if o.Signals == 0 {
		return 0
	}
	return float64(o.Wins) / float64(o.Signals)
}

func (o *Outcome) record(win bool) {
	o.Signals++
	if win {
		o.Wins++
	}
}

// Report is the full backtest result for one symbol.
type Report struct {
	Symbol        string  `json:"symbol"`
	Bars          int     `json:"bars"`
	RSI           Outcome `json:"rsi"`
	MACD          Outcome `json:"macd"`
	Bollinger     Outcome `json:"bollinger"`
	Composite     Outcome `json:"composite"`
	LevelsTested  int     `json:"levels_tested"`
	LevelHoldRate float64 `json:"level_hold_rate"`
}

// Run evaluates every rule over the bar series.
func Run(symbol string, bars []model.OHLCV) Report {
	_, closes, highs, lows := model.SeriesColumns(bars)

	report := Report{Symbol: symbol, Bars: len(bars)}
	report.RSI = evaluateRSI(closes, highs, lows)
	report.MACD = evaluateMACD(closes)
	report.Bollinger = evaluateBollinger(closes)
	report.Composite = evaluateComposite(bars, closes, highs, lows)
	report.LevelsTested, report.LevelHoldRate = evaluateLevels(highs, lows, closes)
	return report
}

// evaluateRSI judges oversold buys and overbought sells five bars ahead. A
// buy wins if price did not fall more than 0.5% or the high gained 1%; sells
// are symmetric.
func evaluateRSI(closes, highs, lows []float64) Outcome {
	var out Outcome
	rsi := calculator.RSISeries(closes, 14)
	for i := 0; i < len(closes)-rsiHorizon; i++ {
		if isNaN(rsi[i]) {
			continue
		}
		entry := closes[i]
		change := (closes[i+rsiHorizon] - entry) / entry
		switch {
		case rsi[i] < rsiBuyBelow:
			out.record(change > -0.005 || maxOf(highs[i+1:i+1+rsiHorizon]) >= entry*1.01)
		case rsi[i] > rsiSellAbove:
			out.record(change < 0.005 || minOf(lows[i+1:i+1+rsiHorizon]) <= entry*0.99)
		}
	}
	return out
}

// evaluateMACD judges line/signal crossovers ten bars ahead with a 1% move
// in the cross direction.
func evaluateMACD(closes []float64) Outcome {
	var out Outcome
	result := calculator.DefaultMACD(closes)
	for i := 1; i < len(closes)-macdHorizon; i++ {
		if isNaN(result.MACD[i-1]) || isNaN(result.Signal[i-1]) ||
			isNaN(result.MACD[i]) || isNaN(result.Signal[i]) {
			continue
		}
		entry := closes[i]
		future := closes[i+macdHorizon]
		crossedUp := result.MACD[i-1] <= result.Signal[i-1] && result.MACD[i] > result.Signal[i]
		crossedDown := result.MACD[i-1] >= result.Signal[i-1] && result.MACD[i] < result.Signal[i]
		switch {
		case crossedUp:
			out.record(future >= entry*1.01)
		case crossedDown:
			out.record(future <= entry*0.99)
		}
	}
	return out
}

// evaluateBollinger judges band touches (1% tolerance) five bars ahead with
// a 0.5% reversion.
func evaluateBollinger(closes []float64) Outcome {
	var out Outcome
	bands := calculator.DefaultBollingerBands(closes)
	for i := 0; i < len(closes)-bollingerHorizon; i++ {
		if isNaN(bands.Upper[i]) || isNaN(bands.Lower[i]) {
			continue
		}
		entry := closes[i]
		future := closes[i+bollingerHorizon]
		switch {
		case entry <= bands.Lower[i]*1.01:
			out.record(future >= entry*1.005)
		case entry >= bands.Upper[i]*0.99:
			out.record(future <= entry*0.995)
		}
	}
	return out
}

// evaluateComposite replays the full signal synthesizer bar by bar and
// judges buys and sells ten bars ahead. Holds are not judged.
func evaluateComposite(bars []model.OHLCV, closes, highs, lows []float64) Outcome {
	var out Outcome
	for i := minWarmup; i < len(bars)-signalHorizon; i++ {
		window := closes[:i+1]
		rsi := calculator.RSI(window, 14)
		macd := calculator.DefaultMACD(window)
		supports, resistances := analysis.DetectSupportResistance(highs[:i+1], lows[:i+1], window)
		patterns := analysis.DetectPatterns(highs[:i+1], lows[:i+1])

		signal := analysis.GenerateTradingSignal(rsi, macd, window, supports, resistances, patterns)
		entry := closes[i]
		change := (closes[i+signalHorizon] - entry) / entry
		switch signal.Kind {
		case model.SignalBuy:
			out.record(change > 0 || maxOf(highs[i+1:i+1+signalHorizon]) >= entry*1.03)
		case model.SignalSell:
			out.record(change < 0 || minOf(lows[i+1:i+1+signalHorizon]) <= entry*0.97)
		}
	}
	return out
}

// evaluateLevels detects supports and resistances on the first 70% of the
// series and measures how often the remaining bars respected them. A level
// holds an approach when price does not break through by more than 5%.
func evaluateLevels(highs, lows, closes []float64) (tested int, holdRate float64) {
	split := len(closes) * 7 / 10
	if split < 2*10+1 || split >= len(closes) {
		return 0, 0
	}
	supports, resistances := analysis.DetectSupportResistance(highs[:split], lows[:split], closes[:split])

	approaches, holds := 0, 0
	for _, s := range supports {
		for i := split; i < len(closes); i++ {
			if lows[i] <= s.Level*(1+levelTolerance) {
				approaches++
				if closes[i] >= s.Level*(1-levelTolerance) {
					holds++
				}
			}
		}
	}
	for _, r := range resistances {
		for i := split; i < len(closes); i++ {
			if highs[i] >= r.Level*(1-levelTolerance) {
				approaches++
				if closes[i] <= r.Level*(1+levelTolerance) {
					holds++
				}
			}
		}
	}

	tested = len(supports) + len(resistances)
	if approaches > 0 {
		holdRate = float64(holds) / float64(approaches)
	}
	return tested, holdRate
}

func isNaN(v float64) bool { return v != v }

func maxOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func minOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}
