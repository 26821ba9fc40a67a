package analysis

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// Analyzer runs the full technical analysis pipeline over a bar series.
type Analyzer struct {
	log *zap.Logger
}

func NewAnalyzer(log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{log: log}
}

// AnalyzeChart sanitizes the bars, computes the indicator set, detects
// levels, trends and patterns, synthesizes the trading signal, and attaches
// the risk metrics. It never fails: a short or empty series yields neutral
// indicators, empty detector output, and a hold signal.
func (a *Analyzer) AnalyzeChart(symbol string, bars []model.OHLCV) model.ChartAnalysisResult {
	clean := sanitizeBars(bars)
	if dropped := len(bars) - len(clean); dropped > 0 {
		a.log.Debug("dropped malformed bars",
			zap.String("symbol", symbol), zap.Int("dropped", dropped))
	}

	timestamps, closes, highs, lows := model.SeriesColumns(clean)

	rsi := calculator.RSI(closes, 14)
	macd := calculator.DefaultMACD(closes)

	supports, resistances := DetectSupportResistance(highs, lows, closes)
	levels := append(append([]model.SupportResistanceLevel{}, supports...), resistances...)
	trends := DetectTrendLines(timestamps, closes)
	patterns := DetectPatterns(highs, lows)
	signal := GenerateTradingSignal(rsi, macd, closes, supports, resistances, patterns)
	risk := AnalyzeRisk(clean)

	result := model.ChartAnalysisResult{
		Symbol:              symbol,
		TechnicalIndicators: buildIndicators(closes, rsi, macd),
		SupportResistance:   levels,
		TrendLines:          trends,
		Patterns:            patterns,
		TradingSignal:       signal,
		RiskAnalysis:        risk,
	}
	result.Summary = buildSummary(symbol, result)
	return result
}

// sanitizeBars drops bars with non-positive close, inverted high/low, or a
// timestamp that does not advance past the previous kept bar.
func sanitizeBars(bars []model.OHLCV) []model.OHLCV {
	clean := make([]model.OHLCV, 0, len(bars))
	var lastTime time.Time
	for _, b := range bars {
		if b.Close <= 0 || b.High < b.Low || !b.Time.After(lastTime) {
			continue
		}
		clean = append(clean, b)
		lastTime = b.Time
	}
	return clean
}

// buildIndicators wraps the latest indicator values for display, each with a
// coarse buy/sell/neutral reading.
func buildIndicators(closes []float64, rsi float64, macd calculator.MACDResult) []model.TechnicalIndicator {
	indicators := make([]model.TechnicalIndicator, 0, 4)

	rsiSignal := "neutral"
	rsiDesc := fmt.Sprintf("RSI(14) %.1f", rsi)
	switch {
	case rsi < rsiOversold:
		rsiSignal = "buy"
		rsiDesc += ", oversold"
	case rsi > rsiOverbought:
		rsiSignal = "sell"
		rsiDesc += ", overbought"
	}
	indicators = append(indicators, model.TechnicalIndicator{
		Name: "RSI", Value: round2(rsi), Signal: rsiSignal, Description: rsiDesc,
	})

	macdLine, signalLine, histogram := macd.LastMACD()
	macdSignal := "neutral"
	switch {
	case macdLine > signalLine && histogram > 0:
		macdSignal = "buy"
	case macdLine < signalLine && histogram < 0:
		macdSignal = "sell"
	}
	indicators = append(indicators, model.TechnicalIndicator{
		Name:        "MACD",
		Value:       round2(macdLine),
		Signal:      macdSignal,
		Description: fmt.Sprintf("MACD %.2f vs signal %.2f", macdLine, signalLine),
	})

	if len(closes) > 0 {
		current := closes[len(closes)-1]
		bands := calculator.DefaultBollingerBands(closes)
		upper := calculator.Last(bands.Upper, current)
		middle := calculator.Last(bands.Middle, current)
		lower := calculator.Last(bands.Lower, current)
		bandSignal := "neutral"
		if len(closes) >= 20 {
			switch {
			case current <= lower:
				bandSignal = "buy"
			case current >= upper:
				bandSignal = "sell"
			}
		}
		indicators = append(indicators, model.TechnicalIndicator{
			Name:        "Bollinger",
			Value:       round2(middle),
			Signal:      bandSignal,
			Description: fmt.Sprintf("band %.2f ~ %.2f, price %.2f", lower, upper, current),
		})

		mas := calculator.MovingAverages(closes)
		ma5 := calculator.Last(mas[5], 0)
		ma20 := calculator.Last(mas[20], 0)
		maSignal := "neutral"
		if ma5 > 0 && ma20 > 0 {
			if ma5 > ma20 {
				maSignal = "buy"
			} else if ma5 < ma20 {
				maSignal = "sell"
			}
		}
		indicators = append(indicators, model.TechnicalIndicator{
			Name:        "MA Cross",
			Value:       round2(ma5),
			Signal:      maSignal,
			Description: fmt.Sprintf("MA5 %.2f vs MA20 %.2f", ma5, ma20),
		})

		if ma120 := calculator.Last(mas[120], 0); ma120 > 0 {
			ma60 := calculator.Last(mas[60], 0)
			longSignal := "neutral"
			if current > ma60 && current > ma120 {
				longSignal = "buy"
			} else if current < ma60 && current < ma120 {
				longSignal = "sell"
			}
			indicators = append(indicators, model.TechnicalIndicator{
				Name:        "Long MA",
				Value:       round2(ma120),
				Signal:      longSignal,
				Description: fmt.Sprintf("price %.2f vs MA60 %.2f, MA120 %.2f", current, ma60, ma120),
			})
		}
	}

	return indicators
}

func buildSummary(symbol string, r model.ChartAnalysisResult) string {
	trend := "no clear trend"
	if len(r.TrendLines) > 0 {
		trend = string(r.TrendLines[0].Kind)
	}
	return fmt.Sprintf("%s: %s (confidence %.0f%%), %s, volatility %.1f%% (%s risk)",
		symbol, r.TradingSignal.Kind, r.TradingSignal.Confidence*100,
		trend, r.RiskAnalysis.VolatilityPct, r.RiskAnalysis.RiskLevel)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
