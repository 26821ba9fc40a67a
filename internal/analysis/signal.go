package analysis

import (
	"fmt"
	"math"
	"strings"

	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// Evidence weights for the composite signal. The weights are additive per
// side; a side must clear decisionFloor to produce an actionable signal.
const (
	weightRSI      = 0.30
	weightMACD     = 0.25
	weightLevel    = 0.20
	weightPattern  = 0.15
	decisionFloor  = 0.30
	levelProximity = 0.02

	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// GenerateTradingSignal combines RSI, MACD, support/resistance proximity, and
// detected patterns into a single buy/sell/hold decision with entry, target,
// and stop prices. Neither side clearing the floor yields a hold.
func GenerateTradingSignal(rsi float64, macd calculator.MACDResult, closes []float64,
	supports, resistances []model.SupportResistanceLevel, patterns []model.Pattern) model.TradingSignal {

	if len(closes) == 0 {
		return model.TradingSignal{Kind: model.SignalHold, Confidence: 0.5, Reason: "trend unchanged"}
	}
	current := closes[len(closes)-1]
	if math.IsNaN(rsi) {
		rsi = 50
	}

	var buyScore, sellScore float64
	var buyReasons, sellReasons []string

	switch {
	case rsi < rsiOversold:
		buyScore += weightRSI
		buyReasons = append(buyReasons, fmt.Sprintf("RSI %.1f oversold", rsi))
	case rsi > rsiOverbought:
		sellScore += weightRSI
		sellReasons = append(sellReasons, fmt.Sprintf("RSI %.1f overbought", rsi))
	}

	macdLine, signalLine, histogram := macd.LastMACD()
	switch {
	case macdLine > signalLine && histogram > 0:
		buyScore += weightMACD
		buyReasons = append(buyReasons, "MACD above signal line")
	case macdLine < signalLine && histogram < 0:
		sellScore += weightMACD
		sellReasons = append(sellReasons, "MACD below signal line")
	}

	if support, ok := nearestSupportBelow(current, supports); ok && current <= support*(1+levelProximity) {
		buyScore += weightLevel
		buyReasons = append(buyReasons, fmt.Sprintf("price near support %.2f", support))
	}
	if resistance, ok := nearestResistanceAbove(current, resistances); ok && current >= resistance*(1-levelProximity) {
		sellScore += weightLevel
		sellReasons = append(sellReasons, fmt.Sprintf("price near resistance %.2f", resistance))
	}

	for _, p := range patterns {
		switch p.Signal {
		case model.PatternBullish:
			buyScore += p.Confidence * weightPattern
			buyReasons = append(buyReasons, "bullish pattern: "+p.Name)
		case model.PatternBearish:
			sellScore += p.Confidence * weightPattern
			sellReasons = append(sellReasons, "bearish pattern: "+p.Name)
		}
	}

	switch {
	case buyScore > sellScore && buyScore > decisionFloor:
		target := current * 1.05
		if len(resistances) > 0 {
			target = current * 1.10
		}
		return model.TradingSignal{
			Kind:        model.SignalBuy,
			Confidence:  math.Min(buyScore, 1.0),
			EntryPrice:  current,
			TargetPrice: target,
			StopLoss:    current * 0.95,
			Reason:      joinReasons(buyReasons),
		}
	case sellScore > buyScore && sellScore > decisionFloor:
		target := current * 0.95
		if len(supports) > 0 {
			target = current * 0.90
		}
		return model.TradingSignal{
			Kind:        model.SignalSell,
			Confidence:  math.Min(sellScore, 1.0),
			EntryPrice:  current,
			TargetPrice: target,
			StopLoss:    current * 1.05,
			Reason:      joinReasons(sellReasons),
		}
	}

	return model.TradingSignal{Kind: model.SignalHold, Confidence: 0.5, Reason: "trend unchanged"}
}

func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "trend unchanged"
	}
	return strings.Join(reasons, " | ")
}

// nearestSupportBelow returns the highest support level strictly below price.
func nearestSupportBelow(price float64, levels []model.SupportResistanceLevel) (float64, bool) {
	best, found := 0.0, false
	for _, l := range levels {
		if l.Level < price && (!found || l.Level > best) {
			best, found = l.Level, true
		}
	}
	return best, found
}

// nearestResistanceAbove returns the lowest resistance level strictly above
// price.
func nearestResistanceAbove(price float64, levels []model.SupportResistanceLevel) (float64, bool) {
	best, found := 0.0, false
	for _, l := range levels {
		if l.Level > price && (!found || l.Level < best) {
			best, found = l.Level, true
		}
	}
	return best, found
}
