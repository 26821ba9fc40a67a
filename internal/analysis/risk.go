package analysis

import (
	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// Annualized volatility bands, in percentage points.
const (
	riskLowCeiling    = 15.0
	riskMediumCeiling = 30.0
)

// AnalyzeRisk computes annualized volatility, maximum drawdown, Sharpe ratio,
// and the 52-week price range from daily bars. Short series degrade to zero
// valued metrics rather than erroring.
func AnalyzeRisk(bars []model.OHLCV) model.RiskAnalysis {
	result := model.RiskAnalysis{RiskLevel: model.RiskLow}
	if len(bars) == 0 {
		return result
	}

	_, closes, highs, lows := model.SeriesColumns(bars)
	result.CurrentPrice = closes[len(closes)-1]
	result.YearHigh, result.YearLow = calculator.YearRange(highs, lows)

	returns := calculator.PctReturns(closes)
	vol := calculator.AnnualizedVolatility(returns)
	result.VolatilityPct = vol * 100
	switch {
	case result.VolatilityPct < riskLowCeiling:
		result.RiskLevel = model.RiskLow
	case result.VolatilityPct < riskMediumCeiling:
		result.RiskLevel = model.RiskMedium
	default:
		result.RiskLevel = model.RiskHigh
	}

	result.MaxDrawdownPct = calculator.MaxDrawdown(returns) * 100
	result.SharpeRatio = calculator.SharpeRatio(returns)
	return result
}
