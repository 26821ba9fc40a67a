package model

// LevelKind distinguishes support from resistance levels.
type LevelKind string

const (
	LevelSupport    LevelKind = "support"
	LevelResistance LevelKind = "resistance"
)

// SupportResistanceLevel is a price level traders have repeatedly reacted to.
// Strength is the fraction of nearby bars that touched the level.
type SupportResistanceLevel struct {
	Level    float64   `json:"level"`
	Strength float64   `json:"strength"`
	Kind     LevelKind `json:"kind"`
}

// TrendKind classifies the direction of a detected trend line.
type TrendKind string

const (
	TrendUp       TrendKind = "uptrend"
	TrendDown     TrendKind = "downtrend"
	TrendSideways TrendKind = "sideways"
)

// TrendLine connects the first and last observed prices of the trailing window.
// The regression slope only classifies Kind; the endpoints are real prices.
type TrendLine struct {
	StartPrice float64   `json:"start_price"`
	EndPrice   float64   `json:"end_price"`
	StartTime  int64     `json:"start_time"`
	EndTime    int64     `json:"end_time"`
	Kind       TrendKind `json:"kind"`
}

// PatternSignal is the directional bias a chart pattern implies.
type PatternSignal string

const (
	PatternBullish PatternSignal = "bullish"
	PatternBearish PatternSignal = "bearish"
	PatternNeutral PatternSignal = "neutral"
)

// Pattern is a heuristically recognized chart formation.
type Pattern struct {
	Name        string        `json:"name"`
	Confidence  float64       `json:"confidence"`
	Description string        `json:"description"`
	Signal      PatternSignal `json:"signal"`
}

// SignalKind is the trading recommendation.
type SignalKind string

const (
	SignalBuy  SignalKind = "buy"
	SignalSell SignalKind = "sell"
	SignalHold SignalKind = "hold"
)

// TradingSignal is the synthesizer's output. EntryPrice, TargetPrice and
// StopLoss are zero when Kind is hold.
type TradingSignal struct {
	Kind        SignalKind `json:"kind"`
	Confidence  float64    `json:"confidence"`
	EntryPrice  float64    `json:"entry_price,omitempty"`
	TargetPrice float64    `json:"target_price,omitempty"`
	StopLoss    float64    `json:"stop_loss,omitempty"`
	Reason      string     `json:"reason"`
}

// TechnicalIndicator is a display wrapper around one indicator's latest value.
type TechnicalIndicator struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Signal      string  `json:"signal"`
	Description string  `json:"description"`
}

// RiskLevel bands annualized volatility into a coarse rating.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAnalysis summarizes volatility and the 52-week range.
type RiskAnalysis struct {
	VolatilityPct  float64   `json:"volatility_pct"`
	RiskLevel      RiskLevel `json:"risk_level"`
	MaxDrawdownPct float64   `json:"max_drawdown_pct"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	CurrentPrice   float64   `json:"current_price"`
	YearHigh       float64   `json:"year_high"`
	YearLow        float64   `json:"year_low"`
}

// ChartAnalysisResult is the full analysis of one symbol's bar series.
type ChartAnalysisResult struct {
	Symbol              string                   `json:"symbol"`
	TechnicalIndicators []TechnicalIndicator     `json:"technical_indicators"`
	SupportResistance   []SupportResistanceLevel `json:"support_resistance"`
	TrendLines          []TrendLine              `json:"trend_lines"`
	Patterns            []Pattern                `json:"patterns"`
	TradingSignal       TradingSignal            `json:"trading_signal"`
	RiskAnalysis        RiskAnalysis             `json:"risk_analysis"`
	Summary             string                   `json:"summary"`
}
