package analysis

import (
	"sort"

	"TradeScope/internal/model"
)

const patternWindow = 20

// DetectPatterns scans the trailing window for a small set of classical chart
// shapes. Confidence values are fixed per pattern; the detectors are coarse
// and meant to feed the composite signal, not to stand alone.
func DetectPatterns(highs, lows []float64) []model.Pattern {
	n := len(highs)
	if n < patternWindow || len(lows) != n {
		return nil
	}
	recentHighs := highs[n-patternWindow:]
	recentLows := lows[n-patternWindow:]

	var patterns []model.Pattern
	if p, ok := detectHeadAndShoulders(recentHighs); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectConvergingTriangle(recentHighs, recentLows); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

// detectHeadAndShoulders looks for three or more local peaks where the
// tallest strictly exceeds the next two.
func detectHeadAndShoulders(highs []float64) (model.Pattern, bool) {
	var peaks []float64
	for i := 1; i < len(highs)-1; i++ {
		if highs[i] > highs[i-1] && highs[i] > highs[i+1] {
			peaks = append(peaks, highs[i])
		}
	}
	if len(peaks) < 3 {
		return model.Pattern{}, false
	}
	sorted := make([]float64, len(peaks))
	copy(sorted, peaks)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if sorted[0] <= sorted[1] || sorted[0] <= sorted[2] {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Name:        "head_and_shoulders",
		Confidence:  0.6,
		Description: "Head and shoulders formation; potential bearish reversal",
		Signal:      model.PatternBearish,
	}, true
}

// detectConvergingTriangle fires when the highs trend down while the lows
// trend up over the window.
func detectConvergingTriangle(highs, lows []float64) (model.Pattern, bool) {
	if olsSlope(highs) >= 0 || olsSlope(lows) <= 0 {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Name:        "converging_triangle",
		Confidence:  0.5,
		Description: "Converging triangle; breakout direction undecided",
		Signal:      model.PatternNeutral,
	}, true
}
