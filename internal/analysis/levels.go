// Package analysis implements the technical-analysis core: support/resistance
// detection, trend classification, chart patterns, the composite trading
// signal, and risk metrics. Everything here is pure computation over caller
// supplied series; detectors return empty results instead of errors when the
// series is too short.
package analysis

import (
	"math"
	"sort"

	"TradeScope/internal/model"
)

const (
	levelWindow      = 20   // nominal detection window
	touchTolerance   = 0.03 // a bar "touches" a level within ±3%
	clusterTolerance = 0.02 // levels within ±2% merge into one
	minStrength      = 0.2
	maxLevelsPerKind = 5
	touchLookback    = 50 // bars before the pivot counted for strength
	touchLookahead   = 10 // bars after the pivot counted for strength
)

// DetectSupportResistance extracts support and resistance levels from pivot
// extrema, scores them by touch count, and returns at most five of each kind
// ordered by strength descending.
func DetectSupportResistance(highs, lows, closes []float64) (supports, resistances []model.SupportResistanceLevel) {
	pivotWindow := levelWindow / 2
	if pivotWindow < 5 {
		pivotWindow = 5
	}
	n := len(lows)
	if len(highs) != n || n < 2*pivotWindow+1 {
		return nil, nil
	}

	var supportCandidates, resistanceCandidates []model.SupportResistanceLevel
	for i := pivotWindow; i < n-pivotWindow; i++ {
		if isWindowMin(lows, i, pivotWindow) {
			strength := touchStrength(lows, i, lows[i])
			if strength >= minStrength {
				supportCandidates = append(supportCandidates, model.SupportResistanceLevel{
					Level:    lows[i],
					Strength: strength,
					Kind:     model.LevelSupport,
				})
			}
		}
		if isWindowMax(highs, i, pivotWindow) {
			strength := touchStrength(highs, i, highs[i])
			if strength >= minStrength {
				resistanceCandidates = append(resistanceCandidates, model.SupportResistanceLevel{
					Level:    highs[i],
					Strength: strength,
					Kind:     model.LevelResistance,
				})
			}
		}
	}

	return DeduplicateLevels(supportCandidates), DeduplicateLevels(resistanceCandidates)
}

// DeduplicateLevels clusters levels within ±2% of each other, keeps the
// strongest representative of each cluster, and caps the result at five
// levels ordered by strength descending. The operation is idempotent.
func DeduplicateLevels(candidates []model.SupportResistanceLevel) []model.SupportResistanceLevel {
	if len(candidates) == 0 {
		return nil
	}
	sorted := make([]model.SupportResistanceLevel, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Strength != sorted[j].Strength {
			return sorted[i].Strength > sorted[j].Strength
		}
		return sorted[i].Level < sorted[j].Level
	})

	var kept []model.SupportResistanceLevel
	for _, c := range sorted {
		duplicate := false
		for _, k := range kept {
			if k.Level != 0 && math.Abs(c.Level-k.Level)/k.Level <= clusterTolerance {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
			if len(kept) == maxLevelsPerKind {
				break
			}
		}
	}
	return kept
}

// isWindowMin reports whether values[i] is the minimum of the symmetric
// neighborhood [i-w, i+w].
func isWindowMin(values []float64, i, w int) bool {
	for j := i - w; j <= i+w; j++ {
		if values[j] < values[i] {
			return false
		}
	}
	return true
}

func isWindowMax(values []float64, i, w int) bool {
	for j := i - w; j <= i+w; j++ {
		if values[j] > values[i] {
			return false
		}
	}
	return true
}

// touchStrength counts how many bars around the pivot touched the level
// within the tolerance band, over up to touchLookback bars before and
// touchLookahead after, and normalizes by bars considered.
func touchStrength(values []float64, pivot int, level float64) float64 {
	if level == 0 {
		return 0
	}
	start := pivot - touchLookback
	if start < 0 {
		start = 0
	}
	end := pivot + touchLookahead
	if end > len(values)-1 {
		end = len(values) - 1
	}
	bars := end - start + 1
	touches := 0
	for j := start; j <= end; j++ {
		if math.Abs(values[j]-level)/level <= touchTolerance {
			touches++
		}
	}
	return float64(touches) / float64(bars)
}
