// Package score maps raw match and ATS scores onto display percentages.
package score

import "math"

// InflationFactor is applied to fractional scores before display.
const InflationFactor = 1.75

// ToDisplayPercentage converts a raw score to an integer percentage in [0, 100].
// NaN yields 0. Scores of 1 and above are already on a percentage scale;
// smaller scores are fractions and get inflated. The result is rounded and
// clamped in both cases.
func ToDisplayPercentage(raw float64) int {
	if math.IsNaN(raw) {
		return 0
	}

	value := raw
	if raw < 1 {
		value = raw * InflationFactor
	}

	return clamp(math.Round(value))
}

// FromOptional is ToDisplayPercentage for a score that may be missing.
func FromOptional(raw *float64) int {
	if raw == nil {
		return 0
	}
	return ToDisplayPercentage(*raw)
}

func clamp(v float64) int {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 100:
		return 100
	default:
		return int(v)
	}
}
