package matching

import (
	"github.com/jonathan/relomatcher/internal/types"
)

// Tax tie-break constants: a deterministic nudge in the direction the user
// explicitly asked for, proportional to distance from the score midpoint.
const (
	taxTieBreakMidpoint = 5.0
	taxTieBreakScale    = 1.0
)

// Aggregate combines a dimension breakdown and its weight vector into one
// 0-10 score. Only dimensions present in the breakdown with a strictly
// positive weight contribute; everything else is skipped without touching
// the denominator. ok is false when nothing was aggregable (the "no score"
// sentinel).
func Aggregate(breakdown types.DimensionBreakdown, weights types.WeightVector, taxSlider int) (float64, bool) {
	// Summation order matters: float addition is not associative, so iterating
	// the breakdown map directly would make the low bits of the score vary
	// between runs. Iterate the fixed dimension order instead.
	var sum, weightSum float64
	for _, dims := range [2][]string{types.CoreDimensions, types.OptionalDimensions} {
		for _, dim := range dims {
			value, present := breakdown[dim]
			if !present {
				continue
			}
			w, has := weights[dim]
			if !has || w <= 0 {
				continue
			}
			sum += value * w
			weightSum += w
		}
	}

	if weightSum == 0 {
		return 0, false
	}

	avg := sum / weightSum

	// Tax tie-break: active only when the tax priority flag resolved a slider.
	if taxSlider > 0 {
		if tax, ok := breakdown[types.DimTax]; ok {
			centered := tax - taxTieBreakMidpoint // [-5,+5]
			avg += (centered / taxTieBreakMidpoint) * (float64(taxSlider) / 10) * taxTieBreakScale
		}
	}

	return clamp(avg, 0, 10), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
