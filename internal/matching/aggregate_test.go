package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/relomatcher/internal/types"
)

func TestAggregate_WeightedAverage(t *testing.T) {
	breakdown := types.DimensionBreakdown{
		types.DimTax:    8.0,
		types.DimSafety: 6.0,
	}
	weights := types.WeightVector{
		types.DimTax:    3.0,
		types.DimSafety: 1.0,
	}

	score, ok := Aggregate(breakdown, weights, 0)
	require.True(t, ok)
	assert.InDelta(t, 7.5, score, 1e-9) // (8*3 + 6*1) / 4
}

func TestAggregate_SkipsZeroAndMissingWeights(t *testing.T) {
	breakdown := types.DimensionBreakdown{
		types.DimTax:        8.0,
		types.DimSafety:     2.0,
		types.DimLgbtRights: 1.0,
	}
	weights := types.WeightVector{
		types.DimTax:    2.0,
		types.DimSafety: 0, // excluded, denominator untouched
	}

	score, ok := Aggregate(breakdown, weights, 0)
	require.True(t, ok)
	assert.InDelta(t, 8.0, score, 1e-9)
}

func TestAggregate_NoScoreSentinel(t *testing.T) {
	_, ok := Aggregate(types.DimensionBreakdown{}, types.WeightVector{types.DimTax: 1}, 0)
	assert.False(t, ok)

	_, ok = Aggregate(types.DimensionBreakdown{types.DimTax: 5}, types.WeightVector{}, 0)
	assert.False(t, ok)

	_, ok = Aggregate(types.DimensionBreakdown{types.DimTax: 5}, types.WeightVector{types.DimTax: 0}, 0)
	assert.False(t, ok)
}

func TestAggregate_TaxTieBreak(t *testing.T) {
	weights := types.WeightVector{types.DimTax: 1, types.DimSafety: 1}
	highTax := types.DimensionBreakdown{types.DimTax: 9.0, types.DimSafety: 5.0}
	lowTax := types.DimensionBreakdown{types.DimTax: 1.0, types.DimSafety: 5.0}

	baseHigh, ok := Aggregate(highTax, weights, 0)
	require.True(t, ok)
	nudgedHigh, ok := Aggregate(highTax, weights, 10)
	require.True(t, ok)
	assert.Greater(t, nudgedHigh, baseHigh)

	baseLow, ok := Aggregate(lowTax, weights, 0)
	require.True(t, ok)
	nudgedLow, ok := Aggregate(lowTax, weights, 10)
	require.True(t, ok)
	assert.Less(t, nudgedLow, baseLow)
}

func TestAggregate_TieBreakScalesWithSlider(t *testing.T) {
	weights := types.WeightVector{types.DimTax: 1, types.DimSafety: 1}
	breakdown := types.DimensionBreakdown{types.DimTax: 9.0, types.DimSafety: 5.0}

	weak, _ := Aggregate(breakdown, weights, 3)
	strong, _ := Aggregate(breakdown, weights, 10)
	assert.Greater(t, strong, weak)
}

func TestAggregate_StableAcrossCalls(t *testing.T) {
	// Exercise every dimension at once so the weighted sum has many terms;
	// the result must be bit-identical on every call.
	breakdown := make(types.DimensionBreakdown)
	weights := make(types.WeightVector)
	all := append(append([]string{}, types.CoreDimensions...), types.OptionalDimensions...)
	for i, dim := range all {
		breakdown[dim] = 3.1 + 0.4*float64(i)/1.3
		weights[dim] = 0.9 + 0.3*float64(i)/1.7
	}

	first, ok := Aggregate(breakdown, weights, 8)
	require.True(t, ok)
	for i := 0; i < 1000; i++ {
		score, ok := Aggregate(breakdown, weights, 8)
		require.True(t, ok)
		assert.Equal(t, first, score, "call %d produced a different score", i)
	}
}

func TestAggregate_ClampedToRange(t *testing.T) {
	weights := types.WeightVector{types.DimTax: 1}

	score, ok := Aggregate(types.DimensionBreakdown{types.DimTax: 10}, weights, 10)
	require.True(t, ok)
	assert.LessOrEqual(t, score, 10.0)

	score, ok = Aggregate(types.DimensionBreakdown{types.DimTax: 0}, weights, 10)
	require.True(t, ok)
	assert.GreaterOrEqual(t, score, 0.0)
}
