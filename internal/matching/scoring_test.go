package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/relomatcher/internal/types"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testCandidate() types.CandidateRecord {
	return types.CandidateRecord{
		Code:                    "PRT",
		Name:                    "Portugal",
		ShortNote:               "Mild climate, expat-friendly",
		TaxScore:                6.5,
		CostOfLivingScore:       7.0,
		IncomeGrowthScore:       5.5,
		RemoteFriendlyScore:     8.0,
		SafetyScore:             8.5,
		LifestyleScore:          8.0,
		NetIncomePercentTypical: 72,
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Very solid scores on safety and stability.", Describe(types.DimSafety, 9.0))
	assert.Equal(t, "Generally safe with some caveats.", Describe(types.DimSafety, 7.0))
	assert.Equal(t, "Safety, politics or stability are more fragile.", Describe(types.DimSafety, 4.0))
	assert.Equal(t, "", Describe("unknownDimension", 9.0))
}

func TestDescribe_Boundaries(t *testing.T) {
	// Thresholds are inclusive on the higher bucket.
	assert.Equal(t, "Very efficient taxes compared to many alternatives.", Describe(types.DimTax, 8.3))
	assert.Equal(t, "Taxes are middling - not terrible, not amazing.", Describe(types.DimTax, 8.29))
	assert.Equal(t, "Taxes are middling - not terrible, not amazing.", Describe(types.DimTax, 6.3))
	assert.Equal(t, "Taxes are on the heavier side here.", Describe(types.DimTax, 6.29))
}

func TestScoreDimensions_CoreAlwaysPresent(t *testing.T) {
	c := testCandidate()
	p := &types.Profile{Reasons: []types.ReasonFlag{types.ReasonLowerTaxes}}

	breakdown, explanations := ScoreDimensions(&c, p)

	for _, dim := range types.CoreDimensions {
		assert.Contains(t, breakdown, dim)
		assert.Contains(t, explanations, dim)
	}
	assert.NotContains(t, breakdown, types.DimLanguageMatch)
	assert.NotContains(t, breakdown, types.DimLgbtRights)
	assert.NotContains(t, breakdown, types.DimClimateMatch)
}

func TestScoreDimensions_LanguageMatch(t *testing.T) {
	c := testCandidate()
	c.EnglishScore = floatPtr(7.5)

	p := &types.Profile{LanguagesSpoken: []string{"English"}}
	breakdown, _ := ScoreDimensions(&c, p)
	assert.Equal(t, 7.5, breakdown[types.DimLanguageMatch])

	// Missing candidate data falls back to neutral, not zero.
	c.EnglishScore = nil
	breakdown, _ = ScoreDimensions(&c, p)
	assert.Equal(t, neutralLanguageScore, breakdown[types.DimLanguageMatch])

	// Non-English speakers get no language dimension at all.
	p = &types.Profile{LanguagesSpoken: []string{"Spanish"}}
	breakdown, _ = ScoreDimensions(&c, p)
	assert.NotContains(t, breakdown, types.DimLanguageMatch)
}

func TestScoreDimensions_OptionalDimensions(t *testing.T) {
	c := testCandidate()
	c.LgbtScore = floatPtr(9.0)
	c.HealthcareScore = floatPtr(8.0)

	p := &types.Profile{Reasons: []types.ReasonFlag{types.ReasonLowerTaxes}}
	breakdown, _ := ScoreDimensions(&c, p)

	assert.Equal(t, 9.0, breakdown[types.DimLgbtRights])
	assert.Equal(t, 8.0, breakdown[types.DimHealthcareSystem])
	assert.NotContains(t, breakdown, types.DimPublicTransport)
}

func TestClimateMatch(t *testing.T) {
	tests := []struct {
		name string
		cold *float64
		warm *float64
		mild *float64
		pref string
		want float64
		ok   bool
	}{
		{"warm preference uses warm score", nil, floatPtr(9), floatPtr(7), "warm", 9, true},
		{"warm falls back to mild", nil, nil, floatPtr(7), "warm", 7, true},
		{"warm falls back to neutral", nil, nil, nil, "warm", neutralClimateFallback, true},
		{"cold preference uses cold score", floatPtr(8), nil, nil, "cold", 8, true},
		{"mild preference uses mild score", nil, nil, floatPtr(6.5), "mild", 6.5, true},
		{"mild falls back to mild default", nil, nil, nil, "mild", mildClimateFallback, true},
		{"no preference averages available", floatPtr(4), floatPtr(8), nil, "", 6, true},
		{"no preference no data omits", nil, nil, nil, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCandidate()
			c.ColdClimateScore = tt.cold
			c.WarmClimateScore = tt.warm
			c.MildClimateScore = tt.mild

			got, ok := climateMatch(&c, tt.pref)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestClimatePreference_FirstMatchWins(t *testing.T) {
	set := func(flags ...types.ReasonFlag) map[types.ReasonFlag]bool {
		m := make(map[types.ReasonFlag]bool)
		for _, f := range flags {
			m[f] = true
		}
		return m
	}

	assert.Equal(t, "cold", climatePreference(set(types.ReasonClimatePrefCold, types.ReasonClimatePrefWarm)))
	assert.Equal(t, "warm", climatePreference(set(types.ReasonClimatePrefWarm, types.ReasonClimatePrefMild)))
	assert.Equal(t, "mild", climatePreference(set(types.ReasonClimatePrefMild)))
	assert.Equal(t, "", climatePreference(set()))
}

func TestScoreDimensions_ExplanationsMatchBreakdown(t *testing.T) {
	c := testCandidate()
	c.LgbtScore = floatPtr(9.0)

	p := &types.Profile{
		LanguagesSpoken: []string{"English"},
		Reasons:         []types.ReasonFlag{types.ReasonBetterWeather, types.ReasonClimatePrefWarm},
	}
	breakdown, explanations := ScoreDimensions(&c, p)

	require.NotEmpty(t, breakdown)
	for dim := range breakdown {
		assert.Contains(t, explanations, dim, "dimension %s has no explanation", dim)
	}
	for dim := range explanations {
		assert.Contains(t, breakdown, dim, "explanation %s has no dimension", dim)
	}
}
