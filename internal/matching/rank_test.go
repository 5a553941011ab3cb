package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/relomatcher/internal/catalog"
	"github.com/jonathan/relomatcher/internal/types"
)

func testCatalog(t *testing.T, records ...types.CandidateRecord) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.FromRecords(records)
	require.NoError(t, err)
	return cat
}

func namedCandidate(code, name string, lgbt *float64) types.CandidateRecord {
	c := testCandidate()
	c.Code = code
	c.Name = name
	c.LgbtScore = lgbt
	return c
}

func TestMatch_WinnersSortedDescending(t *testing.T) {
	low := namedCandidate("AAA", "Alpha", nil)
	low.TaxScore = 2.0
	high := namedCandidate("BBB", "Beta", nil)
	high.TaxScore = 9.0

	cat := testCatalog(t, low, high)
	p := &types.Profile{
		Reasons:       []types.ReasonFlag{types.ReasonLowerTaxes},
		TaxImportance: intPtr(10),
	}

	result, err := Match(cat, p)
	require.NoError(t, err)

	require.Len(t, result.Winners, 2)
	assert.Equal(t, "BBB", result.Winners[0].Code)
	assert.Greater(t, result.Winners[0].TotalScore, result.Winners[1].TotalScore)
	assert.Empty(t, result.DisqualifiedTop)
}

func TestMatch_Deterministic(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	// Activate every dimension group so the aggregation sums many terms;
	// repeated runs must agree on ordering and on the exact scores.
	p := &types.Profile{
		LanguagesSpoken: []string{"English"},
		Reasons: []types.ReasonFlag{
			types.ReasonLowerTaxes, types.ReasonLowerCostOfLiving,
			types.ReasonBetterWeather, types.ReasonClimatePrefWarm,
			types.ReasonLanguageNiceToHave, types.ReasonCareerGrowth,
			types.ReasonRemoteWork, types.ReasonSafetyImportanceMedium,
			types.ReasonExpatCommunity, types.ReasonSocialLife,
			types.ReasonDevelopmentCareYes, types.ReasonDevPublicTransport,
			types.ReasonBetterLgbtq,
		},
		TaxImportance:  intPtr(8),
		LgbtImportance: intPtr(5),
	}

	first, err := Match(cat, p)
	require.NoError(t, err)
	require.NotEmpty(t, first.Winners)

	for i := 0; i < 50; i++ {
		again, err := Match(cat, p)
		require.NoError(t, err)
		require.Equal(t, len(first.Winners), len(again.Winners))
		for j := range first.Winners {
			assert.Equal(t, first.Winners[j].Code, again.Winners[j].Code, "run %d winner %d", i, j)
			assert.Equal(t, first.Winners[j].TotalScore, again.Winners[j].TotalScore, "run %d winner %d", i, j)
		}
		assert.Equal(t, first.DisqualifiedTop, again.DisqualifiedTop, "run %d", i)
	}
}

func TestMatch_PartitionIsDisjoint(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	p := &types.Profile{
		Reasons:        []types.ReasonFlag{types.ReasonBetterLgbtq},
		LgbtImportance: intPtr(10),
	}

	result, err := Match(cat, p)
	require.NoError(t, err)

	winnerCodes := make(map[string]bool)
	for _, w := range result.Winners {
		assert.False(t, winnerCodes[w.Code], "duplicate winner %s", w.Code)
		winnerCodes[w.Code] = true
	}
	for _, d := range result.DisqualifiedTop {
		assert.False(t, winnerCodes[d.Code], "candidate %s is both winner and disqualified", d.Code)
		assert.NotEmpty(t, d.Reason)
	}
}

func TestMatch_DisqualifiedCappedAndSorted(t *testing.T) {
	weak := floatPtr(2.0)
	records := []types.CandidateRecord{
		namedCandidate("AAA", "Alpha", weak),
		namedCandidate("BBB", "Beta", weak),
		namedCandidate("CCC", "Gamma", weak),
		namedCandidate("DDD", "Delta", weak),
		namedCandidate("EEE", "Epsilon", weak),
	}
	// Vary scores so the cap keeps the strongest near misses.
	for i := range records {
		records[i].SafetyScore = float64(4 + i)
	}

	cat := testCatalog(t, records...)
	p := &types.Profile{
		Reasons:        []types.ReasonFlag{types.ReasonBetterLgbtq},
		LgbtImportance: intPtr(10),
	}

	result, err := Match(cat, p)
	require.NoError(t, err)

	assert.Empty(t, result.Winners)
	require.Len(t, result.DisqualifiedTop, DisqualifiedTopN)
	for i := 1; i < len(result.DisqualifiedTop); i++ {
		assert.GreaterOrEqual(t,
			result.DisqualifiedTop[i-1].BaseScore,
			result.DisqualifiedTop[i].BaseScore)
	}
	// The weakest candidates fell off the end of the capped list.
	codes := make(map[string]bool)
	for _, d := range result.DisqualifiedTop {
		codes[d.Code] = true
	}
	assert.True(t, codes["EEE"])
	assert.False(t, codes["AAA"])
}

func TestMatch_InvalidProfile(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	_, err = Match(cat, &types.Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot rank candidates")
}

func TestMatch_CarriesCandidateMetadata(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	p := &types.Profile{Reasons: []types.ReasonFlag{types.ReasonLowerTaxes}}
	result, err := Match(cat, p)
	require.NoError(t, err)
	require.NotEmpty(t, result.Winners)

	for _, w := range result.Winners {
		rec := cat.Get(w.Code)
		require.NotNil(t, rec)
		assert.Equal(t, rec.Name, w.Name)
		assert.Equal(t, rec.ShortNote, w.ShortNote)
		assert.Equal(t, rec.NetIncomePercentTypical, w.NetIncomePercent)
		assert.GreaterOrEqual(t, w.TotalScore, 0.0)
		assert.LessOrEqual(t, w.TotalScore, 10.0)
		assert.NotEmpty(t, w.Breakdown)
	}
}
