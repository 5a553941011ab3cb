package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/relomatcher/internal/types"
)

func testRecord(code, name string) types.CandidateRecord {
	return types.CandidateRecord{
		Code:                    code,
		Name:                    name,
		ShortNote:               "note",
		TaxScore:                5,
		CostOfLivingScore:       5,
		IncomeGrowthScore:       5,
		RemoteFriendlyScore:     5,
		SafetyScore:             5,
		LifestyleScore:          5,
		NetIncomePercentTypical: 70,
	}
}

func TestLoad_EmbeddedCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cat)

	assert.Greater(t, cat.Len(), 0)
	for _, rec := range cat.Records() {
		assert.NoError(t, rec.Validate())
	}

	prt := cat.Get("PRT")
	require.NotNil(t, prt)
	assert.Equal(t, "Portugal", prt.Name)
}

func TestFromRecords(t *testing.T) {
	cat, err := FromRecords([]types.CandidateRecord{
		testRecord("PRT", "Portugal"),
		testRecord("ESP", "Spain"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "Spain", cat.Get("ESP").Name)
	assert.Nil(t, cat.Get("XXX"))
}

func TestFromRecords_Empty(t *testing.T) {
	_, err := FromRecords(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is empty")
}

func TestFromRecords_DuplicateCode(t *testing.T) {
	_, err := FromRecords([]types.CandidateRecord{
		testRecord("PRT", "Portugal"),
		testRecord("PRT", "Portugal again"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate candidate code PRT")
}

func TestFromRecords_InvalidRecord(t *testing.T) {
	bad := testRecord("ESP", "Spain")
	bad.SafetyScore = 42

	_, err := FromRecords([]types.CandidateRecord{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog record")
}

func TestFromJSON_Malformed(t *testing.T) {
	_, err := FromJSON([]byte("{ nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog JSON")
}
