package types

// Dimension names used as keys in breakdowns, weight vectors and JSON output.
const (
	DimTax                 = "tax"
	DimCostOfLiving        = "costOfLiving"
	DimIncomeGrowth        = "incomeGrowth"
	DimRemoteFriendly      = "remoteFriendly"
	DimSafety              = "safety"
	DimLifestyle           = "lifestyle"
	DimClimateMatch        = "climateMatch"
	DimLanguageMatch       = "languageMatch"
	DimExpatScene          = "expatScene"
	DimSocialScene         = "socialScene"
	DimLgbtRights          = "lgbtRights"
	DimHealthcareSystem    = "healthcareSystem"
	DimPublicTransport     = "publicTransport"
	DimDigitalServices     = "digitalServices"
	DimInfrastructureClean = "infrastructureClean"
)

// CoreDimensions are always present in every breakdown.
var CoreDimensions = []string{
	DimTax, DimCostOfLiving, DimIncomeGrowth,
	DimRemoteFriendly, DimSafety, DimLifestyle,
}

// OptionalDimensions exist only when derivable for a candidate/profile pair.
var OptionalDimensions = []string{
	DimClimateMatch, DimLanguageMatch, DimExpatScene, DimSocialScene,
	DimLgbtRights, DimHealthcareSystem, DimPublicTransport,
	DimDigitalServices, DimInfrastructureClean,
}

// DimensionBreakdown maps dimension name to its 0-10 score for one
// (candidate, profile) pair. A dimension missing from the map is "not
// applicable", never an implicit zero.
type DimensionBreakdown map[string]float64

// DimensionExplanations carries the qualitative wording for each scored dimension.
type DimensionExplanations map[string]string

// WeightVector maps dimension name to a non-negative weight. Zero means the
// dimension is excluded from aggregation. Derived fresh per profile.
type WeightVector map[string]float64

// RankedCandidate is a winner: a candidate that passed every hard rule,
// carrying its total score and the full scoring detail.
type RankedCandidate struct {
	Code             string                `json:"code"`
	Name             string                `json:"name"`
	TotalScore       float64               `json:"totalScore"`
	Breakdown        DimensionBreakdown    `json:"breakdown"`
	Explanations     DimensionExplanations `json:"explanations"`
	ShortNote        string                `json:"shortNote"`
	NetIncomePercent float64               `json:"netIncomePercent"`
}

// DisqualifiedCandidate is a candidate removed by a hard rule. BaseScore is
// the pre-filter aggregate, named distinctly to signal it ignores the rule
// that removed the candidate.
type DisqualifiedCandidate struct {
	Code             string                `json:"code"`
	Name             string                `json:"name"`
	BaseScore        float64               `json:"baseScore"`
	Breakdown        DimensionBreakdown    `json:"breakdown"`
	Explanations     DimensionExplanations `json:"explanations"`
	ShortNote        string                `json:"shortNote"`
	NetIncomePercent float64               `json:"netIncomePercent"`
	Reason           string                `json:"reason"`
}

// MatchResult is the deterministic output of one ranking run: winners sorted
// by total score descending, plus the most informative disqualified entries.
type MatchResult struct {
	Winners         []RankedCandidate       `json:"winners"`
	DisqualifiedTop []DisqualifiedCandidate `json:"disqualifiedTop"`
}
