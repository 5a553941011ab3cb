package types

import "fmt"

// CandidateRecord is one immutable entry in the static candidate catalog.
// Core scores are always present; optional attributes use pointers so that
// "absent" stays distinct from zero.
type CandidateRecord struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	ShortNote string `json:"shortNote"`

	TaxScore            float64 `json:"taxScore"`
	CostOfLivingScore   float64 `json:"costOfLivingScore"`
	IncomeGrowthScore   float64 `json:"incomeGrowthScore"`
	RemoteFriendlyScore float64 `json:"remoteFriendlyScore"`
	SafetyScore         float64 `json:"safetyScore"`
	LifestyleScore      float64 `json:"lifestyleScore"`

	NetIncomePercentTypical float64 `json:"netIncomePercentTypical"`

	ColdClimateScore *float64 `json:"coldClimateScore,omitempty"`
	WarmClimateScore *float64 `json:"warmClimateScore,omitempty"`
	MildClimateScore *float64 `json:"mildClimateScore,omitempty"`

	EnglishScore     *float64 `json:"englishScore,omitempty"`
	ExpatSceneScore  *float64 `json:"expatSceneScore,omitempty"`
	SocialSceneScore *float64 `json:"socialSceneScore,omitempty"`
	LgbtScore        *float64 `json:"lgbtScore,omitempty"`

	HealthcareScore          *float64 `json:"healthcareScore,omitempty"`
	PublicTransportScore     *float64 `json:"publicTransportScore,omitempty"`
	DigitalServicesScore     *float64 `json:"digitalServicesScore,omitempty"`
	InfrastructureCleanScore *float64 `json:"infrastructureCleanScore,omitempty"`
}

// Validate checks that the record is well formed: non-empty identifiers and
// every present score within [0,10].
func (c *CandidateRecord) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("candidate record missing code")
	}
	if c.Name == "" {
		return fmt.Errorf("candidate %s missing name", c.Code)
	}

	core := map[string]float64{
		"taxScore":            c.TaxScore,
		"costOfLivingScore":   c.CostOfLivingScore,
		"incomeGrowthScore":   c.IncomeGrowthScore,
		"remoteFriendlyScore": c.RemoteFriendlyScore,
		"safetyScore":         c.SafetyScore,
		"lifestyleScore":      c.LifestyleScore,
	}
	for name, v := range core {
		if v < 0 || v > 10 {
			return fmt.Errorf("candidate %s: %s out of range: %v", c.Code, name, v)
		}
	}

	optional := map[string]*float64{
		"coldClimateScore":         c.ColdClimateScore,
		"warmClimateScore":         c.WarmClimateScore,
		"mildClimateScore":         c.MildClimateScore,
		"englishScore":             c.EnglishScore,
		"expatSceneScore":          c.ExpatSceneScore,
		"socialSceneScore":         c.SocialSceneScore,
		"lgbtScore":                c.LgbtScore,
		"healthcareScore":          c.HealthcareScore,
		"publicTransportScore":     c.PublicTransportScore,
		"digitalServicesScore":     c.DigitalServicesScore,
		"infrastructureCleanScore": c.InfrastructureCleanScore,
	}
	for name, v := range optional {
		if v != nil && (*v < 0 || *v > 10) {
			return fmt.Errorf("candidate %s: %s out of range: %v", c.Code, name, *v)
		}
	}

	if c.NetIncomePercentTypical < 0 || c.NetIncomePercentTypical > 100 {
		return fmt.Errorf("candidate %s: netIncomePercentTypical out of range: %v", c.Code, c.NetIncomePercentTypical)
	}

	return nil
}
