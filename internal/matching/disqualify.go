package matching

import (
	"github.com/jonathan/relomatcher/internal/types"
)

// Hard disqualification thresholds for the rights gate. Preserved exactly
// for behavioral compatibility with the production rules.
const (
	rightsStrictImportance = 9
	rightsStrictMinScore   = 7.5
	rightsHighImportance   = 7
	rightsHighMinScore     = 6.0
)

// Disqualification reasons shown to the user.
const (
	reasonRightsStrict = "LGBTQ+ protections and social acceptance are below the strong level you asked for."
	reasonRightsHigh   = "LGBTQ+ protections and/or marriage rights are below the level you marked as important."
)

// DisqualificationReason evaluates the hard non-negotiables for one candidate.
// It returns a human-readable reason when the candidate must be removed from
// the winners set, or empty when it passes. This is a gate, not a weight
// adjustment: a failing candidate is removed no matter how high its score.
//
// The only rule today is the rights gate, evaluated when the rights-priority
// flag is present. The candidate's rights score falls back to its lifestyle
// score when no dedicated score exists. Disqualification is monotonic in the
// importance slider.
func DisqualificationReason(c *types.CandidateRecord, p *types.Profile) string {
	reasons := p.ReasonSet()

	if !reasons[types.ReasonBetterLgbtq] {
		return ""
	}

	importance := types.SliderOrDefault(p.LgbtImportance, types.DefaultLgbtImportance)

	rights := c.LifestyleScore
	if c.LgbtScore != nil {
		rights = *c.LgbtScore
	}

	if importance >= rightsStrictImportance && rights < rightsStrictMinScore {
		return reasonRightsStrict
	}
	if importance >= rightsHighImportance && rights < rightsHighMinScore {
		return reasonRightsHigh
	}
	return ""
}
