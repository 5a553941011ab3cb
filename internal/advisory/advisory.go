// Package advisory layers model-generated ranking review and commentary on
// top of the numeric matching engine. Every call here is best-effort: the
// numeric result is always the fallback, and nothing in this package can make
// a request fail.
package advisory

import (
	"github.com/jonathan/relomatcher/internal/types"
)

// Source records which layer produced the final winner ordering.
type Source string

const (
	// SourceAdvisory means the model's re-ranking was accepted and merged.
	SourceAdvisory Source = "advisory"
	// SourceNumeric means the deterministic ordering was kept, either because
	// no client was configured or because the advisory pass failed sanitation.
	SourceNumeric Source = "numeric"
)

// MergeOutcome is the result of the advisory re-ranking pass. Winners is
// always a permutation of the numeric winners, never a subset or superset.
type MergeOutcome struct {
	Winners []types.RankedCandidate
	Source  Source
	// Notes holds the model's short per-country note for winners it ranked,
	// keyed by country code. Empty when Source is SourceNumeric.
	Notes map[string]string
	// DisqualifiedNotes holds the model's per-country commentary on
	// disqualified candidates, keyed by country code.
	DisqualifiedNotes map[string]string
}

// CountryComment pairs a country code with advisory commentary.
type CountryComment struct {
	Code    string `json:"code"`
	Comment string `json:"comment"`
}

// Explanation is the narrative layer returned alongside the ranked matches.
type Explanation struct {
	OverallSummary string           `json:"overallSummary"`
	Winners        []CountryComment `json:"winners"`
	Disqualified   []CountryComment `json:"disqualified"`
}

// compact payload shapes sent to the model. The full profile is never
// forwarded; only the fields relevant to ranking judgment.

type payloadProfile struct {
	CurrentCountry  string             `json:"currentCountry,omitempty"`
	AgeRange        string             `json:"ageRange,omitempty"`
	LanguagesSpoken []string           `json:"languagesSpoken"`
	Reasons         []types.ReasonFlag `json:"reasons"`
	MonthlyIncome   string             `json:"monthlyIncome,omitempty"`
	IncomeCurrency  string             `json:"incomeCurrency,omitempty"`
}

func compactProfile(p *types.Profile) payloadProfile {
	langs := p.LanguagesSpoken
	if langs == nil {
		langs = []string{}
	}
	reasons := p.Reasons
	if reasons == nil {
		reasons = []types.ReasonFlag{}
	}
	return payloadProfile{
		CurrentCountry:  p.CurrentCountry,
		AgeRange:        p.AgeRange,
		LanguagesSpoken: langs,
		Reasons:         reasons,
		MonthlyIncome:   p.MonthlyIncome,
		IncomeCurrency:  p.IncomeCurrency,
	}
}
