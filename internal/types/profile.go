// Package types defines the canonical data structures shared across the matching engine.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReasonFlag is a discrete preference identifier selected by the user in the
// questionnaire. The set of valid flags is closed; unknown flags are rejected
// at the input boundary.
type ReasonFlag string

// Reason flag constants cover every preference the questionnaire can emit.
const (
	// Taxes & cost of living
	ReasonLowerTaxes       ReasonFlag = "lower_taxes"
	ReasonTaxNotImportant  ReasonFlag = "tax_not_important"
	ReasonLowerCostOfLiving ReasonFlag = "lower_cost_of_living"
	ReasonColNotImportant  ReasonFlag = "col_not_important"

	// Climate / weather
	ReasonBetterWeather    ReasonFlag = "better_weather"
	ReasonClimatePrefCold  ReasonFlag = "climate_pref_cold"
	ReasonClimatePrefMild  ReasonFlag = "climate_pref_mild"
	ReasonClimatePrefWarm  ReasonFlag = "climate_pref_warm"
	ReasonClimateDontCare  ReasonFlag = "climate_dont_care"
	ReasonClimateMustHave  ReasonFlag = "climate_must_have"

	// Language fit
	ReasonLanguageMustHave   ReasonFlag = "language_must_have"
	ReasonLanguageNiceToHave ReasonFlag = "language_nice_to_have"
	ReasonLanguageFlexible   ReasonFlag = "language_flexible"

	// Safety & stability
	ReasonSafetyImportanceHigh   ReasonFlag = "safety_importance_high"
	ReasonSafetyImportanceMedium ReasonFlag = "safety_importance_medium"
	ReasonSafetyNotImportant     ReasonFlag = "safety_not_important"
	ReasonSafetyStabilityPriority ReasonFlag = "safety_stability_priority"
	ReasonPersonalSafety          ReasonFlag = "personal_safety"
	ReasonPersonalSafetyLow       ReasonFlag = "personal_safety_low_priority"
	ReasonPoliticalStability      ReasonFlag = "political_stability"
	ReasonPoliticalStabilityLow   ReasonFlag = "political_stability_low_priority"
	ReasonLowCorruption           ReasonFlag = "low_corruption"
	ReasonLowCorruptionLow        ReasonFlag = "low_corruption_low_priority"

	// Healthcare
	ReasonHealthcareStrongPublic ReasonFlag = "healthcare_strong_public"
	ReasonHealthcareMixed        ReasonFlag = "healthcare_mixed"
	ReasonHealthcarePrivate      ReasonFlag = "healthcare_private"
	ReasonHealthcareNotImportant ReasonFlag = "healthcare_not_important"

	// LGBTQ+
	ReasonBetterLgbtq    ReasonFlag = "better_lgbtq"
	ReasonLgbtFullRights ReasonFlag = "lgbt_full_rights"
	ReasonLgbtFriendly   ReasonFlag = "lgbt_friendly"
	ReasonLgbtDontCare   ReasonFlag = "lgbt_dont_care"

	// Culture & vibe
	ReasonCultureNorthernEurope ReasonFlag = "culture_northern_europe"
	ReasonCultureMediterranean  ReasonFlag = "culture_mediterranean"
	ReasonCultureNorthAmerica   ReasonFlag = "culture_north_america"
	ReasonCultureLatinAmerica   ReasonFlag = "culture_latin_america"
	ReasonCultureAsia           ReasonFlag = "culture_asia"
	ReasonCultureNotImportant   ReasonFlag = "culture_not_important"
	ReasonCultureMustHave       ReasonFlag = "culture_must_have"

	// Development & infrastructure
	ReasonDevelopmentCareYes    ReasonFlag = "development_care_yes"
	ReasonDevelopmentCareSome   ReasonFlag = "development_care_some"
	ReasonDevelopmentNotImportant ReasonFlag = "development_not_important"
	ReasonDevPublicTransport    ReasonFlag = "dev_public_transport"
	ReasonDevDigitalServices    ReasonFlag = "dev_digital_services"
	ReasonDevInfrastructureClean ReasonFlag = "dev_infrastructure_clean"
	ReasonDevEverydayServices   ReasonFlag = "dev_everyday_services"
	ReasonPublicTransportImportant  ReasonFlag = "public_transport_important"
	ReasonPublicTransportNiceToHave ReasonFlag = "public_transport_nice_to_have"

	// Work & lifestyle
	ReasonCareerGrowth   ReasonFlag = "career_growth"
	ReasonRemoteWork     ReasonFlag = "remote_work"
	ReasonExpatCommunity ReasonFlag = "expat_community"
	ReasonSocialLife     ReasonFlag = "social_life"
)

// validReasonFlags is the closed set of accepted flag identifiers.
var validReasonFlags = map[ReasonFlag]bool{
	ReasonLowerTaxes: true, ReasonTaxNotImportant: true,
	ReasonLowerCostOfLiving: true, ReasonColNotImportant: true,
	ReasonBetterWeather: true, ReasonClimatePrefCold: true,
	ReasonClimatePrefMild: true, ReasonClimatePrefWarm: true,
	ReasonClimateDontCare: true, ReasonClimateMustHave: true,
	ReasonLanguageMustHave: true, ReasonLanguageNiceToHave: true,
	ReasonLanguageFlexible: true,
	ReasonSafetyImportanceHigh: true, ReasonSafetyImportanceMedium: true,
	ReasonSafetyNotImportant: true, ReasonSafetyStabilityPriority: true,
	ReasonPersonalSafety: true, ReasonPersonalSafetyLow: true,
	ReasonPoliticalStability: true, ReasonPoliticalStabilityLow: true,
	ReasonLowCorruption: true, ReasonLowCorruptionLow: true,
	ReasonHealthcareStrongPublic: true, ReasonHealthcareMixed: true,
	ReasonHealthcarePrivate: true, ReasonHealthcareNotImportant: true,
	ReasonBetterLgbtq: true, ReasonLgbtFullRights: true,
	ReasonLgbtFriendly: true, ReasonLgbtDontCare: true,
	ReasonCultureNorthernEurope: true, ReasonCultureMediterranean: true,
	ReasonCultureNorthAmerica: true, ReasonCultureLatinAmerica: true,
	ReasonCultureAsia: true, ReasonCultureNotImportant: true,
	ReasonCultureMustHave: true,
	ReasonDevelopmentCareYes: true, ReasonDevelopmentCareSome: true,
	ReasonDevelopmentNotImportant: true, ReasonDevPublicTransport: true,
	ReasonDevDigitalServices: true, ReasonDevInfrastructureClean: true,
	ReasonDevEverydayServices: true, ReasonPublicTransportImportant: true,
	ReasonPublicTransportNiceToHave: true,
	ReasonCareerGrowth: true, ReasonRemoteWork: true,
	ReasonExpatCommunity: true, ReasonSocialLife: true,
}

// IsValid reports whether the flag belongs to the closed enumeration.
func (f ReasonFlag) IsValid() bool {
	return validReasonFlags[f]
}

// Default slider values applied when the paired flag is present but the
// slider itself was omitted from the request.
const (
	DefaultTaxImportance     = 7
	DefaultColImportance     = 7
	DefaultClimateImportance = 7
	DefaultLgbtImportance    = 8
)

// Profile is the canonical per-request preference profile built from user input.
// Demographic fields are informational only and never feed scoring logic.
type Profile struct {
	AgeRange              string `json:"ageRange,omitempty"`
	CurrentCountry        string `json:"currentCountry,omitempty"`
	FamilyStatus          string `json:"familyStatus,omitempty"`
	RelocatingWith        string `json:"relocatingWith,omitempty"`
	PassportCountry       string `json:"passportCountry,omitempty"`
	SecondPassportCountry string `json:"secondPassportCountry,omitempty"`

	WorkSituation  []string `json:"workSituation,omitempty"`
	MonthlyIncome  string   `json:"monthlyIncome,omitempty"`
	IncomeCurrency string   `json:"incomeCurrency,omitempty"`

	LanguagesSpoken []string     `json:"languagesSpoken,omitempty"`
	Reasons         []ReasonFlag `json:"reasons,omitempty"`

	// Importance sliders, 1-10. A slider only takes effect when its paired
	// reason flag is present; nil means "use the default for that flag".
	TaxImportance     *int `json:"taxImportance,omitempty" validate:"omitempty,min=1,max=10"`
	ColImportance     *int `json:"colImportance,omitempty" validate:"omitempty,min=1,max=10"`
	ClimateImportance *int `json:"climateImportance,omitempty" validate:"omitempty,min=1,max=10"`
	LgbtImportance    *int `json:"lgbtImportance,omitempty" validate:"omitempty,min=1,max=10"`
}

// ReasonSet returns the reasons as a membership set. Insertion order of the
// incoming slice is irrelevant to scoring.
func (p *Profile) ReasonSet() map[ReasonFlag]bool {
	set := make(map[ReasonFlag]bool, len(p.Reasons))
	for _, r := range p.Reasons {
		set[r] = true
	}
	return set
}

// SpeaksEnglish reports whether English appears among the spoken languages
// (case-insensitive). English is the reference language for language-match scoring.
func (p *Profile) SpeaksEnglish() bool {
	for _, lang := range p.LanguagesSpoken {
		if strings.EqualFold(strings.TrimSpace(lang), "english") {
			return true
		}
	}
	return false
}

var profileValidator = validator.New()

// Validate checks slider ranges and that every reason flag belongs to the
// closed enumeration. An empty profile (no reasons, no languages) is rejected
// because it cannot express any preference.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	for _, r := range p.Reasons {
		if !r.IsValid() {
			return fmt.Errorf("invalid profile: unknown reason flag %q", r)
		}
	}
	if len(p.Reasons) == 0 && len(p.LanguagesSpoken) == 0 {
		return fmt.Errorf("invalid profile: no preferences provided")
	}
	return nil
}

// SliderOrDefault resolves a slider pointer against its default, clamped to [1,10].
func SliderOrDefault(val *int, fallback int) int {
	v := fallback
	if val != nil {
		v = *val
	}
	if v < 1 {
		v = 1
	}
	if v > 10 {
		v = 10
	}
	return v
}
