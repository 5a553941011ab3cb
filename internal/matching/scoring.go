// Package matching implements the deterministic relocation matching engine:
// per-dimension scoring, profile-driven weighting, aggregation, hard
// disqualification and ranking. Everything here is a pure function of
// (candidate, profile); no I/O, no shared state.
package matching

import (
	"github.com/jonathan/relomatcher/internal/types"
)

// Qualitative explanation thresholds. The bucket depends on the value only,
// never on weights.
const (
	strongThreshold   = 8.3
	moderateThreshold = 6.3
)

// Fallback values when a preferred climate sub-score is missing.
const (
	neutralClimateFallback = 5.0
	mildClimateFallback    = 7.0
	neutralLanguageScore   = 5.0
)

// dimensionWording holds the strong/moderate/weak wording for one dimension.
type dimensionWording struct {
	strong   string
	moderate string
	weak     string
}

var wordings = map[string]dimensionWording{
	types.DimTax: {
		"Very efficient taxes compared to many alternatives.",
		"Taxes are middling - not terrible, not amazing.",
		"Taxes are on the heavier side here.",
	},
	types.DimCostOfLiving: {
		"Day-to-day costs are low relative to income potential.",
		"Cost of living is moderate.",
		"Cost of living can feel high versus local incomes.",
	},
	types.DimIncomeGrowth: {
		"Good potential for income growth and future earning.",
		"Some opportunities for income growth.",
		"Limited upside for income growth compared to other options.",
	},
	types.DimRemoteFriendly: {
		"Strong remote-work ecosystem, infrastructure and banking.",
		"Remote work is generally fine here.",
		"Remote work support and infrastructure can be clunky.",
	},
	types.DimSafety: {
		"Very solid scores on safety and stability.",
		"Generally safe with some caveats.",
		"Safety, politics or stability are more fragile.",
	},
	types.DimLifestyle: {
		"Lifestyle and general day-to-day vibe are a strong point here.",
		"Lifestyle is decent but not exceptional.",
		"Lifestyle or culture might feel misaligned with what many expats want.",
	},
	types.DimClimateMatch: {
		"Climate is highly aligned with the weather you said you prefer.",
		"Climate is workable but not perfect for your preferences.",
		"Climate is quite different from what you said you want.",
	},
	types.DimLanguageMatch: {
		"Language fit should be very comfortable for you.",
		"You can probably get by with your languages, but expect some friction.",
		"Language fit could be challenging in daily life.",
	},
	types.DimExpatScene: {
		"Big, active expat community - easy to meet people.",
		"Some expat community exists.",
		"Expat community is small or niche.",
	},
	types.DimSocialScene: {
		"Strong social and nightlife scene if you want it.",
		"Social life is okay but not a huge highlight.",
		"Social scene is fairly quiet or limited.",
	},
	types.DimLgbtRights: {
		"LGBTQ+ protections and social climate are strong here.",
		"LGBTQ+ situation is mixed - okay in some areas, weaker in others.",
		"LGBTQ+ protections and/or social acceptance are relatively weak.",
	},
	types.DimHealthcareSystem: {
		"Healthcare quality and access are strong here, especially for residents.",
		"Healthcare is workable, but expect more private spending and variation in quality.",
		"Healthcare system can feel limited or patchy, especially for newcomers.",
	},
	types.DimPublicTransport: {
		"Public transport is reliable and makes car-free living realistic.",
		"Public transport is okay but may require some compromises.",
		"Public transport is weak - life without a car can be challenging.",
	},
	types.DimDigitalServices: {
		"Digital services and bureaucracy are very modern and online-first.",
		"Digital services are mixed - some processes are online, others still offline.",
		"Digital services are limited; expect more in-person paperwork.",
	},
	types.DimInfrastructureClean: {
		"Streets, public spaces and infrastructure are generally clean and well maintained.",
		"Infrastructure is mostly fine with some rough edges.",
		"Cleanliness and maintenance can be an issue in parts of this country.",
	},
}

// Describe maps a dimension value to its qualitative wording bucket.
func Describe(dimension string, value float64) string {
	w, ok := wordings[dimension]
	if !ok {
		return ""
	}
	switch {
	case value >= strongThreshold:
		return w.strong
	case value >= moderateThreshold:
		return w.moderate
	default:
		return w.weak
	}
}

// climatePreference resolves the mutually exclusive climate preference flags.
// First match wins in the fixed order cold, warm, mild; empty means no preference.
func climatePreference(reasons map[types.ReasonFlag]bool) string {
	switch {
	case reasons[types.ReasonClimatePrefCold]:
		return "cold"
	case reasons[types.ReasonClimatePrefWarm]:
		return "warm"
	case reasons[types.ReasonClimatePrefMild]:
		return "mild"
	default:
		return ""
	}
}

// ScoreDimensions derives the full per-dimension score vector and matching
// explanations for one candidate against one profile. Dimensions whose
// prerequisite data or preference is absent are omitted, never zeroed.
func ScoreDimensions(c *types.CandidateRecord, p *types.Profile) (types.DimensionBreakdown, types.DimensionExplanations) {
	reasons := p.ReasonSet()

	breakdown := types.DimensionBreakdown{
		types.DimTax:            c.TaxScore,
		types.DimCostOfLiving:   c.CostOfLivingScore,
		types.DimIncomeGrowth:   c.IncomeGrowthScore,
		types.DimRemoteFriendly: c.RemoteFriendlyScore,
		types.DimSafety:         c.SafetyScore,
		types.DimLifestyle:      c.LifestyleScore,
	}

	if climate, ok := climateMatch(c, climatePreference(reasons)); ok {
		breakdown[types.DimClimateMatch] = climate
	}

	if p.SpeaksEnglish() {
		if c.EnglishScore != nil {
			breakdown[types.DimLanguageMatch] = *c.EnglishScore
		} else {
			breakdown[types.DimLanguageMatch] = neutralLanguageScore
		}
	}

	// Rights climate stays its own dimension so the hard gate can target it
	// independently of general lifestyle fit.
	putOptional(breakdown, types.DimLgbtRights, c.LgbtScore)
	putOptional(breakdown, types.DimExpatScene, c.ExpatSceneScore)
	putOptional(breakdown, types.DimSocialScene, c.SocialSceneScore)
	putOptional(breakdown, types.DimHealthcareSystem, c.HealthcareScore)
	putOptional(breakdown, types.DimPublicTransport, c.PublicTransportScore)
	putOptional(breakdown, types.DimDigitalServices, c.DigitalServicesScore)
	putOptional(breakdown, types.DimInfrastructureClean, c.InfrastructureCleanScore)

	explanations := make(types.DimensionExplanations, len(breakdown))
	for dim, value := range breakdown {
		if text := Describe(dim, value); text != "" {
			explanations[dim] = text
		}
	}

	return breakdown, explanations
}

// climateMatch derives the climate-match dimension. With a declared preference
// the matching sub-score is used, falling back to the mild score and then a
// neutral default. Without a preference the mean of available sub-scores is
// used; if no sub-scores exist the dimension is omitted.
func climateMatch(c *types.CandidateRecord, pref string) (float64, bool) {
	switch pref {
	case "cold":
		return firstOf(c.ColdClimateScore, c.MildClimateScore, neutralClimateFallback), true
	case "warm":
		return firstOf(c.WarmClimateScore, c.MildClimateScore, neutralClimateFallback), true
	case "mild":
		return firstOf(c.MildClimateScore, nil, mildClimateFallback), true
	}

	var sum float64
	var count int
	for _, v := range []*float64{c.ColdClimateScore, c.WarmClimateScore, c.MildClimateScore} {
		if v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// firstOf returns the first non-nil score, then the fallback.
func firstOf(primary, secondary *float64, fallback float64) float64 {
	if primary != nil {
		return *primary
	}
	if secondary != nil {
		return *secondary
	}
	return fallback
}

func putOptional(b types.DimensionBreakdown, dim string, v *float64) {
	if v != nil {
		b[dim] = *v
	}
}
