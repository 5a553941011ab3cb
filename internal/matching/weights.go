package matching

import (
	"github.com/jonathan/relomatcher/internal/types"
)

// Weight rule constants. These values are carried over unchanged from the
// production scoring rules; they are grouped here so a future configuration
// table can replace them in one place.
const (
	taxWeightMin = 2.0
	taxWeightMax = 7.0
	// Residual instead of zero so a lone active dimension can't zero the denominator.
	taxResidualWeight = 0.2

	colWeightMin      = 1.5
	colWeightMax      = 5.0
	colResidualWeight = 0.2

	climateWeightMin = 1.0
	climateWeightMax = 4.5

	careerGrowthBonus = 1.5
	remoteWorkBonus   = 1.5

	safetyHighMultiplier   = 1.8
	safetyMediumMultiplier = 1.2
	safetyNotImportant     = 0.3

	languageMustHaveWeight   = 1.8
	languageNiceToHaveWeight = 1.2
	languageFlexibleWeight   = 0.4

	expatSceneWeight  = 1.4
	socialSceneWeight = 1.3

	developmentBoost          = 1.4
	infraCleanBoostFactor     = 0.9
	publicTransportImportant  = 2.0
	publicTransportNiceToHave = 1.0

	lgbtWeightDivisor  = 3.5
	lgbtLifestyleBonus = 0.5

	// An extreme tax focus should not let unrelated dimensions dominate.
	taxDampingThreshold = 9
	taxDampingFactor    = 0.65
)

// ComputeWeights maps the profile's flags and sliders to a weight per
// dimension. Rules apply in fixed order; later rules may adjust earlier
// results. Every branch has a defined default, so this never fails.
// The returned tax slider value (0 when the tax flag is absent) feeds the
// aggregator's tie-break.
func ComputeWeights(p *types.Profile, breakdown types.DimensionBreakdown) (types.WeightVector, int) {
	reasons := p.ReasonSet()

	weights := types.WeightVector{
		types.DimTax:            1,
		types.DimCostOfLiving:   1,
		types.DimIncomeGrowth:   1,
		types.DimRemoteFriendly: 1,
		types.DimSafety:         1,
		types.DimLifestyle:      1,
	}
	for _, dim := range types.OptionalDimensions {
		weights[dim] = 0
	}

	// 1. Taxes: slider scales the weight linearly; an explicit opt-out keeps
	// a small residual instead of zero.
	taxSlider := 0
	if reasons[types.ReasonLowerTaxes] {
		taxSlider = types.SliderOrDefault(p.TaxImportance, types.DefaultTaxImportance)
		weights[types.DimTax] = linearScale(taxSlider, taxWeightMin, taxWeightMax)
	} else if reasons[types.ReasonTaxNotImportant] {
		weights[types.DimTax] = taxResidualWeight
	}

	// 2. Cost of living: same pattern.
	if reasons[types.ReasonLowerCostOfLiving] {
		imp := types.SliderOrDefault(p.ColImportance, types.DefaultColImportance)
		weights[types.DimCostOfLiving] = linearScale(imp, colWeightMin, colWeightMax)
	} else if reasons[types.ReasonColNotImportant] {
		weights[types.DimCostOfLiving] = colResidualWeight
	}

	// 3. Climate: only weighted when the weather flag is present and the
	// dimension was derivable for this candidate.
	if reasons[types.ReasonBetterWeather] {
		if _, ok := breakdown[types.DimClimateMatch]; ok {
			imp := types.SliderOrDefault(p.ClimateImportance, types.DefaultClimateImportance)
			weights[types.DimClimateMatch] = linearScale(imp, climateWeightMin, climateWeightMax)
		}
	}

	// 4. Language: fixed weights from the mutually exclusive intent flags,
	// only meaningful when a language-match score exists at all.
	if _, ok := breakdown[types.DimLanguageMatch]; ok {
		switch {
		case reasons[types.ReasonLanguageMustHave]:
			weights[types.DimLanguageMatch] = languageMustHaveWeight
		case reasons[types.ReasonLanguageNiceToHave]:
			weights[types.DimLanguageMatch] = languageNiceToHaveWeight
		case reasons[types.ReasonLanguageFlexible]:
			weights[types.DimLanguageMatch] = languageFlexibleWeight
		}
	}

	// 5. Career and remote work add flat bonuses.
	if reasons[types.ReasonCareerGrowth] {
		weights[types.DimIncomeGrowth] += careerGrowthBonus
	}
	if reasons[types.ReasonRemoteWork] {
		weights[types.DimRemoteFriendly] += remoteWorkBonus
	}

	// 6. Safety intensity: three mutually exclusive levels.
	switch {
	case reasons[types.ReasonSafetyImportanceHigh]:
		weights[types.DimSafety] *= safetyHighMultiplier
	case reasons[types.ReasonSafetyImportanceMedium]:
		weights[types.DimSafety] *= safetyMediumMultiplier
	case reasons[types.ReasonSafetyNotImportant]:
		weights[types.DimSafety] = safetyNotImportant
	}

	// 7. Social and expat scenes are opt-in fixed weights.
	if reasons[types.ReasonExpatCommunity] {
		weights[types.DimExpatScene] = expatSceneWeight
	}
	if reasons[types.ReasonSocialLife] {
		weights[types.DimSocialScene] = socialSceneWeight
	}

	// 8. Development/infrastructure flags layer additive bonuses onto a base of 0.
	if reasons[types.ReasonDevelopmentCareYes] || reasons[types.ReasonDevelopmentCareSome] {
		weights[types.DimHealthcareSystem] += developmentBoost
		weights[types.DimDigitalServices] += developmentBoost
		weights[types.DimInfrastructureClean] += developmentBoost * infraCleanBoostFactor
	}
	if reasons[types.ReasonDevPublicTransport] || reasons[types.ReasonPublicTransportImportant] {
		weights[types.DimPublicTransport] += publicTransportImportant
	} else if reasons[types.ReasonPublicTransportNiceToHave] {
		weights[types.DimPublicTransport] += publicTransportNiceToHave
	}

	// 9. Rights climate: slider-derived weight plus a small lifestyle bump.
	if reasons[types.ReasonBetterLgbtq] {
		imp := types.SliderOrDefault(p.LgbtImportance, types.DefaultLgbtImportance)
		weights[types.DimLgbtRights] = 1 + float64(imp)/lgbtWeightDivisor
		weights[types.DimLifestyle] += lgbtLifestyleBonus
	}

	// 10. A maxed tax slider dampens the general quality-of-life weights.
	if taxSlider >= taxDampingThreshold {
		for _, dim := range []string{
			types.DimCostOfLiving, types.DimIncomeGrowth,
			types.DimRemoteFriendly, types.DimSafety, types.DimLifestyle,
		} {
			weights[dim] *= taxDampingFactor
		}
	}

	return weights, taxSlider
}

// linearScale maps a 1-10 slider value onto [min,max] linearly.
func linearScale(slider int, min, max float64) float64 {
	return min + (float64(slider-1)*(max-min))/9
}
