package matching

import (
	"fmt"
	"sort"

	"github.com/jonathan/relomatcher/internal/catalog"
	"github.com/jonathan/relomatcher/internal/types"
)

// DisqualifiedTopN caps the disqualified list shown to the user; the
// highest-scoring rejected candidates are the most informative near misses.
const DisqualifiedTopN = 3

// Match scores every candidate in the catalog against the profile, splits
// the set into winners and disqualified, and sorts both descending by score.
// Candidates producing the "no score" sentinel are skipped entirely.
// The result is deterministic: the same profile always yields the same
// ordering and scores.
func Match(cat *catalog.Catalog, p *types.Profile) (*types.MatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot rank candidates: %w", err)
	}

	var winners []types.RankedCandidate
	var disqualified []types.DisqualifiedCandidate

	for i := range cat.Records() {
		c := &cat.Records()[i]

		breakdown, explanations := ScoreDimensions(c, p)
		weights, taxSlider := ComputeWeights(p, breakdown)
		score, ok := Aggregate(breakdown, weights, taxSlider)
		if !ok {
			continue
		}

		if reason := DisqualificationReason(c, p); reason != "" {
			disqualified = append(disqualified, types.DisqualifiedCandidate{
				Code:             c.Code,
				Name:             c.Name,
				BaseScore:        score,
				Breakdown:        breakdown,
				Explanations:     explanations,
				ShortNote:        c.ShortNote,
				NetIncomePercent: c.NetIncomePercentTypical,
				Reason:           reason,
			})
			continue
		}

		winners = append(winners, types.RankedCandidate{
			Code:             c.Code,
			Name:             c.Name,
			TotalScore:       score,
			Breakdown:        breakdown,
			Explanations:     explanations,
			ShortNote:        c.ShortNote,
			NetIncomePercent: c.NetIncomePercentTypical,
		})
	}

	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].TotalScore > winners[j].TotalScore
	})
	sort.SliceStable(disqualified, func(i, j int) bool {
		return disqualified[i].BaseScore > disqualified[j].BaseScore
	})

	if len(disqualified) > DisqualifiedTopN {
		disqualified = disqualified[:DisqualifiedTopN]
	}

	return &types.MatchResult{
		Winners:         winners,
		DisqualifiedTop: disqualified,
	}, nil
}
