package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/relomatcher/internal/llm"
	"github.com/jonathan/relomatcher/internal/prompts"
	"github.com/jonathan/relomatcher/internal/schemas"
	"github.com/jonathan/relomatcher/internal/types"
)

const (
	// maxExplainWinners caps how many winners are sent for commentary.
	maxExplainWinners = 10
	// maxExplainDisqualified caps the disqualified list sent for commentary.
	maxExplainDisqualified = 5
	// ensuredWinnerComments is how many top winners must end up with a
	// comment even when the model skips them.
	ensuredWinnerComments = 3
)

const (
	noMatchesSummary = "We couldn't generate insights because there were no country matches."
	defaultSummary   = "Here are your top country matches based on your answers. The engine balanced taxes, cost of living, safety, lifestyle, climate and LGBT fit according to what you said matters."
)

type explainPayload struct {
	Profile      payloadProfile        `json:"profile"`
	TopMatches   []explainMatch        `json:"topMatches"`
	Disqualified []explainDisqualified `json:"disqualifiedTop"`
}

type explainMatch struct {
	Code             string                      `json:"code"`
	Name             string                      `json:"name"`
	TotalScore       float64                     `json:"totalScore"`
	ShortNote        string                      `json:"shortNote"`
	NetIncomePercent float64                     `json:"netIncomePercent"`
	Breakdown        types.DimensionBreakdown    `json:"breakdown"`
	Explanations     types.DimensionExplanations `json:"explanations"`
}

type explainDisqualified struct {
	Code             string                      `json:"code"`
	Name             string                      `json:"name"`
	BaseScore        float64                     `json:"baseScore"`
	ShortNote        string                      `json:"shortNote"`
	NetIncomePercent float64                     `json:"netIncomePercent"`
	Reason           string                      `json:"reason"`
	Breakdown        types.DimensionBreakdown    `json:"breakdown"`
	Explanations     types.DimensionExplanations `json:"explanations"`
}

// Explain produces the narrative layer for a match result. The model answer
// is sanitized against the known country codes; on any failure the
// deterministic fallback commentary is returned instead, so the result is
// always usable. The error reports why the model path was abandoned.
func Explain(ctx context.Context, client llm.Client, p *types.Profile, result *types.MatchResult) (*Explanation, error) {
	if len(result.Winners) == 0 {
		return &Explanation{
			OverallSummary: noMatchesSummary,
			Winners:        []CountryComment{},
			Disqualified:   []CountryComment{},
		}, nil
	}

	winners := result.Winners
	if len(winners) > maxExplainWinners {
		winners = winners[:maxExplainWinners]
	}
	disqualified := result.DisqualifiedTop
	if len(disqualified) > maxExplainDisqualified {
		disqualified = disqualified[:maxExplainDisqualified]
	}

	if client == nil {
		return fallbackExplanation(winners, disqualified), nil
	}

	payload := explainPayload{
		Profile:      compactProfile(p),
		TopMatches:   compactMatches(winners),
		Disqualified: compactDisqualified(disqualified),
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fallbackExplanation(winners, disqualified), fmt.Errorf("failed to encode explain payload: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("explain"), map[string]string{
		"Payload": string(payloadJSON),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return fallbackExplanation(winners, disqualified), fmt.Errorf("advisory explain call failed: %w", err)
	}

	if err := schemas.ValidateExplainResponse(raw); err != nil {
		return fallbackExplanation(winners, disqualified), fmt.Errorf("advisory explain response rejected: %w", err)
	}

	var parsed Explanation
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fallbackExplanation(winners, disqualified), fmt.Errorf("failed to parse explain response: %w", err)
	}

	return sanitizeExplanation(&parsed, winners, disqualified), nil
}

// sanitizeExplanation drops comments for codes outside the input, guarantees
// a comment for each of the top winners, and backfills an empty summary.
func sanitizeExplanation(parsed *Explanation, winners []types.RankedCandidate, disqualified []types.DisqualifiedCandidate) *Explanation {
	allowedWinners := make(map[string]bool, len(winners))
	for _, w := range winners {
		allowedWinners[w.Code] = true
	}
	allowedDisq := make(map[string]bool, len(disqualified))
	for _, d := range disqualified {
		allowedDisq[d.Code] = true
	}

	cleaned := &Explanation{
		Winners:      []CountryComment{},
		Disqualified: []CountryComment{},
	}

	for _, w := range parsed.Winners {
		if w.Code != "" && allowedWinners[w.Code] {
			cleaned.Winners = append(cleaned.Winners, w)
		}
	}
	for _, d := range parsed.Disqualified {
		if d.Code != "" && allowedDisq[d.Code] {
			cleaned.Disqualified = append(cleaned.Disqualified, d)
		}
	}

	ensured := winners
	if len(ensured) > ensuredWinnerComments {
		ensured = ensured[:ensuredWinnerComments]
	}
	for _, m := range ensured {
		if !hasComment(cleaned.Winners, m.Code) {
			cleaned.Winners = append(cleaned.Winners, CountryComment{
				Code:    m.Code,
				Comment: winnerFallbackComment(m),
			})
		}
	}

	cleaned.OverallSummary = strings.TrimSpace(parsed.OverallSummary)
	if cleaned.OverallSummary == "" {
		cleaned.OverallSummary = defaultSummary
	}

	return cleaned
}

func fallbackExplanation(winners []types.RankedCandidate, disqualified []types.DisqualifiedCandidate) *Explanation {
	top := winners
	if len(top) > ensuredWinnerComments {
		top = top[:ensuredWinnerComments]
	}

	exp := &Explanation{
		OverallSummary: defaultSummary,
		Winners:        make([]CountryComment, 0, len(top)),
		Disqualified:   make([]CountryComment, 0, len(disqualified)),
	}
	for _, m := range top {
		exp.Winners = append(exp.Winners, CountryComment{
			Code:    m.Code,
			Comment: winnerFallbackComment(m),
		})
	}
	for _, d := range disqualified {
		exp.Disqualified = append(exp.Disqualified, CountryComment{
			Code:    d.Code,
			Comment: fmt.Sprintf("Was a strong potential match (around %.1f/10) but was removed because: %s", d.BaseScore, d.Reason),
		})
	}
	return exp
}

func winnerFallbackComment(m types.RankedCandidate) string {
	return fmt.Sprintf("Good fit overall: strong score of %.1f/10 and a mix of %s.", m.TotalScore, strings.ToLower(m.ShortNote))
}

func hasComment(comments []CountryComment, code string) bool {
	for _, c := range comments {
		if c.Code == code {
			return true
		}
	}
	return false
}

func compactMatches(winners []types.RankedCandidate) []explainMatch {
	out := make([]explainMatch, 0, len(winners))
	for _, w := range winners {
		out = append(out, explainMatch{
			Code:             w.Code,
			Name:             w.Name,
			TotalScore:       w.TotalScore,
			ShortNote:        w.ShortNote,
			NetIncomePercent: w.NetIncomePercent,
			Breakdown:        w.Breakdown,
			Explanations:     w.Explanations,
		})
	}
	return out
}

func compactDisqualified(disqualified []types.DisqualifiedCandidate) []explainDisqualified {
	out := make([]explainDisqualified, 0, len(disqualified))
	for _, d := range disqualified {
		out = append(out, explainDisqualified{
			Code:             d.Code,
			Name:             d.Name,
			BaseScore:        d.BaseScore,
			ShortNote:        d.ShortNote,
			NetIncomePercent: d.NetIncomePercent,
			Reason:           d.Reason,
			Breakdown:        d.Breakdown,
			Explanations:     d.Explanations,
		})
	}
	return out
}
