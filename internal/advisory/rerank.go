package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonathan/relomatcher/internal/llm"
	"github.com/jonathan/relomatcher/internal/prompts"
	"github.com/jonathan/relomatcher/internal/schemas"
	"github.com/jonathan/relomatcher/internal/types"
)

// maxDisqualifiedInPayload caps how many disqualified candidates are sent to
// the model. All winners are always sent.
const maxDisqualifiedInPayload = 30

type rerankPayload struct {
	Profile      payloadProfile       `json:"profile"`
	Candidates   []rerankCandidate    `json:"candidates"`
	Disqualified []rerankDisqualified `json:"disqualified"`
}

type rerankCandidate struct {
	Code             string                   `json:"code"`
	Name             string                   `json:"name"`
	TotalScore       float64                  `json:"totalScore"`
	Breakdown        types.DimensionBreakdown `json:"breakdown"`
	NetIncomePercent float64                  `json:"netIncomePercent"`
	ShortNote        string                   `json:"shortNote"`
}

type rerankDisqualified struct {
	Code             string                   `json:"code"`
	Name             string                   `json:"name"`
	BaseScore        float64                  `json:"baseScore"`
	Breakdown        types.DimensionBreakdown `json:"breakdown"`
	NetIncomePercent float64                  `json:"netIncomePercent"`
	Reason           string                   `json:"reason"`
	ShortNote        string                   `json:"shortNote"`
}

// RankedEntry is one row of the model's re-ranking answer.
type RankedEntry struct {
	Code string `json:"code"`
	Rank int    `json:"rank"`
	Note string `json:"note"`
}

type rerankResponse struct {
	Ranked            []RankedEntry `json:"ranked"`
	DisqualifiedNotes []RankedEntry `json:"disqualifiedNotes"`
}

// Rerank asks the model to review the numeric winner ordering and merges its
// answer back in. The returned outcome is never nil and its Winners slice is
// always a permutation of result.Winners. The error reports why the pass fell
// back to numeric, for logging; a nil client falls back silently.
func Rerank(ctx context.Context, client llm.Client, p *types.Profile, result *types.MatchResult) (*MergeOutcome, error) {
	numeric := &MergeOutcome{
		Winners: result.Winners,
		Source:  SourceNumeric,
	}

	if client == nil || len(result.Winners) == 0 {
		return numeric, nil
	}

	payload := buildRerankPayload(p, result)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return numeric, fmt.Errorf("failed to encode rerank payload: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("rerank"), map[string]string{
		"Payload": string(payloadJSON),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return numeric, fmt.Errorf("advisory rerank call failed: %w", err)
	}

	if err := schemas.ValidateRerankResponse(raw); err != nil {
		return numeric, fmt.Errorf("advisory rerank response rejected: %w", err)
	}

	var resp rerankResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return numeric, fmt.Errorf("failed to parse rerank response: %w", err)
	}

	merged, notes, accepted := MergeRanked(result.Winners, resp.Ranked)
	if !accepted {
		return numeric, nil
	}

	return &MergeOutcome{
		Winners:           merged,
		Source:            SourceAdvisory,
		Notes:             notes,
		DisqualifiedNotes: disqualifiedNotes(result.DisqualifiedTop, resp.DisqualifiedNotes),
	}, nil
}

// MergeRanked applies a model ranking on top of the numeric winner order.
// Entries with unknown codes are dropped, duplicates keep the first
// occurrence, and winners the model did not mention are appended in their
// numeric order. The returned slice is a permutation of winners. The boolean
// is false when no entry referenced a known winner, meaning the answer
// carried no usable signal.
func MergeRanked(winners []types.RankedCandidate, ranked []RankedEntry) ([]types.RankedCandidate, map[string]string, bool) {
	byCode := make(map[string]*types.RankedCandidate, len(winners))
	for i := range winners {
		byCode[winners[i].Code] = &winners[i]
	}

	entries := make([]RankedEntry, len(ranked))
	copy(entries, ranked)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})

	seen := make(map[string]bool, len(entries))
	notes := make(map[string]string)
	var sorted []types.RankedCandidate
	for _, e := range entries {
		m, ok := byCode[e.Code]
		if !ok || seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		sorted = append(sorted, *m)
		if e.Note != "" {
			notes[e.Code] = e.Note
		}
	}

	if len(sorted) == 0 {
		return winners, nil, false
	}

	for i := range winners {
		if !seen[winners[i].Code] {
			sorted = append(sorted, winners[i])
		}
	}

	return sorted, notes, true
}

func buildRerankPayload(p *types.Profile, result *types.MatchResult) rerankPayload {
	candidates := make([]rerankCandidate, 0, len(result.Winners))
	for _, w := range result.Winners {
		candidates = append(candidates, rerankCandidate{
			Code:             w.Code,
			Name:             w.Name,
			TotalScore:       w.TotalScore,
			Breakdown:        w.Breakdown,
			NetIncomePercent: w.NetIncomePercent,
			ShortNote:        w.ShortNote,
		})
	}

	disq := result.DisqualifiedTop
	if len(disq) > maxDisqualifiedInPayload {
		disq = disq[:maxDisqualifiedInPayload]
	}
	disqualified := make([]rerankDisqualified, 0, len(disq))
	for _, d := range disq {
		disqualified = append(disqualified, rerankDisqualified{
			Code:             d.Code,
			Name:             d.Name,
			BaseScore:        d.BaseScore,
			Breakdown:        d.Breakdown,
			NetIncomePercent: d.NetIncomePercent,
			Reason:           d.Reason,
			ShortNote:        d.ShortNote,
		})
	}

	return rerankPayload{
		Profile:      compactProfile(p),
		Candidates:   candidates,
		Disqualified: disqualified,
	}
}

func disqualifiedNotes(disqualified []types.DisqualifiedCandidate, entries []RankedEntry) map[string]string {
	allowed := make(map[string]bool, len(disqualified))
	for _, d := range disqualified {
		allowed[d.Code] = true
	}

	notes := make(map[string]string)
	for _, e := range entries {
		if allowed[e.Code] && e.Note != "" {
			if _, dup := notes[e.Code]; !dup {
				notes[e.Code] = e.Note
			}
		}
	}
	return notes
}
