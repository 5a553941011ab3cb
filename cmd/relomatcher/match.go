package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/relomatcher/internal/advisory"
	"github.com/jonathan/relomatcher/internal/catalog"
	"github.com/jonathan/relomatcher/internal/config"
	"github.com/jonathan/relomatcher/internal/llm"
	"github.com/jonathan/relomatcher/internal/matching"
	"github.com/jonathan/relomatcher/internal/observability"
	"github.com/jonathan/relomatcher/internal/schemas"
	"github.com/jonathan/relomatcher/internal/types"
)

var (
	matchProfilePath string
	matchOutputPath  string
	matchAdvisory    bool
	matchVerbose     bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank destinations for a profile",
	Long: `Rank the candidate catalog against a questionnaire profile read from a JSON file.
With --advisory, the model re-ranking and commentary passes run as well (requires GEMINI_API_KEY).`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchProfilePath, "profile", "p", "", "Path to the profile JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOutputPath, "output", "o", "", "Path to write the result JSON (default: stdout)")
	matchCmd.Flags().BoolVar(&matchAdvisory, "advisory", false, "Run the advisory re-ranking and commentary passes")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	_ = matchCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(matchCmd)
}

// matchOutput is the JSON document written by the match command.
type matchOutput struct {
	OK              bool                          `json:"ok"`
	Message         string                        `json:"message"`
	SimpleScore     float64                       `json:"simpleScore"`
	BestMatch       *types.RankedCandidate        `json:"bestMatch"`
	TopMatches      []types.RankedCandidate       `json:"topMatches"`
	DisqualifiedTop []types.DisqualifiedCandidate `json:"disqualifiedTop"`
	AdvisorySource  string                        `json:"advisorySource"`
	Explanation     *advisory.Explanation         `json:"explanation,omitempty"`
}

func runMatch(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(matchProfilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile file %s: %w", matchProfilePath, err)
	}

	if err := schemas.ValidateProfile(string(data)); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()

	var cat *catalog.Catalog
	if cfg.DatabaseURL != "" {
		cat, err = catalog.LoadFromPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to load catalog from database: %w", err)
		}
	} else {
		cat, err = catalog.Load()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	result, err := matching.Match(cat, &profile)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	out := matchOutput{
		TopMatches:      result.Winners,
		DisqualifiedTop: result.DisqualifiedTop,
		AdvisorySource:  string(advisory.SourceNumeric),
	}

	if len(result.Winners) == 0 {
		out.TopMatches = []types.RankedCandidate{}
		out.Message = "We couldn't confidently match you to any country with the current data."
		return writeMatchOutput(out)
	}

	if matchAdvisory {
		if cfg.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required for --advisory")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()

		callCtx, cancel := context.WithTimeout(ctx, cfg.AdvisoryTimeout)
		defer cancel()

		// Both passes work on the numeric result and tolerate failure, so
		// they can run in parallel.
		var outcome *advisory.MergeOutcome
		var explanation *advisory.Explanation
		g, gctx := errgroup.WithContext(callCtx)
		g.Go(func() error {
			var rerankErr error
			outcome, rerankErr = advisory.Rerank(gctx, client, &profile, result)
			if rerankErr != nil {
				log.Printf("advisory rerank fell back to numeric order: %v", rerankErr)
			}
			return nil
		})
		g.Go(func() error {
			var explainErr error
			explanation, explainErr = advisory.Explain(gctx, client, &profile, result)
			if explainErr != nil {
				log.Printf("advisory explain fell back: %v", explainErr)
			}
			return nil
		})
		_ = g.Wait()

		out.TopMatches = outcome.Winners
		out.AdvisorySource = string(outcome.Source)
		out.Explanation = explanation
	}

	out.OK = true
	out.Message = "Matches calculated successfully."
	out.BestMatch = &out.TopMatches[0]
	out.SimpleScore = out.BestMatch.TotalScore

	if matchVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProfile(&profile)
		printer.PrintTopMatches(out.TopMatches)
		printer.PrintDisqualified(out.DisqualifiedTop)
	}

	return writeMatchOutput(out)
}

func writeMatchOutput(out matchOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if matchOutputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(matchOutputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", matchOutputPath, err)
	}
	return nil
}
