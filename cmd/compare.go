package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/ai"
	"github.com/spigell/candidate-board/internal/ai/gemini"
	"github.com/spigell/candidate-board/internal/compare"
	"github.com/spigell/candidate-board/internal/config"
	"github.com/spigell/candidate-board/internal/logger"
	"github.com/spigell/candidate-board/internal/report"
	"github.com/spigell/candidate-board/internal/roster"
	"github.com/spigell/candidate-board/internal/secrets"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two candidates side by side",
	Long: `Compare two candidates side by side.

Candidates are picked with --candidate (twice) or interactively. The comparison
shows display scores, contact details, per-category skill membership, estimated
years of experience and education entries.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"ai.enabled":      "ai",
			"ai.instructions": "instructions",
			"exclude-file":    "exclude-file",
		})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		runCompare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	addSourceFlags(compareCmd)
	compareCmd.Flags().StringArrayP("candidate", "c", nil, "candidate name to compare; pass exactly twice")
	compareCmd.Flags().Bool("ai", false, "ask the AI provider for an advisory opinion")
	compareCmd.Flags().String("instructions", "", "extra notes for the AI provider")
	compareCmd.Flags().Bool("exclude", false, "append both compared candidates to the exclude file")
	compareCmd.Flags().StringP("exclude-file", "e", "", "file with already reviewed candidates")
}

func runCompare(cmd *cobra.Command) {
	ctx := context.Background()

	log, cfg := setup()
	format := outputFormat(cmd, log)

	candidates, err := loadRoster(ctx, cmd, cfg, log)
	if err != nil {
		log.Fatal("getting candidates", zap.Error(err))
	}
	candidates.SortByScore()

	names, _ := cmd.Flags().GetStringArray("candidate")
	pair, err := selectCandidates(candidates, names)
	if err != nil {
		log.Fatal("selecting candidates", zap.Error(err))
	}

	selected := roster.New()
	selected.Items = pair

	result, err := compare.New().Compare(selected.Normalized()...)
	if err != nil {
		if errors.Is(err, compare.ErrInvalidComparisonInput) {
			log.Fatal("cannot compare", zap.Error(err), zap.String("hint", "pass --candidate exactly twice or pick two candidates interactively"))
		}
		log.Fatal("comparing candidates", zap.Error(err))
	}

	for _, entry := range pair {
		logger.WithCandidate(log, entry.Candidate.Name, entry.Candidate.ResumeID).Debug("comparing",
			zap.Int("percentage", entry.Display.Percentage),
			zap.String("band", string(entry.Display.Band)),
		)
	}

	var verdict *ai.Verdict
	if cfg.AI.Enabled {
		verdict = advise(ctx, cfg, log, result)
	}

	if err := report.Comparison(os.Stdout, format, result, verdict); err != nil {
		log.Fatal("writing report", zap.Error(err))
	}

	if exclude, _ := cmd.Flags().GetBool("exclude"); exclude {
		if err := appendExcluded(cfg.ExcludeFile, pair); err != nil {
			log.Fatal("updating exclude file", zap.Error(err), zap.String("filename", cfg.ExcludeFile))
		}
		log.Info("appended to exclude file", zap.String("filename", cfg.ExcludeFile), zap.Strings("candidates", selected.Names()))
	}
}

// advise asks the configured provider for an opinion. Failures are logged and
// the comparison is printed without a verdict.
func advise(ctx context.Context, cfg *config.Config, log *zap.Logger, result *compare.Result) *ai.Verdict {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.AI.Gemini.APIKey,
		File:  cfg.AI.Gemini.APIKeyFile,
		Env:   "GOOGLE_API_KEY",
	})
	if err != nil {
		log.Warn("skipping AI verdict", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, log, apiKey, cfg.AI.Gemini.Model, cfg.AI.Gemini.MaxRetries)
	if err != nil {
		log.Warn("skipping AI verdict", zap.Error(err))
		return nil
	}

	advisor := gemini.NewAdvisor(generator, log, cfg.AI.Gemini.MaxLogLength)
	advisor.SetInstructions(cfg.AI.Instructions)

	verdict, err := advisor.Advise(ctx, result)
	if err != nil {
		logger.WithAI(log, cfg.AI.Provider, cfg.AI.Gemini.Model).Warn("AI verdict failed", zap.Error(err))
		return nil
	}

	return verdict
}

func appendExcluded(path string, pair []*roster.Entry) error {
	if path == "" {
		return errors.New("exclude file is not set; use --exclude-file or the 'exclude-file' config key")
	}

	excluded, err := roster.LoadExcluded(path)
	if err != nil {
		return err
	}

	excluded.Append(roster.ToExcluded(pair...))

	return excluded.ToFile(path)
}

// selectCandidates resolves names against the roster, or prompts for two
// candidates when no names were given. Any other count is returned as is and
// rejected by the comparison.
func selectCandidates(c *roster.Candidates, names []string) ([]*roster.Entry, error) {
	if len(names) == 0 {
		return promptCandidates(c)
	}

	selected := make([]*roster.Entry, 0, len(names))
	for _, name := range names {
		entry := c.FindByName(name)
		if entry == nil {
			return nil, fmt.Errorf("candidate %q not found (known: %s)", name, strings.Join(c.Names(), ", "))
		}
		selected = append(selected, entry)
	}

	return selected, nil
}

func promptCandidates(c *roster.Candidates) ([]*roster.Entry, error) {
	if c.Len() < 2 {
		return c.Items, nil
	}

	remaining := append([]*roster.Entry(nil), c.Items...)
	selected := make([]*roster.Entry, 0, 2)

	for _, label := range []string{"Choose the first candidate", "Choose the second candidate"} {
		items := make([]string, 0, len(remaining))
		for _, entry := range remaining {
			items = append(items, fmt.Sprintf("%s (%d%%, %s)", entry.Candidate.Name, entry.Display.Percentage, entry.Display.Band))
		}

		candidatePrompt := promptui.Select{
			Label: label,
			Items: items,
			Size:  10,
			Searcher: func(input string, index int) bool {
				return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
			},
		}

		idx, _, err := candidatePrompt.Run()
		if err != nil {
			return nil, err
		}

		selected = append(selected, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return selected, nil
}
