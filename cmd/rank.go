package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/filtering"
	"github.com/spigell/candidate-board/internal/report"
	"github.com/spigell/candidate-board/internal/roster"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print the ranked candidate list",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"filters.top":           "top",
			"filters.minimum-score": "minimum-score",
			"exclude-file":          "exclude-file",
		})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	addSourceFlags(rankCmd)
	rankCmd.Flags().IntP("top", "n", 0, "show only the N best candidates")
	rankCmd.Flags().Int("minimum-score", 0, "hide candidates below this display percentage")
	rankCmd.Flags().StringP("exclude-file", "e", "", "file with already reviewed candidates to hide")
	rankCmd.Flags().StringSlice("disable-filter", nil, "filters to skip: exclude_file, minimum_score, top")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()
	format := outputFormat(cmd, logger)

	logger.Info("starting the ranking", zap.String("version", version))

	candidates, err := loadRoster(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("getting candidates", zap.Error(err))
	}

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	steps := prepareFilters(cmd, config)
	candidates, err = rankCandidates(ctx, filterConfig(config), filtering.Deps{Logger: logger}, steps, candidates)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	if err := report.Rankings(os.Stdout, format, candidates, time.Now().Year()); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
}

// rankCandidates orders the roster best first and narrows it. The order does
// not depend on which filters are enabled.
func rankCandidates(ctx context.Context, cfg *filtering.Config, deps filtering.Deps, steps []filtering.Filter, candidates *roster.Candidates) (*roster.Candidates, error) {
	candidates.SortByScore()
	return filtering.Run(ctx, cfg, deps, steps, candidates)
}
