package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/backend"
	"github.com/spigell/candidate-board/internal/config"
	"github.com/spigell/candidate-board/internal/filtering"
	"github.com/spigell/candidate-board/internal/logger"
	"github.com/spigell/candidate-board/internal/report"
	"github.com/spigell/candidate-board/internal/roster"
	"github.com/spigell/candidate-board/internal/secrets"
)

// setup builds the logger and config shared by all commands. Failures are fatal.
func setup() (*zap.Logger, *config.Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(cfg), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, cfg
}

func redacted(cfg *config.Config) config.Config {
	out := *cfg
	if out.Backend.Token != "" {
		out.Backend.Token = "***"
	}
	if out.AI.Gemini.APIKey != "" {
		out.AI.Gemini.APIKey = "***"
	}
	return out
}

func newBackend(cfg *config.Config, logger *zap.Logger) *backend.Client {
	token, err := secrets.Optional(secrets.Source{
		Name:  "backend token",
		Value: cfg.Backend.Token,
		File:  cfg.Backend.TokenFile,
	})
	if err != nil {
		logger.Fatal(
			"loading backend token",
			zap.Error(err),
			zap.String("hint", "set CANDIDATE_BOARD_TOKEN_FILE environment variable or the 'backend.token-file' key in the configuration file"),
		)
	}

	client := backend.New(logger, cfg.Backend.URL, token)
	if cfg.Backend.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Backend.Timeout
	}

	return client
}

func outputFormat(cmd *cobra.Command, logger *zap.Logger) report.Format {
	format, err := report.ParseFormat(cmd.Flag("format").Value.String())
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}
	return format
}

// loadRoster reads candidates from --input, or fetches rankings from the
// backend after uploading any --upload resumes and joins both.
func loadRoster(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (*roster.Candidates, error) {
	if input := strings.TrimSpace(cmd.Flag("input").Value.String()); input != "" {
		c, err := roster.LoadFile(input)
		if err != nil {
			return nil, fmt.Errorf("loading candidates from file: %w", err)
		}
		logger.Info("loaded candidates from file", zap.String("path", input), zap.Int("count", c.Len()))
		return c, nil
	}

	client := newBackend(cfg, logger)

	uploads, err := cmd.Flags().GetStringSlice("upload")
	if err != nil {
		return nil, err
	}

	var resumes []*backend.ProcessedResume
	if len(uploads) > 0 {
		logger.Info("uploading resumes", zap.Int("count", len(uploads)), zap.Int("concurrency", cfg.Upload.Concurrency))
		resumes, err = client.ProcessResumes(ctx, uploads, cfg.Upload.Concurrency)
		if err != nil {
			return nil, err
		}
	}

	rankings, err := client.Rankings(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("getting rankings", zap.Int("count", rankings.Len()))

	return roster.Join(rankings, resumes, logger), nil
}

func filterConfig(cfg *config.Config) *filtering.Config {
	return &filtering.Config{
		MinimumScore: cfg.Filters.MinimumScore,
		ExcludeFile:  cfg.ExcludeFile,
		Top:          cfg.Filters.Top,
	}
}

func prepareFilters(cmd *cobra.Command, cfg *config.Config) []filtering.Filter {
	steps := filtering.Defaults()

	for _, name := range cfg.Filters.Disabled {
		filtering.DisableByName(steps, name, "disabled in config")
	}

	if flag := cmd.Flags().Lookup("disable-filter"); flag != nil {
		names, _ := cmd.Flags().GetStringSlice("disable-filter")
		for _, name := range names {
			filtering.DisableByName(steps, name, "disabled via flag")
		}
	}

	return steps
}

// addSourceFlags registers the flags that decide where candidates come from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "read candidate records from a JSON file instead of the backend")
	cmd.Flags().StringSlice("upload", nil, "resume files to process before fetching rankings")
	cmd.Flags().StringP("format", "o", string(report.FormatText), "output format: text or json")
}
