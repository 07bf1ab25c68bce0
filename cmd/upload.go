package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/report"
)

var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Send resume files to the backend for processing",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"upload.concurrency": "concurrency",
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		upload(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().Int("concurrency", 0, "parallel uploads (overrides upload.concurrency)")
	uploadCmd.Flags().StringP("format", "o", string(report.FormatText), "output format: text or json")
}

func upload(cmd *cobra.Command, files []string) {
	ctx := context.Background()

	logger, config := setup()
	format := outputFormat(cmd, logger)

	client := newBackend(config, logger)

	logger.Info("uploading resumes", zap.Int("count", len(files)), zap.Int("concurrency", config.Upload.Concurrency))

	resumes, err := client.ProcessResumes(ctx, files, config.Upload.Concurrency)
	if err != nil {
		logger.Fatal("processing resumes", zap.Error(err))
	}

	if err := report.Uploads(os.Stdout, format, resumes); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
}
