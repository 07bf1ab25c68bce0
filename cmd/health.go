package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/utils"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Run: func(cmd *cobra.Command, _ []string) {
		health(cmd)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().Duration("wait", 0, "keep polling until the backend is healthy or this much time has passed")
	healthCmd.Flags().Duration("interval", 2*time.Second, "pause between polls")
}

func health(cmd *cobra.Command) {
	logger, config := setup()
	client := newBackend(config, logger)

	wait, _ := cmd.Flags().GetDuration("wait")
	interval, _ := cmd.Flags().GetDuration("interval")

	ctx := context.Background()
	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		err := client.Health(ctx)
		if err == nil {
			logger.Info("backend is healthy", zap.String("url", client.APIURL), zap.Int("attempt", attempt))
			fmt.Println("ok")
			return
		}

		if wait <= 0 {
			logger.Fatal("backend is not healthy", zap.Error(err), zap.String("url", client.APIURL))
		}

		logger.Debug("backend is not ready yet", zap.Error(err), zap.Int("attempt", attempt))

		if err := utils.WaitFor(ctx, interval); err != nil {
			logger.Fatal("backend did not become healthy", zap.Duration("wait", wait), zap.String("url", client.APIURL))
		}
	}
}
