package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "logmerge",
		Short: "Merge sorted log streams into one time-ordered stream",
		Long:  "logmerge reads any number of timestamp-sorted log streams and emits a single strictly time-ordered stream.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a merge described by a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runMerge(ctx, logger, cfgPath)
		},
		SilenceUsage: true,
	}
	runCmd.Flags().String("config", "logmerge.yaml", "path to the merge config file")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
