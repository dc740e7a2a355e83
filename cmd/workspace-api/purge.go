package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var purgeOlderThan time.Duration

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Physically remove workspaces soft-deleted before a cutoff",
	Long:  "Deletes soft-deleted workspaces older than --older-than. Their assignments, tasks, tags, comments and grants cascade with them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.Purge(cmd.Context(), purgeOlderThan)
		if err != nil {
			return err
		}
		log.Info("purged workspaces", zap.Int64("count", n), zap.Duration("older_than", purgeOlderThan))
		return nil
	},
}

func init() {
	purgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 720*time.Hour, "minimum age of a soft-deleted workspace")
	rootCmd.AddCommand(purgeCmd)
}
