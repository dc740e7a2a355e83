package main

import (
	"fmt"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/services"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var grantAccessCmd = &cobra.Command{
	Use:   "grant-access <workspaceId> <userId> <READ|WRITE|ADMIN>",
	Short: "Grant or change a user's access to a workspace",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workspace id: %w", err)
		}
		userID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		level, ok := models.ParseAccessLevel(args[2])
		if !ok {
			return fmt.Errorf("invalid access level %q", args[2])
		}

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

		access, err := services.NewWorkspaceService(db).GrantAccess(cmd.Context(), workspaceID, userID, level)
		if err != nil {
			return err
		}
		log.Info("access granted",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("user_id", userID.String()),
			zap.String("level", string(access.AccessLevel)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grantAccessCmd)
}
