package main

import (
	"errors"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/services"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <userId>",
	Short: "Issue a gateway bearer token for local testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}

		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.GatewayJWTSecret == "" {
			return errors.New("GATEWAY_JWT_SECRET is not set")
		}

		token, err := services.NewGatewayTokenService(cfg.GatewayJWTSecret, cfg.GatewayTokenExpiry).Issue(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
