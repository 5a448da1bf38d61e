package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/utils"
	"github.com/spf13/cobra"
)

// @title Donation Payment API
// @version 1.0
// @description Donation intake, payment gateway reconciliation and operator confirmation.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "donation_backend",
		Short: "Donation payment reconciliation service",
		// Running without a subcommand serves HTTP, matching the container entrypoint.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logger)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(migrateCmd(logger))
	rootCmd.AddCommand(sweepCmd(logger))
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and serve the HTTP API with the expiry sweep scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logger)
		},
	}
}

func migrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cfg, logger)
		},
	}
}

func sweepCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Expire stale pending donations once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweepOnce(cmd.Context(), logger)
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		role   string
		expiry time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token [operator-id]",
		Short: "Sign an operator API token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction {
				return fmt.Errorf("operator tokens are issued by the admin backend in production")
			}
			signed, err := utils.GenerateOperatorJWT(args[0], role, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "operator", "token role (operator or admin)")
	cmd.Flags().DurationVar(&expiry, "expiry", 12*time.Hour, "token lifetime")
	return cmd
}
