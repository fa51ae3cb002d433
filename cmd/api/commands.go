package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romansndlr/remix-todos/internal/adapter/database"
	httpadapter "github.com/romansndlr/remix-todos/internal/adapter/http"
	"github.com/romansndlr/remix-todos/pkg/config"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Todo list web service",
		Long: `todos serves a todo list over HTTP: list todos, add one, toggle one.

CONFIGURATION:
  Defaults, then the TOML file given by --config, then environment variables:
    PORT, GIN_MODE, ENFORCE_HTTPS, DATABASE_DRIVER, DATABASE_PATH,
    DATABASE_URL, RATE_LIMIT_BACKEND, REDIS_URL, OTLP_ENDPOINT,
    METRICS_PORT, LOKI_URL`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")

	cmd.AddCommand(newServeCommand(opts), newMigrateCommand(opts))

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)

			if err != nil {
				return err
			}

			if err := database.Migrate(cfg.Database, zerolog.New(os.Stderr).With().Timestamp().Logger()); err != nil {
				return fmt.Errorf("migrate %s: %w", cfg.Database.Driver, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.Database.Driver)

			return nil
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)

	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.ServiceName, cfg.LokiURL)

	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	defer logger.Sync()

	if err := httpadapter.StartServerWithConfig(cfg, logger); err != nil {
		logger.Logger.Error("Server stopped", zap.Error(err))
		return err
	}

	return nil
}
