package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/koustreak/tablegen/internal/config"
	"github.com/koustreak/tablegen/internal/gen"
	"github.com/koustreak/tablegen/internal/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tablegen",
	Short: "Generate TypeScript table types from a database schema",
	Long: `tablegen connects to a MySQL or PostgreSQL database, introspects the
tables of the configured schema, and writes two generated TypeScript files:
one interface per table, and an index mapping table names to those types.

Both output files are fully overwritten on every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(&logger.Config{Level: logLevel, Format: "console"})

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if err := gen.Run(cmd.Context(), gen.Options{Config: cfg, Log: log}); err != nil {
			return err
		}

		log.Info("table types generated")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the tablegen config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func Execute() error {
	ctx := context.Background()
	return rootCmd.ExecuteContext(ctx)
}
