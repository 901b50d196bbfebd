package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/gobudget/internal/infrastructure/config"
	"github.com/iho/gobudget/internal/infrastructure/logger"
	"github.com/iho/gobudget/internal/infrastructure/postgres"
)

// Swapped in tests.
var (
	migrateUp   = postgres.RunMigrations
	migrateDown = postgres.RunMigrationsDown
)

func migrateCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		Long:  `Reads DATABASE_URL and MIGRATIONS_PATH from the environment. Embedded migrations are used when MIGRATIONS_PATH is empty.`,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Optional .env file to load")

	run := func(apply func(string, string, zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}

			log := logger.New(logger.Config{
				Level:   cfg.LogLevel,
				Format:  "console",
				Service: "gobudget-cli",
				Output:  cmd.ErrOrStderr(),
			})
			return apply(cfg.DatabaseURL, cfg.MigrationsPath, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(func(url, path string, l zerolog.Logger) error { return migrateUp(url, path, l) }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE:  run(func(url, path string, l zerolog.Logger) error { return migrateDown(url, path, l) }),
		},
	)
	return cmd
}
