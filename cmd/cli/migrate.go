package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/bankrec/internal/infrastructure/logger"
	"github.com/iho/bankrec/internal/infrastructure/postgres"
)

var errDatabaseURLMissing = errors.New("--database-url or DATABASE_URL is required")

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", envOr("MIGRATIONS_PATH", "internal/infrastructure/postgres/migrations"), "Migrations directory")

	migrator := func(cmd *cobra.Command) (*postgres.Migrator, error) {
		if databaseURL == "" {
			return nil, errDatabaseURLMissing
		}
		l := logger.New(logger.Config{Format: "console", Output: cmd.ErrOrStderr()})
		return postgres.NewMigrator(databaseURL, path, l), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				return m.Up()
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				return m.Down()
			},
		},
	)
	return cmd
}
