// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"codeberg.org/noambuilds/site/internal/database"
	"codeberg.org/noambuilds/site/internal/server"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: withDB(database.RunMigrations),
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: withDB(database.MigrateDown),
			},
			{
				Name:   "reset",
				Usage:  "Roll back every migration",
				Action: withDB(database.MigrateReset),
			},
			{
				Name:   "status",
				Usage:  "Show which migrations are applied",
				Action: withDB(database.MigrationStatus),
			},
		},
	}
}

// withDB opens the configured database without migrating it and runs fn.
func withDB(fn func(*sql.DB) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		server.SetupLogger(cmd.String("log-level"), cmd.String("log-format"))

		db, err := database.Connect(cmd.String("database-dsn"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("failed to close database", "error", closeErr)
			}
		}()

		if err := fn(db.DB); err != nil {
			return fmt.Errorf("migrate %s: %w", cmd.Name, err)
		}

		version, err := database.SchemaVersion(db.DB)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "schema version", "version", version)
		return nil
	}
}
