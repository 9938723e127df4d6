package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/portfolio-auth/cmd/app/commands"
	"github.com/allisson/portfolio-auth/internal/app"
	"github.com/allisson/portfolio-auth/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the API server and, when enabled, the metrics server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending database migrations for DB_DRIVER",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "source",
					Aliases: []string{"s"},
					Usage:   "Migrations directory (defaults to migrations/<driver>)",
					Sources: cli.EnvVars("MIGRATIONS_PATH"),
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				// Migrations only need the database settings, so the signing secret is not
				// required here.
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(
					container.Logger(),
					cfg.DBDriver,
					cfg.DBConnectionString,
					cmd.String("source"),
				)
			},
		},
	}
}
