package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/portfolio-auth/cmd/app/commands"
	"github.com/allisson/portfolio-auth/internal/app"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Sign an access token for a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Token subject",
				},
				&cli.StringSliceFlag{
					Name:    "authority",
					Aliases: []string{"a"},
					Usage:   "Authority carried by the token (repeatable, e.g. ROLE_ANALYST)",
				},
				&cli.StringFlag{
					Name:    "session",
					Aliases: []string{"s"},
					Usage:   "Session index to embed in the token",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					tokenUseCase, err := container.TokenUseCase()
					if err != nil {
						return err
					}

					return commands.RunIssueToken(
						ctx,
						tokenUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("username"),
						cmd.StringSlice("authority"),
						cmd.String("session"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "validate-token",
			Usage: "Validate an access token and print its claims",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Compact JWS to validate",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					tokenUseCase, err := container.TokenUseCase()
					if err != nil {
						return err
					}

					return commands.RunValidateToken(
						ctx,
						tokenUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("token"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "clean-audit-events",
			Usage: "Delete audit events older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete audit events older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many events would be deleted without deleting",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					auditEventUseCase, err := container.AuditEventUseCase()
					if err != nil {
						return err
					}

					return commands.RunCleanAuditEvents(
						ctx,
						auditEventUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("days")),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "verify-audit-events",
			Usage: "Verify the signatures of audit events in a time range",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "start-date",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Start date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				&cli.StringFlag{
					Name:     "end-date",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "End date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					auditEventUseCase, err := container.AuditEventUseCase()
					if err != nil {
						return err
					}

					return commands.RunVerifyAuditEvents(
						ctx,
						auditEventUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("start-date"),
						cmd.String("end-date"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
