package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/portfolio-auth/cmd/app/commands"
	"github.com/allisson/portfolio-auth/internal/app"
)

func getAuthzCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "authorize",
			Usage: "Decide whether a user may perform an action on a resource",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User to check",
				},
				&cli.StringFlag{
					Name:     "resource",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Resource name (e.g. portfolio)",
				},
				&cli.StringFlag{
					Name:     "action",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Action name (e.g. read)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					authorizationUseCase, err := container.AuthorizationUseCase()
					if err != nil {
						return err
					}

					return commands.RunAuthorize(
						ctx,
						authorizationUseCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("username"),
						cmd.String("resource"),
						cmd.String("action"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "create-user",
			Usage: "Create a user with an optional password, organization and roles",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username",
				},
				&cli.StringFlag{
					Name:    "organization",
					Aliases: []string{"o"},
					Usage:   "Existing organization name",
				},
				&cli.StringSliceFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Usage:   "Role to assign (repeatable, e.g. ROLE_ANALYST)",
				},
				&cli.BoolFlag{
					Name:  "inactive",
					Usage: "Create the user deactivated",
				},
				&cli.BoolFlag{
					Name:  "password-stdin",
					Usage: "Read the password from stdin; omit for federated-only users",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					userUseCase, err := container.UserUseCase()
					if err != nil {
						return err
					}

					return commands.RunCreateUser(
						ctx,
						userUseCase,
						container.Logger(),
						commands.DefaultIO(),
						commands.CreateUserOptions{
							Username:      cmd.String("username"),
							Organization:  cmd.String("organization"),
							Roles:         cmd.StringSlice("role"),
							Inactive:      cmd.Bool("inactive"),
							PasswordStdin: cmd.Bool("password-stdin"),
							Format:        cmd.String("format"),
						},
					)
				})
			},
		},
	}
}
