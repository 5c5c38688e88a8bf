package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cryptokit/cmd/app/commands"
	"github.com/allisson/cryptokit/internal/app"
	"github.com/allisson/cryptokit/internal/config"
)

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "password-hash",
			Usage:     "Derive a password record",
			ArgsUsage: "<password>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "bias",
					Aliases: []string{"b"},
					Usage:   "Per-identity salt bias mixed into the derivation",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.PasswordHasher()
				if err != nil {
					return err
				}

				return commands.RunPasswordHash(
					ctx,
					hasher,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.String("bias"),
				)
			},
		},
		{
			Name:      "password-verify",
			Usage:     "Verify a password against its record",
			ArgsUsage: "<password> <record>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "bias",
					Aliases: []string{"b"},
					Usage:   "Per-identity salt bias mixed into the derivation",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.PasswordHasher()
				if err != nil {
					return err
				}

				return commands.RunPasswordVerify(
					ctx,
					hasher,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().Get(0),
					cmd.Args().Get(1),
					cmd.String("bias"),
				)
			},
		},
	}
}
