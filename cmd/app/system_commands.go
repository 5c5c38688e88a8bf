package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cryptokit/cmd/app/commands"
	"github.com/allisson/cryptokit/internal/app"
	"github.com/allisson/cryptokit/internal/config"
	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "create-key",
			Usage: "Provision a named key in the key store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Logical key name (e.g., __aes_key__, __jwt_key__)",
				},
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   cryptoDomain.KeySize,
					Usage:   "Key length in bytes",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				store, err := container.KeyStore()
				if err != nil {
					return err
				}

				return commands.RunCreateKey(
					ctx,
					store,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					int(cmd.Int("length")),
				)
			},
		},
	}
}
