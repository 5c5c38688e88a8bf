package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cryptokit/cmd/app/commands"
	"github.com/allisson/cryptokit/internal/app"
	"github.com/allisson/cryptokit/internal/config"
	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
)

// tokenCodec returns the container codec when token encryption is requested.
func tokenCodec(container *app.Container, encrypted bool) (cryptoService.SymmetricCodec, error) {
	if !encrypted {
		return nil, nil
	}
	return container.Codec()
}

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "token-generate",
			Usage: "Issue a signed token from a JSON claim object",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "claims",
					Aliases: []string{"c"},
					Usage:   "JSON object with token claims (e.g., '{\"sub\":\"user-42\"}')",
				},
				&cli.DurationFlag{
					Name:    "expiry",
					Aliases: []string{"e"},
					Value:   0,
					Usage:   "Token lifetime (e.g., 1h, 30m); 0 uses the configured default",
				},
				&cli.BoolFlag{
					Name:  "encrypted",
					Value: false,
					Usage: "Wrap the token in an encrypted envelope",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				issuer, err := container.TokenIssuer()
				if err != nil {
					return err
				}

				codec, err := tokenCodec(container, cmd.Bool("encrypted"))
				if err != nil {
					return err
				}

				return commands.RunTokenGenerate(
					ctx,
					issuer,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("claims"),
					cmd.Duration("expiry"),
				)
			},
		},
		{
			Name:      "token-decode",
			Usage:     "Verify a token and print its claims",
			ArgsUsage: "<token>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "encrypted",
					Value: false,
					Usage: "Treat the token as an encrypted envelope",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				issuer, err := container.TokenIssuer()
				if err != nil {
					return err
				}

				codec, err := tokenCodec(container, cmd.Bool("encrypted"))
				if err != nil {
					return err
				}

				return commands.RunTokenDecode(
					ctx,
					issuer,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
				)
			},
		},
	}
}
