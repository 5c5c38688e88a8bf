package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cryptokit/cmd/app/commands"
	"github.com/allisson/cryptokit/internal/app"
	"github.com/allisson/cryptokit/internal/config"
	"github.com/allisson/cryptokit/internal/digest"
)

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "encrypt",
			Usage:     "Encrypt a payload into an envelope string",
			ArgsUsage: "<plaintext>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				codec, err := container.Codec()
				if err != nil {
					return err
				}

				return commands.RunEncrypt(
					ctx,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
				)
			},
		},
		{
			Name:      "decrypt",
			Usage:     "Decrypt an envelope string",
			ArgsUsage: "<envelope>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "hex",
					Value: false,
					Usage: "Print the plaintext as hex instead of raw text",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				codec, err := container.Codec()
				if err != nil {
					return err
				}

				return commands.RunDecrypt(
					ctx,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.Bool("hex"),
				)
			},
		},
		{
			Name:      "digest",
			Usage:     "Compute the hex digest of a value or file",
			ArgsUsage: "<value>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "Hash the contents of this file instead of the argument",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunDigest(
					digest.NewHasher(),
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.String("file"),
				)
			},
		},
	}
}
