package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/grants/cmd/app/commands"
	"github.com/allisson/grants/internal/app"
	"github.com/allisson/grants/internal/config"
)

func getGrantCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-grant",
			Usage: "Issue an access grant manually, outside the webhook flow",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "payment-id",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Payment identifier the grant is bound to",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Owner email address",
				},
				&cli.StringFlag{
					Name:    "tier",
					Aliases: []string{"t"},
					Value:   "demo",
					Usage:   "Product tier: 'demo' or 'lifetime'",
				},
				&cli.BoolFlag{
					Name:  "notify",
					Value: false,
					Usage: "Send the delivery email for the issued grant",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				issuerUseCase, err := container.IssuerUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueGrant(
					ctx,
					issuerUseCase,
					container.Dispatcher(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("payment-id"),
					cmd.String("email"),
					cmd.String("tier"),
					cmd.Bool("notify"),
					cfg.PublicBaseURL,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-expired-grants",
			Usage: "Delete expired grants older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete expired grants older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many grants would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredGrants(
					ctx,
					adminUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
