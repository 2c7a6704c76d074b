package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/slack-inviter/pkg/cli/config"
	"github.com/secmon-lab/slack-inviter/pkg/controller/lambda"
	"github.com/secmon-lab/slack-inviter/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLambda() *cli.Command {
	var slackCfg config.Slack

	return &cli.Command{
		Name:  "lambda",
		Usage: "Serve invitation requests as an AWS Lambda function behind API Gateway",
		Flags: slackCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Info("Starting slack-inviter lambda", slog.Any("slack", slackCfg))

			inviter, err := slackCfg.Configure(ctx)
			if err != nil {
				return err
			}

			invitationUC := usecase.NewInvitation(inviter, slackCfg.InvitationOptions()...)
			lambda.Start(ctx, lambda.NewHandler(invitationUC))
			return nil
		},
	}
}
