package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	slackSvc "github.com/secmon-lab/slack-inviter/pkg/service/slack"
	"github.com/secmon-lab/slack-inviter/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// teamPlaceholder is replaced by the team name in an endpoint template
const teamPlaceholder = "{team}"

// Slack holds Slack configuration
type Slack struct {
	InviteToken string
	Domain      string
	Endpoint    string
	VerifyToken bool
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-invite-token",
			Usage:       "Server-side Slack token. When set it replaces any token sent by callers",
			Category:    "Slack",
			Sources:     cli.EnvVars("SLACK_INVITER_SLACK_INVITE_TOKEN", "token"),
			Destination: &s.InviteToken,
		},
		&cli.StringFlag{
			Name:        "slack-domain",
			Usage:       "Domain that team subdomains live under",
			Category:    "Slack",
			Value:       slackSvc.DefaultDomain(),
			Sources:     cli.EnvVars("SLACK_INVITER_SLACK_DOMAIN"),
			Destination: &s.Domain,
		},
		&cli.StringFlag{
			Name:        "slack-endpoint",
			Usage:       "Invite endpoint URL template overriding --slack-domain, " + teamPlaceholder + " is replaced by the team name",
			Category:    "Slack",
			Sources:     cli.EnvVars("SLACK_INVITER_SLACK_ENDPOINT"),
			Destination: &s.Endpoint,
		},
		&cli.BoolFlag{
			Name:        "slack-verify-token",
			Usage:       "Check the server-side token with auth.test on startup",
			Category:    "Slack",
			Sources:     cli.EnvVars("SLACK_INVITER_SLACK_VERIFY_TOKEN"),
			Destination: &s.VerifyToken,
		},
	}
}

// Configure creates the Slack inviter, verifying the server-side token first
// when requested.
func (s *Slack) Configure(ctx context.Context) (*slackSvc.Inviter, error) {
	logger := ctxlog.From(ctx)

	if s.VerifyToken {
		if s.InviteToken == "" {
			return nil, goerr.New("--slack-verify-token requires a server-side token")
		}
		resp, err := slackSvc.VerifyToken(ctx, s.InviteToken)
		if err != nil {
			return nil, goerr.Wrap(err, "server-side token rejected by Slack")
		}
		logger.Info("Server-side token verified",
			"team", resp.Team,
			"team_id", resp.TeamID,
			"user", resp.User,
		)
	}

	if s.Endpoint != "" {
		template := s.Endpoint
		return slackSvc.NewInviter(slackSvc.WithEndpoint(func(teamName string) string {
			return strings.ReplaceAll(template, teamPlaceholder, teamName)
		})), nil
	}

	return slackSvc.NewInviter(slackSvc.WithDomain(s.Domain)), nil
}

// InvitationOptions returns the use case options derived from the configuration
func (s *Slack) InvitationOptions() []usecase.InvitationOption {
	return []usecase.InvitationOption{usecase.WithServerToken(s.InviteToken)}
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_invite_token", s.InviteToken != ""),
		slog.String("domain", s.Domain),
		slog.String("endpoint", s.Endpoint),
		slog.Bool("verify_token", s.VerifyToken),
	)
}
