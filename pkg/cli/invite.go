package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/slack-inviter/pkg/cli/config"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	"github.com/secmon-lab/slack-inviter/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdInvite() *cli.Command {
	var (
		slackCfg config.Slack
		file     string
		teamName string
		email    string
		token    string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "JSON or YAML file holding the field mapping",
				Destination: &file,
			},
			&cli.StringFlag{
				Name:        "team-name",
				Usage:       "Team to invite to (overrides the file)",
				Destination: &teamName,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Email address to invite (overrides the file)",
				Destination: &email,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "Caller token (overrides the file, ignored when a server-side token is set)",
				Destination: &token,
			},
		},
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "invite",
		Usage: "Relay one invitation request and print the response",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			fields := model.Fields{}
			if file != "" {
				loaded, err := loadFields(file)
				if err != nil {
					return err
				}
				fields = loaded
			}

			for key, value := range map[string]string{
				model.FieldTeamName: teamName,
				model.FieldEmail:    email,
				model.FieldToken:    token,
			} {
				if value != "" {
					fields[key] = value
				}
			}

			inviter, err := slackCfg.Configure(ctx)
			if err != nil {
				return err
			}

			resp, err := usecase.NewInvitation(inviter, slackCfg.InvitationOptions()...).Relay(ctx, fields)
			if err != nil {
				return err
			}

			proxyResp, err := model.NewProxyResponse(resp)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(c.Root().Writer)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(proxyResp); err != nil {
				return goerr.Wrap(err, "failed to write response")
			}
			return nil
		},
	}
}

// loadFields reads a field mapping file. JSON is read by the YAML decoder as well.
func loadFields(path string) (model.Fields, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read field file", goerr.V("path", path))
	}

	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, goerr.Wrap(err, "failed to parse field file", goerr.V("path", path))
	}

	return model.FieldsFromMap(m), nil
}
