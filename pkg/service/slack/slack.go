package slack

import (
	"context"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// DefaultDomain returns the provider domain of the public Slack API
func DefaultDomain() string {
	u, err := url.Parse(slack.APIURL)
	if err != nil || u.Host == "" {
		return "slack.com"
	}
	return u.Host
}

// InviteURL builds https://<team>.<domain>/api/users.admin.invite
func InviteURL(teamName, domain string) string {
	return (&url.URL{
		Scheme: "https",
		Host:   teamName + "." + domain,
		Path:   invitePath,
	}).String()
}

// VerifyToken calls auth.test with token and returns the identity it belongs to
func VerifyToken(ctx context.Context, token string, options ...slack.Option) (*slack.AuthTestResponse, error) {
	client := slack.New(token, options...)
	resp, err := client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate with Slack")
	}
	return resp, nil
}
