package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	"github.com/slack-go/slack"
)

// invitePath is the API method of the team invitation endpoint
const invitePath = "/api/users.admin.invite"

// Inviter posts invitation requests to the users.admin.invite endpoint of a team
type Inviter struct {
	httpClient *http.Client
	endpoint   func(teamName string) string
}

var _ interfaces.SlackInviter = &Inviter{}

// InviterOption configures an Inviter
type InviterOption func(*Inviter)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(client *http.Client) InviterOption {
	return func(x *Inviter) {
		x.httpClient = client
	}
}

// WithDomain sets the provider domain that team subdomains live under
func WithDomain(domain string) InviterOption {
	return func(x *Inviter) {
		x.endpoint = func(teamName string) string {
			return InviteURL(teamName, domain)
		}
	}
}

// WithEndpoint overrides the URL builder entirely, e.g. to target a test server
func WithEndpoint(endpoint func(teamName string) string) InviterOption {
	return func(x *Inviter) {
		x.endpoint = endpoint
	}
}

// NewInviter creates an Inviter targeting the default Slack domain
func NewInviter(opts ...InviterOption) *Inviter {
	x := &Inviter{
		httpClient: http.DefaultClient,
		endpoint: func(teamName string) string {
			return InviteURL(teamName, DefaultDomain())
		},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Invite implements interfaces.SlackInviter
func (x *Inviter) Invite(ctx context.Context, teamName string, payload url.Values) (map[string]any, error) {
	endpoint := x.endpoint(teamName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "api_error",
			goerr.T(model.ErrTagTransport),
			goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ctxlog.From(ctx).Debug("Sending invitation request",
		"endpoint", endpoint,
		"fields", len(payload),
	)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "api_error",
			goerr.T(model.ErrTagTransport),
			goerr.V("endpoint", endpoint))
	}
	defer resp.Body.Close()

	// any status below 400 counts as delivered
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, goerr.Wrap(slack.StatusCodeError{Code: resp.StatusCode, Status: resp.Status}, "api_error",
			goerr.T(model.ErrTagTransport),
			goerr.V(model.ErrValueStatus, resp.StatusCode),
			goerr.V("endpoint", endpoint))
	}

	var body map[string]any
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "api_error",
			goerr.T(model.ErrTagTransport),
			goerr.V(model.ErrValueStatus, resp.StatusCode),
			goerr.V("endpoint", endpoint))
	}

	if _, ok := body["ok"]; !ok {
		code, _ := body["error"].(string)
		if code == "" {
			code = "unknown_error"
		}
		return nil, goerr.New(code,
			goerr.T(model.ErrTagRemoteAPI),
			goerr.V(model.ErrValueCode, code),
			goerr.V("team_name", teamName))
	}

	return body, nil
}
