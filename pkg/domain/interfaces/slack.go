package interfaces

//go:generate moq -out mocks/slack_mock.go -pkg mocks . SlackInviter

import (
	"context"
	"net/url"
)

// SlackInviter calls the remote team-invitation API
type SlackInviter interface {
	// Invite posts payload to the invite endpoint of teamName and returns the
	// decoded response body. Failures carry model.ErrTagTransport or
	// model.ErrTagRemoteAPI.
	Invite(ctx context.Context, teamName string, payload url.Values) (map[string]any, error)
}
