package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	"github.com/secmon-lab/slack-inviter/pkg/utils/metrics"
)

// Invitation validates invitation requests and relays them to Slack
type Invitation struct {
	inviter     interfaces.SlackInviter
	serverToken string
	metrics     *metrics.Metrics
}

// InvitationOption configures an Invitation use case
type InvitationOption func(*Invitation)

// WithServerToken sets the server-side token. A non-empty token replaces any
// token sent by the caller.
func WithServerToken(token string) InvitationOption {
	return func(u *Invitation) {
		u.serverToken = token
	}
}

// WithMetrics records relay outcomes on m
func WithMetrics(m *metrics.Metrics) InvitationOption {
	return func(u *Invitation) {
		u.metrics = m
	}
}

// NewInvitation creates a new invitation use case
func NewInvitation(inviter interfaces.SlackInviter, opts ...InvitationOption) interfaces.Invitation {
	u := &Invitation{
		inviter: inviter,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Relay implements interfaces.Invitation. Faults from the remote call are
// returned unwrapped so that a RemoteAPI fault keeps the remote code as its
// message.
func (u *Invitation) Relay(ctx context.Context, fields model.Fields) (*model.RelayResponse, error) {
	logger := ctxlog.From(ctx)

	if fields == nil {
		fields = model.Fields{}
	}
	fields.InjectToken(u.serverToken)

	if codes := fields.Validate(); len(codes) > 0 {
		logger.Info("Invitation request rejected",
			"codes", codes,
			"fields", fields.Keys(),
		)
		u.metrics.RecordRelay(metrics.OutcomeInvalid)
		return model.NewErrorResponse(codes), nil
	}

	teamName := fields.TeamName()

	// A caller giving up must not abort an invitation already on the wire
	body, err := u.inviter.Invite(context.WithoutCancel(ctx), teamName, fields.Payload())
	if err != nil {
		if code, ok := model.RemoteErrorCode(err); ok {
			logger.Warn("Slack rejected invitation", "team_name", teamName, "code", code)
			u.metrics.RecordRelay(metrics.OutcomeRemoteError)
		} else {
			u.metrics.RecordRelay(metrics.OutcomeTransportError)
		}
		return nil, err
	}

	logger.Info("Invitation relayed", "team_name", teamName, "ok", body["ok"])
	u.metrics.RecordRelay(metrics.OutcomeInvited)
	return model.NewResultResponse(body), nil
}
