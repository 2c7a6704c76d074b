package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . Invitation

import (
	"context"

	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
)

// Invitation relays one invitation request
type Invitation interface {
	// Relay validates fields and forwards them to the remote API. Validation
	// failures are returned as a response with the error key; remote failures
	// are returned as errors.
	Relay(ctx context.Context, fields model.Fields) (*model.RelayResponse, error)
}
