package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	"github.com/secmon-lab/slack-inviter/pkg/utils/apperr"
)

// proxyMarker is present only in events produced by an API Gateway proxy
const proxyMarker = "httpMethod"

// Handler serves invitation requests delivered as Lambda events
type Handler struct {
	invitationUC interfaces.Invitation
}

// NewHandler creates a new Lambda handler
func NewHandler(invitationUC interfaces.Invitation) *Handler {
	return &Handler{
		invitationUC: invitationUC,
	}
}

// Start hands the handler to the Lambda runtime. It blocks for the lifetime
// of the process.
func Start(ctx context.Context, h *Handler) {
	awslambda.StartWithOptions(h.Handle, awslambda.WithContext(ctx))
}

// Handle relays one invocation. The event is either an API Gateway proxy
// request carrying a form-encoded body or the field mapping itself. Remote
// faults are returned to the runtime, which decides what the caller sees.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	ctx = withInvocationLogger(ctx)

	resp, err := h.invitationUC.Relay(ctx, ExtractFields(ctx, raw))
	if err != nil {
		apperr.Handle(ctx, err)
		return events.APIGatewayProxyResponse{}, err
	}

	proxyResp, err := model.NewProxyResponse(resp)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: proxyResp.StatusCode,
		Headers:    proxyResp.Headers,
		Body:       proxyResp.Body,
	}, nil
}

// ExtractFields turns a raw event into Fields, choosing the proxy or the
// direct adapter by the presence of httpMethod. Undecodable input yields an
// empty mapping.
func ExtractFields(ctx context.Context, raw []byte) model.Fields {
	logger := ctxlog.From(ctx)

	var probe map[string]any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&probe); err != nil {
		logger.Warn("Failed to decode event", "error", err)
		return model.Fields{}
	}

	if _, ok := probe[proxyMarker]; !ok {
		return model.FieldsFromMap(probe)
	}

	body, err := proxyBody(raw)
	if err != nil {
		logger.Warn("Failed to read proxy event body", "error", err)
		return model.Fields{}
	}
	return model.ParseFormFields(body)
}

func proxyBody(raw []byte) (string, error) {
	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &event); err != nil {
		return "", goerr.Wrap(err, "failed to decode proxy event")
	}

	if !event.IsBase64Encoded {
		return event.Body, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to decode base64 body")
	}
	return string(decoded), nil
}

// withInvocationLogger tags the context logger with the Lambda request ID, or
// a fresh ID when running outside the Lambda runtime.
func withInvocationLogger(ctx context.Context) context.Context {
	invocationID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		invocationID = lc.AwsRequestID
	}
	if invocationID == "" {
		invocationID = uuid.NewString()
	}

	return ctxlog.With(ctx, ctxlog.From(ctx).With("invocation_id", invocationID))
}
