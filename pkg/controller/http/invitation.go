package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	"github.com/secmon-lab/slack-inviter/pkg/utils/apperr"
)

// maxBodySize bounds the request body read by the extractor
const maxBodySize = 1 << 20

// InvitationHandler serves the invitation endpoint
type InvitationHandler struct {
	invitationUC interfaces.Invitation
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationUC interfaces.Invitation) *InvitationHandler {
	return &InvitationHandler{
		invitationUC: invitationUC,
	}
}

// HandleInvite relays one invitation request. Validation failures and
// successful relays both answer 200; a remote fault answers 502 with the
// remote error code, or "api_error" when the call itself failed.
func (h *InvitationHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fields := extractFields(w, r)

	resp, err := h.invitationUC.Relay(ctx, fields)
	if err != nil {
		apperr.Handle(ctx, err)

		code, ok := model.RemoteErrorCode(err)
		if !ok {
			code = "api_error"
		}
		writeJSON(w, r, http.StatusBadGateway, map[string]string{model.KeyError: code})
		return
	}

	proxyResp, err := model.NewProxyResponse(resp)
	if err != nil {
		apperr.Handle(ctx, err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{model.KeyError: "internal_error"})
		return
	}

	for key, value := range proxyResp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(proxyResp.StatusCode)
	if _, err := io.WriteString(w, proxyResp.Body); err != nil {
		ctxlog.From(ctx).Error("Failed to write response", "error", err)
	}
}

// extractFields reads a JSON or form-encoded body into Fields. A body that
// cannot be read or decoded yields an empty or partial mapping.
func extractFields(w http.ResponseWriter, r *http.Request) model.Fields {
	logger := ctxlog.From(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		logger.Warn("Failed to read request body", "error", err)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return model.ParseFormFields(string(body))
	}

	var m map[string]any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&m); err != nil {
		logger.Warn("Failed to decode JSON body", "error", err)
		return model.Fields{}
	}
	return model.FieldsFromMap(m)
}
