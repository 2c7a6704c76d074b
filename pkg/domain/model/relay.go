package model

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// Response keys of RelayResponse
const (
	KeyError  = "error"
	KeyResult = "result"
)

// RelayResponse is the outward response envelope. Exactly one of Error and
// Result is set.
type RelayResponse struct {
	Error  []string       `json:"error,omitempty"`
	Result map[string]any `json:"result,omitempty"`
}

// NewErrorResponse wraps validation codes
func NewErrorResponse(codes []string) *RelayResponse {
	return &RelayResponse{Error: codes}
}

// NewResultResponse wraps the decoded remote API body
func NewResultResponse(body map[string]any) *RelayResponse {
	return &RelayResponse{Result: body}
}

// Key returns "error" or "result"
func (r *RelayResponse) Key() string {
	if r.Error != nil {
		return KeyError
	}
	return KeyResult
}

// ProxyResponse is the HTTP response envelope handed to the hosting surface
type ProxyResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// NewProxyResponse encodes resp as {key: value} with status 200 and a JSON
// content type, whichever key is set.
func NewProxyResponse(resp *RelayResponse) (*ProxyResponse, error) {
	var value any = resp.Result
	if resp.Key() == KeyError {
		value = resp.Error
	}

	body, err := json.Marshal(map[string]any{resp.Key(): value})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode relay response", goerr.V("key", resp.Key()))
	}

	return &ProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}
