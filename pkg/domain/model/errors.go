package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for faults of the remote invitation call
var (
	// ErrTagTransport marks a failed request or a non-success HTTP status
	ErrTagTransport = goerr.NewTag("transport_error")
	// ErrTagRemoteAPI marks a response the remote API rejected logically
	ErrTagRemoteAPI = goerr.NewTag("remote_api_error")
)

// Value keys attached to remote faults
const (
	ErrValueCode   = "code"
	ErrValueStatus = "status"
)

// RemoteErrorCode returns the error code reported by the remote API when err
// is a RemoteAPI fault.
func RemoteErrorCode(err error) (string, bool) {
	if err == nil || !goerr.HasTag(err, ErrTagRemoteAPI) {
		return "", false
	}
	code, ok := goerr.Values(err)[ErrValueCode].(string)
	return code, ok
}

// IsTransportError reports whether err is a Transport fault
func IsTransportError(err error) bool {
	return err != nil && goerr.HasTag(err, ErrTagTransport)
}
