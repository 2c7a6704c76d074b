package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
)

// Handle logs a fault that ends a request. Rejections reported by Slack are
// logged as warnings, everything else as errors.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if code, ok := model.RemoteErrorCode(err); ok {
		logger.Warn("remote API error", "code", code, "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
