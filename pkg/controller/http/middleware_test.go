package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/slack-inviter/pkg/controller/http"
	"github.com/secmon-lab/slack-inviter/pkg/utils/metrics"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	var handlerLogged bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxlog.From(r.Context()).Info("inside handler")
		handlerLogged = true
		w.WriteHeader(http.StatusTeapot)
	})

	handler := middleware.RequestID(controller.LoggingMiddleware(ctx, metrics.New())(next))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	gt.True(t, handlerLogged)
	gt.Equal(t, http.StatusTeapot, w.Code)

	out := buf.String()
	gt.S(t, out).Contains(`"msg":"inside handler"`)
	gt.S(t, out).Contains(`"msg":"HTTP request"`)
	gt.S(t, out).Contains(`"status":418`)
	gt.S(t, out).Contains(`"request_id"`)
}

func TestLoggingMiddlewareWithoutMetrics(t *testing.T) {
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	controller.LoggingMiddleware(ctx, nil)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	gt.Equal(t, http.StatusOK, w.Code)
}
