package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/slack-inviter/pkg/controller/http"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/slack-inviter/pkg/domain/model"
	slackSvc "github.com/secmon-lab/slack-inviter/pkg/service/slack"
	"github.com/secmon-lab/slack-inviter/pkg/usecase"
	"github.com/secmon-lab/slack-inviter/pkg/utils/metrics"
)

// remoteAPI is a stand-in for the Slack invite endpoint
type remoteAPI struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []url.Values
	paths []string
}

func newRemoteAPI(t *testing.T, status int, body string) *remoteAPI {
	remote := &remoteAPI{}
	remote.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))

		remote.mu.Lock()
		remote.calls = append(remote.calls, form)
		remote.paths = append(remote.paths, r.URL.Path)
		remote.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(remote.srv.Close)
	return remote
}

func (x *remoteAPI) inviter() *slackSvc.Inviter {
	return slackSvc.NewInviter(
		slackSvc.WithHTTPClient(x.srv.Client()),
		slackSvc.WithEndpoint(func(teamName string) string {
			return x.srv.URL + "/" + teamName + "/api/users.admin.invite"
		}),
	)
}

func (x *remoteAPI) Calls() []url.Values {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.calls
}

func newTestServer(remote *remoteAPI, opts ...usecase.InvitationOption) *controller.Server {
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(os.Stdout, nil)))
	m := metrics.New()
	uc := usecase.NewInvitation(remote.inviter(), append(opts, usecase.WithMetrics(m))...)
	return controller.NewServer(ctx, ":0", uc, m)
}

func postForm(server *controller.Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func TestServerHealthCheck(t *testing.T) {
	server := newTestServer(newRemoteAPI(t, http.StatusOK, `{"ok":true}`))

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Equal(t, http.StatusOK, w.Code)
	gt.S(t, w.Body.String()).Contains(`"status":"healthy"`)
}

func TestServerInvite(t *testing.T) {
	t.Run("success passes remote body through", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"ok":true,"n":1}`)
		server := newTestServer(remote)

		w := postForm(server, "team_name=acme&email=a@b.com&token=xyz")

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, "application/json", w.Header().Get("Content-Type"))
		gt.Equal(t, `{"result":{"n":1,"ok":true}}`, w.Body.String())

		calls := remote.Calls()
		gt.Equal(t, 1, len(calls))
		gt.Equal(t, "a@b.com", calls[0].Get("email"))
		gt.Equal(t, "xyz", calls[0].Get("token"))
		gt.Equal(t, "", calls[0].Get("team_name"))
		gt.Equal(t, "/acme/api/users.admin.invite", remote.paths[0])
	})

	t.Run("missing fields answer 200 with error codes", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"ok":true}`)
		server := newTestServer(remote)

		w := postForm(server, "team_name=acme")

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, "application/json", w.Header().Get("Content-Type"))
		gt.Equal(t, `{"error":["no_email","no_token"]}`, w.Body.String())
		gt.Equal(t, 0, len(remote.Calls()))
	})

	t.Run("server token overrides caller token", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"ok":true}`)
		server := newTestServer(remote, usecase.WithServerToken("server-token"))

		w := postForm(server, "team_name=acme&email=a@b.com&token=caller-token")

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, "server-token", remote.Calls()[0].Get("token"))
	})

	t.Run("JSON body", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"ok":true}`)
		server := newTestServer(remote)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"team_name":"acme","email":"a@b.com","token":"xyz"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, `{"result":{"ok":true}}`, w.Body.String())
		gt.Equal(t, "a@b.com", remote.Calls()[0].Get("email"))
	})

	t.Run("malformed JSON body is a validation failure", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"ok":true}`)
		server := newTestServer(remote)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"team_name":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, `{"error":["no_team_name","no_email","no_token"]}`, w.Body.String())
	})

	t.Run("remote HTTP failure answers bad gateway", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusBadRequest, `{}`)
		server := newTestServer(remote)

		w := postForm(server, "team_name=acme&email=a@b.com&token=xyz")

		gt.Equal(t, http.StatusBadGateway, w.Code)
		gt.S(t, w.Body.String()).Contains(`"error":"api_error"`)
	})

	t.Run("remote rejection answers bad gateway with code", func(t *testing.T) {
		remote := newRemoteAPI(t, http.StatusOK, `{"error":"already_invited"}`)
		server := newTestServer(remote)

		w := postForm(server, "team_name=acme&email=a@b.com&token=xyz")

		gt.Equal(t, http.StatusBadGateway, w.Code)
		gt.S(t, w.Body.String()).Contains(`"error":"already_invited"`)
	})

	t.Run("only POST is served at root", func(t *testing.T) {
		server := newTestServer(newRemoteAPI(t, http.StatusOK, `{"ok":true}`))

		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		gt.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestServerMetrics(t *testing.T) {
	server := newTestServer(newRemoteAPI(t, http.StatusOK, `{"ok":true}`))

	_ = postForm(server, "team_name=acme&email=a@b.com&token=xyz")
	_ = postForm(server, "email=a@b.com")

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	gt.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	gt.S(t, body).Contains(`slack_inviter_relay_total{outcome="invited"} 1`)
	gt.S(t, body).Contains(`slack_inviter_relay_total{outcome="invalid"} 1`)
	gt.S(t, body).Contains(`slack_inviter_http_requests_total{method="POST",path="/",status="200"} 2`)
}

func TestServerWithMockedUseCase(t *testing.T) {
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(os.Stdout, nil)))

	t.Run("JSON scalars reach the use case as strings", func(t *testing.T) {
		uc := &mocks.InvitationMock{
			RelayFunc: func(ctx context.Context, fields model.Fields) (*model.RelayResponse, error) {
				return model.NewResultResponse(map[string]any{"ok": true}), nil
			},
		}
		server := controller.NewServer(ctx, ":0", uc, nil)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"team_name":"acme","email":["a@b.com"],"resend":true,"count":3}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		calls := uc.RelayCalls()
		gt.Equal(t, 1, len(calls))
		gt.Equal(t, model.Fields{"team_name": "acme", "email": "a@b.com", "resend": "true", "count": "3"}, calls[0].Fields)
	})

	t.Run("unclassified fault answers api_error", func(t *testing.T) {
		uc := &mocks.InvitationMock{
			RelayFunc: func(ctx context.Context, fields model.Fields) (*model.RelayResponse, error) {
				return nil, goerr.New("connection reset")
			},
		}
		server := controller.NewServer(ctx, ":0", uc, nil)

		w := postForm(server, "team_name=acme&email=a@b.com&token=xyz")
		gt.Equal(t, http.StatusBadGateway, w.Code)
		gt.Equal(t, "application/json", w.Header().Get("Content-Type"))
		gt.S(t, w.Body.String()).Contains(`"error":"api_error"`)
	})

	t.Run("metrics route is absent without metrics", func(t *testing.T) {
		server := controller.NewServer(ctx, ":0", &mocks.InvitationMock{}, nil)

		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		gt.Equal(t, http.StatusNotFound, w.Code)
	})
}
