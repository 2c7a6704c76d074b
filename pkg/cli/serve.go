package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/slack-inviter/pkg/cli/config"
	controller "github.com/secmon-lab/slack-inviter/pkg/controller/http"
	"github.com/secmon-lab/slack-inviter/pkg/usecase"
	"github.com/secmon-lab/slack-inviter/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		slackCfg  config.Slack
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: joinFlags(serverCfg.Flags(), slackCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting slack-inviter server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("slack", slackCfg),
			)

			inviter, err := slackCfg.Configure(ctx)
			if err != nil {
				return err
			}

			m := metrics.New()
			opts := append(slackCfg.InvitationOptions(), usecase.WithMetrics(m))
			invitationUC := usecase.NewInvitation(inviter, opts...)

			server := controller.NewServer(ctx, serverCfg.Addr, invitationUC, m)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
