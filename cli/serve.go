package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"weatherdash/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(load func() (*Runtime, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = rt.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tick := rt.Config.Server.ParticleTick
			if tick <= 0 {
				tick = 50 * time.Millisecond
			}
			go rt.Dashboard.Field().Run(ctx, tick)

			// Initial load, as on first page view.
			go func() {
				if _, err := rt.Dashboard.LoadDefault(ctx, rt.Locator); err != nil {
					rt.Logger.Info("initial load failed", "error", err.Error())
				}
			}()

			server := web.NewServer(rt.Dashboard, rt.Locator, otel.Tracer("weatherdash/web"), rt.Logger, rt.Config.Server.RequestTimeout)
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.CreateServer(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				rt.Logger.Info("listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			rt.Logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")

	return cmd
}
