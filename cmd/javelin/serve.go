package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aretw0/javelin/internal/presentation/tui"
	adapter "github.com/aretw0/javelin/pkg/adapters/http"
	"github.com/aretw0/javelin/pkg/teardown"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a development envelope server",
	Long: `Serves the routes of a fixtures file (YAML or JSON) as async endpoints that
answer with "for (;;);" envelopes. /healthz is always available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var fixtures []adapter.Fixture
		if cfg.Server.Fixtures != "" {
			loaded, err := adapter.LoadFixtures(cfg.Server.Fixtures)
			if err != nil {
				return err
			}
			fixtures = loaded
		}

		opts := []adapter.Option{adapter.WithLogger(logger)}
		if cfg.Server.Metrics {
			opts = append(opts, adapter.WithMetricsHandler(promhttp.Handler()))
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: adapter.NewHandler(fixtures, opts...),
		}

		sig := teardown.NewSignal(cmd.Context())
		defer sig.Stop()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			tui.PrintBanner(cmd.ErrOrStderr(), tui.NewStyles(os.Stderr), srv.Addr)
			logger.Info("serving fixtures", "routes", len(fixtures), "metrics", cfg.Server.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sig.Context().Done():
			logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringP("fixtures", "f", "", "Routes file (YAML or JSON)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics")

	bindFlag("server.port", serveCmd, "port")
	bindFlag("server.fixtures", serveCmd, "fixtures")
	bindFlag("server.metrics", serveCmd, "metrics")
}
