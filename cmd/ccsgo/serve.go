package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rgehrsitz/ccsgo/internal/api"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/pkg/metrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scenario API over HTTP",
		Long: `Serve the scenario generator and analyzer as a JSON API, with /health and
Prometheus /metrics. An optional .env file is loaded before settings are read.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
				return fmt.Errorf("%w: %w", config.ErrLoadConfig, err)
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			addr := a.settings.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			recorder := metrics.NewRecorder(metrics.WithRuntimeCollectors())
			gen := scenario.NewGenerator(engine,
				scenario.WithObserver(recorder),
				scenario.WithLogger(a.log.Named("generator")),
			)
			gin.SetMode(gin.ReleaseMode)
			srv := api.NewServer(api.Config{
				Generator:      gen,
				Parser:         config.NewInputParserWithSchedule(engine.Schedule),
				Recorder:       recorder,
				Logger:         a.log.Named("api"),
				AllowedOrigins: a.settings.AllowedOrigins(),
				Version:        version,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return listen(ctx, a, addr, srv.Router())
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address (default from settings)")
	cmd.Flags().String("env-file", ".env", "dotenv file loaded before settings")
	addRatesFlag(cmd)
	return cmd
}

// listen serves until ctx is cancelled, then drains in-flight requests
func listen(ctx context.Context, a *app, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
