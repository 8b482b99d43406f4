package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server.

Endpoints:
  /health                      - liveness check
  /metrics                     - Prometheus metrics
  /.well-known/agent.json      - A2A agent card
  /a2a/landing                 - A2A JSON-RPC endpoint
  /api/...                     - REST API (images, landing, ai, intake, designs)

Examples:
  landing-agent serve
  landing-agent serve --port 3000
  landing-agent serve --config config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		a, err := build(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.close()

		srv := &http.Server{
			Addr:              cfg.Server.Address(),
			Handler:           a.router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("landing assistant agent starting",
				"addr", srv.Addr,
				"agent_card", cfg.Server.PublicURL+"/.well-known/agent.json",
				"history", cfg.Storage.History,
				"sessions", cfg.Storage.Sessions,
			)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides config)")
}
