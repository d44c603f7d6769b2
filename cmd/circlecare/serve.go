package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/middleware"
	"github.com/mmynk/circlecare/internal/server"
	"github.com/mmynk/circlecare/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger RPC server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	shutdownTracing, err := telemetry.Setup(telemetry.Config{
		Tracing:     cfg.Telemetry.Tracing,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	store, err := server.OpenStore(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	l, err := server.NewLedger(cfg.Ledger, store, logger)
	if err != nil {
		return err
	}
	slog.Info("Ledger ready", "owner", l.Owner(), "block_height", l.BlockHeight())

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	}

	handler := server.NewHandler(server.Options{
		Ledger:        l,
		JWTManager:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration),
		Authenticator: auth.NewKeyAuthenticator(cfg.Auth.APIKeys),
		Logger:        logger,
		RateLimiter:   limiter,
		CORSOrigin:    cfg.Server.CORSOrigin,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.Server.Addr, handler, cfg.Server.ShutdownTimeout)
}
