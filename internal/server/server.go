// Package server assembles the ledger, its RPC services and the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/config"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/internal/middleware"
	"github.com/mmynk/circlecare/internal/service"
	"github.com/mmynk/circlecare/internal/storage"
	badgerstore "github.com/mmynk/circlecare/internal/storage/badger"
	"github.com/mmynk/circlecare/internal/storage/sqlite"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

// OpenStore opens the configured storage backend.
func OpenStore(cfg config.StorageConfig, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendBadger:
		bcfg := badgerstore.DefaultConfig(cfg.Path)
		if cfg.InMemory {
			bcfg = badgerstore.InMemoryConfig()
		}
		bcfg.Logger = logger
		store, err := badgerstore.Open(bcfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewLedger builds the ledger over store from the ledger settings.
func NewLedger(cfg config.LedgerConfig, store storage.Store, logger *slog.Logger) (*ledger.Ledger, error) {
	return ledger.New(ledger.Config{
		Store: store,
		Owner: cfg.Owner,
		Clock: ledger.ChainClock{
			Genesis:  cfg.Genesis,
			Interval: cfg.BlockInterval,
		},
		Logger:          logger,
		MaxMembers:      cfg.MaxMembers,
		MaxParticipants: cfg.MaxParticipants,
		MaxBatch:        cfg.MaxBatch,
		DefaultExpiry:   cfg.DefaultExpiry,
	})
}

// Options are the dependencies of the HTTP handler.
type Options struct {
	Ledger        *ledger.Ledger
	JWTManager    *auth.JWTManager
	Authenticator auth.Authenticator
	Logger        *slog.Logger

	// RateLimiter throttles authenticated calls. Nil disables limiting.
	RateLimiter *middleware.RateLimiter
	CORSOrigin  string
}

// NewHandler mounts every service plus /metrics and /healthz.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	protected := []connect.Interceptor{
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(opts.JWTManager),
	}
	if opts.RateLimiter != nil {
		protected = append(protected, opts.RateLimiter.Interceptor())
	}
	withAuth := connect.WithInterceptors(protected...)
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.OptionalAuth(opts.JWTManager),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewCircleServiceHandler(service.NewCircleService(opts.Ledger), withAuth))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(opts.Ledger), withAuth))
	mux.Handle(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(opts.Ledger), withAuth))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(opts.Authenticator, opts.JWTManager, opts.Ledger.Owner(), opts.Logger),
		public,
	))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok height=%d\n", opts.Ledger.BlockHeight())
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(corsMiddleware(opts.CORSOrigin, mux), &http2.Server{})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	if origin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id, "+service.ErrorCodeHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
