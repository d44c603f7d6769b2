package service

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/internal/middleware"
	"github.com/mmynk/circlecare/internal/principal"
	"github.com/mmynk/circlecare/internal/storage/sqlite"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

const aliceKey = "alice-api-key-0123456789"

// testAddr returns a valid testnet principal derived from n.
func testAddr(t *testing.T, n byte) string {
	t.Helper()
	a, err := principal.FromHash160(principal.TestnetSingleSig, bytes.Repeat([]byte{n}, 20))
	if err != nil {
		t.Fatalf("failed to build principal: %v", err)
	}
	return a
}

// clients holds one set of service clients acting as a single principal.
type clients struct {
	circles     apiconnect.CircleServiceClient
	expenses    apiconnect.ExpenseServiceClient
	settlements apiconnect.SettlementServiceClient
	auth        apiconnect.AuthServiceClient
}

type testServer struct {
	url        string
	jwtManager *auth.JWTManager
	clock      *ledger.ManualClock

	owner, alice, bob, carol, mallory string
}

// setupTestServer creates a test server with every service mounted behind the
// auth interceptors, backed by a temp SQLite ledger.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := &testServer{
		jwtManager: auth.NewJWTManager("test-secret-key-0123456789", time.Hour),
		clock:      ledger.NewManualClock(1000),
		owner:      testAddr(t, 1),
		alice:      testAddr(t, 2),
		bob:        testAddr(t, 3),
		carol:      testAddr(t, 4),
		mallory:    testAddr(t, 9),
	}

	l, err := ledger.New(ledger.Config{
		Store: store,
		Owner: ts.owner,
		Clock: ts.clock,
	})
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}

	hash, err := auth.HashKey(aliceKey)
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}
	authenticator := auth.NewKeyAuthenticator(map[string]string{ts.alice: hash})

	protected := connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.RequireAuth(ts.jwtManager))
	public := connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.OptionalAuth(ts.jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewCircleServiceHandler(NewCircleService(l), protected))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(l), protected))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(l), protected))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, ts.jwtManager, ts.owner, slog.Default()), public))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	ts.url = server.URL
	return ts
}

// as returns clients authenticated as principal.
func (ts *testServer) as(t *testing.T, principal string) clients {
	t.Helper()
	token, err := ts.jwtManager.Generate(principal)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return ts.clients(connect.WithInterceptors(middleware.BearerToken(token)))
}

func (ts *testServer) clients(opts ...connect.ClientOption) clients {
	return clients{
		circles:     apiconnect.NewCircleServiceClient(http.DefaultClient, ts.url, opts...),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, ts.url, opts...),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, ts.url, opts...),
		auth:        apiconnect.NewAuthServiceClient(http.DefaultClient, ts.url, opts...),
	}
}

// expectLedgerError checks both the Connect code and the ledger code header.
func expectLedgerError(t *testing.T, err error, code connect.Code, ledgerCode uint32) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v (u%d), got nil", code, ledgerCode)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("expected connect code %v, got %v (%v)", code, got, err)
	}
	if got := LedgerCode(err); got != ledgerCode {
		t.Errorf("expected ledger code %d, got %d", ledgerCode, got)
	}
}

func ptr[T any](v T) *T { return &v }

func TestToConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code connect.Code
	}{
		{"validation", ledger.ErrInvalidName, connect.CodeInvalidArgument},
		{"economic", ledger.ErrNoDebt, connect.CodeInvalidArgument},
		{"authorization", ledger.ErrOwnerOnly, connect.CodePermissionDenied},
		{"not found", ledger.ErrCircleNotFound, connect.CodeNotFound},
		{"conflict", ledger.ErrMemberExists, connect.CodeAlreadyExists},
		{"capacity", ledger.ErrLimitExceeded, connect.CodeResourceExhausted},
		{"temporal", ledger.ErrExpired, connect.CodeFailedPrecondition},
		{"internal", context.DeadlineExceeded, connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toConnectError(tt.err)
			if got := connect.CodeOf(err); got != tt.code {
				t.Errorf("expected %v, got %v", tt.code, got)
			}
			if got, want := LedgerCode(err), ledger.CodeOf(tt.err); got != want {
				t.Errorf("expected ledger code %d, got %d", want, got)
			}
		})
	}
}
