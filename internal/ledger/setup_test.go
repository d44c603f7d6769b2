package ledger

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mmynk/circlecare/internal/principal"
	"github.com/mmynk/circlecare/internal/storage"
	badgerstore "github.com/mmynk/circlecare/internal/storage/badger"
	"github.com/mmynk/circlecare/internal/storage/sqlite"
)

// testAddr returns a valid testnet principal derived from n.
func testAddr(t testing.TB, n byte) string {
	t.Helper()
	a, err := principal.FromHash160(principal.TestnetSingleSig, bytes.Repeat([]byte{n}, 20))
	if err != nil {
		t.Fatalf("failed to build principal: %v", err)
	}
	return a
}

type transferCall struct {
	From, To string
	Amount   uint64
}

// recordingTransfer remembers every transfer and fails when fail is set.
type recordingTransfer struct {
	mu    sync.Mutex
	calls []transferCall
	fail  error
}

func (r *recordingTransfer) Transfer(_ context.Context, from, to string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.calls = append(r.calls, transferCall{From: from, To: to, Amount: amount})
	return nil
}

// recordingSink collects emitted events.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Emit(_ context.Context, e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Name
	}
	return out
}

type fixture struct {
	ledger   *Ledger
	clock    *ManualClock
	transfer *recordingTransfer
	events   *recordingSink

	owner, alice, bob, carol, dave string
}

var backends = []struct {
	name string
	open func(t *testing.T) storage.Store
}{
	{"sqlite", func(t *testing.T) storage.Store {
		store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	}},
	{"badger", func(t *testing.T) storage.Store {
		store, err := badgerstore.Open(badgerstore.InMemoryConfig())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	}},
}

// forEachBackend runs fn against a fresh ledger on every store backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, f *fixture), opts ...func(*Config)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, newFixture(t, b.open(t), opts...))
		})
	}
}

func newFixture(t *testing.T, store storage.Store, opts ...func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		clock:    NewManualClock(1000),
		transfer: &recordingTransfer{},
		events:   &recordingSink{},
		owner:    testAddr(t, 1),
		alice:    testAddr(t, 2),
		bob:      testAddr(t, 3),
		carol:    testAddr(t, 4),
		dave:     testAddr(t, 5),
	}
	cfg := Config{
		Store:      store,
		Owner:      f.owner,
		Clock:      f.clock,
		Transferer: f.transfer,
		Events:     f.events,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	f.ledger = l
	return f
}

// circle creates a circle owned by alice with the given extra members.
func (f *fixture) circle(t *testing.T, members ...string) uint64 {
	t.Helper()
	ctx := context.Background()
	id, err := f.ledger.CreateCircle(ctx, f.alice, "Roommates", "Alice")
	if err != nil {
		t.Fatalf("CreateCircle failed: %v", err)
	}
	for _, m := range members {
		if err := f.ledger.AddMember(ctx, f.alice, id, m, "member"); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", m, err)
		}
	}
	return id
}

func (f *fixture) balance(t *testing.T, circleID uint64, debtor, creditor string) uint64 {
	t.Helper()
	b, err := f.ledger.GetBalance(context.Background(), circleID, debtor, creditor)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	return b
}

func expectCode(t *testing.T, err error, want *Error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error code %d, got %v", want.Code, err)
	}
}

func ptr(v uint64) *uint64 { return &v }
