// Package ledger implements the CircleCare debt ledger: circle membership,
// expense recording with pairwise balances, and settlements.
//
// Every mutation runs as a single store transaction under one process-wide
// writer lock, so a failed operation (bulk variants included) leaves no
// partial writes. Reads run against the last committed state without the lock.
// Events are emitted only after commit.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/circlecare/internal/principal"
	"github.com/mmynk/circlecare/internal/storage"
)

const (
	DefaultMaxMembers        = 50
	DefaultMaxParticipants   = 20
	DefaultMaxBatch          = 20
	DefaultExpiryBlocks      = 144000
	DefaultMaxCirclesPerUser = 10
	MaxCirclesPerUserCeiling = 100

	maxNameLen        = 50
	maxNicknameLen    = 20
	maxDescriptionLen = 100
)

var tracer = otel.Tracer("github.com/mmynk/circlecare/internal/ledger")

// Config configures a Ledger. Only Store and Owner are required.
type Config struct {
	Store storage.Store

	// Owner is the principal allowed to change ledger settings. It also
	// receives circle creation fees.
	Owner string

	Clock      Clock
	Transferer Transferer
	Events     EventSink
	Logger     *slog.Logger

	// ValidatePrincipal checks member addresses. Defaults to principal.Validate.
	ValidatePrincipal func(string) error

	MaxMembers      uint32
	MaxParticipants int
	MaxBatch        int
	DefaultExpiry   uint64
}

// Ledger is the debt ledger. It is safe for concurrent use.
type Ledger struct {
	store             storage.Store
	owner             string
	clock             Clock
	transfer          Transferer
	events            EventSink
	logger            *slog.Logger
	validatePrincipal func(string) error

	maxMembers      uint32
	maxParticipants int
	maxBatch        int
	defaultExpiry   uint64

	// mu serializes all writers.
	mu sync.Mutex
}

// New creates a Ledger, filling unset configuration with defaults.
func New(cfg Config) (*Ledger, error) {
	if cfg.Store == nil {
		return nil, errors.New("ledger: store is required")
	}
	if cfg.ValidatePrincipal == nil {
		cfg.ValidatePrincipal = principal.Validate
	}
	if err := cfg.ValidatePrincipal(cfg.Owner); err != nil {
		return nil, fmt.Errorf("ledger: invalid owner %q: %w", cfg.Owner, err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = ChainClock{Genesis: time.Now()}
	}
	if cfg.Transferer == nil {
		cfg.Transferer = RecordOnly{Logger: cfg.Logger}
	}
	if cfg.Events == nil {
		cfg.Events = LogSink{Logger: cfg.Logger}
	}
	if cfg.MaxMembers == 0 {
		cfg.MaxMembers = DefaultMaxMembers
	}
	if cfg.MaxParticipants <= 0 {
		cfg.MaxParticipants = DefaultMaxParticipants
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if cfg.DefaultExpiry == 0 {
		cfg.DefaultExpiry = DefaultExpiryBlocks
	}

	return &Ledger{
		store:             cfg.Store,
		owner:             cfg.Owner,
		clock:             cfg.Clock,
		transfer:          cfg.Transferer,
		events:            cfg.Events,
		logger:            cfg.Logger,
		validatePrincipal: cfg.ValidatePrincipal,
		maxMembers:        cfg.MaxMembers,
		maxParticipants:   cfg.MaxParticipants,
		maxBatch:          cfg.MaxBatch,
		defaultExpiry:     cfg.DefaultExpiry,
	}, nil
}

// Owner returns the ledger owner principal.
func (l *Ledger) Owner() string { return l.owner }

// BlockHeight returns the current height of the ledger clock.
func (l *Ledger) BlockHeight() uint64 { return l.clock.BlockHeight() }

// op carries the state of one mutating operation.
type op struct {
	storage.Tx
	ctx    context.Context
	caller string
	now    uint64
	events []Event

	transfers []pendingTransfer
}

// pendingTransfer is a value transfer that runs only once the whole
// operation has validated.
type pendingTransfer struct {
	from, to        string
	amount, ceiling uint64
}

// queueTransfer records a transfer of amount bounded by ceiling. The ceiling
// is checked immediately; the transfer itself runs after fn succeeds.
func (o *op) queueTransfer(from, to string, amount, ceiling uint64) error {
	if amount > ceiling {
		return ErrInvalidInput.withf("transfer of %d exceeds authorized %d", amount, ceiling)
	}
	o.transfers = append(o.transfers, pendingTransfer{from: from, to: to, amount: amount, ceiling: ceiling})
	return nil
}

func (o *op) emit(name string, circleID uint64, attrs ...slog.Attr) {
	o.events = append(o.events, Event{Name: name, CircleID: circleID, Caller: o.caller, Attrs: attrs})
}

// update runs fn as one serialized store transaction. Queued transfers run
// after fn succeeds and before commit, so a failed operation moves no value.
// Events are emitted after commit.
func (l *Ledger) update(ctx context.Context, name, caller string, fn func(o *op) error) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "Ledger."+name,
		trace.WithAttributes(attribute.String("ledger.caller", caller)),
	)
	defer span.End()

	var committed []Event
	err := l.validatePrincipal(caller)
	if err != nil {
		err = ErrInvalidPrincipal.withf("caller %q", caller)
	} else {
		l.mu.Lock()
		err = l.store.Update(ctx, func(tx storage.Tx) error {
			o := &op{Tx: tx, ctx: ctx, caller: caller, now: l.clock.BlockHeight()}
			if err := fn(o); err != nil {
				return err
			}
			for _, t := range o.transfers {
				r := Restricted{Next: l.transfer, Ceiling: t.ceiling}
				if err := r.Transfer(ctx, t.from, t.to, t.amount); err != nil {
					return err
				}
			}
			committed = o.events
			return nil
		})
		l.mu.Unlock()
	}

	recordOp(name, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")

	for _, e := range committed {
		l.events.Emit(ctx, e)
	}
	return nil
}

// view runs fn against the last committed state.
func (l *Ledger) view(ctx context.Context, name string, fn func(tx storage.Tx) error) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "Ledger."+name)
	defer span.End()

	err := l.store.View(ctx, fn)
	recordOp(name, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// notFound translates storage.ErrNotFound into the given ledger error.
func notFound(err error, sentinel *Error, format string, args ...any) error {
	if errors.Is(err, storage.ErrNotFound) {
		return sentinel.withf(format, args...)
	}
	return err
}
