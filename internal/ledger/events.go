package ledger

import (
	"context"
	"log/slog"
)

// Event names emitted after a successful commit.
const (
	EventCircleCreated        = "circle-created"
	EventMemberAdded          = "member-added"
	EventMemberRemoved        = "member-removed"
	EventCirclePaused         = "circle-paused"
	EventCircleUnpaused       = "circle-unpaused"
	EventCircleDeactivated    = "circle-deactivated"
	EventExpenseCreated       = "expense-created"
	EventExpenseUpdated       = "expense-updated"
	EventExpenseSettled       = "expense-settled"
	EventDebtSettled          = "debt-settled"
	EventTreasuryContribution = "treasury-contribution"
	EventSettingChanged       = "setting-changed"
)

// Event describes a committed ledger change.
type Event struct {
	Name     string
	CircleID uint64
	Caller   string
	Attrs    []slog.Attr
}

// EventSink receives events once their transaction has committed.
type EventSink interface {
	Emit(ctx context.Context, e Event)
}

// LogSink writes events to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Emit(ctx context.Context, e Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := append([]slog.Attr{
		slog.String("event", e.Name),
		slog.Uint64("circle_id", e.CircleID),
		slog.String("caller", e.Caller),
	}, e.Attrs...)
	logger.LogAttrs(ctx, slog.LevelInfo, "Ledger event", attrs...)
}
