package ledger

import (
	"context"
	"fmt"
	"log/slog"
)

// Transferer moves value between principals. It is called inside the ledger
// transaction once the operation has fully validated; a returned error aborts
// the operation.
type Transferer interface {
	Transfer(ctx context.Context, from, to string, amount uint64) error
}

// Restricted rejects any transfer above Ceiling before delegating to Next.
type Restricted struct {
	Next    Transferer
	Ceiling uint64
}

func (r Restricted) Transfer(ctx context.Context, from, to string, amount uint64) error {
	if amount > r.Ceiling {
		return ErrInvalidInput.withf("transfer of %d exceeds authorized %d", amount, r.Ceiling)
	}
	return r.Next.Transfer(ctx, from, to, amount)
}

// RecordOnly accepts every transfer and logs it. The settlement records are
// the durable trace.
type RecordOnly struct {
	Logger *slog.Logger
}

func (r RecordOnly) Transfer(ctx context.Context, from, to string, amount uint64) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Value transfer",
		"from", from,
		"to", to,
		"amount", amount,
	)
	return nil
}

// TreasuryAccount is the recipient of contributions to a circle treasury.
func TreasuryAccount(circleID uint64) string {
	return fmt.Sprintf("circle-treasury/%d", circleID)
}
