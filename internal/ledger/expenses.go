package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mmynk/circlecare/internal/calculator"
	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// NewExpense is one entry of a bulk expense creation.
type NewExpense struct {
	Description  string
	Amount       uint64
	Participants []string

	// ExpiresAt is an explicit expiry height. Zero applies the default expiry.
	ExpiresAt uint64
}

// recordExpense validates and stores one expense paid by the caller, then
// credits the payer with every other participant's share.
func (l *Ledger) recordExpense(o *op, c *models.Circle, in NewExpense) (uint64, error) {
	if !validLength(in.Description, maxDescriptionLen) {
		return 0, ErrInvalidInput.withf("description must be 1-%d characters", maxDescriptionLen)
	}
	if in.Amount == 0 {
		return 0, ErrInvalidInput.withf("amount must be positive")
	}
	if in.Amount > math.MaxInt64 {
		return 0, ErrInvalidInput.withf("amount %d too large", in.Amount)
	}
	if len(in.Participants) == 0 || len(in.Participants) > l.maxParticipants {
		return 0, ErrInvalidInput.withf("expense must have 1-%d participants", l.maxParticipants)
	}

	expiresAt := o.now + l.defaultExpiry
	if in.ExpiresAt != 0 {
		if in.ExpiresAt <= o.now {
			return 0, ErrInvalidInput.withf("expiry %d is not after current height %d", in.ExpiresAt, o.now)
		}
		expiresAt = in.ExpiresAt
	}
	if expiresAt > math.MaxInt64 {
		return 0, ErrInvalidInput.withf("expiry %d too large", expiresAt)
	}
	// Every pairwise debt comes from an expense, so keeping the circle total
	// within int64 also bounds each member's net position.
	if c.TotalExpenses > math.MaxInt64-in.Amount {
		return 0, ErrInvalidInput.withf("circle %d expense total would overflow", c.ID)
	}

	shares, err := calculator.EqualSplit(in.Amount, in.Participants, o.caller)
	if errors.Is(err, calculator.ErrDuplicateMember) {
		return 0, ErrInvalidInput.withf("%v", err)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to split expense: %w", err)
	}
	for _, p := range in.Participants {
		ok, err := isMember(o, c.ID, p)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrInvalidParticipant.withf("%s is not a member of circle %d", p, c.ID)
		}
	}

	for _, d := range calculator.OwedToPayer(shares, in.Participants, o.caller) {
		if err := credit(o, c.ID, d.Debtor, d.Creditor, d.Amount); err != nil {
			return 0, err
		}
	}

	id, err := o.NextID(storage.SeqExpense)
	if err != nil {
		return 0, err
	}
	e := &models.Expense{
		ID:           id,
		CircleID:     c.ID,
		Description:  in.Description,
		Amount:       in.Amount,
		Payer:        o.caller,
		Participants: append([]string(nil), in.Participants...),
		CreatedAt:    o.now,
		ExpiresAt:    expiresAt,
	}
	if err := o.PutExpense(e); err != nil {
		return 0, err
	}

	c.ExpenseCount++
	c.TotalExpenses += in.Amount

	o.emit(EventExpenseCreated, c.ID,
		slog.Uint64("expense_id", id),
		slog.Uint64("amount", in.Amount),
		slog.Int("participants", len(in.Participants)),
	)
	return id, nil
}

// expenseGate loads an open circle the caller belongs to.
func expenseGate(o *op, circleID uint64) (*models.Circle, error) {
	c, err := loadCircle(o, circleID)
	if err != nil {
		return nil, err
	}
	if err := requireOpen(c); err != nil {
		return nil, err
	}
	ok, err := isMember(o, circleID, o.caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized.withf("%s is not a member of circle %d", o.caller, circleID)
	}
	return c, nil
}

// CreateExpense records an expense paid by the caller and split equally
// among participants. It expires after the default expiry.
func (l *Ledger) CreateExpense(ctx context.Context, caller string, circleID uint64, description string, amount uint64, participants []string) (uint64, error) {
	return l.CreateExpenseWithExpiry(ctx, caller, circleID, description, amount, participants, 0)
}

// CreateExpenseWithExpiry is CreateExpense with an explicit expiry height.
// Zero applies the default expiry.
func (l *Ledger) CreateExpenseWithExpiry(ctx context.Context, caller string, circleID uint64, description string, amount uint64, participants []string, expiresAt uint64) (uint64, error) {
	var id uint64
	err := l.update(ctx, "CreateExpense", caller, func(o *op) error {
		c, err := expenseGate(o, circleID)
		if err != nil {
			return err
		}
		id, err = l.recordExpense(o, c, NewExpense{
			Description:  description,
			Amount:       amount,
			Participants: participants,
			ExpiresAt:    expiresAt,
		})
		if err != nil {
			return err
		}
		return o.PutCircle(c)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddMultipleExpenses records every expense or none of them and returns the
// new ids in input order.
func (l *Ledger) AddMultipleExpenses(ctx context.Context, caller string, circleID uint64, expenses []NewExpense) ([]uint64, error) {
	var ids []uint64
	err := l.update(ctx, "AddMultipleExpenses", caller, func(o *op) error {
		if len(expenses) == 0 || len(expenses) > l.maxBatch {
			return ErrInvalidInput.withf("batch must have 1-%d entries", l.maxBatch)
		}
		c, err := expenseGate(o, circleID)
		if err != nil {
			return err
		}
		ids = make([]uint64, 0, len(expenses))
		for _, in := range expenses {
			id, err := l.recordExpense(o, c, in)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return o.PutCircle(c)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateExpenseDescription lets the payer relabel an unsettled expense.
func (l *Ledger) UpdateExpenseDescription(ctx context.Context, caller string, circleID, expenseID uint64, description string) error {
	return l.update(ctx, "UpdateExpenseDescription", caller, func(o *op) error {
		e, err := o.GetExpense(expenseID)
		if err != nil {
			return notFound(err, ErrExpenseNotFound, "expense %d", expenseID)
		}
		if e.CircleID != circleID {
			return ErrExpenseNotFound.withf("expense %d in circle %d", expenseID, circleID)
		}
		c, err := loadCircle(o, circleID)
		if err != nil {
			return err
		}
		if err := requireOpen(c); err != nil {
			return err
		}
		if e.Payer != caller {
			return ErrUnauthorized.withf("only the payer may edit expense %d", expenseID)
		}
		if e.Settled {
			return ErrAlreadySettled.withf("expense %d", expenseID)
		}
		if !validLength(description, maxDescriptionLen) {
			return ErrInvalidInput.withf("description must be 1-%d characters", maxDescriptionLen)
		}

		e.Description = description
		o.emit(EventExpenseUpdated, circleID, slog.Uint64("expense_id", expenseID))
		return o.PutExpense(e)
	})
}

func loadExpense(tx storage.Tx, id uint64) (*models.Expense, error) {
	e, err := tx.GetExpense(id)
	if err != nil {
		return nil, notFound(err, ErrExpenseNotFound, "expense %d", id)
	}
	return e, nil
}

// GetExpense returns an expense by id.
func (l *Ledger) GetExpense(ctx context.Context, expenseID uint64) (*models.Expense, error) {
	var e *models.Expense
	err := l.view(ctx, "GetExpense", func(tx storage.Tx) error {
		var err error
		e, err = loadExpense(tx, expenseID)
		return err
	})
	return e, err
}

// GetCircleExpenses returns the circle's expense ids in creation order.
func (l *Ledger) GetCircleExpenses(ctx context.Context, circleID uint64) ([]uint64, error) {
	var ids []uint64
	err := l.view(ctx, "GetCircleExpenses", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		var err error
		ids, err = tx.ListCircleExpenses(circleID)
		return err
	})
	return ids, err
}

func (l *Ledger) GetExpenseParticipants(ctx context.Context, expenseID uint64) ([]string, error) {
	e, err := l.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return e.Participants, nil
}

// IsExpenseExpired reports whether the expense has reached its expiry height.
func (l *Ledger) IsExpenseExpired(ctx context.Context, expenseID uint64) (bool, error) {
	e, err := l.GetExpense(ctx, expenseID)
	if err != nil {
		return false, err
	}
	return e.IsExpired(l.clock.BlockHeight()), nil
}

// GetExpenseReceipt renders a one-line receipt for the expense.
func (l *Ledger) GetExpenseReceipt(ctx context.Context, expenseID uint64) (string, error) {
	e, err := l.GetExpense(ctx, expenseID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Expense: %s Amount: %d", e.Description, e.Amount), nil
}
