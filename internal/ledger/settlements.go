package ledger

import (
	"context"
	"log/slog"
	"math"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// DebtPayment is a payment from the caller to Creditor.
type DebtPayment struct {
	Creditor string

	// Amount is the partial amount to pay. Nil pays the full outstanding balance.
	Amount *uint64
}

// payDebt queues a transfer from the caller to the creditor and reduces the
// caller's pairwise balance by the same amount.
func (l *Ledger) payDebt(o *op, c *models.Circle, p DebtPayment) (uint64, error) {
	if p.Creditor == o.caller {
		return 0, ErrInvalidInput.withf("cannot settle a debt with yourself")
	}
	owed, err := o.GetBalance(c.ID, o.caller, p.Creditor)
	if err != nil {
		return 0, err
	}
	if owed == 0 {
		return 0, ErrNoDebt.withf("%s owes %s nothing in circle %d", o.caller, p.Creditor, c.ID)
	}

	pay := owed
	if p.Amount != nil {
		if *p.Amount == 0 {
			return 0, ErrInvalidInput.withf("amount must be positive")
		}
		if *p.Amount > owed {
			return 0, ErrInvalidInput.withf("amount %d exceeds outstanding balance %d", *p.Amount, owed)
		}
		pay = *p.Amount
	}

	if err := o.queueTransfer(o.caller, p.Creditor, pay, owed); err != nil {
		return 0, err
	}
	if err := o.SetBalance(c.ID, o.caller, p.Creditor, owed-pay); err != nil {
		return 0, err
	}

	id, err := o.NextID(storage.SeqSettlement)
	if err != nil {
		return 0, err
	}
	s := &models.Settlement{
		ID:          id,
		CircleID:    c.ID,
		Debtor:      o.caller,
		Creditor:    p.Creditor,
		Amount:      pay,
		BlockHeight: o.now,
	}
	if err := o.AppendSettlement(s); err != nil {
		return 0, err
	}
	c.SettlementCount++
	c.TotalSettled += pay

	o.emit(EventDebtSettled, c.ID,
		slog.Uint64("settlement_id", id),
		slog.String("creditor", p.Creditor),
		slog.Uint64("amount", pay),
		slog.Uint64("remaining", owed-pay),
	)
	return id, nil
}

// SettleDebtStx pays what the caller owes creditor. A nil amount clears the
// whole balance; an explicit amount must be positive and no more than owed.
func (l *Ledger) SettleDebtStx(ctx context.Context, caller string, circleID uint64, creditor string, amount *uint64) (uint64, error) {
	var id uint64
	err := l.update(ctx, "SettleDebtStx", caller, func(o *op) error {
		c, err := expenseGate(o, circleID)
		if err != nil {
			return err
		}
		id, err = l.payDebt(o, c, DebtPayment{Creditor: creditor, Amount: amount})
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

// SettleMultipleDebts applies every payment or none of them and returns the
// settlement ids in input order.
func (l *Ledger) SettleMultipleDebts(ctx context.Context, caller string, circleID uint64, payments []DebtPayment) ([]uint64, error) {
	var ids []uint64
	err := l.update(ctx, "SettleMultipleDebts", caller, func(o *op) error {
		if len(payments) == 0 || len(payments) > l.maxBatch {
			return ErrInvalidInput.withf("batch must have 1-%d entries", l.maxBatch)
		}
		c, err := expenseGate(o, circleID)
		if err != nil {
			return err
		}
		ids = make([]uint64, 0, len(payments))
		for _, p := range payments {
			id, err := l.payDebt(o, c, p)
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

// SettleExpense closes an expense. Pairwise balances are not touched.
// Expired expenses cannot be settled by anyone.
func (l *Ledger) SettleExpense(ctx context.Context, caller string, expenseID uint64) error {
	return l.update(ctx, "SettleExpense", caller, func(o *op) error {
		e, err := loadExpense(o, expenseID)
		if err != nil {
			return err
		}
		c, err := loadCircle(o, e.CircleID)
		if err != nil {
			return err
		}
		if err := requireOpen(c); err != nil {
			return err
		}
		if e.Settled {
			return ErrAlreadySettled.withf("expense %d at height %d", e.ID, e.SettledAt)
		}
		if e.IsExpired(o.now) {
			return ErrExpired.withf("expense %d expired at height %d", e.ID, e.ExpiresAt)
		}
		if caller != e.Payer && !e.HasParticipant(caller) {
			return ErrUnauthorized.withf("%s is not part of expense %d", caller, e.ID)
		}

		e.Settled = true
		e.SettledAt = o.now
		o.emit(EventExpenseSettled, e.CircleID, slog.Uint64("expense_id", e.ID))
		return o.PutExpense(e)
	})
}

// ContributeToTreasury moves amount from the caller into the circle treasury.
func (l *Ledger) ContributeToTreasury(ctx context.Context, caller string, circleID, amount uint64) error {
	return l.update(ctx, "ContributeToTreasury", caller, func(o *op) error {
		c, err := expenseGate(o, circleID)
		if err != nil {
			return err
		}
		if amount == 0 {
			return ErrInvalidInput.withf("amount must be positive")
		}
		if amount > math.MaxInt64 || c.TreasuryBalance > math.MaxInt64-amount {
			return ErrInvalidInput.withf("amount %d too large", amount)
		}

		if err := o.queueTransfer(caller, TreasuryAccount(circleID), amount, amount); err != nil {
			return err
		}
		c.TreasuryBalance += amount
		o.emit(EventTreasuryContribution, circleID,
			slog.Uint64("amount", amount),
			slog.Uint64("treasury_balance", c.TreasuryBalance),
		)
		return o.PutCircle(c)
	})
}

// GetSettlement returns a settlement by id.
func (l *Ledger) GetSettlement(ctx context.Context, settlementID uint64) (*models.Settlement, error) {
	var s *models.Settlement
	err := l.view(ctx, "GetSettlement", func(tx storage.Tx) error {
		var err error
		s, err = tx.GetSettlement(settlementID)
		return notFound(err, ErrSettlementNotFound, "settlement %d", settlementID)
	})
	return s, err
}

// GetCircleSettlements returns the circle's settlement ids in order.
func (l *Ledger) GetCircleSettlements(ctx context.Context, circleID uint64) ([]uint64, error) {
	var ids []uint64
	err := l.view(ctx, "GetCircleSettlements", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		var err error
		ids, err = tx.ListCircleSettlements(circleID)
		return err
	})
	return ids, err
}
