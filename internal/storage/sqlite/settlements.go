package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// GetBalance returns what debtor owes creditor within a circle.
func (t *sqliteTx) GetBalance(circleID uint64, debtor, creditor string) (uint64, error) {
	var amount uint64
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT amount FROM balances WHERE circle_id = ? AND debtor = ? AND creditor = ?",
		circleID, debtor, creditor,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return amount, nil
}

// SetBalance stores a pairwise balance, deleting the row when it reaches zero.
func (t *sqliteTx) SetBalance(circleID uint64, debtor, creditor string, amount uint64) error {
	var err error
	if amount == 0 {
		_, err = t.tx.ExecContext(t.ctx,
			"DELETE FROM balances WHERE circle_id = ? AND debtor = ? AND creditor = ?",
			circleID, debtor, creditor,
		)
	} else {
		_, err = t.tx.ExecContext(t.ctx,
			`INSERT INTO balances (circle_id, debtor, creditor, amount) VALUES (?, ?, ?, ?)
			 ON CONFLICT(circle_id, debtor, creditor) DO UPDATE SET amount = excluded.amount`,
			circleID, debtor, creditor, amount,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

// AppendSettlement persists a new settlement.
func (t *sqliteTx) AppendSettlement(s *models.Settlement) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO settlements (id, circle_id, debtor, creditor, amount, block_height)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.CircleID, s.Debtor, s.Creditor, s.Amount, s.BlockHeight,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (t *sqliteTx) GetSettlement(id uint64) (*models.Settlement, error) {
	s := &models.Settlement{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, circle_id, debtor, creditor, amount, block_height
		 FROM settlements WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.CircleID, &s.Debtor, &s.Creditor, &s.Amount, &s.BlockHeight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return s, nil
}

// ListCircleSettlements returns settlement ids of a circle in order.
func (t *sqliteTx) ListCircleSettlements(circleID uint64) ([]uint64, error) {
	ids, err := t.queryIDs(
		"SELECT id FROM settlements WHERE circle_id = ? ORDER BY id",
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return ids, nil
}
