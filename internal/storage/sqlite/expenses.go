package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// GetExpense retrieves an expense by ID, including its participants.
func (t *sqliteTx) GetExpense(id uint64) (*models.Expense, error) {
	e := &models.Expense{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, circle_id, description, amount, payer, created_at, expires_at, settled, settled_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.CircleID, &e.Description, &e.Amount, &e.Payer,
		&e.CreatedAt, &e.ExpiresAt, &e.Settled, &e.SettledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	e.Participants, err = t.queryStrings(
		"SELECT participant FROM expense_participants WHERE expense_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return e, nil
}

// PutExpense inserts a new expense or updates the mutable fields of an existing one.
// Participants are written only on insert.
func (t *sqliteTx) PutExpense(e *models.Expense) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE expenses SET description = ?, settled = ?, settled_at = ? WHERE id = ?`,
		e.Description, e.Settled, e.SettledAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = t.tx.ExecContext(t.ctx,
		`INSERT INTO expenses (id, circle_id, description, amount, payer, created_at, expires_at, settled, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CircleID, e.Description, e.Amount, e.Payer,
		e.CreatedAt, e.ExpiresAt, e.Settled, e.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range e.Participants {
		_, err = t.tx.ExecContext(t.ctx,
			"INSERT INTO expense_participants (expense_id, position, participant) VALUES (?, ?, ?)",
			e.ID, i, p,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// ListCircleExpenses returns expense ids of a circle in creation order.
func (t *sqliteTx) ListCircleExpenses(circleID uint64) ([]uint64, error) {
	ids, err := t.queryIDs(
		"SELECT id FROM expenses WHERE circle_id = ? ORDER BY id",
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return ids, nil
}
