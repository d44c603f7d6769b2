package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// GetCircle retrieves a circle by ID.
func (t *sqliteTx) GetCircle(id uint64) (*models.Circle, error) {
	c := &models.Circle{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, name, creator, created_at, active, paused, member_count,
		        expense_count, total_expenses, settlement_count, total_settled, treasury_balance
		 FROM circles WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Name, &c.Creator, &c.CreatedAt, &c.Active, &c.Paused, &c.MemberCount,
		&c.ExpenseCount, &c.TotalExpenses, &c.SettlementCount, &c.TotalSettled, &c.TreasuryBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("circle %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	return c, nil
}

// PutCircle inserts or updates a circle.
func (t *sqliteTx) PutCircle(c *models.Circle) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO circles (id, name, creator, created_at, active, paused, member_count,
		                      expense_count, total_expenses, settlement_count, total_settled, treasury_balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     name = excluded.name,
		     active = excluded.active,
		     paused = excluded.paused,
		     member_count = excluded.member_count,
		     expense_count = excluded.expense_count,
		     total_expenses = excluded.total_expenses,
		     settlement_count = excluded.settlement_count,
		     total_settled = excluded.total_settled,
		     treasury_balance = excluded.treasury_balance`,
		c.ID, c.Name, c.Creator, c.CreatedAt, c.Active, c.Paused, c.MemberCount,
		c.ExpenseCount, c.TotalExpenses, c.SettlementCount, c.TotalSettled, c.TreasuryBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to put circle: %w", err)
	}
	return nil
}

// GetMember retrieves a circle member.
func (t *sqliteTx) GetMember(circleID uint64, addr string) (*models.Member, error) {
	m := &models.Member{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT circle_id, address, nickname, joined_at, active
		 FROM members WHERE circle_id = ? AND address = ?`,
		circleID, addr,
	).Scan(&m.CircleID, &m.Address, &m.Nickname, &m.JoinedAt, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s of circle %d: %w", addr, circleID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// PutMember inserts or updates a member. Join order follows insertion order.
func (t *sqliteTx) PutMember(m *models.Member) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO members (circle_id, address, nickname, joined_at, active)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(circle_id, address) DO UPDATE SET
		     nickname = excluded.nickname,
		     active = excluded.active`,
		m.CircleID, m.Address, m.Nickname, m.JoinedAt, m.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to put member: %w", err)
	}
	return nil
}

// DeleteMember removes a member from a circle.
func (t *sqliteTx) DeleteMember(circleID uint64, addr string) error {
	res, err := t.tx.ExecContext(t.ctx,
		"DELETE FROM members WHERE circle_id = ? AND address = ?",
		circleID, addr,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s of circle %d: %w", addr, circleID, storage.ErrNotFound)
	}
	return nil
}

// ListMembers returns member addresses in join order.
func (t *sqliteTx) ListMembers(circleID uint64) ([]string, error) {
	members, err := t.queryStrings(
		"SELECT address FROM members WHERE circle_id = ? ORDER BY rowid",
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListUserCircles returns the circles a principal belongs to.
func (t *sqliteTx) ListUserCircles(addr string) ([]uint64, error) {
	ids, err := t.queryIDs(
		"SELECT circle_id FROM user_circles WHERE address = ? ORDER BY rowid",
		addr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user circles: %w", err)
	}
	return ids, nil
}

// AddUserCircle records that addr belongs to a circle.
func (t *sqliteTx) AddUserCircle(addr string, circleID uint64) error {
	_, err := t.tx.ExecContext(t.ctx,
		"INSERT OR IGNORE INTO user_circles (address, circle_id) VALUES (?, ?)",
		addr, circleID,
	)
	if err != nil {
		return fmt.Errorf("failed to add user circle: %w", err)
	}
	return nil
}

// RemoveUserCircle removes a circle from addr's index.
func (t *sqliteTx) RemoveUserCircle(addr string, circleID uint64) error {
	_, err := t.tx.ExecContext(t.ctx,
		"DELETE FROM user_circles WHERE address = ? AND circle_id = ?",
		addr, circleID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove user circle: %w", err)
	}
	return nil
}
