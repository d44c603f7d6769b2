// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/circlecare/internal/models"
)

// ErrNotFound is returned by point lookups when no record exists.
var ErrNotFound = errors.New("storage: not found")

// Sequence names a per-deployment id counter.
type Sequence string

const (
	SeqCircle     Sequence = "circle"
	SeqExpense    Sequence = "expense"
	SeqSettlement Sequence = "settlement"
)

// Setting names an owner-managed ledger parameter.
type Setting string

const (
	SettingCreationFee       Setting = "creation-fee"
	SettingMaxCirclesPerUser Setting = "max-circles-per-user"
)

// Store defines the interface for ledger storage.
// This abstraction allows swapping storage backends (SQLite, BadgerDB)
// without changing the ledger.
type Store interface {
	// Update runs fn in a read-write transaction. If fn returns an error,
	// every write made through tx is discarded.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn in a read-only transaction against the last committed state.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Tx is a transactional view of the ledger. All reads are point lookups or
// reads of explicit index tables. Reads observe writes made earlier in the
// same transaction.
type Tx interface {
	// NextID increments the sequence and returns the new value (first id is 1).
	NextID(seq Sequence) (uint64, error)
	// PeekID returns the id the next NextID call would return.
	PeekID(seq Sequence) (uint64, error)

	GetCircle(id uint64) (*models.Circle, error)
	PutCircle(c *models.Circle) error

	// GetMember returns ErrNotFound if addr is not a member of the circle.
	GetMember(circleID uint64, addr string) (*models.Member, error)
	// PutMember inserts or updates a member. New members are appended to the
	// circle's member index.
	PutMember(m *models.Member) error
	// DeleteMember removes the member and its member index entry.
	DeleteMember(circleID uint64, addr string) error
	// ListMembers returns member addresses in join order.
	ListMembers(circleID uint64) ([]string, error)

	// ListUserCircles returns the circles addr belongs to, in join order.
	ListUserCircles(addr string) ([]uint64, error)
	AddUserCircle(addr string, circleID uint64) error
	RemoveUserCircle(addr string, circleID uint64) error

	GetExpense(id uint64) (*models.Expense, error)
	// PutExpense inserts or updates an expense. New expenses are appended to
	// the circle's expense index.
	PutExpense(e *models.Expense) error
	ListCircleExpenses(circleID uint64) ([]uint64, error)

	// GetBalance returns what debtor owes creditor; zero when absent.
	GetBalance(circleID uint64, debtor, creditor string) (uint64, error)
	// SetBalance stores the pairwise balance. Zero deletes the record.
	SetBalance(circleID uint64, debtor, creditor string, amount uint64) error

	GetSettlement(id uint64) (*models.Settlement, error)
	// AppendSettlement inserts a settlement; settlements are never updated.
	AppendSettlement(s *models.Settlement) error
	ListCircleSettlements(circleID uint64) ([]uint64, error)

	// GetSetting returns the stored value and whether it was set.
	GetSetting(key Setting) (uint64, bool, error)
	PutSetting(key Setting, value uint64) error
}
