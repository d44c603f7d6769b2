package models

// Circle represents a group of members sharing expenses.
type Circle struct {
	// ID is the sequential circle identifier, starting at 1.
	ID uint64 `json:"id"`

	// Name is the display name (1-50 characters).
	Name string `json:"name"`

	// Creator is the principal who created the circle. Immutable.
	Creator string `json:"creator"`

	// CreatedAt is the block height at creation.
	CreatedAt uint64 `json:"created_at"`

	// Active is false once the circle has been deactivated. Deactivation is terminal.
	Active bool `json:"active"`

	// Paused blocks expense and settlement mutations while set.
	Paused bool `json:"paused"`

	// MemberCount is the current number of members, creator included.
	MemberCount uint32 `json:"member_count"`

	// Running totals backing CircleStats.
	ExpenseCount    uint64 `json:"expense_count"`
	TotalExpenses   uint64 `json:"total_expenses"`
	SettlementCount uint64 `json:"settlement_count"`
	TotalSettled    uint64 `json:"total_settled"`
	TreasuryBalance uint64 `json:"treasury_balance"`
}

// Member represents a principal's membership in a circle.
type Member struct {
	CircleID uint64 `json:"circle_id"`
	Address  string `json:"address"`

	// Nickname is the member's display name within the circle (1-20 characters).
	Nickname string `json:"nickname"`

	// JoinedAt is the block height when the member was admitted.
	JoinedAt uint64 `json:"joined_at"`

	Active bool `json:"active"`
}

// CircleStats is a read-only summary of a circle.
type CircleStats struct {
	CircleID        uint64
	MemberCount     uint32
	ExpenseCount    uint64
	TotalExpenses   uint64
	SettlementCount uint64
	TotalSettled    uint64
	TreasuryBalance uint64
	Active          bool
	Paused          bool
}

// Stats projects the circle's running totals.
func (c *Circle) Stats() CircleStats {
	return CircleStats{
		CircleID:        c.ID,
		MemberCount:     c.MemberCount,
		ExpenseCount:    c.ExpenseCount,
		TotalExpenses:   c.TotalExpenses,
		SettlementCount: c.SettlementCount,
		TotalSettled:    c.TotalSettled,
		TreasuryBalance: c.TreasuryBalance,
		Active:          c.Active,
		Paused:          c.Paused,
	}
}
