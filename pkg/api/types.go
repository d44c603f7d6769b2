package api

// Circle is the wire form of a circle.
type Circle struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Creator     string `json:"creator"`
	CreatedAt   uint64 `json:"created_at"`
	Active      bool   `json:"active"`
	Paused      bool   `json:"paused"`
	MemberCount uint32 `json:"member_count"`
}

type Member struct {
	CircleID uint64 `json:"circle_id"`
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
	JoinedAt uint64 `json:"joined_at"`
	Active   bool   `json:"active"`
}

type CircleStats struct {
	CircleID        uint64 `json:"circle_id"`
	MemberCount     uint32 `json:"member_count"`
	ExpenseCount    uint64 `json:"expense_count"`
	TotalExpenses   uint64 `json:"total_expenses"`
	SettlementCount uint64 `json:"settlement_count"`
	TotalSettled    uint64 `json:"total_settled"`
	TreasuryBalance uint64 `json:"treasury_balance"`
	Active          bool   `json:"active"`
	Paused          bool   `json:"paused"`
}

type Expense struct {
	ID           uint64   `json:"id"`
	CircleID     uint64   `json:"circle_id"`
	Description  string   `json:"description"`
	Amount       uint64   `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	CreatedAt    uint64   `json:"created_at"`
	ExpiresAt    uint64   `json:"expires_at,omitempty"`
	Settled      bool     `json:"settled"`
	SettledAt    uint64   `json:"settled_at,omitempty"`
}

type Settlement struct {
	ID          uint64 `json:"id"`
	CircleID    uint64 `json:"circle_id"`
	Debtor      string `json:"debtor"`
	Creditor    string `json:"creditor"`
	Amount      uint64 `json:"amount"`
	BlockHeight uint64 `json:"block_height"`
}

// DebtEdge is a suggested payment.
type DebtEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// Empty is returned by mutations that only report success.
type Empty struct{}
