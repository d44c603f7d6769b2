package models

// Settlement represents a payment from a debtor to a creditor that reduced
// or cleared their pairwise balance. Settlements are append-only.
type Settlement struct {
	// ID is the sequential settlement identifier.
	ID uint64 `json:"id"`

	// CircleID is the circle this settlement belongs to.
	CircleID uint64 `json:"circle_id"`

	// Debtor is the member who paid (settling up).
	Debtor string `json:"debtor"`

	// Creditor is the member who received payment.
	Creditor string `json:"creditor"`

	// Amount is the payment amount in microSTX.
	Amount uint64 `json:"amount"`

	// BlockHeight is the height at which the settlement was recorded.
	BlockHeight uint64 `json:"block_height"`
}

// DebtEdge is a suggested payment produced by debt simplification.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount uint64
}
