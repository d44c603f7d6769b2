package models

// Expense represents a cost paid by one member and split equally among participants.
//
// An expense is Open until it is settled (terminal) or until the current block
// height reaches ExpiresAt (terminal, evaluated lazily).
type Expense struct {
	// ID is the sequential expense identifier, unique across all circles.
	ID uint64 `json:"id"`

	CircleID uint64 `json:"circle_id"`

	// Description is a human-readable label (1-100 characters).
	// The payer may edit it until the expense is settled.
	Description string `json:"description"`

	// Amount is the total cost in microSTX.
	Amount uint64 `json:"amount"`

	// Payer is the member who paid and is owed the other participants' shares.
	Payer string `json:"payer"`

	// Participants share the amount equally (1-20 entries, no duplicates).
	Participants []string `json:"participants"`

	CreatedAt uint64 `json:"created_at"`

	// ExpiresAt is the block height from which the expense is expired.
	// Zero means the expense never expires.
	ExpiresAt uint64 `json:"expires_at"`

	Settled   bool   `json:"settled"`
	SettledAt uint64 `json:"settled_at"`
}

// IsExpired reports whether the expense has expired at the given block height.
func (e *Expense) IsExpired(height uint64) bool {
	return e.ExpiresAt != 0 && height >= e.ExpiresAt
}

// HasParticipant reports whether addr is one of the expense participants.
func (e *Expense) HasParticipant(addr string) bool {
	for _, p := range e.Participants {
		if p == addr {
			return true
		}
	}
	return false
}
