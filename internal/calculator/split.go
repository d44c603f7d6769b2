// Package calculator holds the pure arithmetic of the ledger: equal splits,
// net positions and debt simplification. All amounts are integer microSTX.
package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrZeroAmount      = errors.New("amount cannot be zero")
	ErrNoParticipants  = errors.New("must have at least one participant")
	ErrDuplicateMember = errors.New("participant listed more than once")
)

// EqualSplit computes each participant's share of amount.
//
// Every participant owes amount / n. When the division leaves a remainder,
// the payer absorbs it if the payer participates; otherwise the first
// `remainder` participants in list order owe one extra unit each. The shares
// always sum to amount.
func EqualSplit(amount uint64, participants []string, payer string) (map[string]uint64, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	n := uint64(len(participants))
	base := amount / n
	remainder := amount % n

	shares := make(map[string]uint64, len(participants))
	payerParticipates := false
	for _, p := range participants {
		if _, dup := shares[p]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, p)
		}
		shares[p] = base
		if p == payer {
			payerParticipates = true
		}
	}

	if remainder == 0 {
		return shares, nil
	}
	if payerParticipates {
		shares[payer] += remainder
		return shares, nil
	}
	for i := uint64(0); i < remainder; i++ {
		shares[participants[i]]++
	}
	return shares, nil
}

// OwedToPayer returns the debts an expense creates: every participant other
// than the payer owes the payer their share. The payer never owes themselves.
func OwedToPayer(shares map[string]uint64, participants []string, payer string) []Debt {
	debts := make([]Debt, 0, len(participants))
	for _, p := range participants {
		if p == payer {
			continue
		}
		if shares[p] == 0 {
			continue
		}
		debts = append(debts, Debt{Debtor: p, Creditor: payer, Amount: shares[p]})
	}
	return debts
}
