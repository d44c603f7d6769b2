package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/circlecare/internal/models"
)

// Debt is a one-directional amount one member owes another.
type Debt struct {
	Debtor   string
	Creditor string
	Amount   uint64
}

// Offset applies a new debt on top of the current pair of one-directional
// balances and returns the updated pair.
//
// forward is what debtor already owes creditor, reverse what creditor owes
// debtor. The new amount first consumes reverse; only the excess is added to
// forward. The net position (forward - reverse) changes by exactly amount.
func Offset(forward, reverse, amount uint64) (newForward, newReverse uint64) {
	if reverse >= amount {
		return forward, reverse - amount
	}
	return forward + (amount - reverse), 0
}

// NetBalances computes each member's net position from pairwise debts.
// Positive = owed money, negative = owes money.
func NetBalances(debts []Debt) map[string]int64 {
	nets := make(map[string]int64)
	for _, d := range debts {
		nets[d.Creditor] += int64(d.Amount)
		nets[d.Debtor] -= int64(d.Amount)
	}
	return nets
}

// CheckConservation verifies that net positions sum to zero.
func CheckConservation(nets map[string]int64) error {
	var sum int64
	for _, n := range nets {
		sum += n
	}
	if sum != 0 {
		return fmt.Errorf("net balances sum to %d, want 0", sum)
	}
	return nil
}

type position struct {
	member string
	amount uint64
}

// SimplifyDebts reduces net positions to a short list of payments.
//
// Algorithm: split members into debtors and creditors, sort each by amount
// (largest first, ties by name) and greedily match the largest debt with the
// largest credit until every position is zero.
func SimplifyDebts(nets map[string]int64) []models.DebtEdge {
	var debtors, creditors []position
	for member, n := range nets {
		switch {
		case n > 0:
			creditors = append(creditors, position{member, uint64(n)})
		case n < 0:
			debtors = append(debtors, position{member, uint64(-n)})
		}
	}
	byAmount := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].amount != ps[j].amount {
				return ps[i].amount > ps[j].amount
			}
			return ps[i].member < ps[j].member
		}
	}
	sort.Slice(debtors, byAmount(debtors))
	sort.Slice(creditors, byAmount(creditors))

	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		edges = append(edges, models.DebtEdge{
			From:   debtors[i].member,
			To:     creditors[j].member,
			Amount: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return edges
}
