package ledger

import (
	"context"
	"math"

	"github.com/mmynk/circlecare/internal/calculator"
	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/internal/storage"
)

// credit records that debtor owes creditor amount more, netting against any
// debt in the opposite direction first.
func credit(tx storage.Tx, circleID uint64, debtor, creditor string, amount uint64) error {
	forward, err := tx.GetBalance(circleID, debtor, creditor)
	if err != nil {
		return err
	}
	reverse, err := tx.GetBalance(circleID, creditor, debtor)
	if err != nil {
		return err
	}
	if reverse < amount && forward+(amount-reverse) > math.MaxInt64 {
		return ErrInvalidInput.withf("balance between %s and %s would overflow", debtor, creditor)
	}

	newForward, newReverse := calculator.Offset(forward, reverse, amount)
	if err := tx.SetBalance(circleID, debtor, creditor, newForward); err != nil {
		return err
	}
	return tx.SetBalance(circleID, creditor, debtor, newReverse)
}

// circleDebts returns every non-zero pairwise balance between current members.
func circleDebts(tx storage.Tx, circleID uint64) ([]calculator.Debt, error) {
	members, err := tx.ListMembers(circleID)
	if err != nil {
		return nil, err
	}
	var debts []calculator.Debt
	for _, debtor := range members {
		for _, creditor := range members {
			if debtor == creditor {
				continue
			}
			amount, err := tx.GetBalance(circleID, debtor, creditor)
			if err != nil {
				return nil, err
			}
			if amount > 0 {
				debts = append(debts, calculator.Debt{Debtor: debtor, Creditor: creditor, Amount: amount})
			}
		}
	}
	return debts, nil
}

// GetBalance returns what debtor owes creditor in the circle; zero if nothing.
func (l *Ledger) GetBalance(ctx context.Context, circleID uint64, debtor, creditor string) (uint64, error) {
	var amount uint64
	err := l.view(ctx, "GetBalance", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		var err error
		amount, err = tx.GetBalance(circleID, debtor, creditor)
		return err
	})
	return amount, err
}

// GetNetBalance returns what member is owed minus what member owes across
// all counterparties in the circle.
func (l *Ledger) GetNetBalance(ctx context.Context, circleID uint64, member string) (int64, error) {
	var owed, owes uint64
	err := l.view(ctx, "GetNetBalance", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		members, err := tx.ListMembers(circleID)
		if err != nil {
			return err
		}
		for _, other := range members {
			if other == member {
				continue
			}
			in, err := tx.GetBalance(circleID, other, member)
			if err != nil {
				return err
			}
			out, err := tx.GetBalance(circleID, member, other)
			if err != nil {
				return err
			}
			owed += in
			owes += out
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(owed) - int64(owes), nil
}

// CalculateMemberBalance is an alias of GetNetBalance.
func (l *Ledger) CalculateMemberBalance(ctx context.Context, circleID uint64, member string) (int64, error) {
	return l.GetNetBalance(ctx, circleID, member)
}

// GetNetBalances returns the net position of every member of the circle.
func (l *Ledger) GetNetBalances(ctx context.Context, circleID uint64) (map[string]int64, error) {
	var nets map[string]int64
	err := l.view(ctx, "GetNetBalances", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		members, err := tx.ListMembers(circleID)
		if err != nil {
			return err
		}
		debts, err := circleDebts(tx, circleID)
		if err != nil {
			return err
		}
		nets = calculator.NetBalances(debts)
		for _, m := range members {
			if _, ok := nets[m]; !ok {
				nets[m] = 0
			}
		}
		return nil
	})
	return nets, err
}

// GetSuggestedSettlements returns a short list of payments that would clear
// every balance in the circle.
func (l *Ledger) GetSuggestedSettlements(ctx context.Context, circleID uint64) ([]models.DebtEdge, error) {
	var edges []models.DebtEdge
	err := l.view(ctx, "GetSuggestedSettlements", func(tx storage.Tx) error {
		if _, err := loadCircle(tx, circleID); err != nil {
			return err
		}
		debts, err := circleDebts(tx, circleID)
		if err != nil {
			return err
		}
		edges = calculator.SimplifyDebts(calculator.NetBalances(debts))
		return nil
	})
	return edges, err
}
