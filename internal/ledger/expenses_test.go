package ledger

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/mmynk/circlecare/internal/models"
)

func TestCreateExpenseSplitsEqually(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol)

		expenseID, err := f.ledger.CreateExpense(ctx, f.alice, id, "Dinner", 300_000_000, []string{f.alice, f.bob, f.carol})
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expenseID != 1 {
			t.Errorf("expense id: expected 1, got %d", expenseID)
		}

		if got := f.balance(t, id, f.bob, f.alice); got != 100_000_000 {
			t.Errorf("bob owes alice: expected 100000000, got %d", got)
		}
		if got := f.balance(t, id, f.carol, f.alice); got != 100_000_000 {
			t.Errorf("carol owes alice: expected 100000000, got %d", got)
		}
		if got := f.balance(t, id, f.alice, f.alice); got != 0 {
			t.Errorf("alice owes herself: expected 0, got %d", got)
		}

		e, err := f.ledger.GetExpense(ctx, expenseID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if e.Payer != f.alice || e.Amount != 300_000_000 || e.Settled {
			t.Errorf("unexpected expense: %+v", e)
		}
		if e.CreatedAt != 1000 || e.ExpiresAt != 1000+DefaultExpiryBlocks {
			t.Errorf("heights: created %d expires %d", e.CreatedAt, e.ExpiresAt)
		}

		stats, err := f.ledger.GetCircleStats(ctx, id)
		if err != nil {
			t.Fatalf("GetCircleStats failed: %v", err)
		}
		if stats.ExpenseCount != 1 || stats.TotalExpenses != 300_000_000 || stats.MemberCount != 3 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}

func TestCreateExpenseRemainder(t *testing.T) {
	tests := []struct {
		name         string
		participants func(f *fixture) []string
		want         map[string]uint64 // debtor -> owed to alice
	}{
		{
			name:         "payer participates and absorbs remainder",
			participants: func(f *fixture) []string { return []string{f.alice, f.bob, f.carol} },
			want:         map[string]uint64{"bob": 33, "carol": 33, "dave": 0},
		},
		{
			name:         "payer outside split",
			participants: func(f *fixture) []string { return []string{f.bob, f.carol, f.dave} },
			want:         map[string]uint64{"bob": 34, "carol": 33, "dave": 33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, f *fixture) {
				id := f.circle(t, f.bob, f.carol, f.dave)
				if _, err := f.ledger.CreateExpense(context.Background(), f.alice, id, "Snacks", 100, tt.participants(f)); err != nil {
					t.Fatalf("CreateExpense failed: %v", err)
				}
				names := map[string]string{"bob": f.bob, "carol": f.carol, "dave": f.dave}
				for name, want := range tt.want {
					if got := f.balance(t, id, names[name], f.alice); got != want {
						t.Errorf("%s owes alice: expected %d, got %d", name, want, got)
					}
				}
			})
		})
	}
}

func TestCreateExpenseNetsOpposingDebts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob)

		if _, err := f.ledger.CreateExpense(ctx, f.alice, id, "Groceries", 200, []string{f.alice, f.bob}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if _, err := f.ledger.CreateExpense(ctx, f.bob, id, "Utilities", 100, []string{f.alice, f.bob}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if got := f.balance(t, id, f.bob, f.alice); got != 50 {
			t.Errorf("bob owes alice: expected 50, got %d", got)
		}
		if got := f.balance(t, id, f.alice, f.bob); got != 0 {
			t.Errorf("alice owes bob: expected 0, got %d", got)
		}

		net, err := f.ledger.GetNetBalance(ctx, id, f.alice)
		if err != nil {
			t.Fatalf("GetNetBalance failed: %v", err)
		}
		if net != 50 {
			t.Errorf("alice net: expected 50, got %d", net)
		}
		net, err = f.ledger.CalculateMemberBalance(ctx, id, f.bob)
		if err != nil {
			t.Fatalf("CalculateMemberBalance failed: %v", err)
		}
		if net != -50 {
			t.Errorf("bob net: expected -50, got %d", net)
		}
	})
}

func TestNetBalancesConserveValue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol, f.dave)
		everyone := []string{f.alice, f.bob, f.carol, f.dave}

		payers := []string{f.alice, f.bob, f.carol, f.dave, f.bob, f.alice, f.carol}
		for i, payer := range payers {
			amount := uint64(1000 + 137*i)
			participants := everyone[:2+i%3]
			if _, err := f.ledger.CreateExpense(ctx, payer, id, fmt.Sprintf("Expense %d", i), amount, participants); err != nil {
				t.Fatalf("CreateExpense %d failed: %v", i, err)
			}

			nets, err := f.ledger.GetNetBalances(ctx, id)
			if err != nil {
				t.Fatalf("GetNetBalances failed: %v", err)
			}
			var sum int64
			for member, n := range nets {
				sum += n
				single, err := f.ledger.GetNetBalance(ctx, id, member)
				if err != nil {
					t.Fatalf("GetNetBalance failed: %v", err)
				}
				if single != n {
					t.Errorf("net of %s: GetNetBalance %d, GetNetBalances %d", member, single, n)
				}
			}
			if sum != 0 {
				t.Fatalf("after expense %d net balances sum to %d", i, sum)
			}

			// At most one direction of each pair is non-zero.
			for _, a := range everyone {
				for _, b := range everyone {
					if a < b && f.balance(t, id, a, b) != 0 && f.balance(t, id, b, a) != 0 {
						t.Errorf("both directions non-zero between %s and %s", a, b)
					}
				}
			}
		}
	})
}

func TestCreateExpenseValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol)
		tooMany := make([]string, DefaultMaxParticipants+1)
		for i := range tooMany {
			tooMany[i] = testAddr(t, byte(100+i))
		}

		tests := []struct {
			name         string
			caller       string
			description  string
			amount       uint64
			participants []string
			want         *Error
		}{
			{"empty description", f.alice, "", 100, []string{f.bob}, ErrInvalidInput},
			{"long description", f.alice, strings.Repeat("d", 101), 100, []string{f.bob}, ErrInvalidInput},
			{"zero amount", f.alice, "Dinner", 0, []string{f.bob}, ErrInvalidInput},
			{"huge amount", f.alice, "Dinner", math.MaxInt64 + 1, []string{f.bob}, ErrInvalidInput},
			{"no participants", f.alice, "Dinner", 100, nil, ErrInvalidInput},
			{"too many participants", f.alice, "Dinner", 100, tooMany, ErrInvalidInput},
			{"duplicate participant", f.alice, "Dinner", 100, []string{f.bob, f.bob}, ErrInvalidInput},
			{"non-member participant", f.alice, "Dinner", 100, []string{f.bob, f.dave}, ErrInvalidParticipant},
			{"non-member caller", f.dave, "Dinner", 100, []string{f.bob}, ErrUnauthorized},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.ledger.CreateExpense(ctx, tt.caller, id, tt.description, tt.amount, tt.participants)
				expectCode(t, err, tt.want)
			})
		}

		_, err := f.ledger.CreateExpense(ctx, f.alice, 99, "Dinner", 100, []string{f.bob})
		expectCode(t, err, ErrCircleNotFound)

		expenses, err := f.ledger.GetCircleExpenses(ctx, id)
		if err != nil {
			t.Fatalf("GetCircleExpenses failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("rejected expenses were recorded: %v", expenses)
		}
		if got := f.balance(t, id, f.bob, f.alice); got != 0 {
			t.Errorf("rejected expenses changed balances: %d", got)
		}
	})
}

func TestExpenseExpiry(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob)

		_, err := f.ledger.CreateExpenseWithExpiry(ctx, f.alice, id, "Tickets", 100, []string{f.bob}, 1000)
		expectCode(t, err, ErrInvalidInput)

		short, err := f.ledger.CreateExpenseWithExpiry(ctx, f.alice, id, "Tickets", 100, []string{f.bob}, 1010)
		if err != nil {
			t.Fatalf("CreateExpenseWithExpiry failed: %v", err)
		}
		long, err := f.ledger.CreateExpense(ctx, f.alice, id, "Rent", 100, []string{f.bob})
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		checks := []struct {
			height  uint64
			expense uint64
			want    bool
		}{
			{1009, short, false},
			{1010, short, true},
			{1000 + DefaultExpiryBlocks - 1, long, false},
			{1000 + DefaultExpiryBlocks, long, true},
			{1000 + 2*DefaultExpiryBlocks, long, true},
		}
		for _, c := range checks {
			f.clock.Set(c.height)
			got, err := f.ledger.IsExpenseExpired(ctx, c.expense)
			if err != nil {
				t.Fatalf("IsExpenseExpired failed: %v", err)
			}
			if got != c.want {
				t.Errorf("expense %d at height %d: expected expired=%v, got %v", c.expense, c.height, c.want, got)
			}
		}

		_, err = f.ledger.IsExpenseExpired(ctx, 77)
		expectCode(t, err, ErrExpenseNotFound)
	})
}

func TestUpdateExpenseDescription(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob)
		other := f.circle(t)
		expenseID, err := f.ledger.CreateExpense(ctx, f.alice, id, "Dinner", 100, []string{f.alice, f.bob})
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expectCode(t, f.ledger.UpdateExpenseDescription(ctx, f.bob, id, expenseID, "Mine now"), ErrUnauthorized)
		expectCode(t, f.ledger.UpdateExpenseDescription(ctx, f.alice, other, expenseID, "Moved"), ErrExpenseNotFound)
		expectCode(t, f.ledger.UpdateExpenseDescription(ctx, f.alice, id, 42, "Nope"), ErrExpenseNotFound)
		expectCode(t, f.ledger.UpdateExpenseDescription(ctx, f.alice, id, expenseID, ""), ErrInvalidInput)

		if err := f.ledger.UpdateExpenseDescription(ctx, f.alice, id, expenseID, "Birthday dinner"); err != nil {
			t.Fatalf("UpdateExpenseDescription failed: %v", err)
		}
		receipt, err := f.ledger.GetExpenseReceipt(ctx, expenseID)
		if err != nil {
			t.Fatalf("GetExpenseReceipt failed: %v", err)
		}
		if receipt != "Expense: Birthday dinner Amount: 100" {
			t.Errorf("receipt: got %q", receipt)
		}

		if err := f.ledger.SettleExpense(ctx, f.bob, expenseID); err != nil {
			t.Fatalf("SettleExpense failed: %v", err)
		}
		expectCode(t, f.ledger.UpdateExpenseDescription(ctx, f.alice, id, expenseID, "Too late"), ErrAlreadySettled)
	})
}

func TestAddMultipleExpenses(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol)

		_, err := f.ledger.AddMultipleExpenses(ctx, f.alice, id, []NewExpense{
			{Description: "Taxi", Amount: 60, Participants: []string{f.alice, f.bob}},
			{Description: "Museum", Amount: 90, Participants: []string{f.bob, f.dave}},
		})
		expectCode(t, err, ErrInvalidParticipant)

		if got := f.balance(t, id, f.bob, f.alice); got != 0 {
			t.Errorf("failed batch changed balances: %d", got)
		}
		if expenses, _ := f.ledger.GetCircleExpenses(ctx, id); len(expenses) != 0 {
			t.Errorf("failed batch recorded expenses: %v", expenses)
		}

		ids, err := f.ledger.AddMultipleExpenses(ctx, f.alice, id, []NewExpense{
			{Description: "Taxi", Amount: 60, Participants: []string{f.alice, f.bob}},
			{Description: "Museum", Amount: 90, Participants: []string{f.alice, f.bob, f.carol}},
			{Description: "Hotel", Amount: 400, Participants: []string{f.carol}, ExpiresAt: 2000},
		})
		if err != nil {
			t.Fatalf("AddMultipleExpenses failed: %v", err)
		}
		if !reflect.DeepEqual(ids, []uint64{1, 2, 3}) {
			t.Errorf("ids: expected [1 2 3], got %v", ids)
		}
		if got := f.balance(t, id, f.bob, f.alice); got != 60 {
			t.Errorf("bob owes alice: expected 60, got %d", got)
		}
		if got := f.balance(t, id, f.carol, f.alice); got != 430 {
			t.Errorf("carol owes alice: expected 430, got %d", got)
		}

		hotel, err := f.ledger.GetExpense(ctx, 3)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if hotel.ExpiresAt != 2000 {
			t.Errorf("explicit expiry: expected 2000, got %d", hotel.ExpiresAt)
		}

		participants, err := f.ledger.GetExpenseParticipants(ctx, 2)
		if err != nil {
			t.Fatalf("GetExpenseParticipants failed: %v", err)
		}
		if !reflect.DeepEqual(participants, []string{f.alice, f.bob, f.carol}) {
			t.Errorf("participants: got %v", participants)
		}

		stats, _ := f.ledger.GetCircleStats(ctx, id)
		if stats.ExpenseCount != 3 || stats.TotalExpenses != 550 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}

func TestGetSuggestedSettlements(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol)

		if _, err := f.ledger.CreateExpense(ctx, f.alice, id, "Dinner", 300, []string{f.alice, f.bob, f.carol}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if _, err := f.ledger.CreateExpense(ctx, f.bob, id, "Drinks", 90, []string{f.alice, f.bob, f.carol}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		edges, err := f.ledger.GetSuggestedSettlements(ctx, id)
		if err != nil {
			t.Fatalf("GetSuggestedSettlements failed: %v", err)
		}
		want := []models.DebtEdge{
			{From: f.carol, To: f.alice, Amount: 130},
			{From: f.bob, To: f.alice, Amount: 40},
		}
		if !reflect.DeepEqual(edges, want) {
			t.Errorf("suggested settlements: expected %v, got %v", want, edges)
		}

		_, err = f.ledger.GetSuggestedSettlements(ctx, 99)
		expectCode(t, err, ErrCircleNotFound)
	})
}

func TestValuesBeyondInt64Rejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		id := f.circle(t, f.bob, f.carol)

		_, err := f.ledger.CreateExpenseWithExpiry(ctx, f.alice, id, "Tickets", 100, []string{f.bob}, math.MaxUint64)
		expectCode(t, err, ErrInvalidInput)

		expectCode(t, f.ledger.SetCreationFee(ctx, f.owner, math.MaxUint64), ErrInvalidInput)
		fee, err := f.ledger.GetCreationFee(ctx)
		if err != nil {
			t.Fatalf("GetCreationFee failed: %v", err)
		}
		if fee != 0 {
			t.Errorf("rejected fee was stored: %d", fee)
		}

		if _, err := f.ledger.CreateExpense(ctx, f.alice, id, "Deposit", math.MaxInt64, []string{f.bob}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		// alice would be owed more than an int64 can hold.
		_, err = f.ledger.CreateExpense(ctx, f.alice, id, "Deposit", 1, []string{f.carol})
		expectCode(t, err, ErrInvalidInput)

		net, err := f.ledger.GetNetBalance(ctx, id, f.alice)
		if err != nil {
			t.Fatalf("GetNetBalance failed: %v", err)
		}
		if net != math.MaxInt64 {
			t.Errorf("alice net: expected %d, got %d", int64(math.MaxInt64), net)
		}
		stats, err := f.ledger.GetCircleStats(ctx, id)
		if err != nil {
			t.Fatalf("GetCircleStats failed: %v", err)
		}
		if stats.TotalExpenses != math.MaxInt64 {
			t.Errorf("total expenses: expected %d, got %d", uint64(math.MaxInt64), stats.TotalExpenses)
		}
	})
}

func TestBalanceReadsRequireCircle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		_, err := f.ledger.GetBalance(ctx, 999, f.alice, f.bob)
		expectCode(t, err, ErrCircleNotFound)

		_, err = f.ledger.GetNetBalance(ctx, 999, f.alice)
		expectCode(t, err, ErrCircleNotFound)

		_, err = f.ledger.CalculateMemberBalance(ctx, 999, f.alice)
		expectCode(t, err, ErrCircleNotFound)
	})
}
