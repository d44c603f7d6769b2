package calculator

import (
	"errors"
	"testing"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       uint64
		participants []string
		payer        string
		wantErr      error
		want         map[string]uint64
	}{
		{
			name:         "three-way even split",
			amount:       300_000_000,
			participants: []string{"Alice", "Bob", "Charlie"},
			payer:        "Alice",
			want:         map[string]uint64{"Alice": 100_000_000, "Bob": 100_000_000, "Charlie": 100_000_000},
		},
		{
			name:         "payer absorbs remainder",
			amount:       100,
			participants: []string{"Alice", "Bob", "Charlie"},
			payer:        "Bob",
			want:         map[string]uint64{"Alice": 33, "Bob": 34, "Charlie": 33},
		},
		{
			name:         "remainder spread over first participants when payer is absent",
			amount:       11,
			participants: []string{"Alice", "Bob", "Charlie"},
			payer:        "Diana",
			want:         map[string]uint64{"Alice": 4, "Bob": 4, "Charlie": 3},
		},
		{
			name:         "single participant takes everything",
			amount:       7,
			participants: []string{"Alice"},
			payer:        "Alice",
			want:         map[string]uint64{"Alice": 7},
		},
		{
			name:         "amount smaller than participant count",
			amount:       2,
			participants: []string{"Alice", "Bob", "Charlie"},
			payer:        "Diana",
			want:         map[string]uint64{"Alice": 1, "Bob": 1, "Charlie": 0},
		},
		{
			name:         "zero amount should error",
			amount:       0,
			participants: []string{"Alice"},
			wantErr:      ErrZeroAmount,
		},
		{
			name:         "no participants should error",
			amount:       10,
			participants: []string{},
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "duplicate participant should error",
			amount:       10,
			participants: []string{"Alice", "Alice"},
			wantErr:      ErrDuplicateMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(tt.amount, tt.participants, tt.payer)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EqualSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit() unexpected error: %v", err)
			}

			var sum uint64
			for p, want := range tt.want {
				if shares[p] != want {
					t.Errorf("%s share = %d, want %d", p, shares[p], want)
				}
				sum += shares[p]
			}
			if sum != tt.amount {
				t.Errorf("shares sum to %d, want %d", sum, tt.amount)
			}
		})
	}
}

func TestOwedToPayer(t *testing.T) {
	participants := []string{"Alice", "Bob", "Charlie"}
	shares, err := EqualSplit(300, participants, "Alice")
	if err != nil {
		t.Fatalf("EqualSplit failed: %v", err)
	}

	debts := OwedToPayer(shares, participants, "Alice")
	if len(debts) != 2 {
		t.Fatalf("expected 2 debts, got %d", len(debts))
	}
	for _, d := range debts {
		if d.Debtor == "Alice" {
			t.Errorf("payer recorded a debt to themselves: %+v", d)
		}
		if d.Creditor != "Alice" || d.Amount != 100 {
			t.Errorf("unexpected debt %+v", d)
		}
	}
}
