package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/pkg/api"
)

// seedDinner records a 300 dinner paid by alice and split three ways.
func seedDinner(t *testing.T, ts *testServer, circleID uint64) uint64 {
	t.Helper()
	alice := ts.as(t, ts.alice)
	resp, err := alice.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		CircleID: circleID,
		ExpenseInput: api.ExpenseInput{
			Description:  "Dinner",
			Amount:       300,
			Participants: []string{ts.alice, ts.bob, ts.carol},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.ExpenseID
}

func TestSettleDebt(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	seedDinner(t, ts, id)
	bob := ts.as(t, ts.bob)

	partial, err := bob.settlements.SettleDebt(ctx, connect.NewRequest(&api.SettleDebtRequest{
		CircleID:     id,
		PaymentInput: api.PaymentInput{Creditor: ts.alice, Amount: ptr(uint64(40))},
	}))
	if err != nil {
		t.Fatalf("partial SettleDebt failed: %v", err)
	}

	full, err := bob.settlements.SettleDebt(ctx, connect.NewRequest(&api.SettleDebtRequest{
		CircleID:     id,
		PaymentInput: api.PaymentInput{Creditor: ts.alice},
	}))
	if err != nil {
		t.Fatalf("full SettleDebt failed: %v", err)
	}

	got, err := bob.settlements.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{SettlementID: full.Msg.SettlementID}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	s := got.Msg.Settlement
	if s.Debtor != ts.bob || s.Creditor != ts.alice || s.Amount != 60 || s.BlockHeight != 1000 {
		t.Errorf("unexpected settlement: %+v", s)
	}

	list, err := bob.settlements.ListCircleSettlements(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		t.Fatalf("ListCircleSettlements failed: %v", err)
	}
	want := []uint64{partial.Msg.SettlementID, full.Msg.SettlementID}
	if len(list.Msg.SettlementIDs) != 2 || list.Msg.SettlementIDs[0] != want[0] || list.Msg.SettlementIDs[1] != want[1] {
		t.Errorf("expected %v, got %v", want, list.Msg.SettlementIDs)
	}

	_, err = bob.settlements.SettleDebt(ctx, connect.NewRequest(&api.SettleDebtRequest{
		CircleID:     id,
		PaymentInput: api.PaymentInput{Creditor: ts.alice},
	}))
	expectLedgerError(t, err, connect.CodeInvalidArgument, 205)

	_, err = bob.settlements.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{SettlementID: 99}))
	expectLedgerError(t, err, connect.CodeNotFound, 404)
}

func TestSettleMultipleDebts(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	seedDinner(t, ts, id)

	bob := ts.as(t, ts.bob)
	if _, err := bob.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		CircleID: id,
		ExpenseInput: api.ExpenseInput{
			Description:  "Taxi",
			Amount:       60,
			Participants: []string{ts.bob, ts.carol},
		},
	})); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	carol := ts.as(t, ts.carol)
	resp, err := carol.settlements.SettleMultipleDebts(ctx, connect.NewRequest(&api.SettleMultipleDebtsRequest{
		CircleID: id,
		Payments: []api.PaymentInput{
			{Creditor: ts.alice},
			{Creditor: ts.bob},
		},
	}))
	if err != nil {
		t.Fatalf("SettleMultipleDebts failed: %v", err)
	}
	if len(resp.Msg.SettlementIDs) != 2 {
		t.Fatalf("expected 2 settlements, got %v", resp.Msg.SettlementIDs)
	}

	net, err := carol.expenses.GetNetBalance(ctx, connect.NewRequest(&api.GetNetBalanceRequest{CircleID: id, Member: ts.carol}))
	if err != nil {
		t.Fatalf("GetNetBalance failed: %v", err)
	}
	if net.Msg.Net != 0 {
		t.Errorf("expected carol to be settled up, got net %d", net.Msg.Net)
	}
}

func TestSettleExpense(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	expenseID := seedDinner(t, ts, id)

	outsider := ts.as(t, ts.mallory)
	_, err := outsider.settlements.SettleExpense(ctx, connect.NewRequest(&api.SettleExpenseRequest{ExpenseID: expenseID}))
	expectLedgerError(t, err, connect.CodePermissionDenied, 200)

	bob := ts.as(t, ts.bob)
	if _, err := bob.settlements.SettleExpense(ctx, connect.NewRequest(&api.SettleExpenseRequest{ExpenseID: expenseID})); err != nil {
		t.Fatalf("SettleExpense failed: %v", err)
	}

	got, err := bob.expenses.GetExpense(ctx, connect.NewRequest(&api.ExpenseRequest{ExpenseID: expenseID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Msg.Expense.Settled || got.Msg.Expense.SettledAt != 1000 {
		t.Errorf("expected expense settled at 1000, got %+v", got.Msg.Expense)
	}

	_, err = bob.settlements.SettleExpense(ctx, connect.NewRequest(&api.SettleExpenseRequest{ExpenseID: expenseID}))
	expectLedgerError(t, err, connect.CodeAlreadyExists, 410)
}

func TestSettleExpiredExpense(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	expenseID := seedDinner(t, ts, id)

	ts.clock.Advance(144000)

	bob := ts.as(t, ts.bob)
	got, err := bob.expenses.GetExpense(ctx, connect.NewRequest(&api.ExpenseRequest{ExpenseID: expenseID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Msg.Expired {
		t.Error("expected expense to be expired")
	}

	_, err = bob.settlements.SettleExpense(ctx, connect.NewRequest(&api.SettleExpenseRequest{ExpenseID: expenseID}))
	expectLedgerError(t, err, connect.CodeFailedPrecondition, 408)
}

func TestContributeToTreasury(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	id := createCircle(t, ts)
	carol := ts.as(t, ts.carol)

	if _, err := carol.settlements.ContributeToTreasury(ctx, connect.NewRequest(&api.ContributeToTreasuryRequest{
		CircleID: id, Amount: 500,
	})); err != nil {
		t.Fatalf("ContributeToTreasury failed: %v", err)
	}

	stats, err := carol.circles.GetCircleStats(ctx, connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		t.Fatalf("GetCircleStats failed: %v", err)
	}
	if stats.Msg.Stats.TreasuryBalance != 500 {
		t.Errorf("expected treasury 500, got %d", stats.Msg.Stats.TreasuryBalance)
	}

	_, err = carol.settlements.ContributeToTreasury(ctx, connect.NewRequest(&api.ContributeToTreasuryRequest{
		CircleID: id, Amount: 0,
	}))
	expectLedgerError(t, err, connect.CodeInvalidArgument, 201)
}
