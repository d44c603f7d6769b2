package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/pkg/api"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	ledger *ledger.Ledger
}

// NewExpenseService creates a new ExpenseService backed by the given ledger.
func NewExpenseService(l *ledger.Ledger) *ExpenseService {
	return &ExpenseService{ledger: l}
}

// CreateExpense records an expense paid by the caller and splits it equally.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"circle_id", req.Msg.CircleID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants),
	)

	in := req.Msg.ExpenseInput
	var id uint64
	if in.ExpiresAt == 0 {
		id, err = s.ledger.CreateExpense(ctx, caller, req.Msg.CircleID, in.Description, in.Amount, in.Participants)
	} else {
		id, err = s.ledger.CreateExpenseWithExpiry(ctx, caller, req.Msg.CircleID, in.Description, in.Amount, in.Participants, in.ExpiresAt)
	}
	if err != nil {
		return nil, fail("CreateExpense", err, "circle_id", req.Msg.CircleID)
	}

	slog.Info("Expense created", "expense_id", id)
	return connect.NewResponse(&api.CreateExpenseResponse{ExpenseID: id}), nil
}

// AddMultipleExpenses records a batch of expenses atomically.
func (s *ExpenseService) AddMultipleExpenses(ctx context.Context, req *connect.Request[api.AddMultipleExpensesRequest]) (*connect.Response[api.AddMultipleExpensesResponse], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMultipleExpenses request received",
		"circle_id", req.Msg.CircleID,
		"expenses_count", len(req.Msg.Expenses),
	)

	expenses := make([]ledger.NewExpense, len(req.Msg.Expenses))
	for i, e := range req.Msg.Expenses {
		expenses[i] = ledger.NewExpense{
			Description:  e.Description,
			Amount:       e.Amount,
			Participants: e.Participants,
			ExpiresAt:    e.ExpiresAt,
		}
	}
	ids, err := s.ledger.AddMultipleExpenses(ctx, caller, req.Msg.CircleID, expenses)
	if err != nil {
		return nil, fail("AddMultipleExpenses", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.AddMultipleExpensesResponse{ExpenseIDs: ids}), nil
}

// UpdateExpenseDescription edits the label of an unsettled expense. Payer only.
func (s *ExpenseService) UpdateExpenseDescription(ctx context.Context, req *connect.Request[api.UpdateExpenseDescriptionRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpenseDescription request received", "expense_id", req.Msg.ExpenseID)

	if err := s.ledger.UpdateExpenseDescription(ctx, caller, req.Msg.CircleID, req.Msg.ExpenseID, req.Msg.Description); err != nil {
		return nil, fail("UpdateExpenseDescription", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// GetExpense returns the expense with its expiry state and receipt line.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.ExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	e, err := s.ledger.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	expired, err := s.ledger.IsExpenseExpired(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	receipt, err := s.ledger.GetExpenseReceipt(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.GetExpenseResponse{
		Expense: expenseToAPI(e),
		Expired: expired,
		Receipt: receipt,
	}), nil
}

func (s *ExpenseService) ListCircleExpenses(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleExpensesResponse], error) {
	ids, err := s.ledger.GetCircleExpenses(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("ListCircleExpenses", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.ListCircleExpensesResponse{ExpenseIDs: ids}), nil
}

// GetBalance returns what debtor owes creditor in the circle.
func (s *ExpenseService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	amount, err := s.ledger.GetBalance(ctx, req.Msg.CircleID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, fail("GetBalance", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetBalanceResponse{Amount: amount}), nil
}

// GetNetBalance returns what the member is owed minus what they owe.
func (s *ExpenseService) GetNetBalance(ctx context.Context, req *connect.Request[api.GetNetBalanceRequest]) (*connect.Response[api.GetNetBalanceResponse], error) {
	net, err := s.ledger.GetNetBalance(ctx, req.Msg.CircleID, req.Msg.Member)
	if err != nil {
		return nil, fail("GetNetBalance", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetNetBalanceResponse{Net: net}), nil
}

// GetSuggestedSettlements returns a minimal set of payments clearing the circle.
func (s *ExpenseService) GetSuggestedSettlements(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.GetSuggestedSettlementsResponse], error) {
	edges, err := s.ledger.GetSuggestedSettlements(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("GetSuggestedSettlements", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.GetSuggestedSettlementsResponse{Settlements: edgesToAPI(edges)}), nil
}
