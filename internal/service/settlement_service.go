package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/ledger"
	"github.com/mmynk/circlecare/pkg/api"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	ledger *ledger.Ledger
}

// NewSettlementService creates a new SettlementService backed by the given ledger.
func NewSettlementService(l *ledger.Ledger) *SettlementService {
	return &SettlementService{ledger: l}
}

// SettleDebt pays the caller's debt to a creditor, in full or in part.
func (s *SettlementService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SettleDebt request received",
		"circle_id", req.Msg.CircleID,
		"debtor", caller,
		"creditor", req.Msg.Creditor,
	)

	id, err := s.ledger.SettleDebtStx(ctx, caller, req.Msg.CircleID, req.Msg.Creditor, req.Msg.Amount)
	if err != nil {
		return nil, fail("SettleDebt", err, "circle_id", req.Msg.CircleID)
	}

	slog.Info("Debt settled", "settlement_id", id)
	return connect.NewResponse(&api.SettleDebtResponse{SettlementID: id}), nil
}

// SettleMultipleDebts pays several creditors in one atomic batch.
func (s *SettlementService) SettleMultipleDebts(ctx context.Context, req *connect.Request[api.SettleMultipleDebtsRequest]) (*connect.Response[api.SettleMultipleDebtsResponse], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SettleMultipleDebts request received",
		"circle_id", req.Msg.CircleID,
		"payments_count", len(req.Msg.Payments),
	)

	payments := make([]ledger.DebtPayment, len(req.Msg.Payments))
	for i, p := range req.Msg.Payments {
		payments[i] = ledger.DebtPayment{Creditor: p.Creditor, Amount: p.Amount}
	}
	ids, err := s.ledger.SettleMultipleDebts(ctx, caller, req.Msg.CircleID, payments)
	if err != nil {
		return nil, fail("SettleMultipleDebts", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.SettleMultipleDebtsResponse{SettlementIDs: ids}), nil
}

// SettleExpense marks an expense settled. Payer or participant only.
func (s *SettlementService) SettleExpense(ctx context.Context, req *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SettleExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := s.ledger.SettleExpense(ctx, caller, req.Msg.ExpenseID); err != nil {
		return nil, fail("SettleExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ContributeToTreasury moves value from the caller into the circle treasury.
func (s *SettlementService) ContributeToTreasury(ctx context.Context, req *connect.Request[api.ContributeToTreasuryRequest]) (*connect.Response[api.Empty], error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ContributeToTreasury request received", "circle_id", req.Msg.CircleID, "amount", req.Msg.Amount)

	if err := s.ledger.ContributeToTreasury(ctx, caller, req.Msg.CircleID, req.Msg.Amount); err != nil {
		return nil, fail("ContributeToTreasury", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	st, err := s.ledger.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, fail("GetSettlement", err, "settlement_id", req.Msg.SettlementID)
	}
	return connect.NewResponse(&api.GetSettlementResponse{Settlement: settlementToAPI(st)}), nil
}

func (s *SettlementService) ListCircleSettlements(ctx context.Context, req *connect.Request[api.CircleRequest]) (*connect.Response[api.ListCircleSettlementsResponse], error) {
	ids, err := s.ledger.GetCircleSettlements(ctx, req.Msg.CircleID)
	if err != nil {
		return nil, fail("ListCircleSettlements", err, "circle_id", req.Msg.CircleID)
	}
	return connect.NewResponse(&api.ListCircleSettlementsResponse{SettlementIDs: ids}), nil
}
