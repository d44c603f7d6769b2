package service

import (
	"github.com/mmynk/circlecare/internal/models"
	"github.com/mmynk/circlecare/pkg/api"
)

func circleToAPI(c *models.Circle) api.Circle {
	return api.Circle{
		ID:          c.ID,
		Name:        c.Name,
		Creator:     c.Creator,
		CreatedAt:   c.CreatedAt,
		Active:      c.Active,
		Paused:      c.Paused,
		MemberCount: c.MemberCount,
	}
}

func memberToAPI(m *models.Member) api.Member {
	return api.Member{
		CircleID: m.CircleID,
		Address:  m.Address,
		Nickname: m.Nickname,
		JoinedAt: m.JoinedAt,
		Active:   m.Active,
	}
}

func statsToAPI(s models.CircleStats) api.CircleStats {
	return api.CircleStats{
		CircleID:        s.CircleID,
		MemberCount:     s.MemberCount,
		ExpenseCount:    s.ExpenseCount,
		TotalExpenses:   s.TotalExpenses,
		SettlementCount: s.SettlementCount,
		TotalSettled:    s.TotalSettled,
		TreasuryBalance: s.TreasuryBalance,
		Active:          s.Active,
		Paused:          s.Paused,
	}
}

func expenseToAPI(e *models.Expense) api.Expense {
	return api.Expense{
		ID:           e.ID,
		CircleID:     e.CircleID,
		Description:  e.Description,
		Amount:       e.Amount,
		Payer:        e.Payer,
		Participants: append([]string(nil), e.Participants...),
		CreatedAt:    e.CreatedAt,
		ExpiresAt:    e.ExpiresAt,
		Settled:      e.Settled,
		SettledAt:    e.SettledAt,
	}
}

func settlementToAPI(s *models.Settlement) api.Settlement {
	return api.Settlement{
		ID:          s.ID,
		CircleID:    s.CircleID,
		Debtor:      s.Debtor,
		Creditor:    s.Creditor,
		Amount:      s.Amount,
		BlockHeight: s.BlockHeight,
	}
}

func edgesToAPI(edges []models.DebtEdge) []api.DebtEdge {
	out := make([]api.DebtEdge, len(edges))
	for i, e := range edges {
		out[i] = api.DebtEdge{From: e.From, To: e.To, Amount: e.Amount}
	}
	return out
}
