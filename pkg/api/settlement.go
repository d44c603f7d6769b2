package api

type PaymentInput struct {
	Creditor string `json:"creditor"`

	// Amount pays part of the debt. Omit it to pay the full balance.
	Amount *uint64 `json:"amount,omitempty"`
}

type SettleDebtRequest struct {
	CircleID uint64 `json:"circle_id"`
	PaymentInput
}

type SettleDebtResponse struct {
	SettlementID uint64 `json:"settlement_id"`
}

type SettleMultipleDebtsRequest struct {
	CircleID uint64         `json:"circle_id"`
	Payments []PaymentInput `json:"payments"`
}

type SettleMultipleDebtsResponse struct {
	SettlementIDs []uint64 `json:"settlement_ids"`
}

type SettleExpenseRequest struct {
	ExpenseID uint64 `json:"expense_id"`
}

type ContributeToTreasuryRequest struct {
	CircleID uint64 `json:"circle_id"`
	Amount   uint64 `json:"amount"`
}

type GetSettlementRequest struct {
	SettlementID uint64 `json:"settlement_id"`
}

type GetSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type ListCircleSettlementsResponse struct {
	SettlementIDs []uint64 `json:"settlement_ids"`
}
