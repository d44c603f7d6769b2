package api

type ExpenseInput struct {
	Description  string   `json:"description"`
	Amount       uint64   `json:"amount"`
	Participants []string `json:"participants"`

	// ExpiresAt is an explicit expiry height; zero applies the default.
	ExpiresAt uint64 `json:"expires_at,omitempty"`
}

type CreateExpenseRequest struct {
	CircleID uint64 `json:"circle_id"`
	ExpenseInput
}

type CreateExpenseResponse struct {
	ExpenseID uint64 `json:"expense_id"`
}

type AddMultipleExpensesRequest struct {
	CircleID uint64         `json:"circle_id"`
	Expenses []ExpenseInput `json:"expenses"`
}

type AddMultipleExpensesResponse struct {
	ExpenseIDs []uint64 `json:"expense_ids"`
}

type UpdateExpenseDescriptionRequest struct {
	CircleID    uint64 `json:"circle_id"`
	ExpenseID   uint64 `json:"expense_id"`
	Description string `json:"description"`
}

type ExpenseRequest struct {
	ExpenseID uint64 `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense Expense `json:"expense"`
	Expired bool    `json:"expired"`
	Receipt string  `json:"receipt"`
}

type ListCircleExpensesResponse struct {
	ExpenseIDs []uint64 `json:"expense_ids"`
}

type GetBalanceRequest struct {
	CircleID uint64 `json:"circle_id"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type GetBalanceResponse struct {
	Amount uint64 `json:"amount"`
}

type GetNetBalanceRequest struct {
	CircleID uint64 `json:"circle_id"`
	Member   string `json:"member"`
}

type GetNetBalanceResponse struct {
	Net int64 `json:"net"`
}

type GetSuggestedSettlementsResponse struct {
	Settlements []DebtEdge `json:"settlements"`
}
