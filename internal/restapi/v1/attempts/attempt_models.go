package v1attempts

import "time"

type GetAttemptsRequest struct {
	OrderCode string
	BillID    string
}

// AttemptDto is one row of the payment attempt ledger. Amounts are integer
// minor units as recorded, no conversion is applied for display.
type AttemptDto struct {
	OrderCode    string    `json:"order_code"`
	BillID       string    `json:"bill_id"`
	MethodCode   string    `json:"method_code"`
	Status       string    `json:"status"`
	Amount       int64     `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetAttemptsResponse struct {
	Attempts []AttemptDto `json:"attempts"`
}
