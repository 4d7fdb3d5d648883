package v1payments

// InitiatePaymentRequest is posted by the host application when a payer
// chooses this payment method during checkout.
type InitiatePaymentRequest struct {
	OrderCode string  `json:"order_code"`
	AmountDue float64 `json:"amount_due"`
}

// ProcessingPageDto is the structured processing page data the host renders.
// CompletedTransactionID is always 0, initiation never completes a payment.
type ProcessingPageDto struct {
	CompletedTransactionID int64    `json:"completed_transaction_id"`
	OrderCode              string   `json:"order_code"`
	CurrencyCode           string   `json:"currency_code"`
	CurrencySymbol         string   `json:"currency_symbol"`
	Amount                 float64  `json:"amount"`
	HostedPaymentURL       string   `json:"hosted_payment_url,omitempty"`
	Errors                 []string `json:"errors,omitempty"`
}

// CallbackAckDto acknowledges a callback that did not decide a redirect.
type CallbackAckDto struct {
	Resolution string `json:"resolution"`
}
