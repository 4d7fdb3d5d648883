package domain

import "strings"

// BillState is the provider's ground truth view of a bill. Only the states
// the flow dispatches on get their own value, everything else is other.
type BillState string

const (
	// BillStateDue means the bill has not been paid yet
	BillStateDue BillState = "due"
	// BillStatePaid means the provider has collected the payment
	BillStatePaid BillState = "paid"
	// BillStateOther covers any state the flow does not act on (e.g. deleted)
	BillStateOther BillState = "other"
)

func ParseBillState(value string) BillState {
	switch strings.ToLower(value) {
	case "due":
		return BillStateDue
	case "paid":
		return BillStatePaid
	default:
		return BillStateOther
	}
}

// CallbackResolution is the terminal outcome of processing one provider
// callback. Confirmed and cancelled are the only outcomes that decide a
// browser redirect.
type CallbackResolution string

const (
	CallbackConfirmed CallbackResolution = "confirmed"
	CallbackCancelled CallbackResolution = "cancelled"
	CallbackIgnored   CallbackResolution = "ignored"
)

// CallbackOutcome is handed back to the callback endpoint, which turns it
// into a redirect or a plain acknowledgement.
type CallbackOutcome struct {
	Resolution CallbackResolution
	BillID     string
	OrderCode  string
	// paid amount converted to a decimal, only set on the confirmed path
	AmountPaid float64
	// where to send the payer's browser session, empty if nothing was decided
	RedirectURL string
}

// ProcessingPage is the structured result of staging a payment. Rendering it
// into markup is the host application's job.
type ProcessingPage struct {
	// always 0, initiation never finalizes a payment
	CompletedTransactionID int64
	OrderCode              string
	CurrencyCode           string
	CurrencySymbol         string
	Amount                 float64
	// hosted payment page of the provider, empty if bill creation was
	// skipped or failed - callers must not emit a redirect in that case
	HostedPaymentURL string
	Errors           []string
}

func (p *ProcessingPage) HasErrors() bool {
	return len(p.Errors) > 0
}
