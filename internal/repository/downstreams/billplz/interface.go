package billplz

import (
	"context"

	"github.com/fleetmgmt/billplz-payment-service/internal/domain"
)

// Billplz is the client for the provider's v3 bill api. One attempt per
// call, no automatic retries - callers decide whether an operation is safe
// to repeat.
type Billplz interface {
	// CreateBill registers a payment request and returns the provider's view
	// of it, including the hosted payment page url.
	CreateBill(ctx context.Context, request BillRequest) (Bill, error)

	// GetBill fetches the authoritative state of a bill. This call is the
	// trust boundary for callback processing - callback parameters are never
	// believed without it.
	GetBill(ctx context.Context, billID string) (Bill, error)
}

// BillRequest carries everything the provider needs to create a bill.
// Amounts are integer minor units (sen).
type BillRequest struct {
	CollectionID   string
	PayerEmail     string
	PayerMobile    string
	PayerName      string
	AmountCents    int64
	CallbackURL    string
	RedirectURL    string
	Description    string
	ReferenceLabel string
	Reference      string
}

// Bill is the provider's record of a requested payment.
type Bill struct {
	ID             string `json:"id"`
	CollectionID   string `json:"collection_id"`
	State          string `json:"state"`
	Paid           bool   `json:"paid"`
	Amount         int64  `json:"amount"`
	PaidAmount     int64  `json:"paid_amount"`
	DueAt          string `json:"due_at"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	Reference      string `json:"reference_1"`
	ReferenceLabel string `json:"reference_1_label"`
	RedirectURL    string `json:"redirect_url"`
	CallbackURL    string `json:"callback_url"`
	Description    string `json:"description"`
}

// BillState maps the raw provider state onto the states the flows act on.
func (b Bill) BillState() domain.BillState {
	return domain.ParseBillState(b.State)
}
