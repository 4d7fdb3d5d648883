package fleetmanager

import (
	"context"
	"time"
)

// FleetManager is the client for the fleet management host application. The
// adapter never owns order, customer or invoice data - it reads and mutates
// them through this interface only.
type FleetManager interface {
	// GetOrderByCode looks an order up by its public booking code. Returns
	// ErrOrderNotFound when the code matches nothing.
	GetOrderByCode(ctx context.Context, bookingCode string) (Order, error)

	GetCustomer(ctx context.Context, customerID int64) (Customer, error)

	// ConfirmOrder marks the order as paid and confirmed in the host.
	ConfirmOrder(ctx context.Context, orderID int64, customerEmail string) error

	// AppendInvoiceNote attaches a payment record to the order's overall
	// invoice. The host's renderer turns it into markup.
	AppendInvoiceNote(ctx context.Context, orderID int64, note InvoiceNote) error

	// SendOrderConfirmedNotifications triggers the host's order confirmation
	// emails, when the operator has them enabled.
	SendOrderConfirmedNotifications(ctx context.Context, orderID int64) error

	// TranslatedPageURL resolves a host page id into its localized url, used
	// for the confirmed and cancelled redirect targets.
	TranslatedPageURL(ctx context.Context, pageID int) (string, error)
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          int64       `json:"order_id"`
	BookingCode string      `json:"booking_code"`
	CustomerID  int64       `json:"customer_id"`
	Status      OrderStatus `json:"status"`
}

type Customer struct {
	ID       int64  `json:"customer_id"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	FullName string `json:"print_full_name"`
}

// InvoiceNote is the structured payment record appended to the invoice.
type InvoiceNote struct {
	OccurredAt      time.Time `json:"occurred_at"`
	TransactionType string    `json:"transaction_type"`
	// display amount including the currency code, e.g. "MYR 13.50"
	Amount string `json:"amount"`
}
