package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/domain"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
)

const bookingCodeLabel = "Booking Code"

func (s *serviceInteractor) GetProcessingPage(ctx context.Context, orderCode string, amountDueNow float64) (*domain.ProcessingPage, error) {
	logger := logging.LoggerFromContext(ctx)

	order, err := s.fleetClient.GetOrderByCode(ctx, orderCode)
	if err != nil {
		if errors.Is(err, fleetmanager.ErrOrderNotFound) {
			return nil, apierrors.NewNotFound(fmt.Sprintf("no order with booking code %s", orderCode))
		}
		return nil, apierrors.NewBadGateway(err.Error())
	}

	customer, err := s.fleetClient.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return nil, apierrors.NewBadGateway(err.Error())
	}

	currencyCode, currencySymbol := s.policy.DisplayCurrency()
	result := &domain.ProcessingPage{
		CompletedTransactionID: 0,
		OrderCode:              order.BookingCode,
		CurrencyCode:           currencyCode,
		CurrencySymbol:         currencySymbol,
		Amount:                 s.policy.PayInAmount(amountDueNow),
		Errors:                 make([]string, 0),
	}

	// no receiving account means this payment method cannot operate right
	// now - a precondition, not an error, and no provider contact is made
	if s.paymentConf.BusinessEmail == "" {
		logger.Info("no business email configured, skipping bill creation for order %s", order.BookingCode)
		result.Errors = append(result.Errors, "payment method is not configured to receive payments")
		return result, nil
	}

	notifyURL := s.callbackURL()

	bill, err := s.providerClient.CreateBill(ctx, billplz.BillRequest{
		CollectionID:   s.paymentConf.CollectionID,
		PayerEmail:     customer.Email,
		PayerMobile:    customer.Phone,
		PayerName:      customer.FullName,
		AmountCents:    s.policy.ToProviderAmount(amountDueNow),
		CallbackURL:    notifyURL,
		RedirectURL:    notifyURL,
		Description:    fmt.Sprintf("Booking Code: %s", order.BookingCode),
		ReferenceLabel: bookingCodeLabel,
		Reference:      order.BookingCode,
	})
	if err != nil {
		logger.Error("bill creation failed for order %s. [error]: %v", order.BookingCode, err)
		result.Errors = append(result.Errors, "cannot process payment at this time")
		return result, nil
	}

	if err := s.store.CreateAttempt(ctx, entities.PaymentAttempt{
		OrderCode:  order.BookingCode,
		BillID:     bill.ID,
		MethodCode: s.paymentConf.MethodCode,
		Status:     entities.AttemptStatusTentative,
		Amount: entities.Amount{
			ISOCurrency: currencyCode,
			GrossCent:   bill.Amount,
		},
	}); err != nil {
		// the ledger row is an audit and idempotency aid, not a precondition
		// for the payment itself - the callback flow falls back to the host
		// order state when the row is missing
		logger.Error("could not record payment attempt for bill %s. [error]: %v", bill.ID, err)
	}

	result.HostedPaymentURL = bill.URL
	return result, nil
}

// callbackURL builds the url the provider calls back on and redirects the
// payer to. It routes through the host's plugin api dispatcher and carries
// enough context to reach this adapter again.
func (s *serviceInteractor) callbackURL() string {
	return fmt.Sprintf("%s/?__%sapi=1&ext_code=%s&ext_action=payment-callback&payment_method_id=%d",
		s.siteURL, s.paymentConf.PluginPrefix, s.paymentConf.ExtCode, s.paymentConf.MethodID)
}
