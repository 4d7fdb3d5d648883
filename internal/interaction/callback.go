package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/domain"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
)

// ProcessCallback drives RECEIVED -> VERIFIED -> {CONFIRMED | CANCELLED | IGNORED}.
//
// The notification's own status fields are never trusted. The flow re-fetches
// the bill from the provider, reattaches the order via the booking code the
// bill carries in reference_1, and only then decides the outcome.
func (s *serviceInteractor) ProcessCallback(ctx context.Context, billID string) (*domain.CallbackOutcome, error) {
	logger := logging.LoggerFromContext(ctx)

	if billID == "" {
		return nil, apierrors.NewBadRequest("callback did not carry a bill id")
	}

	// VERIFY - on failure no order mutation has happened, the provider may
	// safely deliver the callback again
	bill, err := s.providerClient.GetBill(ctx, billID)
	if err != nil {
		return nil, apierrors.NewBadGateway(fmt.Sprintf("could not verify bill %s: %v", billID, err))
	}

	outcome := &domain.CallbackOutcome{
		Resolution: domain.CallbackIgnored,
		BillID:     bill.ID,
		OrderCode:  bill.Reference,
	}

	// RESOLVE ORDER - an unmatchable booking code is ignorable, the endpoint
	// must still acknowledge the callback or the provider retries forever
	order, err := s.fleetClient.GetOrderByCode(ctx, bill.Reference)
	if err != nil {
		if errors.Is(err, fleetmanager.ErrOrderNotFound) {
			logger.Warn("callback for bill %s references unknown booking code %q, ignoring", bill.ID, bill.Reference)
			return outcome, nil
		}
		return nil, apierrors.NewBadGateway(err.Error())
	}

	// DISPATCH
	switch bill.BillState() {
	case domain.BillStatePaid:
		return s.confirmedPayment(ctx, bill, order)
	case domain.BillStateDue:
		return s.cancelledPayment(ctx, bill, order)
	default:
		logger.Info("bill %s for order %s is in state %q, nothing to do", bill.ID, order.BookingCode, bill.State)
		return outcome, nil
	}
}

func (s *serviceInteractor) confirmedPayment(ctx context.Context, bill billplz.Bill, order fleetmanager.Order) (*domain.CallbackOutcome, error) {
	logger := logging.LoggerFromContext(ctx)

	amountPaid := s.policy.FromProviderAmount(bill.PaidAmount)
	outcome := &domain.CallbackOutcome{
		Resolution:  domain.CallbackConfirmed,
		BillID:      bill.ID,
		OrderCode:   order.BookingCode,
		AmountPaid:  amountPaid,
		RedirectURL: s.redirectTarget(ctx, s.paymentConf.ConfirmedPageID),
	}

	// the conditional ledger transition is the idempotency guard - of any
	// number of duplicate callbacks for the same bill, exactly one wins it
	transitioned, err := s.store.TransitionAttempt(ctx, bill.ID, entities.AttemptStatusTentative, entities.AttemptStatusConfirmed)
	if err != nil {
		if !errors.Is(err, database.ErrAttemptNotFound) {
			return nil, apierrors.NewInternalServerError(err.Error())
		}
		// no ledger row (created before the ledger existed, or the write was
		// lost) - fall back to the host order state as the guard
		transitioned = order.Status == fleetmanager.OrderStatusPending
	}

	if !transitioned || order.Status != fleetmanager.OrderStatusPending {
		logger.Info("order %s already processed for bill %s, skipping confirmation side effects", order.BookingCode, bill.ID)
		return outcome, nil
	}

	customer, err := s.fleetClient.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		s.rollbackConfirmGuard(ctx, bill.ID)
		return nil, apierrors.NewBadGateway(err.Error())
	}

	if err := s.fleetClient.ConfirmOrder(ctx, order.ID, customer.Email); err != nil {
		s.rollbackConfirmGuard(ctx, bill.ID)
		return nil, apierrors.NewBadGateway(err.Error())
	}

	currencyCode, _ := s.policy.DisplayCurrency()
	if err := s.fleetClient.AppendInvoiceNote(ctx, order.ID, fleetmanager.InvoiceNote{
		OccurredAt:      time.Now().UTC(),
		TransactionType: "payment",
		Amount:          fmt.Sprintf("%s %.2f", currencyCode, amountPaid),
	}); err != nil {
		// the order is confirmed, a missing invoice note is not worth failing
		// the callback over - that would trigger a redelivery loop
		logger.Error("could not append invoice note for order %s. [error]: %v", order.BookingCode, err)
	}

	if s.paymentConf.SendNotifications {
		if err := s.fleetClient.SendOrderConfirmedNotifications(ctx, order.ID); err != nil {
			logger.Error("error when triggering order confirmed notifications for order %s. [error]: %v", order.BookingCode, err)
		}
	}

	logger.Info("order %s confirmed, bill %s paid %s %.2f", order.BookingCode, bill.ID, currencyCode, amountPaid)
	return outcome, nil
}

// rollbackConfirmGuard releases the ledger guard after a failed host
// mutation, so that a redelivered callback gets another chance to confirm.
func (s *serviceInteractor) rollbackConfirmGuard(ctx context.Context, billID string) {
	logger := logging.LoggerFromContext(ctx)

	if _, err := s.store.TransitionAttempt(ctx, billID, entities.AttemptStatusConfirmed, entities.AttemptStatusTentative); err != nil &&
		!errors.Is(err, database.ErrAttemptNotFound) {
		logger.Error("could not roll back confirmation guard for bill %s. [error]: %v", billID, err)
	}
}

func (s *serviceInteractor) cancelledPayment(ctx context.Context, bill billplz.Bill, order fleetmanager.Order) (*domain.CallbackOutcome, error) {
	logger := logging.LoggerFromContext(ctx)

	outcome := &domain.CallbackOutcome{
		Resolution:  domain.CallbackCancelled,
		BillID:      bill.ID,
		OrderCode:   order.BookingCode,
		RedirectURL: s.redirectTarget(ctx, s.paymentConf.CancelledPageID),
	}

	// the host order is deliberately left untouched here - it stays pending
	// so the payer may try again later
	if s.paymentConf.CancelledOrderPolicy == config.CancelledOrderPolicyRecord {
		if _, err := s.store.TransitionAttempt(ctx, bill.ID, entities.AttemptStatusTentative, entities.AttemptStatusCancelled); err != nil &&
			!errors.Is(err, database.ErrAttemptNotFound) {
			logger.Error("could not record cancelled attempt for bill %s. [error]: %v", bill.ID, err)
		}
	}

	logger.Info("bill %s for order %s still due, redirecting to cancellation page", bill.ID, order.BookingCode)
	return outcome, nil
}

// redirectTarget resolves the configured page into its localized url,
// falling back to the public site url.
func (s *serviceInteractor) redirectTarget(ctx context.Context, pageID int) string {
	logger := logging.LoggerFromContext(ctx)

	if pageID > 0 {
		pageUrl, err := s.fleetClient.TranslatedPageURL(ctx, pageID)
		if err == nil && pageUrl != "" {
			return pageUrl
		}
		logger.Warn("could not resolve page %d, falling back to site url. [error]: %v", pageID, err)
	}

	return s.siteURL
}
