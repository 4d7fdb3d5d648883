package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database/inmemory"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
)

type testSetup struct {
	interactor Interactor
	store      database.Repository
	fleet      *FleetManagerMock
	provider   *BillplzMock
}

func newTestSetup(t *testing.T, conf *config.Application) *testSetup {
	t.Helper()

	fleet := NewFleetManagerMock()
	fleet.orders["BK1001"] = fleetmanager.Order{
		ID:          42,
		BookingCode: "BK1001",
		CustomerID:  77,
		Status:      fleetmanager.OrderStatusPending,
	}
	fleet.customers[77] = fleetmanager.Customer{
		ID:       77,
		Email:    "jane@example.com",
		Phone:    "+60123456789",
		FullName: "Jane Doe",
	}
	fleet.pageURLs[12] = "http://fleet.example.com/confirmed"
	fleet.pageURLs[13] = "http://fleet.example.com/cancelled"

	provider := &BillplzMock{
		createBillFunc: func(request billplz.BillRequest) (billplz.Bill, error) {
			return billplz.Bill{
				ID:        "8X0Iyzaw",
				State:     "due",
				Amount:    request.AmountCents,
				URL:       "https://www.billplz-sandbox.com/bills/8X0Iyzaw",
				Reference: request.Reference,
			}, nil
		},
	}

	store := inmemory.NewInMemoryProvider()

	i, err := NewServiceInteractor(store, fleet, provider, conf, logging.NewNoopLogger())
	require.NoError(t, err)

	return &testSetup{
		interactor: i,
		store:      store,
		fleet:      fleet,
		provider:   provider,
	}
}

func TestGetProcessingPage(t *testing.T) {
	setup := newTestSetup(t, testAppConfig())

	result, err := setup.interactor.GetProcessingPage(context.Background(), "BK1001", 13.50)
	require.NoError(t, err)

	require.Equal(t, int64(0), result.CompletedTransactionID)
	require.Equal(t, "BK1001", result.OrderCode)
	require.Equal(t, "MYR", result.CurrencyCode)
	require.Equal(t, "RM", result.CurrencySymbol)
	require.Equal(t, 13.50, result.Amount)
	require.Equal(t, "https://www.billplz-sandbox.com/bills/8X0Iyzaw", result.HostedPaymentURL)
	require.False(t, result.HasErrors())

	require.Len(t, setup.provider.createBillCalls, 1)
	request := setup.provider.createBillCalls[0]
	require.Equal(t, "xwtudsno", request.CollectionID)
	require.Equal(t, "jane@example.com", request.PayerEmail)
	require.Equal(t, "Jane Doe", request.PayerName)
	require.Equal(t, int64(1350), request.AmountCents)
	require.Equal(t, "Booking Code: BK1001", request.Description)
	require.Equal(t, "Booking Code", request.ReferenceLabel)
	require.Equal(t, "BK1001", request.Reference)
	require.Equal(t,
		"http://fleet.example.com/?__fleet_api=1&ext_code=fleet&ext_action=payment-callback&payment_method_id=7",
		request.CallbackURL)
	require.Equal(t, request.CallbackURL, request.RedirectURL)

	// a tentative ledger row was recorded
	attempt, err := setup.store.GetAttemptByBillID(context.Background(), "8X0Iyzaw")
	require.NoError(t, err)
	require.Equal(t, "BK1001", attempt.OrderCode)
	require.Equal(t, entities.AttemptStatusTentative, attempt.Status)
	require.Equal(t, int64(1350), attempt.Amount.GrossCent)
}

func TestGetProcessingPageAppliesPayInRate(t *testing.T) {
	conf := testAppConfig()
	conf.Payment.PayInCurrencyRate = 0.25

	setup := newTestSetup(t, conf)

	result, err := setup.interactor.GetProcessingPage(context.Background(), "BK1001", 13.50)
	require.NoError(t, err)

	require.Equal(t, 54.0, result.Amount)
	require.Len(t, setup.provider.createBillCalls, 1)
	require.Equal(t, int64(5400), setup.provider.createBillCalls[0].AmountCents)
}

func TestGetProcessingPageWithoutBusinessEmail(t *testing.T) {
	conf := testAppConfig()
	conf.Payment.BusinessEmail = ""

	setup := newTestSetup(t, conf)

	result, err := setup.interactor.GetProcessingPage(context.Background(), "BK1001", 13.50)
	require.NoError(t, err)

	// no provider contact at all, and no redirect target to embed
	require.Empty(t, setup.provider.createBillCalls)
	require.Empty(t, result.HostedPaymentURL)
	require.True(t, result.HasErrors())
}

func TestGetProcessingPageProviderFailure(t *testing.T) {
	setup := newTestSetup(t, testAppConfig())
	setup.provider.createBillFunc = func(request billplz.BillRequest) (billplz.Bill, error) {
		return billplz.Bill{}, &downstreams.Error{Kind: downstreams.ErrorKindNetwork, Detail: "connection refused"}
	}

	result, err := setup.interactor.GetProcessingPage(context.Background(), "BK1001", 13.50)
	require.NoError(t, err)

	require.Empty(t, result.HostedPaymentURL)
	require.True(t, result.HasErrors())

	// nothing was recorded for a bill that does not exist
	attempts, err := setup.store.GetAttemptsByFilter(context.Background(), entities.AttemptQuery{})
	require.NoError(t, err)
	require.Empty(t, attempts)
}

func TestGetProcessingPageUnknownOrder(t *testing.T) {
	setup := newTestSetup(t, testAppConfig())

	_, err := setup.interactor.GetProcessingPage(context.Background(), "BK9999", 13.50)
	require.Error(t, err)
	require.True(t, apierrors.IsNotFoundError(err))
	require.Empty(t, setup.provider.createBillCalls)
}

func TestGetProcessingPageNegativeAmountClampsToZero(t *testing.T) {
	setup := newTestSetup(t, testAppConfig())

	result, err := setup.interactor.GetProcessingPage(context.Background(), "BK1001", -5)
	require.NoError(t, err)

	require.Equal(t, 0.0, result.Amount)
	require.Len(t, setup.provider.createBillCalls, 1)
	require.Equal(t, int64(0), setup.provider.createBillCalls[0].AmountCents)
}
