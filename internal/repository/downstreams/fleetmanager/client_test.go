package fleetmanager

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams"
)

const testApiToken = "api-token-for-testing"

func newTestClient(t *testing.T, handler http.HandlerFunc) (FleetManager, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, testApiToken)
	require.NoError(t, err)

	return client, srv
}

func TestNewRequiresBaseUrl(t *testing.T) {
	_, err := New("", testApiToken)
	require.Error(t, err)
}

func TestGetOrderByCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/rest/v1/orders/by-code/BK1001", r.URL.Path)
		require.Equal(t, testApiToken, r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{
			ID:          42,
			BookingCode: "BK1001",
			CustomerID:  77,
			Status:      OrderStatusPending,
		})
	})

	order, err := client.GetOrderByCode(context.Background(), "BK1001")
	require.NoError(t, err)
	require.Equal(t, int64(42), order.ID)
	require.Equal(t, OrderStatusPending, order.Status)
}

func TestGetOrderByCodeNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetOrderByCode(context.Background(), "BK9999")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/rest/v1/orders/42/confirm", r.URL.Path)

		var body confirmOrderDto
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "jane@example.com", body.CustomerEmail)

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.ConfirmOrder(context.Background(), 42, "jane@example.com")
	require.NoError(t, err)
}

func TestConfirmOrderRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := client.ConfirmOrder(context.Background(), 42, "jane@example.com")
	require.Error(t, err)
	require.True(t, downstreams.IsErrorOfKind(err, downstreams.ErrorKindRejected))
}

func TestAppendInvoiceNote(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/rest/v1/orders/42/invoice-notes", r.URL.Path)

		var body InvoiceNote
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "payment", body.TransactionType)
		require.Equal(t, "MYR 13.50", body.Amount)

		w.WriteHeader(http.StatusCreated)
	})

	err := client.AppendInvoiceNote(context.Background(), 42, InvoiceNote{
		OccurredAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		TransactionType: "payment",
		Amount:          "MYR 13.50",
	})
	require.NoError(t, err)
}

func TestTranslatedPageURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/rest/v1/pages/12/url", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pageUrlDto{URL: "http://fleet.example.com/confirmed"})
	})

	pageUrl, err := client.TranslatedPageURL(context.Background(), 12)
	require.NoError(t, err)
	require.Equal(t, "http://fleet.example.com/confirmed", pageUrl)
}
