package v1attempts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/domain"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/common"
)

type interactorMock struct {
	attempts    []entities.PaymentAttempt
	attemptsErr error

	queries []entities.AttemptQuery
}

func (m *interactorMock) GetProcessingPage(ctx context.Context, orderCode string, amountDueNow float64) (*domain.ProcessingPage, error) {
	return nil, nil
}

func (m *interactorMock) ProcessCallback(ctx context.Context, billID string) (*domain.CallbackOutcome, error) {
	return nil, nil
}

func (m *interactorMock) GetAttempts(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error) {
	m.queries = append(m.queries, query)
	if m.attemptsErr != nil {
		return nil, m.attemptsErr
	}
	return m.attempts, nil
}

func newTestServer(mock *interactorMock) *httptest.Server {
	router := chi.NewRouter()
	Create(router, mock)
	return httptest.NewServer(router)
}

func TestGetAttempts(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := &interactorMock{
		attempts: []entities.PaymentAttempt{
			{
				Model:      gorm.Model{ID: 1, CreatedAt: created},
				OrderCode:  "BK1001",
				BillID:     "8X0Iyzaw",
				MethodCode: "BILLPLZ",
				Status:     entities.AttemptStatusConfirmed,
				Amount:     entities.Amount{ISOCurrency: "MYR", GrossCent: 1350},
			},
		},
	}
	srv := newTestServer(mock)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/attempts/BK1001?bill_id=8X0Iyzaw")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed common.Response[GetAttemptsResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotNil(t, parsed.Payload)
	require.Len(t, parsed.Payload.Attempts, 1)

	row := parsed.Payload.Attempts[0]
	require.Equal(t, "BK1001", row.OrderCode)
	require.Equal(t, "8X0Iyzaw", row.BillID)
	require.Equal(t, "confirmed", row.Status)
	require.Equal(t, int64(1350), row.Amount)
	require.Equal(t, "MYR", row.CurrencyCode)
	require.Equal(t, created, row.CreatedAt)

	require.Equal(t, []entities.AttemptQuery{{OrderCode: "BK1001", BillID: "8X0Iyzaw"}}, mock.queries)
}

func TestGetAttemptsEmptyResult(t *testing.T) {
	srv := newTestServer(&interactorMock{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/attempts/BK1001")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed common.Response[GetAttemptsResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotNil(t, parsed.Payload)
	require.Empty(t, parsed.Payload.Attempts)
}

func TestGetAttemptsForbidden(t *testing.T) {
	mock := &interactorMock{
		attemptsErr: apierrors.NewForbidden("no permission to read payment attempts"),
	}
	srv := newTestServer(mock)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/attempts/BK1001")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
