package v1attempts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/interaction"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/media"
)

type attemptHandler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor) {
	handler := attemptHandler{
		interactor: i,
	}

	router.Get("/attempts/{order_code}", common.CreateHandler(
		handler.getAttempts,
		parseGetAttemptsRequest,
		writeGetAttemptsResponse,
	))
}

func (a *attemptHandler) getAttempts(ctx context.Context, request *GetAttemptsRequest, logger logging.Logger) (*GetAttemptsResponse, error) {
	attempts, err := a.interactor.GetAttempts(ctx, entities.AttemptQuery{
		OrderCode: request.OrderCode,
		BillID:    request.BillID,
	})
	if err != nil {
		return nil, err
	}

	result := GetAttemptsResponse{
		Attempts: make([]AttemptDto, 0, len(attempts)),
	}
	for _, attempt := range attempts {
		result.Attempts = append(result.Attempts, AttemptDto{
			OrderCode:    attempt.OrderCode,
			BillID:       attempt.BillID,
			MethodCode:   attempt.MethodCode,
			Status:       string(attempt.Status),
			Amount:       attempt.Amount.GrossCent,
			CurrencyCode: attempt.Amount.ISOCurrency,
			CreatedAt:    attempt.CreatedAt,
		})
	}

	return &result, nil
}

func parseGetAttemptsRequest(r *http.Request) (*GetAttemptsRequest, error) {
	orderCode := chi.URLParam(r, "order_code")
	if orderCode == "" {
		return nil, apierrors.NewBadRequest("order_code must not be empty")
	}

	return &GetAttemptsRequest{
		OrderCode: orderCode,
		BillID:    r.URL.Query().Get("bill_id"),
	}, nil
}

func writeGetAttemptsResponse(ctx context.Context, res *GetAttemptsResponse, w http.ResponseWriter) error {
	w.Header().Add(headers.ContentType, media.ContentTypeApplicationJson)
	return json.NewEncoder(w).Encode(common.NewResponse(res))
}
