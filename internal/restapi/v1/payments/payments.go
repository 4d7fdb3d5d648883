package v1payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	internalcommon "github.com/fleetmgmt/billplz-payment-service/internal/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/interaction"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/media"
)

// billIDField is the nested form field the provider posts the bill id in.
const billIDField = "billplz[id]"

type paymentHandler struct {
	interactor interaction.Interactor
}

// Create registers the host-facing initiation endpoint. The caller must
// mount this behind the fixed api token middleware.
func Create(router chi.Router, i interaction.Interactor) {
	handler := paymentHandler{
		interactor: i,
	}

	router.Post("/payments/initiate", common.CreateHandler(
		handler.initiatePayment,
		parseInitiatePaymentRequest,
		writeInitiatePaymentResponse,
	))
}

// CreatePublic registers the provider-facing callback endpoint. It must stay
// reachable without credentials, the status re-fetch is the trust boundary.
func CreatePublic(router chi.Router, i interaction.Interactor) {
	handler := paymentHandler{
		interactor: i,
	}

	router.Post("/payments/callback", handler.handleCallback)
	router.Get("/payments/callback", handler.handleCallback)
}

func (p *paymentHandler) initiatePayment(ctx context.Context, request *InitiatePaymentRequest, logger logging.Logger) (*ProcessingPageDto, error) {
	page, err := p.interactor.GetProcessingPage(ctx, request.OrderCode, request.AmountDue)
	if err != nil {
		return nil, err
	}

	return &ProcessingPageDto{
		CompletedTransactionID: page.CompletedTransactionID,
		OrderCode:              page.OrderCode,
		CurrencyCode:           page.CurrencyCode,
		CurrencySymbol:         page.CurrencySymbol,
		Amount:                 page.Amount,
		HostedPaymentURL:       page.HostedPaymentURL,
		Errors:                 page.Errors,
	}, nil
}

func parseInitiatePaymentRequest(r *http.Request) (*InitiatePaymentRequest, error) {
	var request InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, apierrors.NewBadRequest("invalid json in request body")
	}

	if request.OrderCode == "" {
		return nil, apierrors.NewBadRequest("order_code must not be empty")
	}

	return &request, nil
}

func writeInitiatePaymentResponse(ctx context.Context, res *ProcessingPageDto, w http.ResponseWriter) error {
	w.Header().Add(headers.ContentType, media.ContentTypeApplicationJson)
	return json.NewEncoder(w).Encode(common.NewResponse(res))
}

// handleCallback serves both the server-to-server notification (form POST)
// and the payer's browser return (GET with query parameters). The bill id is
// the only input read from either.
func (p *paymentHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := internalcommon.GetRequestID(ctx)
	logger := logging.LoggerFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		common.SendBadRequestResponse(w, reqID, logger, "could not parse callback parameters")
		return
	}

	billID := r.FormValue(billIDField)
	if billID == "" {
		billID = r.FormValue("id")
	}

	outcome, err := p.interactor.ProcessCallback(ctx, billID)
	if err != nil {
		var statusErr *apierrors.StatusError
		if errors.As(err, &statusErr) {
			switch {
			case apierrors.IsBadRequestError(err):
				common.SendBadRequestResponse(w, reqID, logger, statusErr.Status().Details)
			case apierrors.IsBadGatewayError(err):
				common.SendBadGatewayResponse(w, reqID, logger, statusErr.Status().Details)
			default:
				common.SendInternalServerError(w, reqID, common.InternalErrorMessage, logger, statusErr.Status().Details)
			}
			return
		}

		common.SendInternalServerError(w, reqID, common.InternalErrorMessage, logger, err.Error())
		return
	}

	if outcome.RedirectURL != "" {
		http.Redirect(w, r, outcome.RedirectURL, http.StatusFound)
		return
	}

	// acknowledged but nothing decided - the provider must not redeliver
	w.Header().Add(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(http.StatusOK)
	common.EncodeToJSON(w, CallbackAckDto{Resolution: string(outcome.Resolution)}, logger)
}
