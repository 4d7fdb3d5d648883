package fleetmanager

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams"
)

var (
	// ErrOrderNotFound means the booking code matched no order. Callback
	// processing treats this as ignorable, not as a failure.
	ErrOrderNotFound = errors.New("no order matches the given booking code")
)

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

func New(fleetManagerBaseUrl string, fixedApiToken string) (FleetManager, error) {
	if fleetManagerBaseUrl == "" {
		return nil, errors.New("service.fleet_manager_service not configured. This service cannot function without the host application")
	}

	client, err := downstreams.ClientWith(
		downstreams.ApiTokenRequestManipulator(fixedApiToken),
		"fleet-manager-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		client:  client,
		baseUrl: fleetManagerBaseUrl,
	}, nil
}

func (i *Impl) GetOrderByCode(ctx context.Context, bookingCode string) (Order, error) {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/orders/by-code/%s", i.baseUrl, url.PathEscape(bookingCode))
	bodyDto := Order{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(ctx, http.MethodGet, requestUrl, nil, &response)
	if err == nil && response.Status == http.StatusNotFound {
		return Order{}, ErrOrderNotFound
	}
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}

func (i *Impl) GetCustomer(ctx context.Context, customerID int64) (Customer, error) {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/customers/%d", i.baseUrl, customerID)
	bodyDto := Customer{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(ctx, http.MethodGet, requestUrl, nil, &response)
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}

type confirmOrderDto struct {
	CustomerEmail string `json:"customer_email"`
}

func (i *Impl) ConfirmOrder(ctx context.Context, orderID int64, customerEmail string) error {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/orders/%d/confirm", i.baseUrl, orderID)
	response := aurestclientapi.ParsedResponse{}
	err := i.client.Perform(ctx, http.MethodPost, requestUrl, confirmOrderDto{CustomerEmail: customerEmail}, &response)
	return downstreams.ErrByStatus(err, response.Status)
}

func (i *Impl) AppendInvoiceNote(ctx context.Context, orderID int64, note InvoiceNote) error {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/orders/%d/invoice-notes", i.baseUrl, orderID)
	response := aurestclientapi.ParsedResponse{}
	err := i.client.Perform(ctx, http.MethodPost, requestUrl, note, &response)
	return downstreams.ErrByStatus(err, response.Status)
}

func (i *Impl) SendOrderConfirmedNotifications(ctx context.Context, orderID int64) error {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/orders/%d/notify-confirmed", i.baseUrl, orderID)
	response := aurestclientapi.ParsedResponse{}
	err := i.client.Perform(ctx, http.MethodPost, requestUrl, nil, &response)
	return downstreams.ErrByStatus(err, response.Status)
}

type pageUrlDto struct {
	URL string `json:"url"`
}

func (i *Impl) TranslatedPageURL(ctx context.Context, pageID int) (string, error) {
	requestUrl := fmt.Sprintf("%s/api/rest/v1/pages/%d/url", i.baseUrl, pageID)
	bodyDto := pageUrlDto{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(ctx, http.MethodGet, requestUrl, nil, &response)
	return bodyDto.URL, downstreams.ErrByStatus(err, response.Status)
}
