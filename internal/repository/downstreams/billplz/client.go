package billplz

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams"
)

const (
	productionHost = "www.billplz.com"
	sandboxHost    = "www.billplz-sandbox.com"
)

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

func New(conf config.PaymentConfig) (Billplz, error) {
	if conf.ApiKey == "" {
		return nil, errors.New("payment.api_key not configured. This service cannot talk to the provider without an api key")
	}

	return newClient(BaseURL(conf), EncodeApiKey(conf.ApiKey))
}

func newClient(baseUrl string, encodedApiKey string) (Billplz, error) {
	client, err := downstreams.ClientWith(
		downstreams.BasicAuthRequestManipulator(encodedApiKey),
		"billplz-api-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		client:  client,
		baseUrl: baseUrl,
	}, nil
}

// EncodeApiKey produces the basic auth credential the provider expects, the
// api key as the username with an empty password. Done once, not per request.
func EncodeApiKey(apiKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiKey + ":"))
}

func BaseURL(conf config.PaymentConfig) string {
	host := productionHost
	if conf.Sandbox {
		host = sandboxHost
	}

	scheme := "https"
	if conf.DisableSSL {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

func (i *Impl) CreateBill(ctx context.Context, request BillRequest) (Bill, error) {
	requestUrl := fmt.Sprintf("%s/api/v3/bills/", i.baseUrl)

	formBody := url.Values{}
	formBody.Set("collection_id", request.CollectionID)
	formBody.Set("email", request.PayerEmail)
	formBody.Set("name", request.PayerName)
	formBody.Set("amount", strconv.FormatInt(request.AmountCents, 10))
	formBody.Set("callback_url", request.CallbackURL)
	formBody.Set("redirect_url", request.RedirectURL)
	formBody.Set("description", request.Description)
	formBody.Set("reference_1_label", request.ReferenceLabel)
	formBody.Set("reference_1", request.Reference)
	if request.PayerMobile != "" {
		formBody.Set("mobile", request.PayerMobile)
	}

	bodyDto := Bill{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(ctx, http.MethodPost, requestUrl, formBody, &response)
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}

func (i *Impl) GetBill(ctx context.Context, billID string) (Bill, error) {
	requestUrl := fmt.Sprintf("%s/api/v3/bills/%s", i.baseUrl, url.PathEscape(billID))

	bodyDto := Bill{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}
	err := i.client.Perform(ctx, http.MethodGet, requestUrl, nil, &response)
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}
