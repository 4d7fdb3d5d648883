package downstreams

import (
	"context"
	"net/http"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	aurestlogging "github.com/StephanHCB/go-autumn-restclient/implementation/requestlogging"
	"github.com/go-http-utils/headers"

	"github.com/fleetmgmt/billplz-payment-service/internal/common"
)

const apiKeyHeader = "X-Api-Key"
const requestIDHeader = "X-Request-Id"

// bounded timeout, a single slow downstream call must not pin a worker
const requestTimeout = 30 * time.Second

func ApiTokenRequestManipulator(fixedApiToken string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Add(apiKeyHeader, fixedApiToken)
		r.Header.Add(requestIDHeader, common.GetRequestID(ctx))
	}
}

// BasicAuthRequestManipulator adds http basic authentication with an already
// base64 encoded credential, the way the provider expects it.
func BasicAuthRequestManipulator(encodedCredentials string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Add(headers.Authorization, "Basic "+encodedCredentials)
		r.Header.Add(requestIDHeader, common.GetRequestID(ctx))
	}
}

func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(requestTimeout, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := aurestlogging.New(httpClient)

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		15*time.Second,
	)

	return circuitBreakerClient, nil
}
