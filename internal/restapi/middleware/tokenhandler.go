package middleware

import (
	"net/http"

	internalcommon "github.com/fleetmgmt/billplz-payment-service/internal/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/common"
)

// tokenHandlerMiddleware guards the host-to-adapter surface with the shared
// fixed api token. Human callers never see these routes.
func tokenHandlerMiddleware(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerToken := r.Header.Get(apiKeyHeader)
		if token != headerToken {
			ctx := r.Context()
			common.SendUnauthorizedResponse(w, internalcommon.GetRequestID(ctx), logging.LoggerFromContext(ctx), "invalid token provided")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func TokenHandlerMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return tokenHandlerMiddleware(token, next)
	}
}
