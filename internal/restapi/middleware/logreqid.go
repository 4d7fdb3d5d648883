package middleware

import (
	"net/http"

	"github.com/fleetmgmt/billplz-payment-service/internal/common"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
)

func logRequestIdHandler(next http.Handler) func(w http.ResponseWriter, r *http.Request) {
	handlerFunc := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		newCtx := logging.ContextWithLoggerForRequestID(ctx, common.GetRequestID(ctx))
		r = r.WithContext(newCtx)

		next.ServeHTTP(w, r)
	}
	return handlerFunc
}

func LogRequestIdMiddleware() func(http.Handler) http.Handler {
	middlewareCreator := func(next http.Handler) http.Handler {
		return http.HandlerFunc(logRequestIdHandler(next))
	}
	return middlewareCreator
}
