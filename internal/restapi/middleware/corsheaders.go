package middleware

import (
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
)

func corsHeadersHandler(conf config.CorsConfig, next http.Handler) func(w http.ResponseWriter, r *http.Request) {
	handlerFunc := func(w http.ResponseWriter, r *http.Request) {
		if conf.DisableCors {
			logging.LoggerFromContext(r.Context()).Warn("sending headers to disable CORS. This configuration is not intended for production use, only for local development")
			w.Header().Set(headers.AccessControlAllowOrigin, "*")
			w.Header().Set(headers.AccessControlAllowMethods, "POST, GET, OPTIONS")
			w.Header().Set(headers.AccessControlAllowHeaders, "content-type, authorization, x-api-key, x-request-id")
			w.Header().Set(headers.AccessControlExposeHeaders, "x-request-id")
		} else if conf.AllowOrigin != "" {
			w.Header().Set(headers.AccessControlAllowOrigin, conf.AllowOrigin)
			w.Header().Set(headers.AccessControlAllowMethods, "POST, GET, OPTIONS")
			w.Header().Set(headers.AccessControlAllowHeaders, "content-type, authorization, x-api-key, x-request-id")
			w.Header().Set(headers.AccessControlAllowCredentials, "true")
			w.Header().Set(headers.AccessControlExposeHeaders, "x-request-id")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	}
	return handlerFunc
}

func CorsHeadersMiddleware(conf config.CorsConfig) func(http.Handler) http.Handler {
	middlewareCreator := func(next http.Handler) http.Handler {
		return http.HandlerFunc(corsHeadersHandler(conf, next))
	}
	return middlewareCreator
}
