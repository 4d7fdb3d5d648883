package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/interaction"
	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/middleware"
	v1attempts "github.com/fleetmgmt/billplz-payment-service/internal/restapi/v1/attempts"
	v1health "github.com/fleetmgmt/billplz-payment-service/internal/restapi/v1/health"
	v1payments "github.com/fleetmgmt/billplz-payment-service/internal/restapi/v1/payments"
)

func NewServer(ctx context.Context, conf *config.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.BaseAddress, conf.Port),
		Handler:      router,
		ReadTimeout:  time.Second * time.Duration(conf.ReadTimeout),
		WriteTimeout: time.Second * time.Duration(conf.WriteTimeout),
		IdleTimeout:  time.Second * time.Duration(conf.IdleTimeout),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

func CreateRouter(i interaction.Interactor, conf *config.SecurityConfig) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.LogRequestIdMiddleware())
	router.Use(middleware.CorsHeadersMiddleware(conf.Cors))

	setupV1Routes(router, i, conf)

	return router
}

func setupV1Routes(router chi.Router, i interaction.Interactor, conf *config.SecurityConfig) {
	v1health.Create(router)

	router.Route("/api/rest/v1", func(r chi.Router) {
		// the provider posts callbacks without credentials, the bill
		// re-fetch inside the flow is the trust boundary
		v1payments.CreatePublic(r, i)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenHandlerMiddleware(conf.Fixed.Api))
			v1payments.Create(r, i)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CheckRequestAuthorization(conf))
			v1attempts.Create(r, i)
		})
	})
}
