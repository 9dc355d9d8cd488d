package router

import (
	"condotel/internal/handlers/booking"
	"condotel/internal/handlers/health"
	"condotel/internal/handlers/payment"
	"condotel/internal/handlers/plan"
	"condotel/internal/handlers/refund"
	"condotel/internal/handlers/voucher"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health  health.Handler
	Booking booking.Handler
	Payment payment.Handler
	Refund  refund.Handler
	Voucher voucher.Handler
	Plan    plan.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Refund.Router(routerGroup)
		r.DomainHandlers.Voucher.Router(routerGroup)
		r.DomainHandlers.Plan.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
