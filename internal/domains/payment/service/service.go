package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"condotel/infras/otel"
	"condotel/infras/paygate"
	bookingService "condotel/internal/domains/booking/service"
	planService "condotel/internal/domains/plan/service"
	"condotel/shared/constant"
	"condotel/shared/failure"
)

// Payment reconciles inbound gateway callbacks against the entity their order
// code addresses. The provider delivers at least once, so the whole path must
// be idempotent: a duplicate, a stale reference, or an unpaid status all
// resolve to success without touching state.
type Payment interface {
	HandleWebhook(ctx context.Context, payload paygate.WebhookPayload) error
}

type serviceImpl struct {
	gate     paygate.Client
	bookings bookingService.Booking
	plans    planService.Plan
	otel     otel.Otel
}

func New(gate paygate.Client, bookings bookingService.Booking, plans planService.Plan, otel otel.Otel) Payment {
	return &serviceImpl{
		gate:     gate,
		bookings: bookings,
		plans:    plans,
		otel:     otel,
	}
}

func (s *serviceImpl) HandleWebhook(ctx context.Context, payload paygate.WebhookPayload) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.gate.VerifyWebhook(payload); err != nil {
		log.Error().Int64("orderCode", payload.OrderCode).Msg("webhook signature verification failed")

		return failure.ErrAuthenticity // nolint:wrapcheck
	}

	if payload.Code != paygate.CodeSuccess {
		log.Info().Int64("orderCode", payload.OrderCode).Str("code", payload.Code).
			Msg("ignoring non-success payment callback")

		return nil
	}

	target, err := paygate.DecodeOrderCode(payload.OrderCode)
	if err != nil {
		log.Warn().Int64("orderCode", payload.OrderCode).Msg("webhook carries an undecodable order code, consuming")

		return nil
	}

	switch target.Kind {
	case paygate.TargetBooking:
		err = s.bookings.ConfirmByOrderCode(ctx, payload.OrderCode, payload.Amount)
	case paygate.TargetPlanPurchase:
		err = s.plans.ActivateByOrderCode(ctx, payload.OrderCode, payload.Amount)
	default:
		log.Warn().Int64("orderCode", payload.OrderCode).Msg("webhook order code resolves to an unknown target, consuming")

		return nil
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, failure.ErrDuplicateDelivery):
		log.Info().Int64("orderCode", payload.OrderCode).Msg("duplicate payment delivery, already applied")

		return nil
	case failure.GetCode(err) == http.StatusNotFound:
		// The provider retries on failure; a stale reference must not make it
		// retry forever. Consume and leave a trail for investigation.
		log.Warn().Int64("orderCode", payload.OrderCode).Msg("payment references an unknown entity, consuming")

		return nil
	default:
		return fmt.Errorf("failed to reconcile payment: %w", err)
	}
}
