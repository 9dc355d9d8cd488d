package payment

import (
	"net/http"

	"condotel/infras/otel"
	"condotel/infras/paygate"
	"condotel/internal/domains/payment/service"
	"condotel/shared/constant"
	"condotel/shared/validator"
	"condotel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/webhook", handler.Webhook)
	})
}

// Webhook receives payment notifications from the gateway.
// The provider retries on any non-2xx status, so only failures that a retry
// could fix are allowed to surface as errors.
// @Summary Payment gateway webhook
// @Description Receive a signed payment notification and reconcile the matching booking or plan purchase.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body paygate.WebhookPayload true "Webhook Payload"
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	payload := paygate.WebhookPayload{}
	if err := validator.Validate(request.Body, &payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate webhook payload")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.HandleWebhook(ctx, payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("order_code", payload.OrderCode).Msg("failed to process payment webhook")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment webhook processed")

	response.WithMessage(writer, http.StatusOK, "Webhook processed")
}
