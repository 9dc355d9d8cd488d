package refund

import (
	"net/http"

	"condotel/infras/otel"
	"condotel/internal/domains/refund/model"
	"condotel/internal/domains/refund/model/dto"
	"condotel/internal/domains/refund/service"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/validator"
	"condotel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Refund
	otel    otel.Otel
}

func New(service service.Refund, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/refunds", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RequestRefund)
		routerGroup.Get("/", handler.GetRefunds)
		routerGroup.Get("/{id}", handler.GetRefundByID)
		routerGroup.Post("/{id}/approve", handler.ApproveRefund)
		routerGroup.Post("/{id}/reject", handler.RejectRefund)
		routerGroup.Post("/{id}/resubmit", handler.ResubmitRefund)
	})
}

// RequestRefund opens a refund request for a paid booking.
// @Summary Request a refund
// @Description Open a refund request for a confirmed booking owned by the caller.
// @Tags Refund
// @Accept json
// @Produce json
// @Param request body dto.RequestRefundRequest true "Request Refund Request"
// @Success 201 {object} dto.RefundResponse "Refund requested successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds [post]
// @Security BearerAuth
func (handler *Handler) RequestRefund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestRefund")
	defer scope.End()

	customerID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.RequestRefundRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Request(ctx, customerID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request refund")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Refund requested successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRefunds retrieves refund requests based on query parameters.
// @Summary Get refund requests
// @Description Retrieve refund requests with optional filtering and pagination.
// @Tags Refund
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, completed, refunded, rejected)"
// @Param booking_id query string false "Filter by booking ID"
// @Success 200 {object} dto.GetRefundsResponse "List of refund requests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refunds [get]
// @Security BearerAuth
func (handler *Handler) GetRefunds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefunds")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if bookingID := shared.ConvertStringToInt64(r.URL.Query().Get(model.FieldBookingID)); bookingID > 0 {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
			Table:    model.TableName,
		})
	}

	refunds, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refunds")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refunds retrieved successfully")

	response.WithJSON(w, http.StatusOK, refunds)
}

// GetRefundByID retrieves a refund request by its ID.
// @Summary Get a refund request by ID
// @Description Retrieve a refund request by its unique identifier.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Success 200 {object} dto.RefundResponse "Refund request details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refunds/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRefundByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefundByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	refund, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refund by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refund retrieved successfully")

	response.WithJSON(w, http.StatusOK, refund)
}

// ApproveRefund marks a pending refund as paid out manually.
// @Summary Approve a refund request
// @Description Mark a pending refund request as completed after a manual bank transfer.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Success 200 {object} dto.RefundResponse "Refund approved successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveRefund")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	refund, err := handler.service.Approve(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve refund")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Refund approved successfully by user " + user)

	response.WithJSON(w, http.StatusOK, refund)
}

// RejectRefund rejects a pending refund request with a note.
// @Summary Reject a refund request
// @Description Reject a pending refund request, leaving a note for the customer.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Param request body dto.RejectRefundRequest true "Reject Refund Request"
// @Success 200 {object} dto.RefundResponse "Refund rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectRefund")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectRefundRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	refund, err := handler.service.Reject(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject refund")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Refund rejected successfully by user " + user)

	response.WithJSON(w, http.StatusOK, refund)
}

// ResubmitRefund resubmits a rejected refund request with corrected bank details.
// @Summary Resubmit a rejected refund request
// @Description Resubmit a rejected refund request with corrected bank details. Allowed once per request.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Param request body dto.ResubmitRefundRequest true "Resubmit Refund Request"
// @Success 200 {object} dto.RefundResponse "Refund resubmitted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds/{id}/resubmit [post]
// @Security BearerAuth
func (handler *Handler) ResubmitRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResubmitRefund")
	defer scope.End()

	customerID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ResubmitRefundRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	refund, err := handler.service.Resubmit(ctx, customerID, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resubmit refund")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refund resubmitted successfully")

	response.WithJSON(w, http.StatusOK, refund)
}
