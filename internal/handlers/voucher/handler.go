package voucher

import (
	"net/http"

	"condotel/infras/otel"
	"condotel/internal/domains/voucher/model"
	"condotel/internal/domains/voucher/service"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Voucher
	otel    otel.Otel
}

func New(service service.Voucher, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vouchers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetVouchers)
		routerGroup.Get("/myvouchers", handler.GetMyVouchers)
		routerGroup.Get("/{id}", handler.GetVoucherByID)
	})
}

// GetVouchers retrieves vouchers based on query parameters.
// @Summary Get vouchers
// @Description Retrieve vouchers with optional filtering and pagination.
// @Tags Voucher
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (active, used, expired, inactive)"
// @Param condotel_id query string false "Filter by condotel ID"
// @Success 200 {object} dto.GetVouchersResponse "List of vouchers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vouchers [get]
// @Security BearerAuth
func (handler *Handler) GetVouchers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVouchers")
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

	if condotelID := shared.ConvertStringToInt64(r.URL.Query().Get(model.FieldCondotelID)); condotelID > 0 {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCondotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    condotelID,
			Table:    model.TableName,
		})
	}

	vouchers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vouchers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vouchers retrieved successfully")

	response.WithJSON(w, http.StatusOK, vouchers)
}

// GetMyVouchers retrieves the vouchers issued to the authenticated user.
// @Summary Get my vouchers
// @Description Retrieve the vouchers issued to the currently authenticated user.
// @Tags Voucher
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetVouchersResponse "List of the user's vouchers"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vouchers/myvouchers [get]
// @Security BearerAuth
func (handler *Handler) GetMyVouchers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyVouchers")
	defer scope.End()

	userID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	vouchers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user vouchers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User vouchers retrieved successfully")

	response.WithJSON(w, http.StatusOK, vouchers)
}

// GetVoucherByID retrieves a voucher by its ID.
// @Summary Get a voucher by ID
// @Description Retrieve a voucher by its unique identifier.
// @Tags Voucher
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse "Voucher details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vouchers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVoucherByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVoucherByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	voucher, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get voucher by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Voucher retrieved successfully")

	response.WithJSON(w, http.StatusOK, voucher)
}
