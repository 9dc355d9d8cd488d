package plan

import (
	"net/http"

	"condotel/infras/otel"
	"condotel/internal/domains/plan/model"
	"condotel/internal/domains/plan/model/dto"
	"condotel/internal/domains/plan/service"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Plan
	otel    otel.Otel
}

func New(service service.Plan, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/plans", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPlans)
		routerGroup.Get("/purchases", handler.GetMyPurchases)
		routerGroup.Get("/{id}", handler.GetPlanByID)
		routerGroup.Post("/{id}/purchase", handler.PurchasePlan)
	})
}

// GetPlans retrieves the available host subscription plans.
// @Summary Get subscription plans
// @Description Retrieve the available host subscription plans.
// @Tags Plan
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetPlansResponse "List of plans"
// @Failure 500 {object} response.Error
// @Router /v1/plans [get]
func (handler *Handler) GetPlans(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlans")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	plans, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get plans")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Plans retrieved successfully")

	response.WithJSON(w, http.StatusOK, plans)
}

// GetMyPurchases retrieves the authenticated host's plan purchases.
// @Summary Get my plan purchases
// @Description Retrieve the plan purchases of the currently authenticated host.
// @Tags Plan
// @Accept json
// @Produce json
// @Success 200 {array} dto.PurchaseResponse "List of purchases"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/plans/purchases [get]
// @Security BearerAuth
func (handler *Handler) GetMyPurchases(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyPurchases")
	defer scope.End()

	hostID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	purchases, err := handler.service.GetPurchases(ctx, hostID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get plan purchases")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Plan purchases retrieved successfully")

	response.WithJSON(w, http.StatusOK, purchases)
}

// GetPlanByID retrieves a subscription plan by its ID.
// @Summary Get a plan by ID
// @Description Retrieve a subscription plan by its unique identifier.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.PlanResponse "Plan details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/plans/{id} [get]
func (handler *Handler) GetPlanByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlanByID")
	defer scope.End()

	id := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if id <= 0 {
		err := failure.BadRequestFromString("invalid plan id")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	plan, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get plan by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Plan retrieved successfully")

	response.WithJSON(w, http.StatusOK, plan)
}

// PurchasePlan starts a plan purchase for the authenticated host.
// @Summary Purchase a subscription plan
// @Description Create a pending purchase for the plan and return the payment checkout link.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Success 201 {object} dto.PurchasePlanResponse "Purchase created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/plans/{id}/purchase [post]
// @Security BearerAuth
func (handler *Handler) PurchasePlan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurchasePlan")
	defer scope.End()

	hostID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if id <= 0 {
		err := failure.BadRequestFromString("invalid plan id")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.PurchasePlanRequest{PlanID: id}

	res, err := handler.service.Purchase(ctx, hostID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purchase plan")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Plan purchase created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
