package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/otel"
	"condotel/infras/paygate"
	"condotel/internal/domains/plan/model"
	"condotel/internal/domains/plan/model/dto"
	"condotel/internal/domains/plan/repository"
	userModel "condotel/internal/domains/user/model"
	userRepo "condotel/internal/domains/user/repository"
	"condotel/shared"
	"condotel/shared/cache"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

const (
	cacheGetAllPlan = "plan:gets"
	cacheCountPlan  = "plan:count"
)

type Plan interface {
	Get(ctx context.Context, id int64) (dto.PlanResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPlansResponse, error)
	Purchase(ctx context.Context, hostID int64, req dto.PurchasePlanRequest) (dto.PurchasePlanResponse, error)
	ActivateByOrderCode(ctx context.Context, orderCode, amount int64) error
	GetPurchases(ctx context.Context, hostID int64) ([]dto.PurchaseResponse, error)
}

type serviceImpl struct {
	repo      repository.Plan
	purchases repository.Purchase
	users     userRepo.User
	gate      paygate.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Plan,
	purchases repository.Purchase,
	users userRepo.User,
	gate paygate.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Plan {
	return &serviceImpl{
		repo:      repo,
		purchases: purchases,
		users:     users,
		gate:      gate,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.PlanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	plan, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get plan")

		return res, fmt.Errorf("failed to get plan: %w", err)
	}

	if plan.ID == 0 {
		return res, failure.NotFound("plan not found") // nolint:wrapcheck
	}

	res.FromModel(plan)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPlansResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPlan, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for plans")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count plans")

		return res, fmt.Errorf("failed to count plans: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get plans")

		return res, fmt.Errorf("failed to get plans: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save plans to cache")
		}
	}()

	return res, nil
}

// Purchase opens a checkout for a plan. The purchase row is created pending
// and only flips to active once the payment webhook confirms the order code.
func (s *serviceImpl) Purchase(ctx context.Context, hostID int64, req dto.PurchasePlanRequest) (res dto.PurchasePlanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Purchase")
	defer scope.End()
	defer scope.TraceIfError(err)

	plan, err := s.repo.Get(ctx, shared.FilterByID(req.PlanID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get plan")

		return res, fmt.Errorf("failed to get plan: %w", err)
	}

	if plan.ID == 0 {
		return res, failure.NotFound("plan not found") // nolint:wrapcheck
	}

	if !plan.Active {
		return res, failure.BadRequestFromString("plan is no longer offered") // nolint:wrapcheck
	}

	now := timezone.Now()
	purchase := model.Purchase{
		PlanID:    plan.ID,
		HostID:    hostID,
		OrderCode: paygate.PlanOrderCode(hostID, plan.ID),
		Amount:    plan.Price,
		Status:    model.PurchaseStatusPending,
	}
	purchase.Metadata.CreatedAt = now
	purchase.Metadata.CreatedBy = fmt.Sprintf("%d", hostID)

	purchaseID, err := s.purchases.InsertReturningID(ctx, purchase)
	if err != nil {
		log.Error().Err(err).Int64("planId", plan.ID).Msg("failed to insert plan purchase")

		return res, fmt.Errorf("failed to insert plan purchase: %w", err)
	}

	link, err := s.gate.CreatePaymentLink(ctx, paygate.CreateLinkRequest{
		OrderCode:   purchase.OrderCode,
		Amount:      purchase.Amount,
		Description: fmt.Sprintf("Plan %s", plan.Name),
		ReturnURL:   s.cfg.Payment.ReturnURL,
		CancelURL:   s.cfg.Payment.CancelURL,
	})
	if err != nil {
		log.Error().Err(err).Int64("purchaseId", purchaseID).Msg("failed to create payment link, cancelling purchase")

		if cancelErr := s.purchases.Update(ctx, map[string]any{
			model.PurchaseFieldStatus: model.PurchaseStatusCancelled,
			"modified_at":             timezone.Now(),
			"modified_by":             constant.SystemActor,
		}, shared.FilterByID(purchaseID, model.PurchaseFieldID, model.PurchaseTableName)); cancelErr != nil {
			log.Error().Err(cancelErr).Int64("purchaseId", purchaseID).Msg("failed to cancel plan purchase")
		}

		return res, err
	}

	res = dto.PurchasePlanResponse{
		PurchaseID:  purchaseID,
		OrderCode:   purchase.OrderCode,
		Amount:      purchase.Amount,
		CheckoutURL: link.CheckoutURL,
	}

	return res, nil
}

// ActivateByOrderCode settles a paid plan checkout. The pending to active flip
// is status guarded, so a redelivered webhook finds the purchase already
// active and reports a duplicate instead of extending the subscription twice.
func (s *serviceImpl) ActivateByOrderCode(ctx context.Context, orderCode, amount int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActivateByOrderCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	purchase, err := s.purchases.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.PurchaseFieldOrderCode, Operator: gDto.FilterOperatorEq, Value: orderCode, Table: model.PurchaseTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("orderCode", orderCode).Msg("failed to get plan purchase")

		return fmt.Errorf("failed to get plan purchase: %w", err)
	}

	if purchase.ID == 0 {
		return failure.NotFound("plan purchase not found") // nolint:wrapcheck
	}

	if amount != purchase.Amount {
		log.Warn().Int64("orderCode", orderCode).Int64("expected", purchase.Amount).Int64("got", amount).
			Msg("plan payment amount mismatch")
	}

	plan, err := s.repo.Get(ctx, shared.FilterByID(purchase.PlanID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get plan")

		return fmt.Errorf("failed to get plan: %w", err)
	}

	now := timezone.Now()
	endsAt := now.AddDate(0, 0, plan.DurationDays)

	affected, err := s.purchases.UpdateCount(ctx, map[string]any{
		model.PurchaseFieldStatus: model.PurchaseStatusActive,
		"starts_at":               now,
		"ends_at":                 endsAt,
		"modified_at":             now,
		"modified_by":             constant.SystemActor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.PurchaseFieldID, Operator: gDto.FilterOperatorEq, Value: purchase.ID, Table: model.PurchaseTableName},
			gDto.Filter{Field: model.PurchaseFieldStatus, Operator: gDto.FilterOperatorEq, Value: model.PurchaseStatusPending, Table: model.PurchaseTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("purchaseId", purchase.ID).Msg("failed to activate plan purchase")

		return fmt.Errorf("failed to activate plan purchase: %w", err)
	}

	if affected == 0 {
		current, err := s.purchases.Get(ctx, shared.FilterByID(purchase.ID, model.PurchaseFieldID, model.PurchaseTableName))
		if err != nil {
			log.Error().Err(err).Int64("purchaseId", purchase.ID).Msg("failed to re-read plan purchase")

			return fmt.Errorf("failed to re-read plan purchase: %w", err)
		}

		if current.Status == model.PurchaseStatusActive {
			return failure.ErrDuplicateDelivery // nolint:wrapcheck
		}

		return failure.IllegalTransition(model.PurchaseEntityName, model.PurchaseStatusPending, model.PurchaseStatusActive, current.Status) // nolint:wrapcheck
	}

	if _, err := s.purchases.DeactivateOthers(ctx, purchase.HostID, purchase.ID); err != nil {
		log.Error().Err(err).Int64("hostId", purchase.HostID).Msg("failed to retire previous purchases")

		return fmt.Errorf("failed to retire previous purchases: %w", err)
	}

	if err := s.promoteToHost(ctx, purchase.HostID); err != nil {
		return err
	}

	return nil
}

func (s *serviceImpl) GetPurchases(ctx context.Context, hostID int64) (res []dto.PurchaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPurchases")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.purchases.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.PurchaseFieldHostID, Operator: gDto.FilterOperatorEq, Value: hostID, Table: model.PurchaseTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get plan purchases")

		return nil, fmt.Errorf("failed to get plan purchases: %w", err)
	}

	res = make([]dto.PurchaseResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

// promoteToHost grants the host role after a first paid plan. A user already
// holding the host or admin role is left untouched.
func (s *serviceImpl) promoteToHost(ctx context.Context, userID int64) error {
	user, err := s.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("userId", userID).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if user.Role == constant.RoleHost || user.Role == constant.RoleAdmin {
		return nil
	}

	if err := s.users.Update(ctx, map[string]any{
		userModel.FieldRole: constant.RoleHost,
		"modified_at":       timezone.Now(),
		"modified_by":       constant.SystemActor,
	}, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Int64("userId", userID).Msg("failed to promote user to host")

		return fmt.Errorf("failed to promote user to host: %w", err)
	}

	return nil
}
