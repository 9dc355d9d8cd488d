package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/otel"
	condotelModel "condotel/internal/domains/condotel/model"
	condotelRepo "condotel/internal/domains/condotel/repository"
	userModel "condotel/internal/domains/user/model"
	userRepo "condotel/internal/domains/user/repository"
	"condotel/internal/domains/voucher/model"
	"condotel/internal/domains/voucher/model/dto"
	"condotel/internal/domains/voucher/repository"
	"condotel/shared"
	"condotel/shared/cache"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

const (
	cacheGetAllVoucher = "voucher:gets"
	cacheCountVoucher  = "voucher:count"

	codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength  = 10
)

type Voucher interface {
	IssueForCompletion(ctx context.Context, bookingID, hostID, guestID int64) ([]model.Voucher, error)
	Redeem(ctx context.Context, code string, condotelID, userID int64) (model.Voucher, error)
	Release(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.VoucherResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVouchersResponse, error)
	SweepExpired(ctx context.Context, before time.Time, limit int) (int64, error)
}

type serviceImpl struct {
	repo      repository.Voucher
	users     userRepo.User
	condotels condotelRepo.Condotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Voucher,
	users userRepo.User,
	condotels condotelRepo.Condotel,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Voucher {
	return &serviceImpl{
		repo:      repo,
		users:     users,
		condotels: condotels,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// IssueForCompletion mints guest vouchers after a completed stay, provided
// the host opted in. One voucher is issued per active condotel the host owns,
// each scoped to the completing guest. A host with auto issuance disabled
// yields no vouchers and no error, so completion never fails on voucher
// policy.
func (s *serviceImpl) IssueForCompletion(ctx context.Context, bookingID, hostID, guestID int64) (res []model.Voucher, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IssueForCompletion")
	defer scope.End()
	defer scope.TraceIfError(err)

	host, err := s.users.Get(ctx, shared.FilterByID(hostID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("hostId", hostID).Msg("failed to get host")

		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	if host.ID == 0 {
		return nil, failure.NotFound("host not found") // nolint:wrapcheck
	}

	if !host.AutoIssueVouchers {
		log.Info().Int64("hostId", hostID).Int64("bookingId", bookingID).Msg("host has voucher auto issuance disabled, skipping")

		return nil, nil
	}

	condotels, err := s.condotels.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: condotelModel.FieldHostID, Operator: gDto.FilterOperatorEq, Value: hostID, Table: condotelModel.TableName},
			gDto.Filter{Field: condotelModel.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: condotelModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("hostId", hostID).Msg("failed to get host condotels")

		return nil, fmt.Errorf("failed to get host condotels: %w", err)
	}

	if len(condotels) == 0 {
		log.Info().Int64("hostId", hostID).Msg("host has no active condotels, no vouchers issued")

		return nil, nil
	}

	now := timezone.Now()
	res = make([]model.Voucher, 0, len(condotels))

	for _, c := range condotels {
		code, err := s.generateCode(ctx)
		if err != nil {
			log.Error().Err(err).Int64("bookingId", bookingID).Int64("condotelId", c.ID).Msg("failed to generate voucher code")

			return nil, err
		}

		voucher := model.Voucher{
			ID:              uuid.NewString(),
			Code:            code,
			CondotelID:      c.ID,
			HostID:          hostID,
			UserID:          &guestID,
			BookingID:       &bookingID,
			DiscountPercent: host.VoucherDiscountPercent,
			StartsAt:        now,
			EndsAt:          now.AddDate(0, 0, host.VoucherValidDays),
			UsageLimit:      host.VoucherUsageLimit,
			UsedCount:       0,
			Status:          model.StatusActive,
		}
		voucher.Metadata.CreatedAt = now
		voucher.Metadata.CreatedBy = constant.SystemActor

		res = append(res, voucher)
	}

	if err = s.repo.InsertBulk(ctx, res); err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to insert vouchers")

		return nil, fmt.Errorf("failed to insert vouchers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVoucher)
		shared.InvalidateCaches(c, s.cache, cacheCountVoucher)
	}()

	return res, nil
}

// Redeem consumes one use of a voucher. The usage increment is guarded by the
// used count read beforehand, so two concurrent redemptions of the last use
// cannot both succeed.
func (s *serviceImpl) Redeem(ctx context.Context, code string, condotelID, userID int64) (res model.Voucher, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeem")
	defer scope.End()
	defer scope.TraceIfError(err)

	voucher, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCode, Operator: gDto.FilterOperatorEq, Value: code, Table: model.TableName},
			gDto.Filter{Field: model.FieldCondotelID, Operator: gDto.FilterOperatorEq, Value: condotelID, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to get voucher")

		return res, fmt.Errorf("failed to get voucher: %w", err)
	}

	if voucher.ID == "" {
		return res, failure.NotFound("voucher not found") // nolint:wrapcheck
	}

	if voucher.Status != model.StatusActive {
		return res, failure.BadRequestFromString("voucher is not active") // nolint:wrapcheck
	}

	now := timezone.Now()
	if now.Before(voucher.StartsAt) || now.After(voucher.EndsAt) {
		return res, failure.BadRequestFromString("voucher is outside its validity window") // nolint:wrapcheck
	}

	if voucher.UserID != nil && *voucher.UserID != userID {
		return res, failure.Forbidden("voucher belongs to another guest") // nolint:wrapcheck
	}

	if voucher.UsedCount >= voucher.UsageLimit {
		return res, failure.BadRequestFromString("voucher usage limit reached") // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldUsedCount: voucher.UsedCount + 1,
		"modified_at":        now,
		"modified_by":        fmt.Sprintf("%d", userID),
	}
	if voucher.UsedCount+1 >= voucher.UsageLimit {
		update[model.FieldStatus] = model.StatusUsed
	}

	affected, err := s.repo.UpdateCount(ctx, update, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: voucher.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusActive, Table: model.TableName},
			gDto.Filter{Field: model.FieldUsedCount, Operator: gDto.FilterOperatorEq, Value: voucher.UsedCount, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("voucherId", voucher.ID).Msg("failed to redeem voucher")

		return res, fmt.Errorf("failed to redeem voucher: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict("voucher was redeemed concurrently, try again") // nolint:wrapcheck
	}

	voucher.UsedCount++
	if used, ok := update[model.FieldStatus]; ok {
		voucher.Status = used.(string)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVoucher)
	}()

	return voucher, nil
}

// Release returns one use to a voucher whose booking got cancelled before the
// stay started. A voucher flipped to used by exhausting its limit becomes
// active again.
func (s *serviceImpl) Release(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	voucher, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("voucherId", id).Msg("failed to get voucher")

		return fmt.Errorf("failed to get voucher: %w", err)
	}

	if voucher.ID == "" {
		return failure.NotFound("voucher not found") // nolint:wrapcheck
	}

	if voucher.UsedCount == 0 {
		return nil
	}

	update := map[string]any{
		model.FieldUsedCount: voucher.UsedCount - 1,
		"modified_at":        timezone.Now(),
		"modified_by":        constant.SystemActor,
	}
	if voucher.Status == model.StatusUsed {
		update[model.FieldStatus] = model.StatusActive
	}

	affected, err := s.repo.UpdateCount(ctx, update, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: voucher.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldUsedCount, Operator: gDto.FilterOperatorEq, Value: voucher.UsedCount, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("voucherId", id).Msg("failed to release voucher")

		return fmt.Errorf("failed to release voucher: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("voucher changed concurrently, try again") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVoucher)
	}()

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VoucherResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	voucher, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get voucher")

		return res, fmt.Errorf("failed to get voucher: %w", err)
	}

	if voucher.ID == "" {
		return res, failure.NotFound("voucher not found") // nolint:wrapcheck
	}

	res.FromModel(voucher)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVouchersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVoucher, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vouchers")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vouchers")

		return res, fmt.Errorf("failed to count vouchers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vouchers")

		return res, fmt.Errorf("failed to get vouchers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vouchers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SweepExpired(ctx context.Context, before time.Time, limit int) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SweepExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err = s.repo.ExpireBatch(ctx, before, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep expired vouchers")

		return 0, fmt.Errorf("failed to sweep expired vouchers: %w", err)
	}

	if affected > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			shared.InvalidateCaches(c, s.cache, cacheGetAllVoucher)
		}()
	}

	return affected, nil
}

func (s *serviceImpl) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.cfg.Voucher.CodeAttempts; attempt++ {
		code, err := randomCode(codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate voucher code: %w", err)
		}

		exist, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldCode, Operator: gDto.FilterOperatorEq, Value: code, Table: model.TableName},
			},
		})
		if err != nil {
			return "", fmt.Errorf("failed to check voucher code uniqueness: %w", err)
		}

		if !exist {
			return code, nil
		}
	}

	return "", failure.ErrCodeExhausted // nolint:wrapcheck
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeCharset)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		buf[i] = codeCharset[n.Int64()]
	}

	return string(buf), nil
}
