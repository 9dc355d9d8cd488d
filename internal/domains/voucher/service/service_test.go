package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"condotel/config"
	"condotel/infras/otel/mocks"
	condotelMocks "condotel/internal/domains/condotel/mocks"
	condotelModel "condotel/internal/domains/condotel/model"
	userMocks "condotel/internal/domains/user/mocks"
	userModel "condotel/internal/domains/user/model"
	voucherMocks "condotel/internal/domains/voucher/mocks"
	"condotel/internal/domains/voucher/model"
	"condotel/internal/domains/voucher/service"
	cacheMocks "condotel/shared/cache/mocks"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

type voucherFixture struct {
	repo      *voucherMocks.MockVoucher
	users     *userMocks.MockUser
	condotels *condotelMocks.MockCondotel
	cfg       *config.Config
	svc       service.Voucher
}

func newVoucherFixture(t *testing.T) *voucherFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &voucherFixture{
		repo:      voucherMocks.NewMockVoucher(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		condotels: condotelMocks.NewMockCondotel(ctrl),
		cfg:       &config.Config{},
	}

	f.cfg.Voucher.CodeAttempts = 5
	f.cfg.Cache.TTL = 60

	// Cache invalidation runs on detached goroutines.
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.users, f.condotels, f.cfg, redisCache, mocks.NewOtel())

	return f
}

func issuingHost() userModel.User {
	return userModel.User{
		ID:                     9,
		Email:                  "host@example.com",
		AutoIssueVouchers:      true,
		VoucherDiscountPercent: 15,
		VoucherValidDays:       30,
		VoucherUsageLimit:      1,
	}
}

func activeVoucher() model.Voucher {
	guest := int64(42)
	now := timezone.Now()

	return model.Voucher{
		ID:              "8a8f1d34-aaaa-bbbb-cccc-ddddeeeeffff",
		Code:            "WELCOME42X",
		CondotelID:      3,
		HostID:          9,
		UserID:          &guest,
		DiscountPercent: 15,
		StartsAt:        now.AddDate(0, 0, -1),
		EndsAt:          now.AddDate(0, 0, 29),
		UsageLimit:      2,
		UsedCount:       0,
		Status:          model.StatusActive,
	}
}

func TestVoucherService_IssueForCompletion(t *testing.T) {
	t.Run("one voucher per active condotel", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(issuingHost(), nil)
		f.condotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]condotelModel.Condotel{
			{ID: 3, HostID: 9, Active: true},
			{ID: 4, HostID: 9, Active: true},
		}, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.repo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, vouchers []model.Voucher) error {
				assert.Len(t, vouchers, 2)
				for _, v := range vouchers {
					assert.Equal(t, model.StatusActive, v.Status)
					assert.Equal(t, 15, v.DiscountPercent)
					assert.Equal(t, 1, v.UsageLimit)
					if assert.NotNil(t, v.UserID) {
						assert.Equal(t, int64(42), *v.UserID)
					}
				}
				assert.NotEqual(t, vouchers[0].CondotelID, vouchers[1].CondotelID)

				return nil
			})

		issued, err := f.svc.IssueForCompletion(context.Background(), 7, 9, 42)

		assert.NoError(t, err)
		assert.Len(t, issued, 2)
	})

	t.Run("host opted out of auto issuance", func(t *testing.T) {
		f := newVoucherFixture(t)

		host := issuingHost()
		host.AutoIssueVouchers = false
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(host, nil)

		issued, err := f.svc.IssueForCompletion(context.Background(), 7, 9, 42)

		assert.NoError(t, err)
		assert.Empty(t, issued)
	})

	t.Run("host without active condotels", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(issuingHost(), nil)
		f.condotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		issued, err := f.svc.IssueForCompletion(context.Background(), 7, 9, 42)

		assert.NoError(t, err)
		assert.Empty(t, issued)
	})

	t.Run("code space exhausted", func(t *testing.T) {
		f := newVoucherFixture(t)
		f.cfg.Voucher.CodeAttempts = 2

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(issuingHost(), nil)
		f.condotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]condotelModel.Condotel{
			{ID: 3, HostID: 9, Active: true},
		}, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

		_, err := f.svc.IssueForCompletion(context.Background(), 7, 9, 42)

		assert.ErrorIs(t, err, failure.ErrCodeExhausted)
	})
}

func TestVoucherService_Redeem(t *testing.T) {
	t.Run("consumes one use", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeVoucher(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, 1, update[model.FieldUsedCount])
				assert.NotContains(t, update, model.FieldStatus)

				return 1, nil
			})

		voucher, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.NoError(t, err)
		assert.Equal(t, 1, voucher.UsedCount)
		assert.Equal(t, model.StatusActive, voucher.Status)
	})

	t.Run("last use flips the voucher to used", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.UsedCount = 1
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, 2, update[model.FieldUsedCount])
				assert.Equal(t, model.StatusUsed, update[model.FieldStatus])

				return 1, nil
			})

		voucher, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusUsed, voucher.Status)
	})

	t.Run("outside the validity window", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.EndsAt = timezone.Now().AddDate(0, 0, -1)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)

		_, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("scoped to another guest", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeVoucher(), nil)

		_, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 21)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("usage limit reached", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.UsedCount = v.UsageLimit
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)

		_, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("inactive voucher", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.Status = model.StatusExpired
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)

		_, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("concurrent redemption loses the guard", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeVoucher(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Redeem(context.Background(), "WELCOME42X", 3, 42)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Voucher{}, nil)

		_, err := f.svc.Redeem(context.Background(), "NOPE", 3, 42)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVoucherService_Release(t *testing.T) {
	t.Run("returns one use", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.UsedCount = 1
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, 0, update[model.FieldUsedCount])
				assert.NotContains(t, update, model.FieldStatus)

				return 1, nil
			})

		assert.NoError(t, f.svc.Release(context.Background(), v.ID))
	})

	t.Run("reactivates an exhausted voucher", func(t *testing.T) {
		f := newVoucherFixture(t)

		v := activeVoucher()
		v.UsedCount = v.UsageLimit
		v.Status = model.StatusUsed
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(v, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, 1, update[model.FieldUsedCount])
				assert.Equal(t, model.StatusActive, update[model.FieldStatus])

				return 1, nil
			})

		assert.NoError(t, f.svc.Release(context.Background(), v.ID))
	})

	t.Run("noop when nothing was consumed", func(t *testing.T) {
		f := newVoucherFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeVoucher(), nil)

		assert.NoError(t, f.svc.Release(context.Background(), activeVoucher().ID))
	})
}

func TestVoucherService_SweepExpired(t *testing.T) {
	t.Run("flips a batch to expired", func(t *testing.T) {
		f := newVoucherFixture(t)

		before := timezone.Now()
		f.repo.EXPECT().ExpireBatch(gomock.Any(), before, 500).Return(int64(3), nil)

		affected, err := f.svc.SweepExpired(context.Background(), before, 500)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), affected)
	})
}
