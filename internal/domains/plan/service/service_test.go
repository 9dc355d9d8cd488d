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
	"condotel/infras/paygate"
	paygateMocks "condotel/infras/paygate/mocks"
	planMocks "condotel/internal/domains/plan/mocks"
	"condotel/internal/domains/plan/model"
	"condotel/internal/domains/plan/model/dto"
	"condotel/internal/domains/plan/service"
	userMocks "condotel/internal/domains/user/mocks"
	userModel "condotel/internal/domains/user/model"
	cacheMocks "condotel/shared/cache/mocks"
	"condotel/shared/constant"
	"condotel/shared/failure"
)

type planFixture struct {
	repo      *planMocks.MockPlan
	purchases *planMocks.MockPurchase
	users     *userMocks.MockUser
	gate      *paygateMocks.MockClient
	svc       service.Plan
}

func newPlanFixture(t *testing.T) *planFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &planFixture{
		repo:      planMocks.NewMockPlan(ctrl),
		purchases: planMocks.NewMockPurchase(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		gate:      paygateMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Payment.ReturnURL = "https://app.example/return"
	cfg.Payment.CancelURL = "https://app.example/cancel"
	cfg.Cache.TTL = 60

	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.purchases, f.users, f.gate, cfg, redisCache, mocks.NewOtel())

	return f
}

func offeredPlan() model.Plan {
	return model.Plan{
		ID:           2,
		Name:         "Pro",
		Price:        1_500_000,
		DurationDays: 30,
		MaxListings:  10,
		Active:       true,
	}
}

func pendingPurchase() model.Purchase {
	return model.Purchase{
		ID:        11,
		PlanID:    2,
		HostID:    9,
		OrderCode: paygate.PlanOrderCode(9, 2),
		Amount:    1_500_000,
		Status:    model.PurchaseStatusPending,
	}
}

func TestPlanService_Purchase(t *testing.T) {
	req := dto.PurchasePlanRequest{PlanID: 2}

	t.Run("opens a pending checkout", func(t *testing.T) {
		f := newPlanFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, purchase model.Purchase) (int64, error) {
				assert.Equal(t, model.PurchaseStatusPending, purchase.Status)
				assert.Equal(t, int64(1_500_000), purchase.Amount)
				assert.GreaterOrEqual(t, purchase.OrderCode, int64(1_000_000_000))

				return 11, nil
			})
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).
			Return(paygate.CreateLinkResponse{CheckoutURL: "https://pay.example/plan"}, nil)

		res, err := f.svc.Purchase(context.Background(), 9, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(11), res.PurchaseID)
		assert.Equal(t, "https://pay.example/plan", res.CheckoutURL)
	})

	t.Run("checkout failure cancels the purchase", func(t *testing.T) {
		f := newPlanFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(11), nil)
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).
			Return(paygate.CreateLinkResponse{}, &failure.GatewayError{Op: "create payment link", Err: errors.New("status 502")})
		f.purchases.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) error {
				assert.Equal(t, model.PurchaseStatusCancelled, update[model.PurchaseFieldStatus])

				return nil
			})

		_, err := f.svc.Purchase(context.Background(), 9, req)

		var gatewayErr *failure.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
	})

	t.Run("retired plan cannot be purchased", func(t *testing.T) {
		f := newPlanFixture(t)

		plan := offeredPlan()
		plan.Active = false
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(plan, nil)

		_, err := f.svc.Purchase(context.Background(), 9, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown plan", func(t *testing.T) {
		f := newPlanFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Plan{}, nil)

		_, err := f.svc.Purchase(context.Background(), 9, req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPlanService_ActivateByOrderCode(t *testing.T) {
	orderCode := pendingPurchase().OrderCode

	t.Run("pending purchase is activated", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPurchase(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, model.PurchaseStatusActive, update[model.PurchaseFieldStatus])
				assert.NotNil(t, update["starts_at"])
				assert.NotNil(t, update["ends_at"])

				return 1, nil
			})
		f.purchases.EXPECT().DeactivateOthers(gomock.Any(), int64(9), int64(11)).Return(int64(1), nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: 9, Role: constant.RoleCustomer}, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) error {
				assert.Equal(t, constant.RoleHost, update[userModel.FieldRole])

				return nil
			})

		assert.NoError(t, f.svc.ActivateByOrderCode(context.Background(), orderCode, 1_500_000))
	})

	t.Run("host keeps an existing host role", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPurchase(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.purchases.EXPECT().DeactivateOthers(gomock.Any(), int64(9), int64(11)).Return(int64(0), nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: 9, Role: constant.RoleHost}, nil)

		assert.NoError(t, f.svc.ActivateByOrderCode(context.Background(), orderCode, 1_500_000))
	})

	t.Run("redelivered activation reports a duplicate", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPurchase(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		active := pendingPurchase()
		active.Status = model.PurchaseStatusActive
		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)

		err := f.svc.ActivateByOrderCode(context.Background(), orderCode, 1_500_000)

		assert.ErrorIs(t, err, failure.ErrDuplicateDelivery)
	})

	t.Run("cancelled purchase cannot be activated", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPurchase(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		cancelled := pendingPurchase()
		cancelled.Status = model.PurchaseStatusCancelled
		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.ActivateByOrderCode(context.Background(), orderCode, 1_500_000)

		var illegal *failure.IllegalTransitionError
		assert.ErrorAs(t, err, &illegal)
		assert.Equal(t, model.PurchaseStatusCancelled, illegal.Current)
	})

	t.Run("unknown order code", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Purchase{}, nil)

		err := f.svc.ActivateByOrderCode(context.Background(), orderCode, 1_500_000)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("amount mismatch still activates", func(t *testing.T) {
		f := newPlanFixture(t)

		f.purchases.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPurchase(), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offeredPlan(), nil)
		f.purchases.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.purchases.EXPECT().DeactivateOthers(gomock.Any(), int64(9), int64(11)).Return(int64(0), nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: 9, Role: constant.RoleHost}, nil)

		assert.NoError(t, f.svc.ActivateByOrderCode(context.Background(), orderCode, 1))
	})
}
