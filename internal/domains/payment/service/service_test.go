package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"condotel/infras/otel/mocks"
	"condotel/infras/paygate"
	paygateMocks "condotel/infras/paygate/mocks"
	bookingMocks "condotel/internal/domains/booking/service/mocks"
	"condotel/internal/domains/payment/service"
	planMocks "condotel/internal/domains/plan/service/mocks"
	"condotel/shared/failure"
)

type paymentFixture struct {
	gate     *paygateMocks.MockClient
	bookings *bookingMocks.MockBooking
	plans    *planMocks.MockPlan
	svc      service.Payment
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &paymentFixture{
		gate:     paygateMocks.NewMockClient(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		plans:    planMocks.NewMockPlan(ctrl),
	}

	f.svc = service.New(f.gate, f.bookings, f.plans, mocks.NewOtel())

	return f
}

func bookingPayload() paygate.WebhookPayload {
	return paygate.WebhookPayload{
		OrderCode: 7_123_456,
		Code:      paygate.CodeSuccess,
		Amount:    300_000,
		Signature: "aabbcc",
	}
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	t.Run("booking payment is routed by magnitude", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)
		f.bookings.EXPECT().ConfirmByOrderCode(gomock.Any(), int64(7_123_456), int64(300_000)).Return(nil)

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("plan purchase payment is routed by magnitude", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		payload.OrderCode = 9_000_002_000_123 // host 9000, plan 2
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)
		f.plans.EXPECT().ActivateByOrderCode(gomock.Any(), payload.OrderCode, int64(300_000)).Return(nil)

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		f.gate.EXPECT().VerifyWebhook(payload).Return(failure.ErrAuthenticity)

		err := f.svc.HandleWebhook(context.Background(), payload)

		assert.ErrorIs(t, err, failure.ErrAuthenticity)
	})

	t.Run("non-success status is consumed untouched", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		payload.Code = "01"
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("undecodable order code is consumed", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		payload.OrderCode = 42
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("duplicate delivery resolves to success", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)
		f.bookings.EXPECT().ConfirmByOrderCode(gomock.Any(), payload.OrderCode, payload.Amount).
			Return(failure.ErrDuplicateDelivery)

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("stale reference is consumed", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)
		f.bookings.EXPECT().ConfirmByOrderCode(gomock.Any(), payload.OrderCode, payload.Amount).
			Return(failure.NotFound("booking not found"))

		assert.NoError(t, f.svc.HandleWebhook(context.Background(), payload))
	})

	t.Run("transient failure bubbles up for a retry", func(t *testing.T) {
		f := newPaymentFixture(t)

		payload := bookingPayload()
		f.gate.EXPECT().VerifyWebhook(payload).Return(nil)
		f.bookings.EXPECT().ConfirmByOrderCode(gomock.Any(), payload.OrderCode, payload.Amount).
			Return(errors.New("connection reset"))

		assert.Error(t, f.svc.HandleWebhook(context.Background(), payload))
	})
}
