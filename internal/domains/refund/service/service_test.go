package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"condotel/config"
	kafkaMocks "condotel/infras/kafka/mocks"
	mailerMocks "condotel/infras/mailer/mocks"
	otelMocks "condotel/infras/otel/mocks"
	"condotel/infras/paygate"
	paygateMocks "condotel/infras/paygate/mocks"
	bookingMocks "condotel/internal/domains/booking/mocks"
	bookingModel "condotel/internal/domains/booking/model"
	lifecycleMocks "condotel/internal/domains/booking/service/mocks"
	"condotel/internal/domains/refund/mocks"
	"condotel/internal/domains/refund/model"
	"condotel/internal/domains/refund/model/dto"
	"condotel/internal/domains/refund/service"
	userMocks "condotel/internal/domains/user/mocks"
	userModel "condotel/internal/domains/user/model"
	"condotel/shared/constant"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

type refundFixture struct {
	repo      *mocks.MockRefund
	bookings  *bookingMocks.MockBooking
	lifecycle *lifecycleMocks.MockBooking
	users     *userMocks.MockUser
	gate      *paygateMocks.MockClient
	cfg       *config.Config
	svc       service.Refund
}

func newRefundFixture(t *testing.T) *refundFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &refundFixture{
		repo:      mocks.NewMockRefund(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		lifecycle: lifecycleMocks.NewMockBooking(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		gate:      paygateMocks.NewMockClient(ctrl),
		cfg:       &config.Config{},
	}

	f.cfg.Booking.CheckInHour = 14
	f.cfg.Booking.RefundCutoffHours = 48

	events := kafkaMocks.NewMockClient(ctrl)
	mail := mailerMocks.NewMockMailer(ctrl)

	// Events and emails fan out on detached goroutines; they may or may not
	// land before the test finishes. Profile lookups share the leniency since
	// the settle path resolves the customer asynchronously too.
	events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mail.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{
		ID:                42,
		Email:             "guest@example.com",
		BankCode:          "VCB",
		BankAccountNumber: "0011223344",
		BankAccountHolder: "NGUYEN VAN A",
	}, nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, f.lifecycle, f.users, f.gate, events, mail, f.cfg, otelMocks.NewOtel())

	return f
}

func confirmedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:         7,
		CondotelID: 3,
		CustomerID: 42,
		HostID:     9,
		StartDate:  timezone.Now().AddDate(0, 0, 7),
		EndDate:    timezone.Now().AddDate(0, 0, 10),
		TotalPrice: 300_000,
		OrderCode:  7_123_456,
		Status:     bookingModel.StatusConfirmed,
	}
}

func rejectedRefund() model.RefundRequest {
	note := "account number does not exist"

	return model.RefundRequest{
		ID:                "5f0c4f5e-1111-2222-3333-444455556666",
		BookingID:         7,
		CustomerID:        42,
		Amount:            300_000,
		BankCode:          "VCB",
		BankAccountNumber: "0011223344",
		BankAccountHolder: "NGUYEN VAN A",
		Status:            model.StatusRejected,
		Method:            model.MethodManual,
		RejectedNote:      &note,
	}
}

func TestRefundService_Request(t *testing.T) {
	req := dto.RequestRefundRequest{
		BookingID:         7,
		BankCode:          "TCB",
		BankAccountNumber: "9988776655",
		BankAccountHolder: "NGUYEN VAN A",
	}

	t.Run("confirmed booking yields a pending request", func(t *testing.T) {
		f := newRefundFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, refund model.RefundRequest) error {
				assert.Equal(t, model.StatusPending, refund.Status)
				assert.Equal(t, int64(300_000), refund.Amount)
				assert.Equal(t, "TCB", refund.BankCode)
				assert.Equal(t, "9988776655", refund.BankAccountNumber)

				return nil
			})

		res, err := f.svc.Request(context.Background(), 42, req)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, int64(300_000), res.Amount)
	})

	t.Run("bank details fall back to the profile", func(t *testing.T) {
		f := newRefundFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, refund model.RefundRequest) error {
				assert.Equal(t, "VCB", refund.BankCode)
				assert.Equal(t, "0011223344", refund.BankAccountNumber)
				assert.Equal(t, "NGUYEN VAN A", refund.BankAccountHolder)

				return nil
			})

		res, err := f.svc.Request(context.Background(), 42, dto.RequestRefundRequest{BookingID: 7})

		assert.NoError(t, err)
		assert.Equal(t, "VCB", res.BankCode)
	})

	t.Run("unpaid booking is ineligible", func(t *testing.T) {
		f := newRefundFixture(t)

		booking := confirmedBooking()
		booking.Status = bookingModel.StatusPending
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Request(context.Background(), 42, req)

		var ineligible *failure.RefundIneligibleError
		assert.ErrorAs(t, err, &ineligible)
		assert.Equal(t, failure.RefundReasonNotPaid, ineligible.Reason)
	})

	t.Run("completed booking is ineligible", func(t *testing.T) {
		f := newRefundFixture(t)

		booking := confirmedBooking()
		booking.Status = bookingModel.StatusCompleted
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Request(context.Background(), 42, req)

		var ineligible *failure.RefundIneligibleError
		assert.ErrorAs(t, err, &ineligible)
		assert.Equal(t, failure.RefundReasonAlreadyCompleted, ineligible.Reason)
	})

	t.Run("open refund blocks a second request", func(t *testing.T) {
		f := newRefundFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Request(context.Background(), 42, req)

		var ineligible *failure.RefundIneligibleError
		assert.ErrorAs(t, err, &ineligible)
		assert.Equal(t, failure.RefundReasonInProgress, ineligible.Reason)
	})

	t.Run("interleaved request loses to the unique index", func(t *testing.T) {
		f := newRefundFixture(t)

		// Both requests pass the eligibility pre-check before either row
		// lands; the second insert hits the partial unique index.
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		_, err := f.svc.Request(context.Background(), 42, req)

		var ineligible *failure.RefundIneligibleError
		assert.ErrorAs(t, err, &ineligible)
		assert.Equal(t, failure.RefundReasonInProgress, ineligible.Reason)
	})

	t.Run("past the cutoff", func(t *testing.T) {
		f := newRefundFixture(t)

		booking := confirmedBooking()
		booking.StartDate = timezone.Now()
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Request(context.Background(), 42, req)

		var ineligible *failure.RefundIneligibleError
		assert.ErrorAs(t, err, &ineligible)
		assert.Equal(t, failure.RefundReasonPastCutoff, ineligible.Reason)
	})

	t.Run("foreign booking is forbidden", func(t *testing.T) {
		f := newRefundFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)

		_, err := f.svc.Request(context.Background(), 21, req)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("auto refund settles inline", func(t *testing.T) {
		f := newRefundFixture(t)
		f.cfg.Payment.AutoRefund = true

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().Refund(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, gr paygate.RefundRequest) (paygate.RefundResponse, error) {
				assert.Equal(t, int64(7_123_456), gr.OriginalOrderCode)
				assert.Equal(t, int64(300_000), gr.RefundAmount)

				return paygate.RefundResponse{ReferenceID: "RF-0001"}, nil
			})
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, model.StatusRefunded, update[model.FieldStatus])
				assert.Equal(t, model.MethodAuto, update["method"])

				return 1, nil
			})
		f.lifecycle.EXPECT().CancelRefunded(gomock.Any(), int64(7)).Return(nil)

		res, err := f.svc.Request(context.Background(), 42, req)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusRefunded, res.Status)
		assert.Equal(t, model.MethodAuto, res.Method)
		if assert.NotNil(t, res.GatewayRef) {
			assert.Equal(t, "RF-0001", *res.GatewayRef)
		}
	})

	t.Run("gateway failure leaves the request pending", func(t *testing.T) {
		f := newRefundFixture(t)
		f.cfg.Payment.AutoRefund = true

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().Refund(gomock.Any(), gomock.Any()).
			Return(paygate.RefundResponse{}, &failure.GatewayError{Op: "refund", Err: errors.New("status 502")})

		res, err := f.svc.Request(context.Background(), 42, req)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
	})
}

func TestRefundService_Approve(t *testing.T) {
	t.Run("pending refund is completed", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		refund.Status = model.StatusPending
		refund.RejectedNote = nil
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, model.StatusCompleted, update[model.FieldStatus])
				assert.Equal(t, model.MethodManual, update["method"])

				return 1, nil
			})
		f.lifecycle.EXPECT().CancelRefunded(gomock.Any(), int64(7)).Return(nil)

		res, err := f.svc.Approve(context.Background(), refund.ID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, res.Status)
	})

	t.Run("settled refund cannot be approved again", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		refund.Status = model.StatusRefunded
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Approve(context.Background(), refund.ID)

		var illegal *failure.IllegalTransitionError
		assert.ErrorAs(t, err, &illegal)
		assert.Equal(t, model.StatusRefunded, illegal.Current)
	})

	t.Run("unknown refund", func(t *testing.T) {
		f := newRefundFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RefundRequest{}, nil)

		_, err := f.svc.Approve(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRefundService_Reject(t *testing.T) {
	t.Run("pending refund is rejected with a note", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		refund.Status = model.StatusPending
		refund.RejectedNote = nil
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, model.StatusRejected, update[model.FieldStatus])
				assert.Equal(t, "wrong bank code", update["rejected_note"])

				return 1, nil
			})

		res, err := f.svc.Reject(context.Background(), refund.ID, dto.RejectRefundRequest{Note: "wrong bank code"})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, res.Status)
		if assert.NotNil(t, res.RejectedNote) {
			assert.Equal(t, "wrong bank code", *res.RejectedNote)
		}
	})

	t.Run("non-pending refund cannot be rejected", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Reject(context.Background(), refund.ID, dto.RejectRefundRequest{Note: "nope"})

		var illegal *failure.IllegalTransitionError
		assert.ErrorAs(t, err, &illegal)
	})
}

func TestRefundService_Resubmit(t *testing.T) {
	req := dto.ResubmitRefundRequest{
		BankCode:          "ACB",
		BankAccountNumber: "1234567890",
		BankAccountHolder: "NGUYEN VAN A",
	}

	t.Run("rejected refund goes back to pending", func(t *testing.T) {
		f := newRefundFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejectedRefund(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ interface{}) (int64, error) {
				assert.Equal(t, model.StatusPending, update[model.FieldStatus])
				assert.Equal(t, 1, update[model.FieldResubmitCount])
				assert.Equal(t, "ACB", update["bank_code"])
				assert.Nil(t, update["rejected_note"])

				return 1, nil
			})

		res, err := f.svc.Resubmit(context.Background(), 42, rejectedRefund().ID, req)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, 1, res.ResubmitCount)
		assert.Nil(t, res.RejectedNote)
	})

	t.Run("second resubmission is blocked", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		refund.ResubmitCount = model.MaxResubmissions
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)

		_, err := f.svc.Resubmit(context.Background(), 42, refund.ID, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("only a rejected refund can be resubmitted", func(t *testing.T) {
		f := newRefundFixture(t)

		refund := rejectedRefund()
		refund.Status = model.StatusPending
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)

		_, err := f.svc.Resubmit(context.Background(), 42, refund.ID, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("foreign refund is forbidden", func(t *testing.T) {
		f := newRefundFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejectedRefund(), nil)

		_, err := f.svc.Resubmit(context.Background(), 21, rejectedRefund().ID, req)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("concurrent resubmission loses the guard", func(t *testing.T) {
		f := newRefundFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejectedRefund(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Resubmit(context.Background(), 42, rejectedRefund().ID, req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}
