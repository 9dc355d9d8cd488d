package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"condotel/config"
	kafkaMocks "condotel/infras/kafka/mocks"
	mailerMocks "condotel/infras/mailer/mocks"
	"condotel/infras/otel/mocks"
	"condotel/infras/paygate"
	paygateMocks "condotel/infras/paygate/mocks"
	bookingMocks "condotel/internal/domains/booking/mocks"
	"condotel/internal/domains/booking/model"
	"condotel/internal/domains/booking/model/dto"
	"condotel/internal/domains/booking/service"
	condotelMocks "condotel/internal/domains/condotel/mocks"
	condotelModel "condotel/internal/domains/condotel/model"
	promotionMocks "condotel/internal/domains/promotion/mocks"
	promotionModel "condotel/internal/domains/promotion/model"
	userMocks "condotel/internal/domains/user/mocks"
	userModel "condotel/internal/domains/user/model"
	voucherModel "condotel/internal/domains/voucher/model"
	voucherMocks "condotel/internal/domains/voucher/service/mocks"
	"condotel/shared/timezone"
)

type bookingFixture struct {
	repo       *bookingMocks.MockBooking
	condotels  *condotelMocks.MockCondotel
	promotions *promotionMocks.MockPromotion
	vouchers   *voucherMocks.MockVoucher
	users      *userMocks.MockUser
	gate       *paygateMocks.MockClient
	events     *kafkaMocks.MockClient
	mailer     *mailerMocks.MockMailer
	svc        service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &bookingFixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		condotels:  condotelMocks.NewMockCondotel(ctrl),
		promotions: promotionMocks.NewMockPromotion(ctrl),
		vouchers:   voucherMocks.NewMockVoucher(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		gate:       paygateMocks.NewMockClient(ctrl),
		events:     kafkaMocks.NewMockClient(ctrl),
		mailer:     mailerMocks.NewMockMailer(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.PendingTimeoutMinutes = 10
	cfg.Booking.CheckInHour = 14
	cfg.Booking.CheckOutHour = 12

	// Events and notifications fan out on detached goroutines; they may or
	// may not land before the test finishes.
	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{Email: "guest@example.com"}, nil).AnyTimes()
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.condotels, f.promotions, f.vouchers, f.users, f.gate, f.events, f.mailer, cfg, mocks.NewOtel())

	return f
}

func activeCondotel() condotelModel.Condotel {
	return condotelModel.Condotel{
		ID:            3,
		HostID:        9,
		Name:          "Seaview Studio",
		PricePerNight: 100_000,
		Active:        true,
	}
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		CondotelID: 3,
		StartDate:  "2026-09-10",
		EndDate:    "2026-09-13",
	}

	t.Run("happy path", func(t *testing.T) {
		f := newBookingFixture(t)

		f.condotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeCondotel(), nil)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) (int64, error) {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, int64(300_000), booking.TotalPrice)
				assert.Equal(t, int64(9), booking.HostID)

				return 7, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).
			Return(paygate.CreateLinkResponse{CheckoutURL: "https://pay.example/abc"}, nil)

		res, err := f.svc.Create(context.Background(), 42, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), res.BookingID)
		assert.Equal(t, int64(300_000), res.TotalPrice)
		assert.Equal(t, "https://pay.example/abc", res.CheckoutURL)
		assert.Equal(t, int64(7), res.OrderCode/1_000_000)
	})

	t.Run("end date not after start date", func(t *testing.T) {
		f := newBookingFixture(t)

		bad := req
		bad.EndDate = bad.StartDate

		_, err := f.svc.Create(context.Background(), 42, bad)

		assert.Error(t, err)
	})

	t.Run("inactive condotel", func(t *testing.T) {
		f := newBookingFixture(t)

		condotel := activeCondotel()
		condotel.Active = false

		f.condotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(condotel, nil)

		_, err := f.svc.Create(context.Background(), 42, req)

		assert.Error(t, err)
	})

	t.Run("promotion discount applied", func(t *testing.T) {
		f := newBookingFixture(t)

		promotionID := int64(5)
		withPromo := req
		withPromo.PromotionID = &promotionID

		now := timezone.Now()
		f.condotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeCondotel(), nil)
		f.promotions.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promotionModel.Promotion{
			ID:              promotionID,
			CondotelID:      3,
			DiscountPercent: 10,
			StartDate:       now.AddDate(0, 0, -1),
			EndDate:         now.AddDate(0, 0, 30),
			Status:          promotionModel.StatusActive,
		}, nil)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) (int64, error) {
				assert.Equal(t, int64(270_000), booking.TotalPrice)

				return 8, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).Return(paygate.CreateLinkResponse{}, nil)

		_, err := f.svc.Create(context.Background(), 42, withPromo)

		assert.NoError(t, err)
	})

	t.Run("voucher redeemed and applied", func(t *testing.T) {
		f := newBookingFixture(t)

		code := "SUMMER25"
		withVoucher := req
		withVoucher.VoucherCode = &code

		f.condotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeCondotel(), nil)
		f.vouchers.EXPECT().Redeem(gomock.Any(), code, int64(3), int64(42)).
			Return(voucherModel.Voucher{ID: "v-1", DiscountPercent: 25}, nil)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) (int64, error) {
				assert.Equal(t, int64(225_000), booking.TotalPrice)
				assert.NotNil(t, booking.VoucherID)

				return 9, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).Return(paygate.CreateLinkResponse{}, nil)

		_, err := f.svc.Create(context.Background(), 42, withVoucher)

		assert.NoError(t, err)
	})

	t.Run("checkout failure cancels the reservation", func(t *testing.T) {
		f := newBookingFixture(t)

		f.condotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeCondotel(), nil)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(7), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any()).
			Return(paygate.CreateLinkResponse{}, errors.New("gateway down"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: 7, CustomerID: 42, Status: model.StatusPending}, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		_, err := f.svc.Create(context.Background(), 42, req)

		assert.Error(t, err)
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	guestName := "Jamie Doe"
	token := "CK-7-abcdef0123456789"

	confirmed := func() model.Booking {
		booking := model.Booking{
			ID:         7,
			CondotelID: 3,
			CustomerID: 42,
			Status:     model.StatusConfirmed,
			GuestName:  &guestName,
		}
		booking.CheckInToken = &token

		return booking
	}

	t.Run("successful check-in", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{Token: token, GuestName: "jamie doe"})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
	})

	t.Run("guest name mismatch", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{Token: token, GuestName: "Somebody Else"})

		assert.Error(t, err)
	})

	t.Run("token already used", func(t *testing.T) {
		f := newBookingFixture(t)

		used := confirmed()
		now := timezone.Now()
		used.TokenUsedAt = &now

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(used, nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{Token: token, GuestName: guestName})

		assert.Error(t, err)
	})

	t.Run("concurrent use loses the guarded write", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{Token: token, GuestName: guestName})

		assert.Error(t, err)
	})

	t.Run("pending booking cannot check in", func(t *testing.T) {
		f := newBookingFixture(t)

		pending := confirmed()
		pending.Status = model.StatusPending

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{Token: token, GuestName: guestName})

		assert.Error(t, err)
	})
}
