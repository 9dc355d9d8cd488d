package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/kafka"
	"condotel/infras/mailer"
	"condotel/infras/otel"
	"condotel/infras/paygate"
	"condotel/internal/domains/booking/model"
	"condotel/internal/domains/booking/model/dto"
	"condotel/internal/domains/booking/repository"
	condotelModel "condotel/internal/domains/condotel/model"
	condotelRepo "condotel/internal/domains/condotel/repository"
	promotionModel "condotel/internal/domains/promotion/model"
	promotionRepo "condotel/internal/domains/promotion/repository"
	userModel "condotel/internal/domains/user/model"
	userRepo "condotel/internal/domains/user/repository"
	voucherService "condotel/internal/domains/voucher/service"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

type Booking interface {
	Create(ctx context.Context, customerID int64, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.BookingResponse, error)

	ConfirmByOrderCode(ctx context.Context, orderCode, amount int64) error
	ConfirmManual(ctx context.Context, bookingID int64) error
	CancelUnpaid(ctx context.Context, bookingID, customerID int64) error
	CancelRefunded(ctx context.Context, bookingID int64) error

	CancelExpiredPending(ctx context.Context, batch int) (int64, error)
	AdvanceDueCheckIns(ctx context.Context, batch int) (int64, error)
	AdvanceDueCheckOuts(ctx context.Context, batch int) (int64, error)
}

type serviceImpl struct {
	repo       repository.Booking
	condotels  condotelRepo.Condotel
	promotions promotionRepo.Promotion
	vouchers   voucherService.Voucher
	users      userRepo.User
	gate       paygate.Client
	events     kafka.Client
	mailer     mailer.Mailer
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	condotels condotelRepo.Condotel,
	promotions promotionRepo.Promotion,
	vouchers voucherService.Voucher,
	users userRepo.User,
	gate paygate.Client,
	events kafka.Client,
	mailer mailer.Mailer,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		condotels:  condotels,
		promotions: promotions,
		vouchers:   vouchers,
		users:      users,
		gate:       gate,
		events:     events,
		mailer:     mailer,
		cfg:        cfg,
		otel:       otel,
	}
}

// Create reserves a unit and opens a checkout. The booking starts pending and
// only the payment webhook (or a manual confirmation) moves it forward.
func (s *serviceImpl) Create(ctx context.Context, customerID int64, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	startDate, err := timezone.Parse(constant.DateOnlyFormat, req.StartDate)
	if err != nil {
		return res, failure.BadRequestFromString("invalid start date") // nolint:wrapcheck
	}

	endDate, err := timezone.Parse(constant.DateOnlyFormat, req.EndDate)
	if err != nil {
		return res, failure.BadRequestFromString("invalid end date") // nolint:wrapcheck
	}

	if !endDate.After(startDate) {
		return res, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	condotel, err := s.condotels.Get(ctx, shared.FilterByID(req.CondotelID, condotelModel.FieldID, condotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get condotel")

		return res, fmt.Errorf("failed to get condotel: %w", err)
	}

	if condotel.ID == 0 || !condotel.Active {
		return res, failure.NotFound("condotel not found") // nolint:wrapcheck
	}

	nights := int64(endDate.Sub(startDate).Hours() / 24)
	totalPrice := nights * condotel.PricePerNight

	if req.PromotionID != nil {
		discounted, err := s.applyPromotion(ctx, *req.PromotionID, condotel.ID, totalPrice)
		if err != nil {
			return res, err
		}

		totalPrice = discounted
	}

	var voucherID *string

	if req.VoucherCode != nil {
		voucher, err := s.vouchers.Redeem(ctx, *req.VoucherCode, condotel.ID, customerID)
		if err != nil {
			return res, err // nolint:wrapcheck
		}

		voucherID = &voucher.ID
		totalPrice = applyVoucherDiscount(totalPrice, voucher.DiscountPercent, voucher.DiscountAmount)
	}

	now := timezone.Now()
	booking := model.Booking{
		CondotelID:  condotel.ID,
		CustomerID:  customerID,
		HostID:      condotel.HostID,
		StartDate:   startDate,
		EndDate:     endDate,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		TotalPrice:  totalPrice,
		Status:      model.StatusPending,
		PromotionID: req.PromotionID,
		VoucherID:   voucherID,
	}
	booking.Metadata.CreatedAt = now
	booking.Metadata.CreatedBy = fmt.Sprintf("%d", customerID)

	bookingID, err := s.repo.InsertReturningID(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	orderCode := paygate.BookingOrderCode(bookingID)

	if err := s.repo.Update(ctx, map[string]any{
		model.FieldOrderCode: orderCode,
		"modified_at":        timezone.Now(),
		"modified_by":        fmt.Sprintf("%d", customerID),
	}, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to set booking order code")

		return res, fmt.Errorf("failed to set booking order code: %w", err)
	}

	link, err := s.gate.CreatePaymentLink(ctx, paygate.CreateLinkRequest{
		OrderCode:   orderCode,
		Amount:      totalPrice,
		Description: fmt.Sprintf("Booking %d", bookingID),
		ReturnURL:   s.cfg.Payment.ReturnURL,
		CancelURL:   s.cfg.Payment.CancelURL,
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to create payment link, cancelling booking")

		if cancelErr := s.CancelUnpaid(ctx, bookingID, customerID); cancelErr != nil {
			log.Error().Err(cancelErr).Int64("bookingId", bookingID).Msg("failed to cancel booking after link failure")
		}

		return res, err
	}

	s.publishEvent(ctx, bookingID, condotel.ID, customerID, model.StatusPending)

	res = dto.CreateBookingResponse{
		BookingID:   bookingID,
		OrderCode:   orderCode,
		TotalPrice:  totalPrice,
		CheckoutURL: link.CheckoutURL,
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// CheckIn consumes a check-in token at the front desk. The token is single
// use; marking it used is guarded on the used timestamp still being empty so
// two concurrent presentations cannot both pass.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCheckInToken, Operator: gDto.FilterOperatorEq, Value: req.Token, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by token")

		return res, fmt.Errorf("failed to get booking by token: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed && booking.Status != model.StatusInStay {
		return res, failure.BadRequestFromString("booking is not checked in yet or already closed") // nolint:wrapcheck
	}

	if booking.TokenUsedAt != nil {
		return res, failure.BadRequestFromString("check-in token already used") // nolint:wrapcheck
	}

	if booking.GuestName != nil && !strings.EqualFold(*booking.GuestName, req.GuestName) {
		return res, failure.Forbidden("guest name does not match the booking") // nolint:wrapcheck
	}

	now := timezone.Now()
	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		"token_used_at": now,
		"modified_at":   now,
		"modified_by":   constant.SystemActor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
			gDto.Filter{Field: "token_used_at", Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to mark check-in token used")

		return res, fmt.Errorf("failed to mark check-in token used: %w", err)
	}

	if affected == 0 {
		return res, failure.BadRequestFromString("check-in token already used") // nolint:wrapcheck
	}

	booking.TokenUsedAt = &now
	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) applyPromotion(ctx context.Context, promotionID, condotelID, price int64) (int64, error) {
	promotion, err := s.promotions.Get(ctx, shared.FilterByID(promotionID, promotionModel.FieldID, promotionModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return 0, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.ID == 0 || promotion.CondotelID != condotelID {
		return 0, failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	now := timezone.Now()
	if promotion.Status != promotionModel.StatusActive || now.Before(promotion.StartDate) || now.After(promotion.EndDate) {
		return 0, failure.BadRequestFromString("promotion is not active") // nolint:wrapcheck
	}

	return price - price*int64(promotion.DiscountPercent)/100, nil
}

func applyVoucherDiscount(price int64, percent int, amount int64) int64 {
	discounted := price

	if percent > 0 {
		discounted -= price * int64(percent) / 100
	}

	if amount > 0 {
		discounted -= amount
	}

	if discounted < 0 {
		return 0
	}

	return discounted
}

func (s *serviceImpl) publishEvent(ctx context.Context, bookingID, condotelID, customerID int64, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.BookingEvent{
			BookingID:  bookingID,
			CondotelID: condotelID,
			CustomerID: customerID,
			Status:     status,
			OccurredAt: timezone.Now(),
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   fmt.Sprintf("%d", bookingID),
			Value: event,
		}); err != nil {
			log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) notify(ctx context.Context, customerID int64, subject, body string) {
	go func() {
		c := context.WithoutCancel(ctx)

		customer, err := s.users.Get(c, shared.FilterByID(customerID, userModel.FieldID, userModel.TableName))
		if err != nil || customer.Email == "" {
			log.Error().Err(err).Int64("customerId", customerID).Msg("failed to resolve customer email")

			return
		}

		if err := s.mailer.Send(customer.Email, subject, body); err != nil {
			log.Error().Err(err).Int64("customerId", customerID).Msg("failed to send booking email")
		}
	}()
}

// dueCutoff returns the exclusive upper bound on the stay-boundary date for a
// time-based advance. Before the boundary hour only dates strictly before
// today are due; at or past it, today's date is due as well. Dates already in
// the past always match, which is what makes a missed scheduler run
// self-healing.
func dueCutoff(now time.Time, boundaryHour int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if now.Hour() >= boundaryHour {
		return today.AddDate(0, 0, 1)
	}

	return today
}
