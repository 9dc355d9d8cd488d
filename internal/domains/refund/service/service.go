package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/kafka"
	"condotel/infras/mailer"
	"condotel/infras/otel"
	"condotel/infras/paygate"
	bookingModel "condotel/internal/domains/booking/model"
	bookingRepo "condotel/internal/domains/booking/repository"
	bookingService "condotel/internal/domains/booking/service"
	"condotel/internal/domains/refund/model"
	"condotel/internal/domains/refund/model/dto"
	"condotel/internal/domains/refund/repository"
	userModel "condotel/internal/domains/user/model"
	userRepo "condotel/internal/domains/user/repository"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

type Refund interface {
	Request(ctx context.Context, customerID int64, req dto.RequestRefundRequest) (dto.RefundResponse, error)
	Approve(ctx context.Context, refundID string) (dto.RefundResponse, error)
	Reject(ctx context.Context, refundID string, req dto.RejectRefundRequest) (dto.RefundResponse, error)
	Resubmit(ctx context.Context, customerID int64, refundID string, req dto.ResubmitRefundRequest) (dto.RefundResponse, error)
	Get(ctx context.Context, id string) (dto.RefundResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRefundsResponse, error)
}

type serviceImpl struct {
	repo      repository.Refund
	bookings  bookingRepo.Booking
	lifecycle bookingService.Booking
	users     userRepo.User
	gate      paygate.Client
	events    kafka.Client
	mailer    mailer.Mailer
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Refund,
	bookings bookingRepo.Booking,
	lifecycle bookingService.Booking,
	users userRepo.User,
	gate paygate.Client,
	events kafka.Client,
	mailer mailer.Mailer,
	cfg *config.Config,
	otel otel.Otel,
) Refund {
	return &serviceImpl{
		repo:      repo,
		bookings:  bookings,
		lifecycle: lifecycle,
		users:     users,
		gate:      gate,
		events:    events,
		mailer:    mailer,
		cfg:       cfg,
		otel:      otel,
	}
}

// Request opens a refund for a paid booking. Eligibility failures come back
// as a closed set of typed reasons. When auto refund is configured the
// gateway call happens inline; its failure leaves the request pending for an
// admin rather than failing the call, and the booking is only cancelled once
// the money actually moved.
func (s *serviceImpl) Request(ctx context.Context, customerID int64, req dto.RequestRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", req.BookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.CustomerID != customerID {
		return res, failure.Forbidden("booking belongs to another customer") // nolint:wrapcheck
	}

	if err := s.checkEligibility(ctx, booking); err != nil {
		return res, err
	}

	bankCode, bankNumber, bankHolder := req.BankCode, req.BankAccountNumber, req.BankAccountHolder
	if bankCode == "" || bankNumber == "" {
		customer, err := s.users.Get(ctx, shared.FilterByID(customerID, userModel.FieldID, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Int64("customerId", customerID).Msg("failed to get customer")

			return res, fmt.Errorf("failed to get customer: %w", err)
		}

		if customer.BankCode == "" || customer.BankAccountNumber == "" {
			return res, failure.BadRequestFromString("no bank destination supplied or on file") // nolint:wrapcheck
		}

		bankCode = customer.BankCode
		bankNumber = customer.BankAccountNumber
		bankHolder = customer.BankAccountHolder
	}

	now := timezone.Now()
	refund := model.RefundRequest{
		ID:                uuid.NewString(),
		BookingID:         booking.ID,
		CustomerID:        customerID,
		Amount:            booking.TotalPrice,
		BankCode:          bankCode,
		BankAccountNumber: bankNumber,
		BankAccountHolder: bankHolder,
		Status:            model.StatusPending,
		Method:            model.MethodManual,
	}
	refund.Metadata.CreatedAt = now
	refund.Metadata.CreatedBy = fmt.Sprintf("%d", customerID)

	if err := s.repo.Insert(ctx, refund); err != nil {
		// The partial unique index on pending requests closes the race the
		// eligibility pre-check leaves open between two concurrent requests.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.RefundIneligible(failure.RefundReasonInProgress) // nolint:wrapcheck
		}

		log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to insert refund request")

		return res, fmt.Errorf("failed to insert refund request: %w", err)
	}

	s.publishEvent(ctx, refund)

	if s.cfg.Payment.AutoRefund {
		refund = s.executeAuto(ctx, refund, booking)
	}

	res.FromModel(refund)

	return res, nil
}

// checkEligibility enforces the refund policy. Only a confirmed booking with
// no open refund and enough lead time before check-in qualifies.
func (s *serviceImpl) checkEligibility(ctx context.Context, booking bookingModel.Booking) error {
	switch booking.Status {
	case bookingModel.StatusPending:
		return failure.RefundIneligible(failure.RefundReasonNotPaid) // nolint:wrapcheck
	case bookingModel.StatusInStay, bookingModel.StatusCompleted, bookingModel.StatusCancelled:
		return failure.RefundIneligible(failure.RefundReasonAlreadyCompleted) // nolint:wrapcheck
	}

	open, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to check open refunds")

		return fmt.Errorf("failed to check open refunds: %w", err)
	}

	if open {
		return failure.RefundIneligible(failure.RefundReasonInProgress) // nolint:wrapcheck
	}

	checkIn := time.Date(booking.StartDate.Year(), booking.StartDate.Month(), booking.StartDate.Day(),
		s.cfg.Booking.CheckInHour, 0, 0, 0, booking.StartDate.Location())
	cutoff := checkIn.Add(-time.Duration(s.cfg.Booking.RefundCutoffHours) * time.Hour)

	if timezone.Now().After(cutoff) {
		return failure.RefundIneligible(failure.RefundReasonPastCutoff) // nolint:wrapcheck
	}

	return nil
}

// executeAuto attempts the gateway refund. Any failure is swallowed after
// logging: the request stays pending and resumable, which is the safe state.
func (s *serviceImpl) executeAuto(ctx context.Context, refund model.RefundRequest, booking bookingModel.Booking) model.RefundRequest {
	gatewayRes, err := s.gate.Refund(ctx, paygate.RefundRequest{
		OriginalOrderCode:     booking.OrderCode,
		RefundAmount:          refund.Amount,
		Description:           fmt.Sprintf("Refund booking %d", booking.ID),
		CustomerAccountNumber: refund.BankAccountNumber,
		CustomerBankCode:      refund.BankCode,
	})
	if err != nil {
		log.Error().Err(err).Str("refundId", refund.ID).Msg("gateway refund failed, leaving request pending")

		return refund
	}

	now := timezone.Now()
	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus: model.StatusRefunded,
		"method":          model.MethodAuto,
		"gateway_ref":     gatewayRes.ReferenceID,
		"modified_at":     now,
		"modified_by":     constant.SystemActor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: refund.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil || affected == 0 {
		log.Error().Err(err).Str("refundId", refund.ID).Msg("failed to mark refund as refunded")

		return refund
	}

	refund.Status = model.StatusRefunded
	refund.Method = model.MethodAuto
	refund.GatewayRef = &gatewayRes.ReferenceID

	s.settleBooking(ctx, refund)

	return refund
}

// settleBooking cancels the booking once its refund settled and fans out the
// notifications. Failures here never unwind the refund itself.
func (s *serviceImpl) settleBooking(ctx context.Context, refund model.RefundRequest) {
	if err := s.lifecycle.CancelRefunded(ctx, refund.BookingID); err != nil {
		log.Error().Err(err).Int64("bookingId", refund.BookingID).Msg("failed to cancel booking after refund")
	}

	s.publishEvent(ctx, refund)

	go func() {
		c := context.WithoutCancel(ctx)

		customer, err := s.users.Get(c, shared.FilterByID(refund.CustomerID, userModel.FieldID, userModel.TableName))
		if err != nil || customer.Email == "" {
			log.Error().Err(err).Int64("customerId", refund.CustomerID).Msg("failed to resolve customer email")

			return
		}

		if err := s.mailer.Send(customer.Email, "Your refund has been processed",
			fmt.Sprintf("Refund of %d for booking %d has been processed.", refund.Amount, refund.BookingID)); err != nil {
			log.Error().Err(err).Str("refundId", refund.ID).Msg("failed to send refund email")
		}
	}()
}

// Approve settles a pending refund manually. The admin confirms the payout
// happened outside the gateway.
func (s *serviceImpl) Approve(ctx context.Context, refundID string) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	refund, err := s.getRefund(ctx, refundID)
	if err != nil {
		return res, err
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == "" {
		actor = constant.SystemActor
	}

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus: model.StatusCompleted,
		"method":          model.MethodManual,
		"modified_at":     timezone.Now(),
		"modified_by":     actor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: refundID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("refundId", refundID).Msg("failed to approve refund")

		return res, fmt.Errorf("failed to approve refund: %w", err)
	}

	if affected == 0 {
		return res, failure.IllegalTransition(model.EntityName, model.StatusPending, model.StatusCompleted, refund.Status) // nolint:wrapcheck
	}

	refund.Status = model.StatusCompleted
	refund.Method = model.MethodManual

	s.settleBooking(ctx, refund)

	res.FromModel(refund)

	return res, nil
}

// Reject declines a pending refund with an explanatory note.
func (s *serviceImpl) Reject(ctx context.Context, refundID string, req dto.RejectRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	refund, err := s.getRefund(ctx, refundID)
	if err != nil {
		return res, err
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == "" {
		actor = constant.SystemActor
	}

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus: model.StatusRejected,
		"rejected_note":   req.Note,
		"modified_at":     timezone.Now(),
		"modified_by":     actor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: refundID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("refundId", refundID).Msg("failed to reject refund")

		return res, fmt.Errorf("failed to reject refund: %w", err)
	}

	if affected == 0 {
		return res, failure.IllegalTransition(model.EntityName, model.StatusPending, model.StatusRejected, refund.Status) // nolint:wrapcheck
	}

	refund.Status = model.StatusRejected
	refund.RejectedNote = &req.Note

	s.publishEvent(ctx, refund)

	res.FromModel(refund)

	return res, nil
}

// Resubmit requeues a rejected refund with corrected bank details. Allowed
// exactly once; the counter guard makes a concurrent double resubmission lose.
func (s *serviceImpl) Resubmit(ctx context.Context, customerID int64, refundID string, req dto.ResubmitRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resubmit")
	defer scope.End()
	defer scope.TraceIfError(err)

	refund, err := s.getRefund(ctx, refundID)
	if err != nil {
		return res, err
	}

	if refund.CustomerID != customerID {
		return res, failure.Forbidden("refund request belongs to another customer") // nolint:wrapcheck
	}

	if refund.Status != model.StatusRejected {
		return res, failure.BadRequestFromString("only a rejected refund can be resubmitted") // nolint:wrapcheck
	}

	if refund.ResubmitCount >= model.MaxResubmissions {
		return res, failure.BadRequestFromString("refund resubmission limit reached") // nolint:wrapcheck
	}

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        model.StatusPending,
		model.FieldResubmitCount: refund.ResubmitCount + 1,
		"bank_code":              req.BankCode,
		"bank_account_number":    req.BankAccountNumber,
		"bank_account_holder":    req.BankAccountHolder,
		"rejected_note":          nil,
		"modified_at":            timezone.Now(),
		"modified_by":            fmt.Sprintf("%d", customerID),
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: refundID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusRejected, Table: model.TableName},
			gDto.Filter{Field: model.FieldResubmitCount, Operator: gDto.FilterOperatorEq, Value: refund.ResubmitCount, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("refundId", refundID).Msg("failed to resubmit refund")

		return res, fmt.Errorf("failed to resubmit refund: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict("refund changed concurrently, try again") // nolint:wrapcheck
	}

	refund.Status = model.StatusPending
	refund.ResubmitCount++
	refund.BankCode = req.BankCode
	refund.BankAccountNumber = req.BankAccountNumber
	refund.BankAccountHolder = req.BankAccountHolder
	refund.RejectedNote = nil

	s.publishEvent(ctx, refund)

	if s.cfg.Payment.AutoRefund {
		booking, err := s.bookings.Get(ctx, shared.FilterByID(refund.BookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			log.Error().Err(err).Int64("bookingId", refund.BookingID).Msg("failed to get booking for auto refund")
		} else if booking.ID != 0 {
			refund = s.executeAuto(ctx, refund, booking)
		}
	}

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	refund, err := s.getRefund(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRefundsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count refund requests")

		return res, fmt.Errorf("failed to count refund requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get refund requests")

		return res, fmt.Errorf("failed to get refund requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) getRefund(ctx context.Context, id string) (model.RefundRequest, error) {
	refund, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("refundId", id).Msg("failed to get refund request")

		return refund, fmt.Errorf("failed to get refund request: %w", err)
	}

	if refund.ID == "" {
		return refund, failure.NotFound("refund request not found") // nolint:wrapcheck
	}

	return refund, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, refund model.RefundRequest) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.RefundEvent{
			RefundID:   refund.ID,
			BookingID:  refund.BookingID,
			Status:     refund.Status,
			Amount:     refund.Amount,
			OccurredAt: timezone.Now(),
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topics.RefundEvents, kafka.Message{
			Key:   refund.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("refundId", refund.ID).Msg("failed to publish refund event")
		}
	}()
}
