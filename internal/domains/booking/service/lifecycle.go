package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"condotel/infras/paygate"
	"condotel/internal/domains/booking/model"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/failure"
	"condotel/shared/timezone"
)

// transition applies one guarded status change. The write is conditioned on
// the row still holding the expected prior status, so out of any number of
// concurrent writers exactly one wins. A loser whose target state is already
// in place gets ErrDuplicateDelivery; any other mismatch is an illegal
// transition and a bug in the caller.
func (s *serviceImpl) transition(ctx context.Context, bookingID int64, from, to, actor string, extra map[string]any) error {
	update := map[string]any{
		model.FieldStatus: to,
		"modified_at":     timezone.Now(),
		"modified_by":     actor,
	}
	for k, v := range extra {
		update[k] = v
	}

	affected, err := s.repo.UpdateCount(ctx, update, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: from, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Str("from", from).Str("to", to).Msg("failed to transition booking")

		return fmt.Errorf("failed to transition booking: %w", err)
	}

	if affected > 0 {
		return nil
	}

	current, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to re-read booking")

		return fmt.Errorf("failed to re-read booking: %w", err)
	}

	if current.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if current.Status == to {
		log.Info().Int64("bookingId", bookingID).Str("status", to).Msg("booking already in target status")

		return failure.ErrDuplicateDelivery // nolint:wrapcheck
	}

	return failure.IllegalTransition(model.EntityName, from, to, current.Status) // nolint:wrapcheck
}

// ConfirmByOrderCode settles a paid checkout reported by the payment webhook.
func (s *serviceImpl) ConfirmByOrderCode(ctx context.Context, orderCode, amount int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmByOrderCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldOrderCode, Operator: gDto.FilterOperatorEq, Value: orderCode, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Int64("orderCode", orderCode).Msg("failed to get booking by order code")

		return fmt.Errorf("failed to get booking by order code: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if amount != booking.TotalPrice {
		log.Warn().Int64("bookingId", booking.ID).Int64("expected", booking.TotalPrice).Int64("got", amount).
			Msg("booking payment amount mismatch")
	}

	return s.confirm(ctx, booking, constant.SystemActor)
}

// ConfirmManual is the operator path for payments the webhook missed or that
// settled offline. The operator is authoritative, but the gateway is consulted
// first so a mismatch leaves a trail. The transition itself is the same
// guarded one the webhook path takes.
func (s *serviceImpl) ConfirmManual(ctx context.Context, bookingID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmManual")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	info, err := s.gate.GetPaymentInfo(ctx, booking.OrderCode)
	switch {
	case err != nil:
		log.Warn().Err(err).Int64("bookingId", bookingID).Msg("gateway payment lookup failed, trusting operator")
	case info.Status != paygate.StatusPaid:
		log.Warn().Int64("bookingId", bookingID).Str("gatewayStatus", info.Status).
			Msg("gateway does not report the order as paid, trusting operator")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == "" {
		actor = constant.SystemActor
	}

	return s.confirm(ctx, booking, actor)
}

func (s *serviceImpl) confirm(ctx context.Context, booking model.Booking, actor string) error {
	token, err := checkInToken(booking.ID)
	if err != nil {
		log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to generate check-in token")

		return err
	}

	now := timezone.Now()

	err = s.transition(ctx, booking.ID, model.StatusPending, model.StatusConfirmed, actor, map[string]any{
		model.FieldCheckInToken: token,
		"token_generated_at":    now,
		"token_used_at":         nil,
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusConfirmed)
	s.notify(ctx, booking.CustomerID, "Your booking is confirmed",
		fmt.Sprintf("Booking %d is confirmed. Present check-in token %s at the front desk.", booking.ID, token))

	return nil
}

// CancelUnpaid cancels a booking that never got paid. Paid bookings must go
// through the refund workflow instead.
func (s *serviceImpl) CancelUnpaid(ctx context.Context, bookingID, customerID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelUnpaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if customerID > 0 && booking.CustomerID != customerID {
		return failure.Forbidden("booking belongs to another customer") // nolint:wrapcheck
	}

	actor := constant.SystemActor
	if customerID > 0 {
		actor = fmt.Sprintf("%d", customerID)
	}

	if err := s.transition(ctx, bookingID, model.StatusPending, model.StatusCancelled, actor, nil); err != nil {
		return err
	}

	s.releaseVoucher(ctx, booking)
	s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusCancelled)

	return nil
}

// CancelRefunded closes a paid booking after its refund settled. This is the
// only path from confirmed to cancelled.
func (s *serviceImpl) CancelRefunded(ctx context.Context, bookingID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelRefunded")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingId", bookingID).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.transition(ctx, bookingID, model.StatusConfirmed, model.StatusCancelled, constant.SystemActor, nil); err != nil {
		return err
	}

	s.releaseVoucher(ctx, booking)
	s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusCancelled)

	return nil
}

// CancelExpiredPending cancels one batch of bookings that sat pending past
// the configured payment grace period. Each row goes through the guarded
// transition so a redeemed voucher is released and the cancellation event
// published, same as a customer cancellation. A payment that lands between
// the read and the write wins: the guard skips the now-confirmed booking.
func (s *serviceImpl) CancelExpiredPending(ctx context.Context, batch int) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelExpiredPending")
	defer scope.End()
	defer scope.TraceIfError(err)

	before := timezone.Now().Add(-time.Duration(s.cfg.Booking.PendingTimeoutMinutes) * time.Minute)

	due, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: batch}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
			gDto.Filter{Field: model.FieldCreatedAt, Operator: gDto.FilterOperatorLess, Value: before, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired pending bookings")

		return 0, fmt.Errorf("failed to list expired pending bookings: %w", err)
	}

	for _, booking := range due {
		err := s.transition(ctx, booking.ID, model.StatusPending, model.StatusCancelled, constant.SystemActor, nil)

		switch {
		case err == nil:
			affected++

			s.releaseVoucher(ctx, booking)
			s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusCancelled)
		case errors.Is(err, failure.ErrDuplicateDelivery):
			// cancelled by the customer between the read and the write
		default:
			var illegal *failure.IllegalTransitionError
			if errors.As(err, &illegal) && illegal.Current == model.StatusConfirmed {
				log.Info().Int64("bookingId", booking.ID).Msg("payment raced the timeout, leaving booking confirmed")

				continue
			}

			log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to cancel expired pending booking")
		}
	}

	return affected, nil
}

// AdvanceDueCheckIns moves confirmed bookings whose stay has started into
// in_stay. A booking is due once the clock passes the check-in boundary hour
// on its start date, or immediately if the start date already elapsed.
func (s *serviceImpl) AdvanceDueCheckIns(ctx context.Context, batch int) (advanced int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdvanceDueCheckIns")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := dueCutoff(timezone.Now(), s.cfg.Booking.CheckInHour)

	due, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: batch}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartDate, Operator: gDto.FilterOperatorLess, Value: cutoff, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings due for check-in")

		return 0, fmt.Errorf("failed to list bookings due for check-in: %w", err)
	}

	for _, booking := range due {
		err := s.transition(ctx, booking.ID, model.StatusConfirmed, model.StatusInStay, constant.SystemActor, nil)

		switch {
		case err == nil:
			advanced++

			s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusInStay)
		case errors.Is(err, failure.ErrDuplicateDelivery):
			// another writer beat this run, nothing to do
		default:
			log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to advance booking to in_stay")
		}
	}

	return advanced, nil
}

// AdvanceDueCheckOuts completes in_stay bookings whose stay has ended, then
// fans out the completion side effects. Voucher issuance and the completion
// email are isolated per booking and never unwind the completion itself.
func (s *serviceImpl) AdvanceDueCheckOuts(ctx context.Context, batch int) (advanced int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdvanceDueCheckOuts")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := dueCutoff(timezone.Now(), s.cfg.Booking.CheckOutHour)

	due, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: batch}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusInStay, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Operator: gDto.FilterOperatorLess, Value: cutoff, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings due for check-out")

		return 0, fmt.Errorf("failed to list bookings due for check-out: %w", err)
	}

	for _, booking := range due {
		err := s.transition(ctx, booking.ID, model.StatusInStay, model.StatusCompleted, constant.SystemActor, nil)

		switch {
		case err == nil:
			advanced++

			s.completeSideEffects(ctx, booking)
		case errors.Is(err, failure.ErrDuplicateDelivery):
			// another writer beat this run, nothing to do
		default:
			log.Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to complete booking")
		}
	}

	return advanced, nil
}

func (s *serviceImpl) completeSideEffects(ctx context.Context, booking model.Booking) {
	if _, err := s.vouchers.IssueForCompletion(ctx, booking.ID, booking.HostID, booking.CustomerID); err != nil {
		log.Error().Err(err).Int64("bookingId", booking.ID).Msg("voucher issuance failed after completion")
	}

	s.publishEvent(ctx, booking.ID, booking.CondotelID, booking.CustomerID, model.StatusCompleted)
	s.notify(ctx, booking.CustomerID, "Thanks for staying with us",
		fmt.Sprintf("Booking %d is completed. We hope to see you again.", booking.ID))
}

func (s *serviceImpl) releaseVoucher(ctx context.Context, booking model.Booking) {
	if booking.VoucherID == nil {
		return
	}

	if err := s.vouchers.Release(ctx, *booking.VoucherID); err != nil {
		log.Error().Err(err).Str("voucherId", *booking.VoucherID).Msg("failed to release voucher after cancellation")
	}
}

func checkInToken(bookingID int64) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return fmt.Sprintf("CK-%d-%s", bookingID, hex.EncodeToString(buf)), nil
}
