// Package schedulers hosts the background workers that advance time-based
// booking state. Every worker's predicate is expressed against absolute
// timestamps, so a missed run is harmless: the next run still matches the
// overdue rows.
package schedulers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/otel"
	bookingService "condotel/internal/domains/booking/service"
	promotionRepo "condotel/internal/domains/promotion/repository"
	voucherService "condotel/internal/domains/voucher/service"
	"condotel/shared/constant"
	"condotel/shared/timezone"
)

type Scheduler struct {
	bookings   bookingService.Booking
	vouchers   voucherService.Voucher
	promotions promotionRepo.Promotion
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	bookings bookingService.Booking,
	vouchers voucherService.Voucher,
	promotions promotionRepo.Promotion,
	cfg *config.Config,
	otel otel.Otel,
) *Scheduler {
	return &Scheduler{
		bookings:   bookings,
		vouchers:   vouchers,
		promotions: promotions,
		cfg:        cfg,
		otel:       otel,
	}
}

// Run starts all workers and blocks until the context is cancelled and every
// worker has drained. Cancellation is only observed between iterations, never
// mid-batch, so a shutdown leaves no half-applied batch behind.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup

	interval := func(seconds int) time.Duration {
		return time.Duration(seconds) * time.Second
	}

	workers := []func(context.Context){
		func(ctx context.Context) {
			s.runEvery(ctx, "pending-timeout-canceller", interval(s.cfg.Scheduler.PendingCancelIntervalSeconds), s.cancelExpiredPending)
		},
		func(ctx context.Context) {
			s.runEvery(ctx, "stay-advancer", interval(s.cfg.Scheduler.StayAdvanceIntervalSeconds), s.advanceStays)
		},
		func(ctx context.Context) {
			s.runDaily(ctx, "promotion-sweeper", timezone.GetLocation(), s.sweepPromotions)
		},
		func(ctx context.Context) {
			s.runDaily(ctx, "voucher-sweeper", time.UTC, s.sweepVouchers)
		},
	}

	for _, worker := range workers {
		wg.Add(1)

		go func(run func(context.Context)) {
			defer wg.Done()

			run(ctx)
		}(worker)
	}

	wg.Wait()
}

// runEvery invokes fn on a fixed interval until the context is cancelled.
func (s *Scheduler) runEvery(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	log.Info().Str("worker", name).Dur("interval", interval).Msg("scheduler worker started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("worker", name).Msg("scheduler worker stopped")

			return
		case <-ticker.C:
			s.runOnce(ctx, name, fn)
		}
	}
}

// runDaily invokes fn once per day at midnight in the given location.
func (s *Scheduler) runDaily(ctx context.Context, name string, loc *time.Location, fn func(context.Context)) {
	log.Info().Str("worker", name).Str("location", loc.String()).Msg("scheduler worker started")

	for {
		now := time.Now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Str("worker", name).Msg("scheduler worker stopped")

			return
		case <-timer.C:
			s.runOnce(ctx, name, fn)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, name string, fn func(context.Context)) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+name)
	defer scope.End()

	fn(ctx)
}

func (s *Scheduler) cancelExpiredPending(ctx context.Context) {
	cancelled, err := s.bookings.CancelExpiredPending(ctx, s.cfg.Scheduler.SweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("pending timeout sweep failed")

		return
	}

	if cancelled > 0 {
		log.Info().Int64("cancelled", cancelled).Msg("cancelled expired pending bookings")
	}
}

func (s *Scheduler) advanceStays(ctx context.Context) {
	checkedIn, err := s.bookings.AdvanceDueCheckIns(ctx, s.cfg.Scheduler.SweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("check-in advance failed")
	} else if checkedIn > 0 {
		log.Info().Int64("advanced", checkedIn).Msg("advanced bookings to in_stay")
	}

	checkedOut, err := s.bookings.AdvanceDueCheckOuts(ctx, s.cfg.Scheduler.SweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("check-out advance failed")
	} else if checkedOut > 0 {
		log.Info().Int64("advanced", checkedOut).Msg("completed checked-out bookings")
	}
}

// sweepPromotions flips every overdue promotion to inactive, batch by batch.
// The cancellation check sits between batches so an in-flight batch always
// commits whole.
func (s *Scheduler) sweepPromotions(ctx context.Context) {
	today := localMidnight(timezone.Now())

	for {
		if ctx.Err() != nil {
			return
		}

		affected, err := s.promotions.ExpireBatch(ctx, today, s.cfg.Scheduler.SweepBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("promotion sweep failed")

			return
		}

		if affected > 0 {
			log.Info().Int64("expired", affected).Msg("deactivated expired promotions")
		}

		if affected < int64(s.cfg.Scheduler.SweepBatchSize) {
			return
		}
	}
}

func (s *Scheduler) sweepVouchers(ctx context.Context) {
	today := localMidnight(timezone.Now())

	for {
		if ctx.Err() != nil {
			return
		}

		affected, err := s.vouchers.SweepExpired(ctx, today, s.cfg.Scheduler.SweepBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("voucher sweep failed")

			return
		}

		if affected > 0 {
			log.Info().Int64("expired", affected).Msg("expired overdue vouchers")
		}

		if affected < int64(s.cfg.Scheduler.SweepBatchSize) {
			return
		}
	}
}

// localMidnight returns the start of now's day in its own location. Truncating
// to 24 hours would land on the UTC day boundary instead.
func localMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
