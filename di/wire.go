//go:build wireinject
// +build wireinject

package di

import (
	"condotel/config"
	"condotel/infras/jwt"
	"condotel/infras/kafka"
	"condotel/infras/mailer"
	"condotel/infras/otel"
	"condotel/infras/paygate"
	"condotel/infras/postgres"
	"condotel/infras/redis"
	"condotel/internal/schedulers"
	"condotel/permissions"
	"condotel/shared/cache"
	"condotel/transport/http"
	"condotel/transport/http/middleware"
	"condotel/transport/http/router"

	bookingRepository "condotel/internal/domains/booking/repository"
	bookingService "condotel/internal/domains/booking/service"
	condotelRepository "condotel/internal/domains/condotel/repository"
	paymentService "condotel/internal/domains/payment/service"
	planRepository "condotel/internal/domains/plan/repository"
	planService "condotel/internal/domains/plan/service"
	promotionRepository "condotel/internal/domains/promotion/repository"
	refundRepository "condotel/internal/domains/refund/repository"
	refundService "condotel/internal/domains/refund/service"
	userRepository "condotel/internal/domains/user/repository"
	voucherRepository "condotel/internal/domains/voucher/repository"
	voucherService "condotel/internal/domains/voucher/service"

	bookingHandler "condotel/internal/handlers/booking"
	healthHandler "condotel/internal/handlers/health"
	paymentHandler "condotel/internal/handlers/payment"
	planHandler "condotel/internal/handlers/plan"
	refundHandler "condotel/internal/handlers/refund"
	voucherHandler "condotel/internal/handlers/voucher"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	paygate.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var domains = wire.NewSet(
	userRepository.New,
	condotelRepository.New,
	promotionRepository.New,
	voucherRepository.New,
	voucherService.New,
	planRepository.New,
	planRepository.NewPurchase,
	planService.New,
	bookingRepository.New,
	bookingService.New,
	refundRepository.New,
	refundService.New,
	paymentService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	refundHandler.New,
	voucherHandler.New,
	planHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeScheduler() *schedulers.Scheduler {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		mailer.New,
		paygate.New,
		cache.NewRedisCache,
		userRepository.New,
		condotelRepository.New,
		promotionRepository.New,
		voucherRepository.New,
		voucherService.New,
		bookingRepository.New,
		bookingService.New,
		schedulers.New,
	)

	return &schedulers.Scheduler{}
}
