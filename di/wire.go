//go:build wireinject
// +build wireinject

package di

import (
	"sitterhub/config"
	"sitterhub/infras/jwt"
	"sitterhub/infras/kafka"
	"sitterhub/infras/otel"
	"sitterhub/infras/postgres"
	"sitterhub/infras/redis"
	"sitterhub/infras/s3"
	"sitterhub/permissions"
	"sitterhub/shared/cache"
	"sitterhub/transport/cron"
	"sitterhub/transport/http"
	"sitterhub/transport/http/middleware"
	"sitterhub/transport/http/router"

	"github.com/google/wire"

	authService "sitterhub/internal/domains/auth/service"
	bookingRepository "sitterhub/internal/domains/booking/repository"
	bookingService "sitterhub/internal/domains/booking/service"
	sitterRepository "sitterhub/internal/domains/sitter/repository"
	sitterService "sitterhub/internal/domains/sitter/service"
	userRepository "sitterhub/internal/domains/user/repository"
	waiverRepository "sitterhub/internal/domains/waiver/repository"
	waiverService "sitterhub/internal/domains/waiver/service"
	authHandler "sitterhub/internal/handlers/auth"
	bookingHandler "sitterhub/internal/handlers/booking"
	sitterHandler "sitterhub/internal/handlers/sitter"
	waiverHandler "sitterhub/internal/handlers/waiver"
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
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var sitterDomain = wire.NewSet(
	sitterRepository.New,
	sitterService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var waiverDomain = wire.NewSet(
	waiverRepository.New,
	waiverService.New,
)

var domains = wire.NewSet(
	authDomain,
	sitterDomain,
	bookingDomain,
	waiverDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	sitterHandler.New,
	waiverHandler.New,
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

func InitializeSweeper() *cron.Scheduler {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		sitterDomain,
		bookingDomain,
		cron.New,
	)

	return &cron.Scheduler{}
}
