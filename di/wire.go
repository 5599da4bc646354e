//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/docstore"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "agenda/internal/domains/appointment/repository"
	appointmentService "agenda/internal/domains/appointment/service"
	appointmentHandler "agenda/internal/handlers/appointment"

	businessRepository "agenda/internal/domains/business/repository"
	businessService "agenda/internal/domains/business/service"
	businessHandler "agenda/internal/handlers/business"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	docstore.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var businessDomain = wire.NewSet(
	businessRepository.New,
	businessService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
	wire.Bind(new(appointmentService.Directory), new(businessService.Directory)),
)

var domains = wire.NewSet(
	businessDomain,
	appointmentDomain,
	wire.Struct(new(Services), "*"),
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	appointmentHandler.New,
	businessHandler.New,
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
		provideStores,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeServices() Services {
	wire.Build(
		configurations,
		infrastructures,
		domains,
	)

	return Services{}
}
