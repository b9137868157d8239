package main

import (
	"context"
	"log/slog"
	"os"

	"novacommerce/config"
	"novacommerce/internal/delivery"
	"novacommerce/internal/delivery/http"
	"novacommerce/internal/delivery/http/middleware"
	"novacommerce/internal/delivery/http/router/handler"
	"novacommerce/internal/infra/auth"
	logs "novacommerce/internal/infra/log"
	"novacommerce/internal/infra/persistence/postgres"
	"novacommerce/internal/infra/qrcode"
	"novacommerce/internal/infra/ratelimit"
	"novacommerce/internal/infra/redis"
	"novacommerce/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redis.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCategoryRepository,
			postgres.NewProductRepository,
			postgres.NewCartRepository,
			postgres.NewOrderRepository,
			postgres.NewPaymentRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			ratelimit.NewRedisLimiter,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewPaymentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewPaymentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
