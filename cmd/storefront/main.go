package main

import (
	"context"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/api"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/storage"
	"storefront/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin-seed" {
		runAdminSeed()

		return
	}

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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAddressRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			pubsub.NewEventPublisher,
			storage.NewBlobAvatarStore,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewCatalogService,
			impl.NewOrderService,
			impl.NewUserAdminService,
			impl.NewAnalyticsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewUserHandler,
			handler.NewAnalyticsHandler,
			handler.NewCartHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
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

type adminSeedParams struct {
	fx.In

	Ctx        context.Context
	Cfg        *config.Config
	Logger     *slog.Logger
	TxManager  repository.TransactionManager
	Hasher     service.PasswordHasher
	Shutdowner fx.Shutdowner
}

// runAdminSeed bootstraps the first admin account from configuration and
// exits. It is idempotent: an existing account is promoted instead of
// duplicated, and an account that is already an admin is left untouched.
func runAdminSeed() {
	fx.New(
		injectInfra(),
		injectRepo(),
		fx.Provide(auth.NewBcryptHasher),
		fx.Invoke(seedAdmin),
	).Run()
}

func seedAdmin(params adminSeedParams) error {
	defer func() {
		if err := params.Shutdowner.Shutdown(); err != nil {
			params.Logger.Error("Failed to shut down after seeding", slog.Any("error", err))
		}
	}()

	seed := params.Cfg.AdminSeed
	if seed == nil || seed.Email == "" {
		return errors.New("adminSeed.email must be configured")
	}

	err := params.TxManager.Execute(params.Ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		existing, err := userRepo.FindByEmail(params.Ctx, seed.Email)
		switch {
		case err == nil:
			if existing.IsAdmin() {
				params.Logger.Info("Admin account already present", slog.String("email", seed.Email))

				return nil
			}

			existing.Role = entity.RoleAdmin
			if err := userRepo.Update(params.Ctx, existing); err != nil {
				return errors.Wrap(err, "failed to promote existing user")
			}

			params.Logger.Info("Promoted existing user to admin", slog.String("email", seed.Email))

			return nil
		case errors.Is(err, repository.ErrUserNotFound):
			if seed.Password == "" {
				return errors.New("adminSeed.password must be configured to create a new admin")
			}

			hash, err := params.Hasher.Hash(seed.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash admin password")
			}

			admin := &entity.User{
				Name:         seed.Name,
				Email:        seed.Email,
				PasswordHash: hash,
				Role:         entity.RoleAdmin,
			}
			if err := userRepo.Create(params.Ctx, admin); err != nil {
				return errors.Wrap(err, "failed to create admin user")
			}

			params.Logger.Info("Created admin account", slog.String("email", seed.Email))

			return nil
		default:
			return errors.Wrap(err, "failed to look up admin account")
		}
	})
	if err != nil {
		params.Logger.Error("Admin seeding failed", slog.Any("error", err))

		return err
	}

	return nil
}
