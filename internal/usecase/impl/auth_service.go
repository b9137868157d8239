// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"novacommerce/config"
	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/domain/service"
	"novacommerce/internal/infra/metrics"
	"novacommerce/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail trims surrounding whitespace and lower-cases the address so
// the same mailbox always maps to the same stored identifier.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new CUSTOMER account. The email uniqueness pre-check
// gives a friendly conflict for the common case; the unique index on the
// email column stays authoritative for concurrent registrations.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	var registeredUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if exists {
			return domainerrors.ErrEmailAlreadyInUse
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}

		newUser := &entity.User{
			Name:         name,
			Email:        email,
			PasswordHash: hashedPassword,
			Role:         entity.RoleCustomer,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		if !errors.Is(err, domainerrors.ErrEmailAlreadyInUse) {
			srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))
		}

		return nil, err
	}

	metrics.UserRegistrationsTotal.Inc()
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser.Public()}, nil
}

// Login verifies the credentials and issues an access token. An unknown email
// and a wrong password both return the same invalid-credentials error so the
// response does not reveal which accounts exist.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.UserLoginsTotal.WithLabelValues(metrics.LoginResultInvalidCredentials).Inc()

			return nil, domainerrors.ErrInvalidCredentials
		}

		srv.log(ctx).Error("Failed to load user during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		metrics.UserLoginsTotal.WithLabelValues(metrics.LoginResultInvalidCredentials).Inc()

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.Sign(user.ID, user.Email, user.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to sign access token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue access token")
	}

	metrics.UserLoginsTotal.WithLabelValues(metrics.LoginResultSuccess).Inc()
	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		User:        user.Public(),
	}, nil
}
