package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userAdminService implements the UserAdminUsecase interface.
type userAdminService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// UserAdminServiceParams holds dependencies for userAdminService, injected by Fx.
type UserAdminServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewUserAdminService is the constructor for userAdminService.
func NewUserAdminService(params UserAdminServiceParams) usecase.UserAdminUsecase {
	return &userAdminService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userAdminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every registered account, newest first.
func (srv *userAdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser returns a single account by ID.
func (srv *userAdminService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// UpdateUser applies the provided name, email and role changes.
func (srv *userAdminService) UpdateUser(ctx context.Context, input *usecase.AdminUpdateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user", slog.Any("userID", input.UserID))

	if input.Role != "" && !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Email != "" {
			user.Email = input.Email
		}
		if input.Role != "" {
			user.Role = input.Role
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
			}

			return errors.Wrap(err, "failed to update user")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user update transaction")
	}

	return updatedUser, nil
}

// DeleteUser permanently removes the account with its addresses and wishlist.
// Orders are kept for bookkeeping.
func (srv *userAdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting user", slog.Any("userID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User deletion failed", slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute user deletion transaction")
	}

	return nil
}
