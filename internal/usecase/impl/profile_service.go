package impl

import (
	"context"
	"log/slog"
	"slices"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	hasher      service.PasswordHasher
	avatarStore service.AvatarStore
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	Hasher      service.PasswordHasher
	AvatarStore service.AvatarStore
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		hasher:      params.Hasher,
		avatarStore: params.AvatarStore,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile loads the caller's profile with addresses and wishlist.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile applies the provided profile changes and returns the updated profile.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", input.UserID))

	avatarURL := input.AvatarURL
	if input.Avatar != nil {
		if srv.avatarStore == nil {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "avatar uploads are not enabled")
		}

		// Store the uploaded file before entering the transaction; blob writes
		// cannot be rolled back anyway.
		storedURL, err := srv.avatarStore.Save(ctx, input.UserID, input.Avatar.Filename, input.Avatar.ContentType, input.Avatar.Body)
		if err != nil {
			srv.log(ctx).Error("Failed to store avatar", slog.Any("userID", input.UserID), slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to store avatar")
		}
		avatarURL = storedURL
	}

	var passwordHash string
	if input.Password != "" {
		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
		}
		passwordHash = hashed
	}

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Email != "" {
			user.Email = input.Email
		}
		if passwordHash != "" {
			user.PasswordHash = passwordHash
		}
		if avatarURL != "" {
			user.AvatarURL = avatarURL
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
			}

			return errors.Wrap(err, "failed to update profile")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updatedUser, nil
}

// AddAddress stores a new address, clearing previous defaults when the new
// address is marked default. Returns the full address list.
func (srv *profileService) AddAddress(ctx context.Context, input *usecase.AddAddressInput) ([]entity.Address, error) {
	srv.log(ctx).Info("Adding address", slog.Any("userID", input.UserID))

	var addresses []entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if input.IsDefault {
			if err := addressRepo.ClearDefaults(ctx, input.UserID); err != nil {
				return errors.Wrap(err, "failed to clear previous default addresses")
			}
		}

		newAddress := &entity.Address{
			UserID:    input.UserID,
			Street:    input.Street,
			City:      input.City,
			State:     input.State,
			ZipCode:   input.ZipCode,
			Country:   input.Country,
			IsDefault: input.IsDefault,
		}

		if err := addressRepo.Create(ctx, newAddress); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		all, err := addressRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to reload addresses")
		}
		addresses = all

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add address", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute add address transaction")
	}

	return addresses, nil
}

// DeleteAddress removes one of the caller's addresses and returns the remaining list.
func (srv *profileService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) ([]entity.Address, error) {
	srv.log(ctx).Info("Deleting address", slog.Any("userID", userID), slog.Any("addressID", addressID))

	var addresses []entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if err := addressRepo.Delete(ctx, userID, addressID); err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "address not found")
			}

			return errors.Wrap(err, "failed to delete address")
		}

		all, err := addressRepo.FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload addresses")
		}
		addresses = all

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete address", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute delete address transaction")
	}

	return addresses, nil
}

// ToggleWishlist adds the product to the wishlist, or removes it when already
// present. Returns the updated wishlist.
func (srv *profileService) ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) ([]uuid.UUID, error) {
	srv.log(ctx).Debug("Toggling wishlist item", slog.Any("userID", userID), slog.Any("productID", productID))

	var wishlist []uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		productRepo := repoFactory.ProductRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to load user for wishlist toggle")
		}

		if slices.Contains(user.Wishlist, productID) {
			if err := userRepo.RemoveWishlistItem(ctx, userID, productID); err != nil {
				return errors.Wrap(err, "failed to remove wishlist item")
			}
		} else {
			if _, err := productRepo.FindByID(ctx, productID); err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
				}

				return errors.Wrap(err, "failed to load product for wishlist toggle")
			}

			if err := userRepo.AddWishlistItem(ctx, userID, productID); err != nil {
				return errors.Wrap(err, "failed to add wishlist item")
			}
		}

		refreshed, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload wishlist")
		}
		wishlist = refreshed.Wishlist

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to toggle wishlist item", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute wishlist toggle transaction")
	}

	return wishlist, nil
}
