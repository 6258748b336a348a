package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AvatarUpload carries an uploaded avatar file.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UpdateProfileInput defines the data for a profile update.
// Empty fields are left unchanged. An avatar may arrive as an uploaded file
// or as a plain URL; the file wins when both are present.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Password  string
	AvatarURL string
	Avatar    *AvatarUpload
}

// AddAddressInput defines the data required to add an address.
type AddAddressInput struct {
	UserID    uuid.UUID
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	IsDefault bool
}

// ProfileUsecase defines the interface for self-service account operations.
type ProfileUsecase interface {
	// GetProfile loads the caller's profile with addresses and wishlist.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the provided profile changes and returns the
	// updated profile.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// AddAddress stores a new address. A new default address clears any
	// previous default. Returns the full address list.
	AddAddress(ctx context.Context, input *AddAddressInput) ([]entity.Address, error)

	// DeleteAddress removes one of the caller's addresses and returns the
	// remaining list.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) ([]entity.Address, error)

	// ToggleWishlist adds the product to the caller's wishlist, or removes it
	// when already present. Returns the updated wishlist.
	ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) ([]uuid.UUID, error)
}
