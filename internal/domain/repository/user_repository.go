// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when creating or updating a user would
// violate the unique email constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, including
	// addresses and wishlist entries.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID. The delete is permanent.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all users, newest first.
	List(ctx context.Context) ([]*entity.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// AddWishlistItem records a product on the user's wishlist.
	AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveWishlistItem removes a product from the user's wishlist.
	RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
}
