package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address does not exist or does not
// belong to the requesting user.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the standard operations for address persistence.
type AddressRepository interface {
	// Create persists a new address for a user.
	Create(ctx context.Context, address *entity.Address) error

	// Delete removes an address owned by the given user.
	Delete(ctx context.Context, userID, addressID uuid.UUID) error

	// FindByUser retrieves all addresses for a user, oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Address, error)

	// ClearDefaults unsets the default flag on all of the user's addresses.
	// Called in the same transaction that inserts a new default address.
	ClearDefaults(ctx context.Context, userID uuid.UUID) error
}
