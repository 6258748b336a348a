package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUpdateUserInput defines the fields an admin may change on any account.
// Empty fields are left unchanged.
type AdminUpdateUserInput struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   entity.Role
}

// UserAdminUsecase defines the interface for administrative user management.
type UserAdminUsecase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, input *AdminUpdateUserInput) (*entity.User, error)

	// DeleteUser permanently removes the account and its addresses and
	// wishlist. Orders are kept for bookkeeping.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
