// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity of the storefront.
// PasswordHash never leaves the domain; delivery DTOs omit it.
type User struct {
	ID           uuid.UUID   // The Global Unique Identifier (GUID) for the user.
	Name         string      // The user's display name.
	Email        string      // The user's login identifier. Unique across the system.
	PasswordHash string      // bcrypt hash of the user's password. Write-only.
	AvatarURL    string      // Public URL of the user's avatar image, if any.
	Role         Role        // The user's role (customer or admin).
	Addresses    []Address   // Saved shipping addresses.
	Wishlist     []uuid.UUID // Product IDs the user has wishlisted, insertion order.
	CreatedAt    time.Time   // Timestamp of when this account was created.
	UpdatedAt    time.Time   // Timestamp of the last modification.
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
