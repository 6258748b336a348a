// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved shipping address belonging to a user.
// At most one address per user may have IsDefault set; the persistence
// layer clears other defaults in the same transaction that sets a new one.
type Address struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the address.
	UserID    uuid.UUID // The ID of the owning user.
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	IsDefault bool      // Indicates if this is the user's default shipping address.
	CreatedAt time.Time // Timestamp of when this address was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
