package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AvatarStore defines the interface for persisting uploaded avatar images.
// Implementations return the public URL at which the stored image is served.
type AvatarStore interface {
	// Save writes the avatar image for a user and returns its public URL.
	// Any previous avatar object for the user is overwritten.
	Save(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (string, error)
}
