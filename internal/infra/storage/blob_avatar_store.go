// Package storage provides blob-backed implementations of file storage services.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the file:// bucket driver used for local development.
	_ "gocloud.dev/blob/fileblob"
)

const avatarPrefix = "avatars/"

// blobAvatarStore implements service.AvatarStore on top of a gocloud blob bucket.
type blobAvatarStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// AvatarStoreParams holds dependencies for the avatar store, injected by Fx.
type AvatarStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobAvatarStore opens the configured bucket and returns an AvatarStore.
func NewBlobAvatarStore(params AvatarStoreParams) (service.AvatarStore, error) {
	if params.Config.Uploads == nil || params.Config.Uploads.BucketURL == "" {
		params.Logger.Info("Uploads bucket not configured, avatar uploads disabled")

		return nil, nil // Avatar uploads are optional
	}

	bucket, err := blob.OpenBucket(params.Ctx, params.Config.Uploads.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploads bucket")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return &blobAvatarStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(params.Config.Uploads.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// newBlobAvatarStore builds a store around an already-open bucket. Used by tests.
func newBlobAvatarStore(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) *blobAvatarStore {
	return &blobAvatarStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Save writes the avatar image under a per-user key and returns its public URL.
// The key keeps the original file extension so static serving picks the right
// content type; a user's previous avatar with the same extension is overwritten.
func (s *blobAvatarStore) Save(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := avatarPrefix + userID.String() + ext

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	written, err := io.Copy(writer, body)
	if err != nil {
		// Close discards the partial write on error.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write avatar")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar write")
	}

	s.logger.Debug("Avatar stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(written)),
	)

	return s.publicBaseURL + "/" + key, nil
}
