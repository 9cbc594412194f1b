package services

import (
	"context"

	"alfredoptarigan/resume-forge/internal/models"
)

// BlobStore relays a local file to durable remote storage and returns a
// URL that can be fetched without credentials.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) (*models.StoredBlob, error)
}
