package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"alfredoptarigan/resume-forge/internal/models"
)

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Folder    string
	URLExpiry time.Duration
}

type s3Store struct {
	cl     *minio.Client
	bucket string
	folder string
	expiry time.Duration
}

// NewS3Store targets any S3-compatible endpoint. The returned URLs are
// presigned GET links valid for URLExpiry.
func NewS3Store(opts S3Options) (BlobStore, error) {
	cl, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	expiry := opts.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &s3Store{
		cl:     cl,
		bucket: opts.Bucket,
		folder: opts.Folder,
		expiry: expiry,
	}, nil
}

// Upload implements BlobStore.
func (s *s3Store) Upload(ctx context.Context, localPath string) (*models.StoredBlob, error) {
	key := path.Join(s.folder, filepath.Base(localPath))

	info, err := s.cl.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	signed, err := s.cl.PresignedGetObject(ctx, s.bucket, key, s.expiry, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("s3 presign bucket=%s key=%s: %w", s.bucket, key, err)
	}

	return &models.StoredBlob{
		URL:          signed.String(),
		PublicID:     key,
		Folder:       s.folder,
		ResourceKind: models.ResourceKindRaw,
		Bytes:        info.Size,
	}, nil
}
