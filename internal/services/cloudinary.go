package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"alfredoptarigan/resume-forge/internal/models"
)

type cloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (BlobStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &cloudinaryStore{
		cld:    cld,
		folder: folder,
	}, nil
}

// Upload implements BlobStore. Files go up as "raw" resources so Cloudinary
// serves the bytes untouched instead of treating the PDF as an image. No
// public_id is sent: client file names may hold characters Cloudinary
// rejects in ids, so Cloudinary assigns one.
func (s *cloudinaryStore) Upload(ctx context.Context, localPath string) (*models.StoredBlob, error) {
	resp, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: models.ResourceKindRaw,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	if strings.TrimSpace(resp.SecureURL) == "" {
		return nil, fmt.Errorf("cloudinary upload: empty secure url")
	}

	return &models.StoredBlob{
		URL:          resp.SecureURL,
		PublicID:     resp.PublicID,
		Folder:       s.folder,
		ResourceKind: models.ResourceKindRaw,
		Bytes:        int64(resp.Bytes),
	}, nil
}
