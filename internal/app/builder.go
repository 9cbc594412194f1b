package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"alfredoptarigan/resume-forge/internal/config"
	"alfredoptarigan/resume-forge/internal/services"
)

// NewBlobStore returns the blob store selected by BLOB_BACKEND.
func NewBlobStore(cfg *config.Config) (services.BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.BlobBackendS3:
		return services.NewS3Store(services.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Folder:    cfg.Storage.Folder,
			URLExpiry: cfg.S3.URLExpiry,
		})
	case config.BlobBackendCloudinary:
		return services.NewCloudinaryStore(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Storage.Folder,
		)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Storage.Backend)
	}
}

// PipelineOptions turns the pipeline config into per-call retry policies.
func PipelineOptions(cfg *config.Config) (services.PipelineOptions, error) {
	policy := func(timeout time.Duration) services.RetryPolicy {
		return services.RetryPolicy{
			Timeout:    timeout,
			MaxRetries: cfg.Pipeline.MaxRetries,
			Delay:      cfg.Pipeline.RetryDelay,
		}
	}

	opts := services.PipelineOptions{
		Upload:     policy(cfg.Pipeline.UploadTimeout),
		Fetch:      policy(cfg.Pipeline.FetchTimeout),
		Completion: policy(cfg.Pipeline.CompletionTimeout),
	}

	if cfg.Pipeline.SchemaValidation {
		validator, err := services.NewShapeValidator()
		if err != nil {
			return services.PipelineOptions{}, fmt.Errorf("failed to compile response schemas: %w", err)
		}
		opts.Validator = validator
	}

	return opts, nil
}

// BuildPipeline wires the blob store, fetcher and Gemini client into a
// Pipeline.
func BuildPipeline(ctx context.Context, cfg *config.Config) (services.Pipeline, error) {
	blobStore, err := NewBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	completion, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}

	opts, err := PipelineOptions(cfg)
	if err != nil {
		return nil, err
	}

	return services.NewPipeline(
		blobStore,
		services.NewHTTPFetcher(&http.Client{}, cfg.Storage.MaxFileSize),
		completion,
		opts,
	), nil
}
