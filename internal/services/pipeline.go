package services

import (
	"context"
	"time"

	"alfredoptarigan/resume-forge/internal/logger"
	"alfredoptarigan/resume-forge/internal/models"
)

// Pipeline relays an uploaded document to the blob store and turns the
// completion service's answer into a StructuredArtifact.
type Pipeline interface {
	Run(ctx context.Context, doc *models.UploadedDocument, variant models.TaskVariant) (*PipelineResult, error)
}

// PipelineResult carries whatever the run produced before it stopped; Blob
// is set as soon as the relay succeeds.
type PipelineResult struct {
	Blob     *models.StoredBlob
	Artifact *models.StructuredArtifact
}

type PipelineOptions struct {
	Upload     RetryPolicy
	Fetch      RetryPolicy
	Completion RetryPolicy
	// Validator is optional; nil skips shape validation.
	Validator *ShapeValidator
}

type pipeline struct {
	blobStore  BlobStore
	fetcher    BlobFetcher
	completion CompletionService
	opts       PipelineOptions
}

func NewPipeline(
	blobStore BlobStore,
	fetcher BlobFetcher,
	completion CompletionService,
	opts PipelineOptions,
) Pipeline {
	return &pipeline{
		blobStore:  blobStore,
		fetcher:    fetcher,
		completion: completion,
		opts:       opts,
	}
}

func (p *pipeline) Run(ctx context.Context, doc *models.UploadedDocument, variant models.TaskVariant) (*PipelineResult, error) {
	result := &PipelineResult{}
	reqID := RequestIDFrom(ctx)

	if _, err := TemplateFor(variant); err != nil {
		return result, err
	}

	// Step 1: relay the transient file to the blob store
	logger.Infof("☁️  [%s] Uploading %s to blob store...", reqID, doc.StoredFileName)
	started := time.Now()
	err := p.opts.Upload.Do(ctx, "blob upload", func(ctx context.Context) error {
		blob, err := p.blobStore.Upload(ctx, doc.FilePath)
		if err != nil {
			return err
		}
		result.Blob = blob
		return nil
	})
	if err != nil {
		return result, wrapStage(ErrStorageUpload, err)
	}
	logger.Infof("✅ [%s] Stored at %s (%s)", reqID, result.Blob.URL, time.Since(started).Round(time.Millisecond))

	// Step 2: fetch the bytes back so they can be sent inline
	var attachment []byte
	err = p.opts.Fetch.Do(ctx, "blob fetch", func(ctx context.Context) error {
		data, err := p.fetcher.Fetch(ctx, result.Blob.URL)
		if err != nil {
			return err
		}
		attachment = data
		return nil
	})
	if err != nil {
		return result, wrapStage(ErrBlobFetch, err)
	}

	req, err := BuildCompletionRequest(variant, attachment)
	if err != nil {
		return result, err
	}

	// Step 3: ask the completion service
	logger.Infof("🤖 [%s] Requesting %s completion (%d attachment bytes)...", reqID, variant, len(attachment))
	started = time.Now()
	var text string
	err = p.opts.Completion.Do(ctx, "completion", func(ctx context.Context) error {
		out, err := p.completion.Complete(ctx, req)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return result, wrapStage(ErrCompletionService, err)
	}
	logger.Infof("✅ [%s] Completion received: %d characters (%s)", reqID, len(text), time.Since(started).Round(time.Millisecond))

	// Step 4: normalize into JSON
	artifact, err := ParseArtifact(variant, text)
	if err != nil {
		logger.Warnf("❌ [%s] Completion text is not valid JSON: %v", reqID, err)
		return result, err
	}

	if p.opts.Validator != nil {
		if err := p.opts.Validator.Validate(artifact); err != nil {
			logger.Warnf("❌ [%s] Artifact failed shape validation: %v", reqID, err)
			return result, err
		}
	}

	result.Artifact = artifact
	return result, nil
}

type requestIDKey struct{}

// WithRequestID attaches the HTTP request id to ctx for pipeline logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}
