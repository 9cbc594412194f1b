package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-forge/internal/logger"
	"alfredoptarigan/resume-forge/internal/models"
	"alfredoptarigan/resume-forge/internal/repositories"
	"alfredoptarigan/resume-forge/internal/services"
)

const (
	MessageNoFile       = "No file uploaded"
	MessageUploadFailed = "Upload to Cloudinary failed"

	// HeaderErrorKind names the failing stage; the 500 body is the same
	// for every stage.
	HeaderErrorKind = "X-Error-Kind"

	formFileField = "file"
)

type GenerateHandler struct {
	baseCtx        context.Context
	storageService services.StorageService
	pipeline       services.Pipeline
	inspector      services.DocumentInspector
	submissions    repositories.SubmissionRepository
	inflight       sync.WaitGroup
}

// NewGenerateHandler wires the ingress handler. Outbound calls run under
// baseCtx rather than the client connection, so a disconnecting client does
// not abort them; their deadlines come from the pipeline's retry policies.
func NewGenerateHandler(
	baseCtx context.Context,
	storageService services.StorageService,
	pipeline services.Pipeline,
	inspector services.DocumentInspector,
	submissions repositories.SubmissionRepository,
) *GenerateHandler {
	return &GenerateHandler{
		baseCtx:        baseCtx,
		storageService: storageService,
		pipeline:       pipeline,
		inspector:      inspector,
		submissions:    submissions,
	}
}

// Handle returns the route handler for one task variant.
func (h *GenerateHandler) Handle(variant models.TaskVariant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile(formFileField)
		if err != nil {
			c.Set(HeaderErrorKind, services.ErrorKind(services.ErrMissingFile))
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: MessageNoFile})
		}

		h.inflight.Add(1)
		defer h.inflight.Done()

		requestID := c.GetRespHeader(fiber.HeaderXRequestID)
		started := time.Now()

		doc, err := h.storageService.SaveFile(fileHeader)
		if err != nil {
			logger.Errorf("❌ [%s] Failed to store upload %q: %v", requestID, fileHeader.Filename, err)
			c.Set(HeaderErrorKind, services.ErrorKind(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: MessageUploadFailed})
		}

		// The transient file lives exactly as long as this request.
		defer func() {
			if err := h.storageService.DeleteFile(doc); err != nil {
				logger.Warnf("⚠️  [%s] Failed to remove transient file %s: %v", requestID, doc.FilePath, err)
			}
		}()

		pageCount, err := h.inspector.PageCount(doc.FilePath)
		if err != nil {
			logger.Debugf("[%s] Could not read page count of %s: %v", requestID, doc.StoredFileName, err)
		}
		logger.Infof("📄 [%s] Received %s (%d bytes, %d pages) for %s", requestID, doc.StoredFileName, doc.Size, pageCount, variant)

		ctx := services.WithRequestID(h.baseCtx, requestID)
		result, err := h.pipeline.Run(ctx, doc, variant)

		h.record(requestID, variant, doc, pageCount, result, err, time.Since(started))

		if err != nil {
			logger.Errorf("❌ [%s] %s pipeline failed (%s): %v", requestID, variant, services.ErrorKind(err), err)
			c.Set(HeaderErrorKind, services.ErrorKind(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: MessageUploadFailed})
		}

		logger.Infof("✅ [%s] %s completed in %s", requestID, variant, time.Since(started).Round(time.Millisecond))
		return c.Status(fiber.StatusOK).JSON(result.Artifact.Data)
	}
}

// Wait blocks until every accepted upload has finished, including the
// removal of its transient file.
func (h *GenerateHandler) Wait() {
	h.inflight.Wait()
}

func (h *GenerateHandler) record(
	requestID string,
	variant models.TaskVariant,
	doc *models.UploadedDocument,
	pageCount int,
	result *services.PipelineResult,
	runErr error,
	elapsed time.Duration,
) {
	submission := &models.Submission{
		RequestID:        requestID,
		Variant:          variant,
		OriginalFileName: doc.OriginalFileName,
		StoredFileName:   doc.StoredFileName,
		SizeBytes:        doc.Size,
		PageCount:        pageCount,
		Status:           models.SubmissionCompleted,
		DurationMs:       elapsed.Milliseconds(),
	}

	if result != nil {
		if result.Blob != nil {
			submission.BlobURL = result.Blob.URL
		}
		if result.Artifact != nil {
			submission.Artifact = string(result.Artifact.Data)
		}
	}

	if runErr != nil {
		submission.Status = models.SubmissionFailed
		submission.ErrorKind = services.ErrorKind(runErr)
		submission.ErrorMessage = runErr.Error()
	}

	if err := h.submissions.Create(submission); err != nil {
		logger.Warnf("⚠️  [%s] Failed to record submission: %v", requestID, err)
	}
}
