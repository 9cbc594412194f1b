package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-forge/internal/models"
	"alfredoptarigan/resume-forge/internal/repositories"
)

type SubmissionHandler struct {
	submissions repositories.SubmissionRepository
}

func NewSubmissionHandler(submissions repositories.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
	}
}

type submissionResponse struct {
	*models.Submission
	Artifact json.RawMessage `json:"artifact,omitempty"`
}

// HandleGetSubmission handles GET /api/v1/submissions/:id
func (h *SubmissionHandler) HandleGetSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid submission ID format"})
	}

	submission, err := h.submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Submission not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load submission"})
	}

	resp := submissionResponse{Submission: submission}
	if submission.Artifact != "" {
		resp.Artifact = json.RawMessage(submission.Artifact)
	}

	return c.JSON(resp)
}
