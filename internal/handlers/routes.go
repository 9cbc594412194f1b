package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"alfredoptarigan/resume-forge/internal/models"
)

type Handlers struct {
	Generate *GenerateHandler
	// Submission is nil when submission history is disabled.
	Submission *SubmissionHandler
}

// RequestID gives every request a fresh uuid. An inbound X-Request-ID is
// dropped because it ends up in log lines and submission rows.
func RequestID() fiber.Handler {
	assign := requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})

	return func(c *fiber.Ctx) error {
		c.Request().Header.Del(fiber.HeaderXRequestID)
		return assign(c)
	}
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(models.StatusResponse{Mess: "running"})
	})

	app.Post("/upload", h.Generate.Handle(models.VariantATSMatch))
	app.Post("/generate", h.Generate.Handle(models.VariantPortfolioMulti))
	// Misspelled route kept for clients of the first release.
	app.Post("/gererate", h.Generate.Handle(models.VariantPortfolioMulti))
	app.Post("/generate/single", h.Generate.Handle(models.VariantPortfolioSingle))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	if h.Submission != nil {
		api.Get("/submissions/:id", h.Submission.HandleGetSubmission)
	}
}
