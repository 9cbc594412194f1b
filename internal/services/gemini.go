package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"alfredoptarigan/resume-forge/internal/logger"
	"alfredoptarigan/resume-forge/internal/models"
)

// CompletionService sends a prompt with an inline attachment to the LLM
// and returns the raw text of its answer.
type CompletionService interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (CompletionService, error) {
	return newGeminiService(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, modelName)
}

func newGeminiService(ctx context.Context, cc *genai.ClientConfig, modelName string) (CompletionService, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements CompletionService. The SDK base64-encodes the
// attachment bytes into the request's inlineData part.
func (g *geminiService) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Prompt),
			genai.NewPartFromBytes(req.Attachment, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", Permanent(fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
		}
		return "", fmt.Errorf("no text content in response")
	}

	logger.Debugf("📊 Gemini response received: model=%s variant=%s chars=%d", g.modelName, req.Variant, len(text))

	return text, nil
}
