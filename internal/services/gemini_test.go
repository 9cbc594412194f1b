package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"alfredoptarigan/resume-forge/internal/models"
)

type generateContentRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text       string `json:"text"`
			InlineData *struct {
				MIMEType string `json:"mimeType"`
				Data     []byte `json:"data"`
			} `json:"inlineData"`
		} `json:"parts"`
	} `json:"contents"`
}

func newTestGeminiService(t *testing.T, reply string) (CompletionService, *[]generateContentRequest, *[]string) {
	t.Helper()

	var bodies []generateContentRequest
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var body generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bodies = append(bodies, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	svc, err := newGeminiService(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "gemini-2.5-flash")
	require.NoError(t, err)

	return svc, &bodies, &paths
}

func TestGeminiService_Complete(t *testing.T) {
	reply, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []interface{}{map[string]interface{}{"text": "```json\n{\"html\":\"<html></html>\"}\n```"}},
				},
			},
		},
	})
	svc, bodies, paths := newTestGeminiService(t, string(reply))

	pdf := []byte("%PDF-1.4 résumé bytes")
	req, err := BuildCompletionRequest(models.VariantPortfolioSingle, pdf)
	require.NoError(t, err)

	text, err := svc.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"html\":\"<html></html>\"}\n```", text)

	require.Len(t, *paths, 1)
	assert.True(t, strings.HasSuffix((*paths)[0], "models/gemini-2.5-flash:generateContent"), (*paths)[0])

	require.Len(t, *bodies, 1)
	contents := (*bodies)[0].Contents
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)

	parts := contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, portfolioSinglePrompt, parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "application/pdf", parts[1].InlineData.MIMEType)
	assert.Equal(t, pdf, parts[1].InlineData.Data)
}

func TestGeminiService_Complete_BlockedPromptIsPermanent(t *testing.T) {
	svc, _, _ := newTestGeminiService(t, `{"promptFeedback":{"blockReason":"SAFETY"}}`)

	req, err := BuildCompletionRequest(models.VariantATSMatch, []byte("%PDF"))
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), req)
	require.Error(t, err)
	assert.True(t, isPermanent(err))
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGeminiService_Complete_EmptyTextIsRetryable(t *testing.T) {
	svc, _, _ := newTestGeminiService(t, `{"candidates":[]}`)

	req, err := BuildCompletionRequest(models.VariantATSMatch, []byte("%PDF"))
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), req)
	require.Error(t, err)
	assert.False(t, isPermanent(err))
}
