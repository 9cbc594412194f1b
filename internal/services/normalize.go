package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/resume-forge/internal/models"
)

const (
	jsonFenceOpen  = "```json"
	jsonFenceClose = "```"
)

// StripCodeFence removes a "```json" marker at the very start and a "```"
// marker at the very end of raw, then trims whitespace. Markers anywhere
// else are left alone.
func StripCodeFence(raw string) string {
	text := strings.TrimPrefix(raw, jsonFenceOpen)
	text = strings.TrimSuffix(text, jsonFenceClose)
	return strings.TrimSpace(text)
}

// ParseArtifact turns the completion text into a StructuredArtifact. There is
// no fallback extraction: anything that is not a single JSON value after
// fence stripping is an ErrResponseFormat.
func ParseArtifact(variant models.TaskVariant, raw string) (*models.StructuredArtifact, error) {
	text := StripCodeFence(raw)
	if text == "" {
		return nil, wrapStage(ErrResponseFormat, fmt.Errorf("empty completion text"))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(text)); err != nil {
		return nil, wrapStage(ErrResponseFormat, err)
	}

	return &models.StructuredArtifact{
		Variant: variant,
		Data:    json.RawMessage(compact.Bytes()),
	}, nil
}
