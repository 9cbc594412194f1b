package models

import (
	"encoding/json"
	"fmt"
)

type TaskVariant string

const (
	VariantATSMatch        TaskVariant = "ats_match"
	VariantPortfolioMulti  TaskVariant = "portfolio_multi"
	VariantPortfolioSingle TaskVariant = "portfolio_single"
)

func ParseTaskVariant(s string) (TaskVariant, error) {
	switch v := TaskVariant(s); v {
	case VariantATSMatch, VariantPortfolioMulti, VariantPortfolioSingle:
		return v, nil
	}
	return "", fmt.Errorf("unknown task variant: %q", s)
}

// StructuredArtifact is the validated JSON value produced by the completion
// service. Data is returned to callers verbatim.
type StructuredArtifact struct {
	Variant TaskVariant
	Data    json.RawMessage
}

// CompletionRequest is one outbound call: an instruction template plus the
// résumé bytes, sent inline to the completion service.
type CompletionRequest struct {
	Variant    TaskVariant
	Prompt     string
	Attachment []byte
	MimeType   string
}
