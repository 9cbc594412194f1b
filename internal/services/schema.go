package services

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/resume-forge/internal/models"
)

// ShapeError lists the fields of an artifact that do not match its variant's
// schema.
type ShapeError struct {
	Variant models.TaskVariant
	Errors  []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *ShapeError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s artifact does not match schema:", e.Variant))
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ShapeValidator checks required keys and JSON types per variant. Values
// themselves (e.g. whether ats_score looks like a percentage) are not checked.
type ShapeValidator struct {
	schemas map[models.TaskVariant]*gojsonschema.Schema
}

func NewShapeValidator() (*ShapeValidator, error) {
	v := &ShapeValidator{schemas: make(map[models.TaskVariant]*gojsonschema.Schema)}

	for variant, tpl := range taskTemplates {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(tpl.Schema))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", variant, err)
		}
		v.schemas[variant] = schema
	}

	return v, nil
}

func (v *ShapeValidator) Validate(artifact *models.StructuredArtifact) error {
	schema, ok := v.schemas[artifact.Variant]
	if !ok {
		return fmt.Errorf("no schema for task variant %q", artifact.Variant)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(artifact.Data))
	if err != nil {
		return wrapStage(ErrResponseFormat, err)
	}
	if result.Valid() {
		return nil
	}

	shapeErr := &ShapeError{
		Variant: artifact.Variant,
		Errors:  make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		shapeErr.Errors = append(shapeErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return wrapStage(ErrResponseFormat, shapeErr)
}

const stringArray = `{"type": "array", "items": {"type": "string"}}`

const atsMatchSchema = `{
  "type": "object",
  "required": ["job_position", "ats_score", "matched_keywords", "missing_keywords", "suggestions", "recommendations"],
  "properties": {
    "job_position": {"type": "string"},
    "ats_score": {"type": ["string", "number"]},
    "matched_keywords": ` + stringArray + `,
    "missing_keywords": ` + stringArray + `,
    "suggestions": ` + stringArray + `,
    "recommendations": ` + stringArray + `
  }
}`

const portfolioMultiSchema = `{
  "type": "object",
  "required": ["html", "css", "javascript"],
  "properties": {
    "html": {"type": "string", "minLength": 1},
    "css": {"type": "string"},
    "javascript": {"type": "string"}
  }
}`

const portfolioSingleSchema = `{
  "type": "object",
  "required": ["html"],
  "properties": {
    "html": {"type": "string", "minLength": 1}
  }
}`
