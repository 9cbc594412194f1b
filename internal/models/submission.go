package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionCompleted SubmissionStatus = "completed"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is the audit record of one pipeline run.
type Submission struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestID        string           `gorm:"type:text;index" json:"request_id"`
	Variant          TaskVariant      `gorm:"type:text;not null" json:"variant"`
	OriginalFileName string           `gorm:"type:text" json:"original_filename"`
	StoredFileName   string           `gorm:"type:text" json:"stored_filename"`
	SizeBytes        int64            `json:"size_bytes"`
	PageCount        int              `json:"page_count"`
	BlobURL          string           `gorm:"type:text" json:"blob_url,omitempty"`
	Status           SubmissionStatus `gorm:"type:text;not null" json:"status"`
	ErrorKind        string           `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage     string           `gorm:"type:text" json:"error_message,omitempty"`
	Artifact         string           `gorm:"type:text" json:"-"`
	DurationMs       int64            `json:"duration_ms"`
	CreatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
