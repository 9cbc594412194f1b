package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-forge/internal/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create implements SubmissionRepository.
func (r *submissionRepository) Create(submission *models.Submission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// FindByID implements SubmissionRepository.
func (r *submissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &submission, nil
}

// noopSubmissionRepository is used when submission history is disabled.
type noopSubmissionRepository struct{}

func NewNoopSubmissionRepository() SubmissionRepository {
	return noopSubmissionRepository{}
}

func (noopSubmissionRepository) Create(*models.Submission) error { return nil }

func (noopSubmissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
}
