package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alfredoptarigan/resume-forge/internal/models"
)

// StorageService owns the transient upload directory.
type StorageService interface {
	SaveFile(file *multipart.FileHeader) (*models.UploadedDocument, error)
	DeleteFile(doc *models.UploadedDocument) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	now        func() time.Time
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		now:        time.Now,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores the part as "<epoch-millis>-<original-name>". Content,
// type and size are not checked here.
func (s *storageService) SaveFile(file *multipart.FileHeader) (*models.UploadedDocument, error) {
	// The directory may have been removed since startup.
	if err := s.EnsureUploadDir(); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	receivedAt := s.now()
	originalName := baseFileName(file.Filename)

	dst, storedName, err := s.createUnique(receivedAt, originalName)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.UploadedDocument{
		OriginalFileName: file.Filename,
		StoredFileName:   storedName,
		FilePath:         dst.Name(),
		Size:             written,
		ContentType:      file.Header.Get("Content-Type"),
		ReceivedAt:       receivedAt,
	}, nil
}

// createUnique claims a name exclusively; two requests arriving in the same
// millisecond with the same file name get consecutive timestamps.
func (s *storageService) createUnique(receivedAt time.Time, originalName string) (*os.File, string, error) {
	millis := receivedAt.UnixMilli()

	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("%d-%s", millis+int64(i), originalName)
		f, err := os.OpenFile(filepath.Join(s.uploadPath, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create destination file: %w", err)
		}
	}

	return nil, "", fmt.Errorf("failed to create destination file: too many name collisions for %q", originalName)
}

func (s *storageService) DeleteFile(doc *models.UploadedDocument) error {
	if doc == nil {
		return nil
	}
	if err := os.Remove(doc.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func baseFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." || strings.TrimSpace(base) == "" {
		return "upload"
	}
	return base
}
