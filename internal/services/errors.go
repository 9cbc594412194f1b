package services

import (
	"context"
	"errors"
)

var (
	ErrMissingFile       = errors.New("no file uploaded")
	ErrStorageUpload     = errors.New("storage upload failed")
	ErrBlobFetch         = errors.New("stored blob could not be fetched")
	ErrCompletionService = errors.New("completion service failed")
	ErrResponseFormat    = errors.New("completion response is not valid JSON")
	ErrTimeout           = errors.New("outbound call timed out")
)

// ErrorKind names the pipeline stage an error came from.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrMissingFile):
		return "missing_file"
	case errors.Is(err, ErrStorageUpload):
		return "storage_upload"
	case errors.Is(err, ErrBlobFetch):
		return "blob_fetch"
	case errors.Is(err, ErrResponseFormat):
		return "response_format"
	case errors.Is(err, ErrCompletionService):
		return "completion_service"
	default:
		return "internal"
	}
}

// stageError tags err with a pipeline stage and, when the attempt ran out
// of time, with ErrTimeout as well.
type stageError struct {
	stage error
	err   error
}

func (e *stageError) Error() string {
	return e.stage.Error() + ": " + e.err.Error()
}

func (e *stageError) Unwrap() []error {
	if errors.Is(e.err, context.DeadlineExceeded) {
		return []error{ErrTimeout, e.stage, e.err}
	}
	return []error{e.stage, e.err}
}

func wrapStage(stage, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, err: err}
}
