package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-forge/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Backend: config.BlobBackendCloudinary, Folder: "resumes"},
		Pipeline: config.PipelineConfig{
			UploadTimeout:     time.Minute,
			FetchTimeout:      30 * time.Second,
			CompletionTimeout: 2 * time.Minute,
			MaxRetries:        1,
			RetryDelay:        time.Second,
			SchemaValidation:  true,
		},
	}
}

func TestPipelineOptions(t *testing.T) {
	opts, err := PipelineOptions(testConfig())
	require.NoError(t, err)

	assert.Equal(t, time.Minute, opts.Upload.Timeout)
	assert.Equal(t, 30*time.Second, opts.Fetch.Timeout)
	assert.Equal(t, 2*time.Minute, opts.Completion.Timeout)
	assert.Equal(t, 1, opts.Completion.MaxRetries)
	assert.Equal(t, time.Second, opts.Completion.Delay)
	assert.NotNil(t, opts.Validator)
}

func TestPipelineOptions_SchemaValidationDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.SchemaValidation = false

	opts, err := PipelineOptions(cfg)
	require.NoError(t, err)
	assert.Nil(t, opts.Validator)
}

func TestNewBlobStore_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Backend = "ftp"

	_, err := NewBlobStore(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")
}

func TestNewBlobStore_S3(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Backend = config.BlobBackendS3
	cfg.S3 = config.S3Config{
		Endpoint:  "localhost:9000",
		Region:    "us-east-1",
		Bucket:    "resumes",
		AccessKey: "minio",
		SecretKey: "minio123",
	}

	store, err := NewBlobStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, store)
}
