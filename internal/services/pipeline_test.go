package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-forge/internal/models"
)

type fakeBlobStore struct {
	calls int32
	err   error
	paths []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, localPath string) (*models.StoredBlob, error) {
	atomic.AddInt32(&f.calls, 1)
	f.paths = append(f.paths, localPath)
	if f.err != nil {
		return nil, f.err
	}
	return &models.StoredBlob{URL: "https://blobs.example.test/resumes/cv.pdf", PublicID: "resumes/cv.pdf"}, nil
}

type fakeFetcher struct {
	data []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.data, f.err
}

type fakeCompletion struct {
	calls int32
	text  string
	err   error
	block bool
	last  models.CompletionRequest
}

func (f *fakeCompletion) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.last = req
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

const atsJSON = `{"job_position":"Backend Engineer","ats_score":"82%","matched_keywords":["Go","PostgreSQL"],"missing_keywords":["Kafka"],"suggestions":["Quantify impact"],"recommendations":["Add a projects section"]}`

func testOptions(validate bool) PipelineOptions {
	policy := RetryPolicy{Timeout: time.Second, MaxRetries: 1, Delay: time.Millisecond}
	opts := PipelineOptions{Upload: policy, Fetch: policy, Completion: policy}
	if validate {
		v, err := NewShapeValidator()
		if err != nil {
			panic(err)
		}
		opts.Validator = v
	}
	return opts
}

func testDoc() *models.UploadedDocument {
	return &models.UploadedDocument{
		OriginalFileName: "cv.pdf",
		StoredFileName:   "1718000000000-cv.pdf",
		FilePath:         "/tmp/files/1718000000000-cv.pdf",
	}
}

func TestPipeline_Run_Success(t *testing.T) {
	store := &fakeBlobStore{}
	fetcher := &fakeFetcher{data: []byte("%PDF-1.4")}
	completion := &fakeCompletion{text: "```json\n" + atsJSON + "\n```"}

	p := NewPipeline(store, fetcher, completion, testOptions(true))
	result, err := p.Run(context.Background(), testDoc(), models.VariantATSMatch)
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/files/1718000000000-cv.pdf"}, store.paths)
	assert.Equal(t, []string{"https://blobs.example.test/resumes/cv.pdf"}, fetcher.urls)
	assert.Equal(t, []byte("%PDF-1.4"), completion.last.Attachment)
	assert.Equal(t, "application/pdf", completion.last.MimeType)
	assert.Equal(t, atsMatchPrompt, completion.last.Prompt)

	require.NotNil(t, result.Artifact)
	assert.JSONEq(t, atsJSON, string(result.Artifact.Data))
	assert.Equal(t, "resumes/cv.pdf", result.Blob.PublicID)
}

func TestPipeline_Run_UploadFails(t *testing.T) {
	store := &fakeBlobStore{err: errors.New("invalid signature")}
	completion := &fakeCompletion{text: atsJSON}

	p := NewPipeline(store, &fakeFetcher{}, completion, testOptions(false))
	result, err := p.Run(context.Background(), testDoc(), models.VariantATSMatch)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUpload)
	assert.Equal(t, "storage_upload", ErrorKind(err))
	assert.Nil(t, result.Blob)
	assert.Equal(t, int32(2), store.calls)
	assert.Zero(t, completion.calls)
}

func TestPipeline_Run_FetchFails(t *testing.T) {
	fetcher := &fakeFetcher{err: Permanent(errors.New("unexpected status 404"))}
	completion := &fakeCompletion{text: atsJSON}

	p := NewPipeline(&fakeBlobStore{}, fetcher, completion, testOptions(false))
	result, err := p.Run(context.Background(), testDoc(), models.VariantATSMatch)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlobFetch)
	assert.NotNil(t, result.Blob)
	assert.Len(t, fetcher.urls, 1)
	assert.Zero(t, completion.calls)
}

func TestPipeline_Run_CompletionFails(t *testing.T) {
	completion := &fakeCompletion{err: errors.New("quota exceeded")}

	p := NewPipeline(&fakeBlobStore{}, &fakeFetcher{data: []byte("x")}, completion, testOptions(false))
	_, err := p.Run(context.Background(), testDoc(), models.VariantPortfolioMulti)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompletionService)
	assert.Equal(t, "completion_service", ErrorKind(err))
	assert.Equal(t, int32(2), completion.calls)
}

func TestPipeline_Run_CompletionTimeout(t *testing.T) {
	completion := &fakeCompletion{block: true}
	opts := testOptions(false)
	opts.Completion = RetryPolicy{Timeout: 20 * time.Millisecond}

	p := NewPipeline(&fakeBlobStore{}, &fakeFetcher{data: []byte("x")}, completion, opts)
	_, err := p.Run(context.Background(), testDoc(), models.VariantPortfolioSingle)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrCompletionService)
	assert.Equal(t, "timeout", ErrorKind(err))
}

func TestPipeline_Run_NotJSON(t *testing.T) {
	completion := &fakeCompletion{text: "I'm sorry, I can't read that file."}

	p := NewPipeline(&fakeBlobStore{}, &fakeFetcher{data: []byte("x")}, completion, testOptions(false))
	result, err := p.Run(context.Background(), testDoc(), models.VariantPortfolioMulti)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseFormat)
	assert.Nil(t, result.Artifact)
	// Malformed output is not retried.
	assert.Equal(t, int32(1), completion.calls)
}

func TestPipeline_Run_ShapeMismatch(t *testing.T) {
	completion := &fakeCompletion{text: `{"html":"<html></html>"}`}

	p := NewPipeline(&fakeBlobStore{}, &fakeFetcher{data: []byte("x")}, completion, testOptions(true))
	_, err := p.Run(context.Background(), testDoc(), models.VariantPortfolioMulti)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseFormat)

	var shapeErr *ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestPipeline_Run_ShapeNotCheckedWithoutValidator(t *testing.T) {
	completion := &fakeCompletion{text: `{"html":"<html></html>"}`}

	p := NewPipeline(&fakeBlobStore{}, &fakeFetcher{data: []byte("x")}, completion, testOptions(false))
	result, err := p.Run(context.Background(), testDoc(), models.VariantPortfolioMulti)

	require.NoError(t, err)
	assert.JSONEq(t, `{"html":"<html></html>"}`, string(result.Artifact.Data))
}

func TestPipeline_Run_UnknownVariant(t *testing.T) {
	store := &fakeBlobStore{}

	p := NewPipeline(store, &fakeFetcher{}, &fakeCompletion{}, testOptions(false))
	_, err := p.Run(context.Background(), testDoc(), "cover_letter")

	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestRequestIDFrom(t *testing.T) {
	assert.Equal(t, "-", RequestIDFrom(context.Background()))
	assert.Equal(t, "abc", RequestIDFrom(WithRequestID(context.Background(), "abc")))
}
