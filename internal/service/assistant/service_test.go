package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuwise/legal-assistant/internal/analysis"
	"github.com/docuwise/legal-assistant/internal/extractor"
	"github.com/docuwise/legal-assistant/internal/rag"
	"github.com/docuwise/legal-assistant/internal/registry"
	"github.com/docuwise/legal-assistant/internal/utils/validator"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

// memStorage is an in-memory stand-in for the storage backend.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) Save(ctx context.Context, r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return name, nil
}

func (m *memStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *memStorage) has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

// scriptedGenerator replies with each entry in order, repeating the last.
type scriptedGenerator struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	i := s.calls
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	s.calls++
	return s.replies[i], nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func newUpload(name, content string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set("Content-Type", "application/octet-stream")
	return memFile{bytes.NewReader([]byte(content))}, header
}

func newTestService(t *testing.T) (Service, *memStorage) {
	t.Helper()
	log := logger.NewTestLogger()

	// Gemini answers the classify call first, then the refinement call.
	gemini := &scriptedGenerator{replies: []string{"Lease Agreement", "refined explanation"}}
	groq := &scriptedGenerator{replies: []string{"draft explanation"}}

	store := newMemStorage()
	svc := New(
		registry.NewInMemory(),
		store,
		extractor.New(log),
		analysis.NewAnalyzer(gemini, groq, log),
		rag.NewIndexer(stubEmbedder{}, log),
		stubEmbedder{},
		gemini,
		log,
	)
	return svc, store
}

func TestUploadStoresFileAndOpensSession(t *testing.T) {
	svc, store := newTestService(t)

	file, header := newUpload("lease.txt", "This lease is between A and B.")
	info, err := svc.Upload(context.Background(), file, header)
	require.NoError(t, err)

	_, err = uuid.Parse(info.SessionID)
	assert.NoError(t, err, "session id should be a UUID")
	assert.Equal(t, "lease.txt", info.Filename)
	assert.Equal(t, info.SessionID+"_lease.txt", info.StoredName)
	assert.True(t, store.has(info.StoredName))

	list := svc.Sessions()
	assert.Equal(t, 1, list.UploadedFiles)
	assert.Equal(t, []string{info.SessionID}, list.Sessions)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc, store := newTestService(t)

	file, header := newUpload("payload.exe", "MZ")
	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorIs(t, err, validator.ErrUnsupportedType)
	assert.False(t, store.has("payload.exe"))
}

func TestUploadRejectsMissingFilename(t *testing.T) {
	svc, _ := newTestService(t)

	file, header := newUpload("", "content")
	_, err := svc.Upload(context.Background(), file, header)
	assert.ErrorIs(t, err, validator.ErrMissingFilename)
}

func TestExplainUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Explain(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExplainRunsFullPipeline(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	file, header := newUpload("lease.txt", "This lease is between A and B.")
	info, err := svc.Upload(ctx, file, header)
	require.NoError(t, err)

	result, err := svc.Explain(ctx, info.SessionID)
	require.NoError(t, err)
	assert.Equal(t, info.SessionID, result.SessionID)
	assert.Equal(t, "lease.txt", result.Filename)
	assert.Equal(t, "Lease Agreement", result.DocumentType)
	assert.Equal(t, "refined explanation", result.Explanation)
}

func TestExplainSurfacesExtractionFailure(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	file, header := newUpload("broken.pdf", "this is not a pdf")
	info, err := svc.Upload(ctx, file, header)
	require.NoError(t, err)

	_, err = svc.Explain(ctx, info.SessionID)
	require.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "Error processing PDF")
}

func TestCreateRAGSessionRejectsNonPDF(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	file, header := newUpload("lease.txt", "text document")
	info, err := svc.Upload(ctx, file, header)
	require.NoError(t, err)

	_, err = svc.CreateRAGSession(ctx, info.SessionID)
	assert.ErrorIs(t, err, rag.ErrNotPDF)
	assert.False(t, svc.HasChat(info.SessionID))
}

func TestCreateRAGSessionUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRAGSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAnswerWithoutChatSession(t *testing.T) {
	svc, _ := newTestService(t)

	answer, err := svc.Answer(context.Background(), "nope", "question")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, answer)
}

func TestDeleteSessionRemovesStoredFile(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	file, header := newUpload("lease.txt", "content")
	info, err := svc.Upload(ctx, file, header)
	require.NoError(t, err)
	require.True(t, store.has(info.StoredName))

	require.NoError(t, svc.DeleteSession(ctx, info.SessionID))
	assert.False(t, store.has(info.StoredName))
	assert.Equal(t, 0, svc.Sessions().UploadedFiles)
}

func TestDeleteSessionIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.DeleteSession(ctx, "never-existed"))

	file, header := newUpload("lease.txt", "content")
	info, err := svc.Upload(ctx, file, header)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, info.SessionID))
	assert.NoError(t, svc.DeleteSession(ctx, info.SessionID))
}
