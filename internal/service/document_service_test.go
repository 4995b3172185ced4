package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentRepository ---

type mockDocumentRepo struct {
	mock.Mock
}

func (m *mockDocumentRepo) Create(doc *domain.Document) error {
	return m.Called(doc).Error(0)
}

func (m *mockDocumentRepo) FindByID(id string) (*domain.Document, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *mockDocumentRepo) FindByProcessID(processID string) ([]*domain.Document, error) {
	args := m.Called(processID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *mockDocumentRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

// --- Tests ---

func newDocumentTestService(t *testing.T, repo *mockDocumentRepo, processes *mockProcessRepo, maxSize int64) (DocumentService, storage.Store) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	return NewDocumentService(repo, processes, store, maxSize), store
}

func TestDocumentUpload_Success(t *testing.T) {
	repo := new(mockDocumentRepo)
	processes := new(mockProcessRepo)
	svc, _ := newDocumentTestService(t, repo, processes, 0)

	processes.On("Exists", "process-1").Return(true, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Document")).Return(nil)

	content := "peticao inicial"
	doc, err := svc.Upload(context.Background(), "process-1", "peticao.pdf", "application/pdf", strings.NewReader(content), int64(len(content)))

	assert.NoError(t, err)
	assert.Equal(t, "peticao.pdf", doc.OriginalName)
	assert.Equal(t, int64(len(content)), doc.SizeBytes)
	repo.AssertExpectations(t)
}

func TestDocumentUpload_EmptyFile(t *testing.T) {
	repo := new(mockDocumentRepo)
	processes := new(mockProcessRepo)
	svc, _ := newDocumentTestService(t, repo, processes, 0)

	doc, err := svc.Upload(context.Background(), "process-1", "vazio.pdf", "application/pdf", strings.NewReader(""), 0)

	assert.ErrorIs(t, err, common.ErrEmptyFile)
	assert.Nil(t, doc)
}

func TestDocumentUpload_TooLarge(t *testing.T) {
	repo := new(mockDocumentRepo)
	processes := new(mockProcessRepo)
	svc, _ := newDocumentTestService(t, repo, processes, 10)

	content := "more than ten bytes of content"
	doc, err := svc.Upload(context.Background(), "process-1", "grande.pdf", "application/pdf", strings.NewReader(content), int64(len(content)))

	assert.ErrorIs(t, err, common.ErrFileTooLarge)
	assert.Nil(t, doc)
}

func TestDocumentDownload_Success(t *testing.T) {
	repo := new(mockDocumentRepo)
	processes := new(mockProcessRepo)
	svc, store := newDocumentTestService(t, repo, processes, 0)

	content := "contrato assinado"
	err := store.Save(context.Background(), "contrato.pdf", strings.NewReader(content), "application/pdf", int64(len(content)))
	assert.NoError(t, err)

	repo.On("FindByID", "doc-1").Return(&domain.Document{
		ID:           "doc-1",
		OriginalName: "contrato.pdf",
		StorageKey:   "contrato.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    int64(len(content)),
		UploadedAt:   time.Now().UTC(),
		ProcessID:    "process-1",
	}, nil)

	doc, body, err := svc.Download(context.Background(), "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, "contrato.pdf", doc.OriginalName)
	got, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Equal(t, content, string(got))
	body.Close()
}

func TestDocumentDownload_MissingBlob(t *testing.T) {
	repo := new(mockDocumentRepo)
	processes := new(mockProcessRepo)
	svc, _ := newDocumentTestService(t, repo, processes, 0)

	// metadata row survives but the blob behind it is gone
	repo.On("FindByID", "doc-1").Return(&domain.Document{
		ID:         "doc-1",
		StorageKey: "does-not-exist.pdf",
		ProcessID:  "process-1",
	}, nil)

	doc, body, err := svc.Download(context.Background(), "doc-1")

	assert.ErrorIs(t, err, common.ErrDocumentNotFound)
	assert.Nil(t, doc)
	assert.Nil(t, body)
}
