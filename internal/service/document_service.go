package service

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/repository"
	"github.com/noracond/noracond-backend/pkg/logger"
	"github.com/noracond/noracond-backend/pkg/storage"
	"gorm.io/gorm"
)

// DocumentService business logic for process documents
type DocumentService interface {
	Upload(ctx context.Context, processID, originalName, contentType string, body io.Reader, size int64) (*domain.DocumentResponse, error)
	GetByID(id string) (*domain.DocumentResponse, error)
	ListByProcess(processID string) ([]*domain.DocumentResponse, error)
	Download(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	repo        repository.DocumentRepository
	processRepo repository.ProcessRepository
	store       storage.Store
	maxSize     int64
}

// NewDocumentService creates a new DocumentService. maxSize caps upload
// size in bytes; zero means no cap.
func NewDocumentService(repo repository.DocumentRepository, processRepo repository.ProcessRepository, store storage.Store, maxSize int64) DocumentService {
	return &documentService{
		repo:        repo,
		processRepo: processRepo,
		store:       store,
		maxSize:     maxSize,
	}
}

// Upload stores the blob then records metadata. If the metadata insert
// fails the blob is removed again so no orphan is left behind.
func (s *documentService) Upload(ctx context.Context, processID, originalName, contentType string, body io.Reader, size int64) (*domain.DocumentResponse, error) {
	if size <= 0 {
		return nil, common.ErrEmptyFile
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, common.ErrFileTooLarge
	}

	processExists, err := s.processRepo.Exists(processID)
	if err != nil {
		return nil, err
	}
	if !processExists {
		return nil, common.ErrProcessNotFound
	}

	key := storage.GenerateKey(originalName)
	if err := s.store.Save(ctx, key, body, contentType, size); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:           uuid.New().String(),
		OriginalName: originalName,
		StorageKey:   key,
		ContentType:  contentType,
		SizeBytes:    size,
		UploadedAt:   time.Now().UTC(),
		ProcessID:    processID,
	}

	if err := s.repo.Create(doc); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Get().Warn().Err(delErr).Str("storage_key", key).Msg("failed to clean up blob after metadata insert failure")
		}
		return nil, err
	}

	return doc.ToResponse(), nil
}

// GetByID returns document metadata or ErrDocumentNotFound
func (s *documentService) GetByID(id string) (*domain.DocumentResponse, error) {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc.ToResponse(), nil
}

// ListByProcess returns the documents of a process, newest first
func (s *documentService) ListByProcess(processID string) ([]*domain.DocumentResponse, error) {
	docs, err := s.repo.FindByProcessID(processID)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.DocumentResponse, len(docs))
	for i, d := range docs {
		responses[i] = d.ToResponse()
	}
	return responses, nil
}

// Download opens the blob stream. The caller owns closing the reader.
// A metadata row whose blob has gone missing is reported the same way as
// a missing row.
func (s *documentService) Download(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.ErrDocumentNotFound
		}
		return nil, nil, err
	}

	body, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, nil, common.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	return doc, body, nil
}

// Delete removes the blob first, then the metadata row
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrDocumentNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		return err
	}

	err = s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrDocumentNotFound
	}
	return err
}
