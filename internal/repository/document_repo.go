package repository

import (
	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// DocumentRepository document metadata access interface
type DocumentRepository interface {
	Create(doc *domain.Document) error
	FindByID(id string) (*domain.Document, error)
	FindByProcessID(processID string) ([]*domain.Document, error)
	Delete(id string) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create inserts a document metadata row
func (r *documentRepository) Create(doc *domain.Document) error {
	return r.db.Create(doc).Error
}

// FindByID finds a document by id
func (r *documentRepository) FindByID(id string) (*domain.Document, error) {
	var doc domain.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByProcessID returns the documents of a process, newest upload first
func (r *documentRepository) FindByProcessID(processID string) ([]*domain.Document, error) {
	var docs []*domain.Document
	err := r.db.Where("process_id = ?", processID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

// Delete removes a document metadata row
func (r *documentRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
