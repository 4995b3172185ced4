package repository

import (
	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// FinancialEntryRepository financial entry data access interface
type FinancialEntryRepository interface {
	Create(entry *domain.FinancialEntry) error
	FindByID(id string) (*domain.FinancialEntry, error)
	FindAll() ([]*domain.FinancialEntry, error)
	FindByProcessID(processID string) ([]*domain.FinancialEntry, error)
	Update(entry *domain.FinancialEntry) error
	Delete(id string) error
	SumUnpaidByType(entryType string) (int64, error)
}

type financialEntryRepository struct {
	db *gorm.DB
}

// NewFinancialEntryRepository creates a new FinancialEntryRepository
func NewFinancialEntryRepository(db *gorm.DB) FinancialEntryRepository {
	return &financialEntryRepository{db: db}
}

// Create inserts a new entry
func (r *financialEntryRepository) Create(entry *domain.FinancialEntry) error {
	return r.db.Create(entry).Error
}

// FindByID finds an entry with its process preloaded
func (r *financialEntryRepository) FindByID(id string) (*domain.FinancialEntry, error) {
	var entry domain.FinancialEntry
	if err := r.db.Preload("Process").Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAll returns all entries, nearest due date first
func (r *financialEntryRepository) FindAll() ([]*domain.FinancialEntry, error) {
	var entries []*domain.FinancialEntry
	err := r.db.Preload("Process").
		Order("due_date ASC").
		Find(&entries).Error
	return entries, err
}

// FindByProcessID returns the entries of a process
func (r *financialEntryRepository) FindByProcessID(processID string) ([]*domain.FinancialEntry, error) {
	var entries []*domain.FinancialEntry
	err := r.db.Preload("Process").
		Where("process_id = ?", processID).
		Order("due_date ASC").
		Find(&entries).Error
	return entries, err
}

// Update saves all entry fields
func (r *financialEntryRepository) Update(entry *domain.FinancialEntry) error {
	return r.db.Save(entry).Error
}

// Delete removes an entry
func (r *financialEntryRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.FinancialEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumUnpaidByType sums the unpaid amounts of one entry type, in cents
func (r *financialEntryRepository) SumUnpaidByType(entryType string) (int64, error) {
	var sum int64
	err := r.db.Model(&domain.FinancialEntry{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("type = ? AND paid = ?", entryType, false).
		Scan(&sum).Error
	return sum, err
}
