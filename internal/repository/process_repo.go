package repository

import (
	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// ProcessRepository legal process data access interface
type ProcessRepository interface {
	Create(process *domain.Process) error
	FindByID(id string) (*domain.Process, error)
	FindAll() ([]*domain.Process, error)
	FindByClientID(clientID string) ([]*domain.Process, error)
	FindByResponsibleUserID(userID string) ([]*domain.Process, error)
	Update(process *domain.Process) error
	Delete(id string) error
	Exists(id string) (bool, error)
	ExistsByNumber(number string) (bool, error)
	CountByStatuses(statuses []string) (int64, error)
}

type processRepository struct {
	db *gorm.DB
}

// NewProcessRepository creates a new ProcessRepository
func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &processRepository{db: db}
}

// Create inserts a new process
func (r *processRepository) Create(process *domain.Process) error {
	return r.db.Create(process).Error
}

// FindByID finds a process with client and responsible user preloaded
func (r *processRepository) FindByID(id string) (*domain.Process, error) {
	var process domain.Process
	err := r.db.Preload("Client").Preload("ResponsibleUser").
		Where("id = ?", id).First(&process).Error
	if err != nil {
		return nil, err
	}
	return &process, nil
}

// FindAll returns all processes, most recently opened first
func (r *processRepository) FindAll() ([]*domain.Process, error) {
	var processes []*domain.Process
	err := r.db.Preload("Client").Preload("ResponsibleUser").
		Order("opened_at DESC").
		Find(&processes).Error
	return processes, err
}

// FindByClientID returns the processes of a client
func (r *processRepository) FindByClientID(clientID string) ([]*domain.Process, error) {
	var processes []*domain.Process
	err := r.db.Preload("Client").Preload("ResponsibleUser").
		Where("client_id = ?", clientID).
		Order("opened_at DESC").
		Find(&processes).Error
	return processes, err
}

// FindByResponsibleUserID returns the processes a staff member is responsible for
func (r *processRepository) FindByResponsibleUserID(userID string) ([]*domain.Process, error) {
	var processes []*domain.Process
	err := r.db.Preload("Client").Preload("ResponsibleUser").
		Where("responsible_user_id = ?", userID).
		Order("opened_at DESC").
		Find(&processes).Error
	return processes, err
}

// Update saves all process fields
func (r *processRepository) Update(process *domain.Process) error {
	return r.db.Save(process).Error
}

// Delete removes a process
func (r *processRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Process{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks whether a process id exists
func (r *processRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Process{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNumber checks whether a process number is already in use
func (r *processRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Process{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatuses counts processes in any of the given statuses
func (r *processRepository) CountByStatuses(statuses []string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Process{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}
