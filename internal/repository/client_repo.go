package repository

import (
	"errors"
	"time"

	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// ClientRepository client data access interface
type ClientRepository interface {
	Create(client *domain.Client) error
	FindByID(id string) (*domain.Client, error)
	FindByCpfCnpj(cpfCnpj string) (*domain.Client, error)
	FindByEmail(email string) (*domain.Client, error)
	FindAll(page, limit int) ([]*domain.Client, int64, error)
	Update(client *domain.Client) error
	Delete(id string) error
	Exists(id string) (bool, error)
	Count() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client
func (r *clientRepository) Create(client *domain.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client with its creator preloaded
func (r *clientRepository) FindByID(id string) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.Preload("CreatedBy").Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByCpfCnpj finds a client by CPF/CNPJ; nil without error when absent
func (r *clientRepository) FindByCpfCnpj(cpfCnpj string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("cpf_cnpj = ?", cpfCnpj).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// FindByEmail finds a client by email; nil without error when absent
func (r *clientRepository) FindByEmail(email string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("email = ?", email).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// FindAll returns a page of clients, newest first
func (r *clientRepository) FindAll(page, limit int) ([]*domain.Client, int64, error) {
	var clients []*domain.Client
	var total int64

	if err := r.db.Model(&domain.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("CreatedBy").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&clients).Error
	return clients, total, err
}

// Update saves all client fields
func (r *clientRepository) Update(client *domain.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client
func (r *clientRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks whether a client id exists
func (r *clientRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of clients
func (r *clientRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Client{}).Count(&count).Error
	return count, err
}

// CountCreatedSince counts clients registered at or after the given time
func (r *clientRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Client{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
