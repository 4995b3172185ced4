package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/repository"
	"gorm.io/gorm"
)

// ClientService business logic for client records
type ClientService interface {
	Create(req *domain.CreateClientRequest, createdByID string) (*domain.ClientResponse, error)
	GetByID(id string) (*domain.ClientResponse, error)
	List(page, limit int) ([]*domain.ClientResponse, *common.Meta, error)
	Update(id string, req *domain.CreateClientRequest) (*domain.ClientResponse, error)
	Delete(id string) error
}

type clientService struct {
	repo repository.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// Create registers a new client, rejecting duplicate CPF/CNPJ or email
func (s *clientService) Create(req *domain.CreateClientRequest, createdByID string) (*domain.ClientResponse, error) {
	if err := s.checkDuplicates(req, ""); err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:          uuid.New().String(),
		FullName:    req.FullName,
		CpfCnpj:     req.CpfCnpj,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreatedAt:   time.Now().UTC(),
		CreatedByID: createdByID,
	}

	if err := s.repo.Create(client); err != nil {
		return nil, err
	}

	// re-fetch with the creator preloaded for the response
	created, err := s.repo.FindByID(client.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// GetByID returns a client or ErrClientNotFound
func (s *clientService) GetByID(id string) (*domain.ClientResponse, error) {
	client, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrClientNotFound
		}
		return nil, err
	}
	return client.ToResponse(), nil
}

// List returns a page of clients
func (s *clientService) List(page, limit int) ([]*domain.ClientResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	clients, total, err := s.repo.FindAll(page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.ClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = c.ToResponse()
	}

	return responses, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// Update modifies a client, keeping the duplicate checks but excluding itself
func (s *clientService) Update(id string, req *domain.CreateClientRequest) (*domain.ClientResponse, error) {
	client, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrClientNotFound
		}
		return nil, err
	}

	if err := s.checkDuplicates(req, id); err != nil {
		return nil, err
	}

	client.FullName = req.FullName
	client.CpfCnpj = req.CpfCnpj
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address

	if err := s.repo.Update(client); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// Delete removes a client
func (s *clientService) Delete(id string) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrClientNotFound
	}
	return err
}

// checkDuplicates rejects CPF/CNPJ and email already held by another client
func (s *clientService) checkDuplicates(req *domain.CreateClientRequest, excludeID string) error {
	byCpf, err := s.repo.FindByCpfCnpj(req.CpfCnpj)
	if err != nil {
		return err
	}
	if byCpf != nil && byCpf.ID != excludeID {
		return common.ErrCpfCnpjTaken
	}

	byEmail, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != excludeID {
		return common.ErrClientEmailTaken
	}

	return nil
}
