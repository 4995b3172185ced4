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

// ProcessService business logic for legal processes
type ProcessService interface {
	Create(req *domain.CreateProcessRequest, responsibleUserID string) (*domain.ProcessResponse, error)
	GetByID(id string) (*domain.ProcessResponse, error)
	List() ([]*domain.ProcessResponse, error)
	ListByClient(clientID string) ([]*domain.ProcessResponse, error)
	ListByResponsibleUser(userID string) ([]*domain.ProcessResponse, error)
	Update(id string, req *domain.UpdateProcessRequest) (*domain.ProcessResponse, error)
	Delete(id string) error
}

type processService struct {
	repo       repository.ProcessRepository
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
}

// NewProcessService creates a new ProcessService
func NewProcessService(repo repository.ProcessRepository, clientRepo repository.ClientRepository, userRepo repository.UserRepository) ProcessService {
	return &processService{
		repo:       repo,
		clientRepo: clientRepo,
		userRepo:   userRepo,
	}
}

// Create opens a new process for a client, with the caller as responsible user
func (s *processService) Create(req *domain.CreateProcessRequest, responsibleUserID string) (*domain.ProcessResponse, error) {
	clientExists, err := s.clientRepo.Exists(req.ClientID)
	if err != nil {
		return nil, err
	}
	if !clientExists {
		return nil, common.ErrClientNotFound
	}

	userExists, err := s.userRepo.ExistsByID(responsibleUserID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, common.ErrUserNotFound
	}

	numberTaken, err := s.repo.ExistsByNumber(req.Number)
	if err != nil {
		return nil, err
	}
	if numberTaken {
		return nil, common.ErrProcessNumberTaken
	}

	now := time.Now().UTC()
	openedAt := req.OpenedAt
	if openedAt.IsZero() {
		openedAt = now
	}
	status := req.Status
	if status == "" {
		status = domain.ProcessStatusActive
	}

	process := &domain.Process{
		ID:                uuid.New().String(),
		Number:            req.Number,
		Title:             req.Title,
		Description:       req.Description,
		Status:            status,
		OpenedAt:          openedAt,
		ClientID:          req.ClientID,
		ResponsibleUserID: responsibleUserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(process); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(process.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// GetByID returns a process or ErrProcessNotFound
func (s *processService) GetByID(id string) (*domain.ProcessResponse, error) {
	process, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProcessNotFound
		}
		return nil, err
	}
	return process.ToResponse(), nil
}

// List returns all processes
func (s *processService) List() ([]*domain.ProcessResponse, error) {
	processes, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return toProcessResponses(processes), nil
}

// ListByClient returns the processes of a client.
// An unknown client simply has no processes.
func (s *processService) ListByClient(clientID string) ([]*domain.ProcessResponse, error) {
	processes, err := s.repo.FindByClientID(clientID)
	if err != nil {
		return nil, err
	}
	return toProcessResponses(processes), nil
}

// ListByResponsibleUser returns the processes assigned to a staff member
func (s *processService) ListByResponsibleUser(userID string) ([]*domain.ProcessResponse, error) {
	processes, err := s.repo.FindByResponsibleUserID(userID)
	if err != nil {
		return nil, err
	}
	return toProcessResponses(processes), nil
}

// Update modifies title, description, status and closing date
func (s *processService) Update(id string, req *domain.UpdateProcessRequest) (*domain.ProcessResponse, error) {
	process, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProcessNotFound
		}
		return nil, err
	}

	process.Title = req.Title
	process.Description = req.Description
	process.Status = req.Status
	process.ClosedAt = req.ClosedAt
	process.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(process); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// Delete removes a process
func (s *processService) Delete(id string) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrProcessNotFound
	}
	return err
}

func toProcessResponses(processes []*domain.Process) []*domain.ProcessResponse {
	responses := make([]*domain.ProcessResponse, len(processes))
	for i, p := range processes {
		responses[i] = p.ToResponse()
	}
	return responses
}
