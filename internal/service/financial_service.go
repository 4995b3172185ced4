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

// FinancialService business logic for the financial ledger
type FinancialService interface {
	Create(req *domain.CreateEntryRequest) (*domain.EntryResponse, error)
	GetByID(id string) (*domain.EntryResponse, error)
	List() ([]*domain.EntryResponse, error)
	ListByProcess(processID string) ([]*domain.EntryResponse, error)
	Update(id string, req *domain.CreateEntryRequest) (*domain.EntryResponse, error)
	MarkAsPaid(id string, req *domain.MarkAsPaidRequest) (*domain.EntryResponse, error)
	Delete(id string) error
}

type financialService struct {
	repo        repository.FinancialEntryRepository
	processRepo repository.ProcessRepository
}

// NewFinancialService creates a new FinancialService
func NewFinancialService(repo repository.FinancialEntryRepository, processRepo repository.ProcessRepository) FinancialService {
	return &financialService{
		repo:        repo,
		processRepo: processRepo,
	}
}

// Create records a receivable or payable against a process
func (s *financialService) Create(req *domain.CreateEntryRequest) (*domain.EntryResponse, error) {
	processExists, err := s.processRepo.Exists(req.ProcessID)
	if err != nil {
		return nil, err
	}
	if !processExists {
		return nil, common.ErrProcessNotFound
	}

	entry := &domain.FinancialEntry{
		ID:          uuid.New().String(),
		Description: req.Description,
		AmountCents: req.AmountCents,
		Type:        req.Type,
		DueDate:     req.DueDate,
		PaymentDate: req.PaymentDate,
		Paid:        req.Paid,
		ProcessID:   req.ProcessID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(entry.ID)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

// GetByID returns an entry or ErrEntryNotFound
func (s *financialService) GetByID(id string) (*domain.EntryResponse, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}
	return entry.ToResponse(), nil
}

// List returns every ledger entry
func (s *financialService) List() ([]*domain.EntryResponse, error) {
	entries, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// ListByProcess returns the ledger of one process
func (s *financialService) ListByProcess(processID string) ([]*domain.EntryResponse, error) {
	entries, err := s.repo.FindByProcessID(processID)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// Update replaces the mutable fields of an entry
func (s *financialService) Update(id string, req *domain.CreateEntryRequest) (*domain.EntryResponse, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Description = req.Description
	entry.AmountCents = req.AmountCents
	entry.Type = req.Type
	entry.DueDate = req.DueDate
	entry.PaymentDate = req.PaymentDate
	entry.Paid = req.Paid

	if err := s.repo.Update(entry); err != nil {
		return nil, err
	}
	return entry.ToResponse(), nil
}

// MarkAsPaid settles an entry with the given payment date. Idempotent.
func (s *financialService) MarkAsPaid(id string, req *domain.MarkAsPaidRequest) (*domain.EntryResponse, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}

	paymentDate := req.PaymentDate
	entry.PaymentDate = &paymentDate
	entry.Paid = true

	if err := s.repo.Update(entry); err != nil {
		return nil, err
	}
	return entry.ToResponse(), nil
}

// Delete removes an entry
func (s *financialService) Delete(id string) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrEntryNotFound
	}
	return err
}

func toEntryResponses(entries []*domain.FinancialEntry) []*domain.EntryResponse {
	responses := make([]*domain.EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = e.ToResponse()
	}
	return responses
}
