package service

import (
	"context"
	"time"

	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/repository"
	"github.com/noracond/noracond-backend/pkg/cache"
	"github.com/noracond/noracond-backend/pkg/logger"
)

// DashboardService aggregate counters for the office dashboard
type DashboardService interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type dashboardService struct {
	clientRepo  repository.ClientRepository
	processRepo repository.ProcessRepository
	entryRepo   repository.FinancialEntryRepository
	cache       cache.Service
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	clientRepo repository.ClientRepository,
	processRepo repository.ProcessRepository,
	entryRepo repository.FinancialEntryRepository,
	cacheService cache.Service,
) DashboardService {
	return &dashboardService{
		clientRepo:  clientRepo,
		processRepo: processRepo,
		entryRepo:   entryRepo,
		cache:       cacheService,
	}
}

// GetStats computes dashboard aggregates via SQL counts, cached briefly
func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	if err := s.cache.GetDashboardStats(ctx, &cached); err == nil {
		return &cached, nil
	}

	totalClients, err := s.clientRepo.Count()
	if err != nil {
		return nil, err
	}

	newClients, err := s.clientRepo.CountCreatedSince(time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	activeProcesses, err := s.processRepo.CountByStatuses([]string{domain.ProcessStatusActive, domain.ProcessStatusOngoing})
	if err != nil {
		return nil, err
	}

	archivedProcesses, err := s.processRepo.CountByStatuses([]string{domain.ProcessStatusArchived, domain.ProcessStatusFinished})
	if err != nil {
		return nil, err
	}

	receivable, err := s.entryRepo.SumUnpaidByType(domain.EntryTypeIncome)
	if err != nil {
		return nil, err
	}

	payable, err := s.entryRepo.SumUnpaidByType(domain.EntryTypeExpense)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalClients:         totalClients,
		NewClientsLast30Days: newClients,
		ActiveProcesses:      activeProcesses,
		ArchivedProcesses:    archivedProcesses,
		ReceivableCents:      receivable,
		PayableCents:         payable,
	}

	if err := s.cache.SetDashboardStats(ctx, stats); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to cache dashboard stats")
	}

	return stats, nil
}
