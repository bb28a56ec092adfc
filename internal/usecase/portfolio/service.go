package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// Service builds portfolio summaries from stored investments and snapshots
type Service struct {
	InvestmentRepo domain.InvestmentRepository
	SnapshotRepo   domain.SnapshotRepository
}

// NewService creates a new portfolio Service instance
func NewService(investmentRepo domain.InvestmentRepository, snapshotRepo domain.SnapshotRepository) *Service {
	return &Service{
		InvestmentRepo: investmentRepo,
		SnapshotRepo:   snapshotRepo,
	}
}

// GetSummary aggregates the monthly series and headline figures for the
// period. Snapshots are fetched without a lower bound so investments with
// their last activity before the window still carry a value into it.
func (s *Service) GetSummary(ctx context.Context, periodStart, periodEnd time.Time) (Summary, error) {
	investments, err := s.InvestmentRepo.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list investments: %w", err)
	}

	snapshots, err := s.SnapshotRepo.ListByPeriod(ctx, time.Time{}, domain.MonthStart(periodEnd))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return Aggregate(investments, snapshots, periodStart, periodEnd), nil
}
