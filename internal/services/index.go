package services

import (
	"context"

	"pomo/internal/domain"
	"pomo/internal/logging"
	"pomo/internal/repository/sqlite"
)

// BuildIndex loads every record from src into a fresh in-memory report index.
// The caller owns the returned repository and must Close it.
func BuildIndex(ctx context.Context, src Source) (sqlite.Repository, error) {
	records, err := src.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.NewMemory(ctx)
	if err != nil {
		return nil, err
	}

	rows := domain.NewMapper().SessionRecord.ToDatabaseSlice(records)
	if err := repo.InsertSessions(ctx, rows); err != nil {
		repo.Close()
		return nil, err
	}

	logging.Debugf("services: indexed %d sessions\n", len(rows))
	return repo, nil
}

// NewServiceContainer wires the services over a report index
func NewServiceContainer(repo sqlite.Repository, timeService TimeService) *ServiceContainer {
	return &ServiceContainer{
		TimeService:      timeService,
		HistoryService:   NewHistoryService(repo, timeService),
		ReportingService: NewReportingService(repo, timeService),
	}
}

func criteriaToOptions(criteria SearchCriteria) domain.SearchOptions {
	opts := domain.SearchOptions{Limit: criteria.Limit}
	if criteria.TimeRange != nil {
		start, end := criteria.TimeRange.Start, criteria.TimeRange.End
		opts.Since = &start
		opts.Until = &end
	}
	if criteria.TextFilter != "" {
		text := criteria.TextFilter
		opts.Title = &text
	}
	return opts
}
