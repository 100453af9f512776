package services

import (
	"context"

	"pomo/internal/domain"
	"pomo/internal/repository/sqlite"
)

// historyServiceImpl implements the HistoryService interface
type historyServiceImpl struct {
	repo        sqlite.Repository
	timeService TimeService
	mapper      *domain.Mapper
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(repo sqlite.Repository, timeService TimeService) HistoryService {
	return &historyServiceImpl{
		repo:        repo,
		timeService: timeService,
		mapper:      domain.NewMapper(),
	}
}

// Recent returns matching sessions, newest first
func (h *historyServiceImpl) Recent(ctx context.Context, criteria SearchCriteria) ([]*SessionEntry, error) {
	opts := h.mapper.SessionRecord.SearchOptionsToDatabase(criteriaToOptions(criteria))
	rows, err := h.repo.SearchSessions(ctx, opts)
	if err != nil {
		return nil, err
	}

	records := h.mapper.SessionRecord.FromDatabaseSlice(rows)
	entries := make([]*SessionEntry, len(records))
	for i, rec := range records {
		entries[i] = &SessionEntry{
			Title:       rec.Title,
			Minutes:     rec.Minutes,
			CompletedAt: rec.CompletedAt,
			Duration:    h.timeService.FormatMinutes(rec.Minutes),
		}
	}
	return entries, nil
}
