package services

import (
	"context"
	"time"

	"pomo/internal/domain"
	"pomo/internal/logging"
	"pomo/internal/repository/sqlite"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo        sqlite.Repository
	timeService TimeService
	mapper      *domain.Mapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, timeService TimeService) ReportingService {
	return &reportingServiceImpl{
		repo:        repo,
		timeService: timeService,
		mapper:      domain.NewMapper(),
	}
}

// Summary totals matching sessions by title and by day and computes day streaks.
// The limit in criteria is ignored.
func (r *reportingServiceImpl) Summary(ctx context.Context, criteria SearchCriteria) (*Summary, error) {
	criteria.Limit = 0
	opts := r.mapper.SessionRecord.SearchOptionsToDatabase(criteriaToOptions(criteria))

	titles, err := r.repo.SummarizeByTitle(ctx, opts)
	if err != nil {
		return nil, err
	}
	days, err := r.repo.SummarizeByDay(ctx, opts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ByTitle: make([]*TitleStatistics, 0, len(titles)),
		ByDay:   make([]*DayStatistics, 0, len(days)),
	}

	for _, t := range titles {
		summary.SessionCount += t.SessionCount
		summary.TotalMinutes += t.TotalMinutes
		summary.ByTitle = append(summary.ByTitle, &TitleStatistics{
			Title:        t.Title,
			SessionCount: t.SessionCount,
			TotalMinutes: t.TotalMinutes,
			TotalTime:    r.timeService.FormatMinutes(t.TotalMinutes),
			LastSession:  t.LastSession,
		})
	}
	summary.TotalTime = r.timeService.FormatMinutes(summary.TotalMinutes)

	for _, d := range days {
		day, err := time.ParseInLocation(sqlite.DayLayout, d.Day, time.Local)
		if err != nil {
			logging.Debugf("services: skipping unparsable day %q: %v\n", d.Day, err)
			continue
		}
		summary.ByDay = append(summary.ByDay, &DayStatistics{
			Day:          day,
			SessionCount: d.SessionCount,
			TotalMinutes: d.TotalMinutes,
			TotalTime:    r.timeService.FormatMinutes(d.TotalMinutes),
		})
	}

	summary.CurrentStreak, summary.LongestStreak = r.streaks(summary.ByDay)
	return summary, nil
}

// streaks counts runs of consecutive days. The current streak ends today, or
// yesterday when nothing has been completed yet today. days must be ascending.
func (r *reportingServiceImpl) streaks(days []*DayStatistics) (current, longest int) {
	run := 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && d.Day.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = d.Day
	}

	if len(days) == 0 {
		return 0, longest
	}

	today := r.timeService.GetTodayRange().Start
	last := days[len(days)-1].Day
	if !last.Equal(today) && !last.Equal(today.AddDate(0, 0, -1)) {
		return 0, longest
	}
	return run, longest
}
