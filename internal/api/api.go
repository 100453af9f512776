package api

import (
	"context"

	"pomo/internal/domain"
	"pomo/internal/errors"
	"pomo/internal/services"
	"pomo/internal/validation"
)

// Log is the read side of the session log the API reports on.
type Log interface {
	ReadAll(ctx context.Context) ([]domain.SessionRecord, error)
	Last(ctx context.Context) (*domain.SessionRecord, error)
	Path() string
}

// API defines the read-only operations the CLI offers over the session log.
type API interface {
	// LastTitle returns the title of the newest record, or "" for an empty log.
	LastTitle(ctx context.Context) (string, error)

	// Records returns every record in log order
	Records(ctx context.Context) ([]domain.SessionRecord, error)

	// History returns matching sessions, newest first. timeRange is a shorthand
	// such as "2h" or "1w"; an empty string means all time.
	History(ctx context.Context, timeRange, text string, limit int) ([]*services.SessionEntry, error)

	// Stats aggregates matching sessions
	Stats(ctx context.Context, timeRange, text string) (*services.Summary, error)

	// LogPath returns the path of the underlying log file
	LogPath() string
}

type apiImpl struct {
	log            Log
	timeService    services.TimeService
	titleValidator *validation.TitleValidator
}

// New creates a new API instance.
func New(log Log, titleMaxLength int) API {
	return NewWithTimeService(log, titleMaxLength, services.NewTimeService())
}

// NewWithTimeService creates an API whose time ranges are resolved by ts.
func NewWithTimeService(log Log, titleMaxLength int, ts services.TimeService) API {
	return &apiImpl{
		log:            log,
		timeService:    ts,
		titleValidator: validation.NewTitleValidator(titleMaxLength),
	}
}

func (a *apiImpl) LastTitle(ctx context.Context) (string, error) {
	rec, err := a.log.Last(ctx)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.Title, nil
}

func (a *apiImpl) Records(ctx context.Context) ([]domain.SessionRecord, error) {
	return a.log.ReadAll(ctx)
}

func (a *apiImpl) LogPath() string {
	return a.log.Path()
}

func (a *apiImpl) History(ctx context.Context, timeRange, text string, limit int) ([]*services.SessionEntry, error) {
	criteria, err := a.criteria(timeRange, text, limit)
	if err != nil {
		return nil, err
	}

	container, closeIndex, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeIndex()

	return container.HistoryService.Recent(ctx, criteria)
}

func (a *apiImpl) Stats(ctx context.Context, timeRange, text string) (*services.Summary, error) {
	criteria, err := a.criteria(timeRange, text, 0)
	if err != nil {
		return nil, err
	}

	container, closeIndex, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeIndex()

	return container.ReportingService.Summary(ctx, criteria)
}

// criteria validates raw command arguments and resolves the time range
func (a *apiImpl) criteria(timeRange, text string, limit int) (services.SearchCriteria, error) {
	if err := a.titleValidator.ValidateSearch(timeRange, text, limit); err != nil {
		return services.SearchCriteria{}, errors.NewValidationError(validationMessage(err), err)
	}

	criteria := services.SearchCriteria{TextFilter: text, Limit: limit}
	if timeRange != "" {
		tr, err := a.timeService.ParseTimeRange(timeRange)
		if err != nil {
			return services.SearchCriteria{}, err
		}
		criteria.TimeRange = tr
	}
	return criteria, nil
}

// open builds a report index from the log. The returned func releases it.
func (a *apiImpl) open(ctx context.Context) (*services.ServiceContainer, func(), error) {
	repo, err := services.BuildIndex(ctx, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeIndex := func() { _ = repo.Close() }
	return services.NewServiceContainer(repo, a.timeService), closeIndex, nil
}

func validationMessage(err error) string {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.GetUserFriendlyMessage()
	}
	return "invalid search"
}
