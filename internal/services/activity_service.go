package services

import (
	"context"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/repositories"

	"go.uber.org/zap"
)

// Feed limits applied when the caller does not choose one.
const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 100
)

// ActivityService records feed events and serves the recency-ordered feed.
type ActivityService struct {
	repo         repositories.ActivityRepository
	events       *Events
	defaultLimit int
	maxLimit     int
	logger       *zap.SugaredLogger
}

// NewActivityService creates a new ActivityService. Non-positive limits fall
// back to DefaultActivityLimit and MaxActivityLimit.
func NewActivityService(repo repositories.ActivityRepository, events *Events, defaultLimit, maxLimit int, logger *zap.SugaredLogger) *ActivityService {
	if maxLimit <= 0 {
		maxLimit = MaxActivityLimit
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(DefaultActivityLimit, maxLimit)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ActivityService{
		repo:         repo,
		events:       events,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

var activityTypes = map[models.ActivityType]bool{
	models.ActivityFavorite: true,
	models.ActivitySearch:   true,
	models.ActivityView:     true,
	models.ActivityAlert:    true,
}

// Record appends activity to its owner's feed and publishes
// "activity.<type>".
func (s *ActivityService) Record(ctx context.Context, activity *models.Activity) error {
	if !activityTypes[activity.Type] {
		return apperror.NewValidationError("unknown activity type "+string(activity.Type), nil)
	}
	if err := s.repo.Record(ctx, activity); err != nil {
		return err
	}
	s.events.Emit(ctx, "activity."+string(activity.Type), activity)
	return nil
}

// recordSideEffect records an activity caused by another operation. Failure is
// logged: the operation that caused it has already succeeded.
func (s *ActivityService) recordSideEffect(ctx context.Context, activity models.Activity) {
	if s == nil {
		return
	}
	if err := s.Record(ctx, &activity); err != nil {
		s.logger.Warnw("Failed to record activity", "userID", activity.UserID, "type", activity.Type, "error", err)
	}
}

// Recent returns up to limit of the user's activities, newest first. A
// non-positive limit selects the default; larger limits are capped.
func (s *ActivityService) Recent(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.repo.Recent(ctx, userID, limit)
}
