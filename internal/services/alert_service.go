package services

import (
	"context"

	"rentdir/internal/models"
	"rentdir/internal/repositories"
	"rentdir/internal/search"
)

// AlertService manages alerts. Creating and updating one publishes an event;
// delivering notifications is left to whoever consumes it.
type AlertService struct {
	repo       repositories.AlertRepository
	properties repositories.PropertyRepository
	events     *Events
}

// NewAlertService creates a new AlertService. events may be nil.
func NewAlertService(repo repositories.AlertRepository, properties repositories.PropertyRepository, events *Events) *AlertService {
	return &AlertService{repo: repo, properties: properties, events: events}
}

func (s *AlertService) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	return s.repo.ListForUser(ctx, userID)
}

// GetAlert reports an alert owned by someone else as not found.
func (s *AlertService) GetAlert(ctx context.Context, id, userID int64) (*models.Alert, error) {
	return s.repo.GetOwned(ctx, id, userID)
}

func (s *AlertService) CreateAlert(ctx context.Context, alert *models.Alert) error {
	if alert.Filters == nil {
		alert.Filters = map[string]bool{}
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return err
	}
	s.events.Emit(ctx, "alert.created", alert)
	return nil
}

// UpdateAlert applies patch; a supplied filters map replaces the stored one.
func (s *AlertService) UpdateAlert(ctx context.Context, id, userID int64, patch models.AlertPatch) (*models.Alert, error) {
	alert, err := s.repo.UpdateOwned(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.events.Emit(ctx, "alert.updated", alert)
	return alert, nil
}

func (s *AlertService) DeleteAlert(ctx context.Context, id, userID int64) error {
	return s.repo.DeleteOwned(ctx, id, userID)
}

// Matches lists the current properties the alert's criteria select. A
// disabled alert still matches; enabled only gates notification.
func (s *AlertService) Matches(ctx context.Context, id, userID int64) ([]models.Property, error) {
	alert, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	props, err := s.properties.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Query(props, alert.Filter(), models.SortRecommended), nil
}
