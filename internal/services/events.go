package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// EventPublisher hands a serialized domain event to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// EventObserver is told the outcome of every publish attempt.
type EventObserver interface {
	RecordEvent(ctx context.Context, routingKey string, err error)
}

// Events publishes domain events on a best-effort basis: a failure is logged
// and counted but never returned. A nil *Events, or one without a publisher,
// drops every event.
type Events struct {
	publisher EventPublisher
	observer  EventObserver
	logger    *zap.SugaredLogger
}

// NewEvents creates a new Events. publisher and observer may be nil.
func NewEvents(publisher EventPublisher, observer EventObserver, logger *zap.SugaredLogger) *Events {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Events{publisher: publisher, observer: observer, logger: logger}
}

// Emit serializes payload as JSON and publishes it under routingKey.
func (e *Events) Emit(ctx context.Context, routingKey string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err == nil {
		err = e.publisher.Publish(routingKey, body)
	}
	if e.observer != nil {
		e.observer.RecordEvent(ctx, routingKey, err)
	}
	if err != nil {
		e.logger.Warnw("Failed to publish event", "routingKey", routingKey, "error", err)
		return
	}
	e.logger.Debugw("Published event", "routingKey", routingKey)
}
