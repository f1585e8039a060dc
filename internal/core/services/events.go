package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
)

// NoopEventPublisher drops every event. It is used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, domain.ScheduleEvent) error { return nil }

var _ portssvc.EventPublisher = NoopEventPublisher{}

// publish sends an event after a confirmed write. Delivery failures are logged, never returned.
func (s *BaseService) publish(ctx context.Context, publisher portssvc.EventPublisher, event domain.ScheduleEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish schedule event",
			slog.String("event_type", string(event.Type)),
			slog.String("organization_id", event.OrganizationID))
	}
}
