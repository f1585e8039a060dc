package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/nats-io/nats.go"
)

const DefaultSubjectPrefix = "planner"

// EventPublisher publishes schedule events as JSON on <prefix>.<organizationID>.<eventType>.
type EventPublisher struct {
	Conn   *nats.Conn
	prefix string
}

func NewEventPublisher(url, subjectPrefix string) (*EventPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("crew-planner"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect failed: %w", err)
	}
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	return &EventPublisher{Conn: nc, prefix: subjectPrefix}, nil
}

// Subject returns the subject an event is published on.
func Subject(prefix string, event domain.ScheduleEvent) string {
	// NATS tokens cannot contain dots or spaces.
	org := strings.NewReplacer(".", "_", " ", "_").Replace(event.OrganizationID)
	return prefix + "." + org + "." + string(event.Type)
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.ScheduleEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	if err := p.Conn.Publish(Subject(p.prefix, event), payload); err != nil {
		return fmt.Errorf("nats publish failed: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *EventPublisher) Close() {
	if err := p.Conn.Drain(); err != nil {
		p.Conn.Close()
	}
}
