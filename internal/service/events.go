package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/oakfield-edu/gradecast/internal/dto"
	"github.com/oakfield-edu/gradecast/internal/models"
)

// Student lifecycle event types.
const (
	EventStudentCreated = "created"
	EventStudentDeleted = "deleted"
)

// StudentEvent describes a record lifecycle change published to interested
// consumers (reporting, notifications).
type StudentEvent struct {
	Type    string              `json:"type"`
	Student dto.StudentResponse `json:"student"`
	SentAt  time.Time           `json:"sent_at"`
}

// NewStudentEvent builds an event payload for the given record.
func NewStudentEvent(eventType string, record models.StudentRecord) StudentEvent {
	return StudentEvent{
		Type:    eventType,
		Student: dto.NewStudentResponse(record),
		SentAt:  time.Now().UTC(),
	}
}

// EventPublisher delivers student lifecycle events. Implementations must be
// best-effort: the store remains authoritative whether or not delivery works.
type EventPublisher interface {
	Publish(ctx context.Context, event StudentEvent) error
}

// NATSEventPublisher publishes events to a NATS subject per event type, e.g.
// gradecast.students.created.
type NATSEventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// NewNATSEventPublisher constructs a NATS-backed publisher.
func NewNATSEventPublisher(conn *nats.Conn, subjectPrefix string) *NATSEventPublisher {
	return &NATSEventPublisher{conn: conn, subjectPrefix: subjectPrefix}
}

// Publish sends the event to NATS.
func (p *NATSEventPublisher) Publish(ctx context.Context, event StudentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode student event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.subjectPrefix, event.Type)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish student event: %w", err)
	}
	return nil
}

// LogEventPublisher logs events instead of delivering them. Used when no NATS
// server is configured.
type LogEventPublisher struct {
	logger zerolog.Logger
}

// NewLogEventPublisher constructs a logging publisher.
func NewLogEventPublisher(logger zerolog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger.With().Str("component", "student_events").Logger()}
}

// Publish logs the event and reports success.
func (l *LogEventPublisher) Publish(ctx context.Context, event StudentEvent) error {
	l.logger.Info().
		Str("type", event.Type).
		Int("student_id", event.Student.ID).
		Msg("student event")
	return nil
}
