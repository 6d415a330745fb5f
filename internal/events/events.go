package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by this service
const (
	EventUserRegistered      = "user.registered"
	EventTeacherValidated    = "user.teacher_validated"
	EventTopicCreated        = "forum.topic_created"
	EventPostCreated         = "forum.post_created"
	EventAssignmentPublished = "assignment.published"
	EventAnswersSubmitted    = "assignment.answers_submitted"
	EventUserFollowed        = "social.followed"
	EventNotificationCreated = "notification.created"
)

const (
	eventSource  = "community-service"
	eventVersion = "1.0"
)

// Event is the envelope every published message carries.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
