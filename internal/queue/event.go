// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/livehouse/internal/model"
)

// ScheduleQueueName is the durable queue carrying schedule changes.
const ScheduleQueueName = "schedule.changed"

// Schedule change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ScheduleChangedEvent is published after an event is created, updated or
// deleted.  A deletion carries the date and title the row had.
type ScheduleChangedEvent struct {
	Action     string `json:"action"`
	EventID    uint64 `json:"event_id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}

// NewScheduleChanged builds the message for e at the given instant.
func NewScheduleChanged(action string, e model.Event, at time.Time) ScheduleChangedEvent {
	return ScheduleChangedEvent{
		Action:     action,
		EventID:    e.ID,
		Date:       e.Date,
		Title:      e.Title,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
