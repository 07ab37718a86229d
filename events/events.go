// Package events defines the typed domain events exchanged over the mono
// event bus.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a task is added via chat or web.
type TaskCreatedEvent struct {
	TaskID    uint      `json:"task_id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Deadline  string    `json:"deadline,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.tracker.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"tracker", "TaskCreated", "v1",
)

// TaskCompletedEvent is emitted when a task is marked done.
type TaskCompletedEvent struct {
	TaskID      uint      `json:"task_id"`
	UserID      uint      `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.tracker.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"tracker", "TaskCompleted", "v1",
)

// TasksPurgedEvent is emitted when a user's completed tasks are removed.
type TasksPurgedEvent struct {
	UserID   uint      `json:"user_id"`
	Removed  int64     `json:"removed"`
	PurgedAt time.Time `json:"purged_at"`
}

// TasksPurgedV1 is the typed event definition for the purge operation.
// Subject: events.tracker.v1.tasks-purged
var TasksPurgedV1 = helper.EventDefinition[TasksPurgedEvent](
	"tracker", "TasksPurged", "v1",
)

// ReminderSentEvent is emitted after a reminder is delivered.
type ReminderSentEvent struct {
	TaskID   uint      `json:"task_id"`
	Phone    string    `json:"phone"`
	Deadline string    `json:"deadline"`
	SentAt   time.Time `json:"sent_at"`
}

// ReminderSentV1 is the typed event definition for delivered reminders.
// Subject: events.reminder.v1.reminder-sent
var ReminderSentV1 = helper.EventDefinition[ReminderSentEvent](
	"reminder", "ReminderSent", "v1",
)
