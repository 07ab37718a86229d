// Package notifier owns outbound message delivery and keeps an in-memory
// log of notable domain events.
package notifier

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-reminder-bot/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Config holds delivery provider configuration. Empty credentials select
// the log-only sender.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Entry is one logged notification event.
type Entry struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotifierModule provides the Sender capability and consumes task
// lifecycle events into a notification log.
type NotifierModule struct {
	sender  Sender
	entries []Entry
	mu      sync.RWMutex
}

// Compile-time interface checks.
var _ mono.Module = (*NotifierModule)(nil)
var _ mono.EventConsumerModule = (*NotifierModule)(nil)

// NewModule creates a new NotifierModule.
func NewModule(cfg Config) *NotifierModule {
	var sender Sender = LogSender{}
	if cfg.AccountSID != "" && cfg.AuthToken != "" && cfg.FromNumber != "" {
		sender = NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.FromNumber)
	}
	return &NotifierModule{sender: sender}
}

// Name returns the module name.
func (m *NotifierModule) Name() string {
	return "notifier"
}

// Sender returns the configured delivery capability.
func (m *NotifierModule) Sender() Sender {
	return m.sender
}

// RegisterEventConsumers subscribes to task lifecycle and reminder events.
func (m *NotifierModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TasksPurgedV1, m.handleTasksPurged, m); err != nil {
		return fmt.Errorf("failed to register TasksPurged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ReminderSentV1, m.handleReminderSent, m); err != nil {
		return fmt.Errorf("failed to register ReminderSent consumer: %w", err)
	}

	log.Printf("[notifier] Registered event consumers: TaskCreated, TaskCompleted, TasksPurged, ReminderSent")
	return nil
}

func (m *NotifierModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record("task_created", fmt.Sprintf("Task %d (%q) created for user %d", event.TaskID, event.Name, event.UserID))
	return nil
}

func (m *NotifierModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record("task_completed", fmt.Sprintf("Task %d completed by user %d", event.TaskID, event.UserID))
	return nil
}

func (m *NotifierModule) handleTasksPurged(_ context.Context, event events.TasksPurgedEvent, _ *mono.Msg) error {
	m.record("tasks_purged", fmt.Sprintf("User %d purged %d completed tasks", event.UserID, event.Removed))
	return nil
}

func (m *NotifierModule) handleReminderSent(_ context.Context, event events.ReminderSentEvent, _ *mono.Msg) error {
	m.record("reminder_sent", fmt.Sprintf("Reminder for task %d delivered to %s (due %s)", event.TaskID, event.Phone, event.Deadline))
	return nil
}

func (m *NotifierModule) record(eventType, message string) {
	log.Printf("[notifier] %s: %s", eventType, message)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Entries returns a copy of the notification log.
func (m *NotifierModule) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Start initializes the module.
func (m *NotifierModule) Start(_ context.Context) error {
	if _, ok := m.sender.(LogSender); ok {
		log.Println("[notifier] No provider credentials configured, using log-only delivery")
	}
	log.Println("[notifier] Module started")
	return nil
}

// Stop shuts down the module.
func (m *NotifierModule) Stop(_ context.Context) error {
	log.Println("[notifier] Module stopped")
	return nil
}
