// Package tracker is the core domain: user and task operations shared by
// the chat and web surfaces.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/example/task-reminder-bot/events"
	"github.com/example/task-reminder-bot/modules/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TrackerModule provides user and task services over the store.
type TrackerModule struct {
	store    *store.Module
	eventBus mono.EventBus
	now      func() time.Time
}

// Compile-time interface checks.
var _ mono.Module = (*TrackerModule)(nil)
var _ mono.ServiceProviderModule = (*TrackerModule)(nil)
var _ mono.EventEmitterModule = (*TrackerModule)(nil)

// NewModule creates a new TrackerModule.
func NewModule() *TrackerModule {
	return &TrackerModule{now: time.Now}
}

// Name returns the module name.
func (m *TrackerModule) Name() string {
	return "tracker"
}

// SetStore wires the store module. Called from main before the app starts.
func (m *TrackerModule) SetStore(s *store.Module) {
	m.store = s
}

// SetNow overrides the clock, for tests.
func (m *TrackerModule) SetNow(now func() time.Time) {
	m.now = now
}

// SetEventBus receives the application event bus.
func (m *TrackerModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TrackerModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TasksPurgedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TrackerModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "touch-user", json.Unmarshal, json.Marshal, m.touchUser,
	); err != nil {
		return fmt.Errorf("failed to register touch-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-timezone", json.Unmarshal, json.Marshal, m.setTimezone,
	); err != nil {
		return fmt.Errorf("failed to register set-timezone service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "add-task", json.Unmarshal, json.Marshal, m.addTask,
	); err != nil {
		return fmt.Errorf("failed to register add-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "complete-task", json.Unmarshal, json.Marshal, m.completeTask,
	); err != nil {
		return fmt.Errorf("failed to register complete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "purge-done", json.Unmarshal, json.Marshal, m.purgeDone,
	); err != nil {
		return fmt.Errorf("failed to register purge-done service: %w", err)
	}

	log.Printf("[tracker] Registered services: touch-user, set-timezone, add-task, list-tasks, complete-task, purge-done")
	return nil
}

// Start verifies dependencies.
func (m *TrackerModule) Start(_ context.Context) error {
	if m.store == nil {
		return fmt.Errorf("store dependency not set")
	}
	log.Println("[tracker] Module started")
	return nil
}

// Stop shuts down the module.
func (m *TrackerModule) Stop(_ context.Context) error {
	log.Println("[tracker] Module stopped")
	return nil
}
