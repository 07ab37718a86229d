// Package bot interprets inbound chat messages as task commands and
// renders reply text.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/task-reminder-bot/modules/tracker"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// BotModule turns message text into tracker operations and replies.
type BotModule struct {
	baseURL string
	tracker tracker.TrackerPort
}

// Compile-time interface checks.
var _ mono.Module = (*BotModule)(nil)
var _ mono.ServiceProviderModule = (*BotModule)(nil)
var _ mono.DependentModule = (*BotModule)(nil)

// NewModule creates a new BotModule. baseURL is the public site root used
// in reply footers.
func NewModule(baseURL string) *BotModule {
	return &BotModule{baseURL: baseURL}
}

// Name returns the module name.
func (m *BotModule) Name() string {
	return "bot"
}

// Dependencies returns the list of module dependencies.
func (m *BotModule) Dependencies() []string {
	return []string{"tracker"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *BotModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "tracker" {
		m.tracker = tracker.NewAdapter(container)
	}
}

// SetTracker overrides the tracker port, for tests.
func (m *BotModule) SetTracker(port tracker.TrackerPort) {
	m.tracker = port
}

// RegisterServices registers the handle-message service.
func (m *BotModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "handle-message", json.Unmarshal, json.Marshal, m.handleMessage,
	); err != nil {
		return fmt.Errorf("failed to register handle-message service: %w", err)
	}
	log.Printf("[bot] Registered services: handle-message")
	return nil
}

// handleMessage handles the handle-message service request. The reply is
// always a user-facing string; failures degrade to a generic apology so the
// messaging provider never sees a transport error.
func (m *BotModule) handleMessage(ctx context.Context, req HandleMessageRequest, _ *mono.Msg) (HandleMessageResponse, error) {
	return HandleMessageResponse{Reply: m.reply(ctx, req.Phone, req.Body)}, nil
}

// Start verifies dependencies.
func (m *BotModule) Start(_ context.Context) error {
	if m.tracker == nil {
		return fmt.Errorf("tracker dependency not set")
	}
	log.Println("[bot] Module started")
	return nil
}

// Stop shuts down the module.
func (m *BotModule) Stop(_ context.Context) error {
	log.Println("[bot] Module stopped")
	return nil
}
