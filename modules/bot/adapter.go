package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// botAdapter wraps the bot ServiceContainer for the webhook surface.
type botAdapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates an adapter over the bot module's service container.
func NewAdapter(container mono.ServiceContainer) BotPort {
	if container == nil {
		panic("bot adapter requires non-nil ServiceContainer")
	}
	return &botAdapter{container: container}
}

// HandleMessage processes one inbound message and returns the reply text.
func (a *botAdapter) HandleMessage(ctx context.Context, phone, body string) (string, error) {
	req := HandleMessageRequest{Phone: phone, Body: body}
	var resp HandleMessageResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "handle-message", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return "", fmt.Errorf("handle-message service call failed: %w", err)
	}
	return resp.Reply, nil
}
