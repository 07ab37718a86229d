package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// trackerAdapter wraps the tracker ServiceContainer for type-safe
// cross-module calls. It implements TrackerPort.
type trackerAdapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates an adapter over the tracker module's service
// container, received via SetDependencyServiceContainer.
func NewAdapter(container mono.ServiceContainer) TrackerPort {
	if container == nil {
		panic("tracker adapter requires non-nil ServiceContainer")
	}
	return &trackerAdapter{container: container}
}

func call[T any](ctx context.Context, a *trackerAdapter, service string, req any, resp *T) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// TouchUser resolves a user, creating it on first contact.
func (a *trackerAdapter) TouchUser(ctx context.Context, phone string) (*TouchUserResponse, error) {
	req := TouchUserRequest{Phone: phone}
	var resp TouchUserResponse
	if err := call(ctx, a, "touch-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetTimezone validates and stores a user's zone.
func (a *trackerAdapter) SetTimezone(ctx context.Context, phone, zone string) (*SetTimezoneResponse, error) {
	req := SetTimezoneRequest{Phone: phone, Timezone: zone}
	var resp SetTimezoneResponse
	if err := call(ctx, a, "set-timezone", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddTask creates a task, parsing optional due text in the user's zone.
func (a *trackerAdapter) AddTask(ctx context.Context, req *AddTaskRequest) (*AddTaskResponse, error) {
	var resp AddTaskResponse
	if err := call(ctx, a, "add-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks returns a user's tasks in insertion order.
func (a *trackerAdapter) ListTasks(ctx context.Context, phone string) (*ListTasksResponse, error) {
	req := ListTasksRequest{Phone: phone}
	var resp ListTasksResponse
	if err := call(ctx, a, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteTask marks the Nth (1-based) task done.
func (a *trackerAdapter) CompleteTask(ctx context.Context, phone string, index int) (*CompleteTaskResponse, error) {
	req := CompleteTaskRequest{Phone: phone, Index: index}
	var resp CompleteTaskResponse
	if err := call(ctx, a, "complete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PurgeDone removes a user's completed tasks.
func (a *trackerAdapter) PurgeDone(ctx context.Context, phone string) (*PurgeDoneResponse, error) {
	req := PurgeDoneRequest{Phone: phone}
	var resp PurgeDoneResponse
	if err := call(ctx, a, "purge-done", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
