package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/task-reminder-bot/domain/deadline"
	"github.com/example/task-reminder-bot/domain/task"
	"github.com/example/task-reminder-bot/domain/user"
	"github.com/example/task-reminder-bot/events"
	"github.com/go-monolith/mono"
)

// touchUser handles the touch-user service request. Unknown phones get a
// user record with a prefix-derived default timezone.
func (m *TrackerModule) touchUser(_ context.Context, req TouchUserRequest, _ *mono.Msg) (TouchUserResponse, error) {
	if req.Phone == "" {
		return TouchUserResponse{}, fmt.Errorf("phone is required")
	}

	u, created, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return TouchUserResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	return TouchUserResponse{
		UserID:   u.ID,
		Timezone: u.Timezone,
		Created:  created,
	}, nil
}

// setTimezone handles the set-timezone service request. An unknown zone id
// is a validation failure: Valid=false, stored zone untouched.
func (m *TrackerModule) setTimezone(_ context.Context, req SetTimezoneRequest, _ *mono.Msg) (SetTimezoneResponse, error) {
	u, _, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return SetTimezoneResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return SetTimezoneResponse{Valid: false, Timezone: u.Timezone}, nil
	}

	if err := m.store.Users().SetTimezone(u.ID, req.Timezone); err != nil {
		return SetTimezoneResponse{}, fmt.Errorf("failed to set timezone: %w", err)
	}
	return SetTimezoneResponse{Valid: true, Timezone: req.Timezone}, nil
}

// addTask handles the add-task service request. Unparseable due text is not
// an error: the task is created without a deadline.
func (m *TrackerModule) addTask(_ context.Context, req AddTaskRequest, _ *mono.Msg) (AddTaskResponse, error) {
	if req.Name == "" {
		return AddTaskResponse{}, fmt.Errorf("name is required")
	}

	u, _, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return AddTaskResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	var stored, display string
	if req.DueText != "" {
		if d, ok := deadline.ParseFlexible(req.DueText, u.Location(), m.now()); ok {
			stored = d.String()
			display = d.Display()
		} else {
			log.Printf("[tracker] Unrecognized due text %q, creating task without deadline", req.DueText)
		}
	}

	newTask := &task.Task{
		UserID:   u.ID,
		Name:     req.Name,
		Deadline: stored,
	}
	if err := m.store.Tasks().Add(newTask); err != nil {
		return AddTaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	index, err := m.positionOf(u, newTask.ID)
	if err != nil {
		return AddTaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			UserID:    u.ID,
			Name:      newTask.Name,
			Deadline:  newTask.Deadline,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tracker] Warning: failed to publish TaskCreated event for task %d: %v", newTask.ID, err)
		}
	}

	return AddTaskResponse{
		TaskID:   newTask.ID,
		Index:    index,
		Name:     newTask.Name,
		Deadline: display,
	}, nil
}

// listTasks handles the list-tasks service request.
func (m *TrackerModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	u, _, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return ListTasksResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	tasks, err := m.store.Tasks().ListByUser(u.ID)
	if err != nil {
		return ListTasksResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := ListTasksResponse{
		Tasks: make([]TaskView, 0, len(tasks)),
		Total: len(tasks),
	}
	for i, t := range tasks {
		view := TaskView{
			Index: i + 1,
			Name:  t.Name,
			Done:  t.Done,
		}
		if t.HasDeadline() {
			if d, err := deadline.Parse(t.Deadline); err == nil {
				view.Deadline = d.Display()
			} else {
				log.Printf("[tracker] Task %d has malformed deadline %q: %v", t.ID, t.Deadline, err)
			}
		}
		resp.Tasks = append(resp.Tasks, view)
	}
	return resp, nil
}

// completeTask handles the complete-task service request. Index is 1-based
// into the user's insertion-ordered task list.
func (m *TrackerModule) completeTask(_ context.Context, req CompleteTaskRequest, _ *mono.Msg) (CompleteTaskResponse, error) {
	u, _, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return CompleteTaskResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	tasks, err := m.store.Tasks().ListByUser(u.ID)
	if err != nil {
		return CompleteTaskResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	if req.Index < 1 || req.Index > len(tasks) {
		return CompleteTaskResponse{OK: false, Index: req.Index}, nil
	}

	target := tasks[req.Index-1]
	if err := m.store.Tasks().MarkDone(target.ID); err != nil {
		return CompleteTaskResponse{}, fmt.Errorf("failed to mark task done: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskCompletedEvent{
			TaskID:      target.ID,
			UserID:      u.ID,
			CompletedAt: m.now(),
		}
		if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tracker] Warning: failed to publish TaskCompleted event for task %d: %v", target.ID, err)
		}
	}

	return CompleteTaskResponse{OK: true, Index: req.Index}, nil
}

// purgeDone handles the purge-done service request.
func (m *TrackerModule) purgeDone(_ context.Context, req PurgeDoneRequest, _ *mono.Msg) (PurgeDoneResponse, error) {
	u, _, err := m.store.Users().GetOrCreate(req.Phone)
	if err != nil {
		return PurgeDoneResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	removed, err := m.store.Tasks().PurgeDone(u.ID)
	if err != nil {
		return PurgeDoneResponse{}, fmt.Errorf("failed to purge tasks: %w", err)
	}

	if m.eventBus != nil && removed > 0 {
		event := events.TasksPurgedEvent{
			UserID:   u.ID,
			Removed:  removed,
			PurgedAt: m.now(),
		}
		if err := events.TasksPurgedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[tracker] Warning: failed to publish TasksPurged event for user %d: %v", u.ID, err)
		}
	}

	return PurgeDoneResponse{Removed: removed}, nil
}

// positionOf returns the 1-based position of taskID in the user's list.
func (m *TrackerModule) positionOf(u *user.User, taskID uint) (int, error) {
	tasks, err := m.store.Tasks().ListByUser(u.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	for i, t := range tasks {
		if t.ID == taskID {
			return i + 1, nil
		}
	}
	return 0, task.ErrNotFound
}
