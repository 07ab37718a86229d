package tracker

import "context"

// TouchUserRequest is the request for resolving (and auto-creating) a user.
type TouchUserRequest struct {
	Phone string `json:"phone"`
}

// TouchUserResponse is the response for touch-user.
type TouchUserResponse struct {
	UserID   uint   `json:"user_id"`
	Timezone string `json:"timezone"`
	Created  bool   `json:"created"`
}

// SetTimezoneRequest is the request for changing a user's zone.
type SetTimezoneRequest struct {
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

// SetTimezoneResponse is the response for set-timezone. Valid is false when
// the zone id is not in the IANA catalogue; nothing is mutated in that case.
type SetTimezoneResponse struct {
	Valid    bool   `json:"valid"`
	Timezone string `json:"timezone"`
}

// AddTaskRequest is the request for creating a task. DueText, when present,
// is free-form deadline text parsed in the user's zone.
type AddTaskRequest struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	DueText string `json:"due_text,omitempty"`
}

// AddTaskResponse is the response for add-task. Deadline is the display
// form, empty when the due text was absent or unparseable.
type AddTaskResponse struct {
	TaskID   uint   `json:"task_id"`
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Deadline string `json:"deadline,omitempty"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	Phone string `json:"phone"`
}

// TaskView is one task as rendered to a surface.
type TaskView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Deadline string `json:"deadline,omitempty"`
}

// ListTasksResponse is the response for list-tasks.
type ListTasksResponse struct {
	Tasks []TaskView `json:"tasks"`
	Total int        `json:"total"`
}

// CompleteTaskRequest is the request for marking the Nth (1-based) task done.
type CompleteTaskRequest struct {
	Phone string `json:"phone"`
	Index int    `json:"index"`
}

// CompleteTaskResponse is the response for complete-task. OK is false when
// the index is out of range; the task list is unchanged then.
type CompleteTaskResponse struct {
	OK    bool `json:"ok"`
	Index int  `json:"index"`
}

// PurgeDoneRequest is the request for removing a user's completed tasks.
type PurgeDoneRequest struct {
	Phone string `json:"phone"`
}

// PurgeDoneResponse is the response for purge-done.
type PurgeDoneResponse struct {
	Removed int64 `json:"removed"`
}

// TrackerPort is the contract surfaces (chat bot, web) use to reach the
// core domain.
type TrackerPort interface {
	TouchUser(ctx context.Context, phone string) (*TouchUserResponse, error)
	SetTimezone(ctx context.Context, phone, zone string) (*SetTimezoneResponse, error)
	AddTask(ctx context.Context, req *AddTaskRequest) (*AddTaskResponse, error)
	ListTasks(ctx context.Context, phone string) (*ListTasksResponse, error)
	CompleteTask(ctx context.Context, phone string, index int) (*CompleteTaskResponse, error)
	PurgeDone(ctx context.Context, phone string) (*PurgeDoneResponse, error)
}
