// Package task holds the task entity persisted by the store module.
package task

import "time"

// Task is a single todo item owned by a user. Order within a user is
// insertion order; chat commands address tasks by 1-based position in that
// order. Done and Reminded only ever move from false to true; the one
// physical delete is the purge-completed operation.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:500;not null" json:"name"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	Deadline  string    `gorm:"size:16" json:"deadline,omitempty"`
	Reminded  bool      `gorm:"not null;default:false" json:"reminded"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// HasDeadline reports whether the task carries a deadline.
func (t *Task) HasDeadline() bool {
	return t.Deadline != ""
}
