package store

import (
	"fmt"

	"github.com/example/task-reminder-bot/domain/task"
	"gorm.io/gorm"
)

// TaskRepository provides access to task storage.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Add saves a new task.
func (r *TaskRepository) Add(t *task.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByUser returns a user's tasks in insertion order. Chat commands
// address tasks by 1-based position in this slice.
func (r *TaskRepository) ListByUser(userID uint) ([]*task.Task, error) {
	var tasks []*task.Task
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// MarkDone sets the done flag. Single-field update so it cannot interleave
// with a reminded-flag update on the same row.
func (r *TaskRepository) MarkDone(taskID uint) error {
	result := r.db.Model(&task.Task{}).Where("id = ?", taskID).Update("done", true)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to mark task done: %w", err)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

// MarkReminded sets the reminded flag. Single-field update, see MarkDone.
func (r *TaskRepository) MarkReminded(taskID uint) error {
	result := r.db.Model(&task.Task{}).Where("id = ?", taskID).Update("reminded", true)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to mark task reminded: %w", err)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

// PurgeDone removes all completed tasks for a user and reports how many
// rows were deleted.
func (r *TaskRepository) PurgeDone(userID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND done = ?", userID, true).Delete(&task.Task{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to purge done tasks: %w", err)
	}
	return result.RowsAffected, nil
}

// PendingReminder is one scheduler scan row: a task eligible for reminder
// evaluation joined with its owner's delivery address and zone.
type PendingReminder struct {
	TaskID   uint
	UserID   uint
	Name     string
	Deadline string
	Phone    string
	Timezone string
}

// PendingReminders returns every task that is not done, not yet reminded
// and has a deadline, across all users, joined with the owning user.
func (r *TaskRepository) PendingReminders() ([]PendingReminder, error) {
	var rows []PendingReminder
	err := r.db.Table("tasks").
		Select("tasks.id AS task_id, tasks.user_id, tasks.name, tasks.deadline, users.phone, users.timezone").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.done = ? AND tasks.reminded = ? AND tasks.deadline <> ''", false, false).
		Order("tasks.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending reminders: %w", err)
	}
	return rows, nil
}
