package store

import (
	"errors"
	"testing"

	"github.com/example/task-reminder-bot/domain/task"
	"github.com/example/task-reminder-bot/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &task.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestUserRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	u, created, err := repo.GetOrCreate("+972501234567")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if !created {
		t.Error("expected created=true on first contact")
	}
	if u.Timezone != "Asia/Jerusalem" {
		t.Errorf("default timezone = %q, want Asia/Jerusalem", u.Timezone)
	}

	again, created, err := repo.GetOrCreate("+972501234567")
	if err != nil {
		t.Fatalf("GetOrCreate() second call error = %v", err)
	}
	if created {
		t.Error("expected created=false on second contact")
	}
	if again.ID != u.ID {
		t.Errorf("second call returned ID %d, want %d", again.ID, u.ID)
	}
}

func TestUserRepository_SetTimezone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	u, _, err := repo.GetOrCreate("+14155550100")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if err := repo.SetTimezone(u.ID, "Europe/London"); err != nil {
		t.Fatalf("SetTimezone() error = %v", err)
	}
	found, err := repo.FindByPhone("+14155550100")
	if err != nil {
		t.Fatalf("FindByPhone() error = %v", err)
	}
	if found.Timezone != "Europe/London" {
		t.Errorf("timezone = %q, want Europe/London", found.Timezone)
	}

	if err := repo.SetTimezone(9999, "UTC"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("SetTimezone(unknown) error = %v, want ErrUserNotFound", err)
	}
}

func TestTaskRepository_InsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)

	u, _, err := users.GetOrCreate("+1000")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	for _, name := range []string{"first", "second", "third"} {
		if err := tasks.Add(&task.Task{UserID: u.ID, Name: name}); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}

	list, err := tasks.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(list))
	}
	for i, want := range []string{"first", "second", "third"} {
		if list[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestTaskRepository_MarkDoneAndPurge(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)

	u, _, _ := users.GetOrCreate("+1000")
	for _, name := range []string{"keep", "finish", "also keep"} {
		if err := tasks.Add(&task.Task{UserID: u.ID, Name: name}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	list, _ := tasks.ListByUser(u.ID)
	if err := tasks.MarkDone(list[1].ID); err != nil {
		t.Fatalf("MarkDone() error = %v", err)
	}

	removed, err := tasks.PurgeDone(u.ID)
	if err != nil {
		t.Fatalf("PurgeDone() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("PurgeDone() removed %d, want 1", removed)
	}

	remaining, _ := tasks.ListByUser(u.ID)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining tasks, got %d", len(remaining))
	}
	if remaining[0].Name != "keep" || remaining[1].Name != "also keep" {
		t.Errorf("remaining order broken: %q, %q", remaining[0].Name, remaining[1].Name)
	}

	if err := tasks.MarkDone(9999); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("MarkDone(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestTaskRepository_PendingReminders(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)

	u, _, _ := users.GetOrCreate("+972501234567")

	noDeadline := &task.Task{UserID: u.ID, Name: "no deadline"}
	pending := &task.Task{UserID: u.ID, Name: "pending", Deadline: "2025-04-22 18:00"}
	alreadyDone := &task.Task{UserID: u.ID, Name: "done", Deadline: "2025-04-23", Done: true}
	alreadyReminded := &task.Task{UserID: u.ID, Name: "reminded", Deadline: "2025-04-24", Reminded: true}
	for _, tk := range []*task.Task{noDeadline, pending, alreadyDone, alreadyReminded} {
		if err := tasks.Add(tk); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	rows, err := tasks.PendingReminders()
	if err != nil {
		t.Fatalf("PendingReminders() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 pending reminder, got %d", len(rows))
	}
	row := rows[0]
	if row.Name != "pending" || row.Deadline != "2025-04-22 18:00" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Phone != "+972501234567" || row.Timezone != "Asia/Jerusalem" {
		t.Errorf("owner join broken: phone=%q zone=%q", row.Phone, row.Timezone)
	}
}
