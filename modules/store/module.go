// Package store owns the database connection and exposes the user and task
// repositories to the rest of the application.
package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/task-reminder-bot/domain/task"
	"github.com/example/task-reminder-bot/domain/user"
	"github.com/go-monolith/mono"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds store configuration.
type Config struct {
	// Path is the SQLite database file, used when URL is empty.
	Path string
	// URL is an optional Postgres DSN; when set it takes precedence.
	URL string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{Path: "tracker.db"}
}

// Module opens the database, runs migrations and provides repositories.
type Module struct {
	config Config
	db     *gorm.DB
	users  *UserRepository
	tasks  *TaskRepository
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new store module.
func NewModule(cfg Config) *Module {
	return &Module{config: cfg}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "store"
}

// Users returns the user repository. Valid after Start.
func (m *Module) Users() *UserRepository {
	return m.users
}

// Tasks returns the task repository. Valid after Start.
func (m *Module) Tasks() *TaskRepository {
	return m.tasks
}

// Start opens the database connection and runs migrations.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if m.config.URL != "" {
		log.Println("[store] Connecting to Postgres")
		db, err = gorm.Open(postgres.Open(m.config.URL), gormCfg)
	} else {
		log.Printf("[store] Opening SQLite database: %s", m.config.Path)
		db, err = gorm.Open(sqlite.Open(m.config.Path), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&user.User{}, &task.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.users = NewUserRepository(m.db)
	m.tasks = NewTaskRepository(m.db)

	log.Println("[store] Module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("[store] Database connection closed")
	return nil
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	driver := "sqlite"
	if m.config.URL != "" {
		driver = "postgres"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"driver": driver},
	}
}
