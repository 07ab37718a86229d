// Package reminder runs the background loop that delivers deadline
// reminders.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/task-reminder-bot/events"
	"github.com/example/task-reminder-bot/modules/notifier"
	"github.com/example/task-reminder-bot/modules/store"
	"github.com/go-monolith/mono"
)

// Config holds scheduler configuration. The interval and both lead windows
// are plain tunables; nothing in the scan logic treats any particular value
// as special.
type Config struct {
	// Interval is the polling period between scans.
	Interval time.Duration
	// LeadDateTime is the reminder window before a date+time deadline.
	LeadDateTime time.Duration
	// LeadDateOnly is the reminder window before a date-only deadline.
	LeadDateOnly time.Duration
	// SendTimeout bounds each delivery call; expiry counts as a delivery
	// failure and the task is retried next tick.
	SendTimeout time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Interval:     10 * time.Minute,
		LeadDateTime: time.Hour,
		LeadDateOnly: 24 * time.Hour,
		SendTimeout:  10 * time.Second,
	}
}

// Clock abstracts time for the scheduler so the window logic is testable
// without real time passing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ReminderModule periodically scans pending tasks and sends reminders for
// those entering their lead window.
type ReminderModule struct {
	config   Config
	store    *store.Module
	sender   notifier.Sender
	eventBus mono.EventBus
	clock    Clock
	cancel   context.CancelFunc
	done     chan struct{}
}

// Compile-time interface checks.
var _ mono.Module = (*ReminderModule)(nil)
var _ mono.EventEmitterModule = (*ReminderModule)(nil)

// NewModule creates a new ReminderModule.
func NewModule(cfg Config) *ReminderModule {
	return &ReminderModule{
		config: cfg,
		clock:  systemClock{},
	}
}

// Name returns the module name.
func (m *ReminderModule) Name() string {
	return "reminder"
}

// SetStore wires the store module. Called from main before the app starts.
func (m *ReminderModule) SetStore(s *store.Module) {
	m.store = s
}

// SetSender wires the delivery capability.
func (m *ReminderModule) SetSender(s notifier.Sender) {
	m.sender = s
}

// SetClock overrides the clock, for tests.
func (m *ReminderModule) SetClock(c Clock) {
	m.clock = c
}

// SetEventBus receives the application event bus.
func (m *ReminderModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *ReminderModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ReminderSentV1.ToBase(),
	}
}

// Start launches the polling loop.
func (m *ReminderModule) Start(_ context.Context) error {
	if m.store == nil {
		return fmt.Errorf("store dependency not set")
	}
	if m.sender == nil {
		return fmt.Errorf("sender dependency not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx)

	log.Printf("[reminder] Module started (interval=%s, windows=%s/%s)",
		m.config.Interval, m.config.LeadDateTime, m.config.LeadDateOnly)
	return nil
}

// Stop cancels the loop and waits for the current tick to finish.
func (m *ReminderModule) Stop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()

	select {
	case <-m.done:
		log.Println("[reminder] Module stopped")
		return nil
	case <-ctx.Done():
		log.Println("[reminder] Timeout waiting for scheduler to stop")
		return ctx.Err()
	}
}

// run is the scheduler loop. It never exits on a per-task error; each tick
// is isolated.
func (m *ReminderModule) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}
