package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/task-reminder-bot/domain/deadline"
	"github.com/example/task-reminder-bot/events"
	"github.com/example/task-reminder-bot/modules/store"
)

// Tick runs one scan over all pending tasks and returns how many reminders
// were delivered. "now" is snapshotted once per tick. A task is due iff
// 0 < deadline−now <= window, with the window chosen by the deadline's
// grain; already-passed deadlines are skipped, never retroactively
// notified.
func (m *ReminderModule) Tick(ctx context.Context) int {
	now := m.clock.Now()

	rows, err := m.store.Tasks().PendingReminders()
	if err != nil {
		log.Printf("[reminder] Failed to load pending tasks: %v", err)
		return 0
	}

	sent := 0
	for _, row := range rows {
		if ctx.Err() != nil {
			return sent
		}
		if m.remind(ctx, row, now) {
			sent++
		}
	}
	return sent
}

// remind evaluates one task and, when due, delivers its reminder. Every
// failure is contained to this task: the scan continues with the rest.
func (m *ReminderModule) remind(ctx context.Context, row store.PendingReminder, now time.Time) bool {
	loc, err := time.LoadLocation(row.Timezone)
	if err != nil {
		log.Printf("[reminder] Task %d: bad timezone %q: %v", row.TaskID, row.Timezone, err)
		return false
	}

	d, err := deadline.Parse(row.Deadline)
	if err != nil {
		log.Printf("[reminder] Task %d: %v", row.TaskID, err)
		return false
	}

	window := m.config.LeadDateOnly
	if d.Grain() == deadline.GrainDateTime {
		window = m.config.LeadDateTime
	}

	remaining := d.Instant(loc).Sub(now)
	if remaining <= 0 || remaining > window {
		return false
	}

	body := renderReminder(row.Name, d)

	sendCtx, cancel := context.WithTimeout(ctx, m.config.SendTimeout)
	err = m.sender.Send(sendCtx, row.Phone, body)
	cancel()
	if err != nil {
		// Leave reminded=false so the next tick retries (at-least-once).
		log.Printf("[reminder] Failed to send reminder for task %d to %s: %v", row.TaskID, row.Phone, err)
		return false
	}

	if err := m.store.Tasks().MarkReminded(row.TaskID); err != nil {
		log.Printf("[reminder] Failed to persist reminded flag for task %d: %v", row.TaskID, err)
		return true
	}

	log.Printf("[reminder] Reminder sent to %s: %s (due %s)", row.Phone, row.Name, row.Deadline)

	if m.eventBus != nil {
		event := events.ReminderSentEvent{
			TaskID:   row.TaskID,
			Phone:    row.Phone,
			Deadline: row.Deadline,
			SentAt:   now,
		}
		if err := events.ReminderSentV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[reminder] Warning: failed to publish ReminderSent event for task %d: %v", row.TaskID, err)
		}
	}
	return true
}

// renderReminder builds the outbound message body. Date+time deadlines say
// "due at", date-only say "due on".
func renderReminder(name string, d deadline.Deadline) string {
	if d.Grain() == deadline.GrainDateTime {
		return fmt.Sprintf("⏰ Reminder: '%s' is due at %s", name, d.Display())
	}
	return fmt.Sprintf("⏰ Reminder: '%s' is due on %s", name, d.Display())
}
