package bot

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/task-reminder-bot/modules/tracker"
)

// dueMarker splits an add-task message into name and deadline text.
const dueMarker = "/due"

const genericFailure = "Something went wrong. Please try again later."

// reply runs the command state machine for one inbound message. Checked in
// order, first match wins: first contact, list, done N, timezone change,
// otherwise add-task.
func (m *BotModule) reply(ctx context.Context, phone, body string) string {
	body = strings.TrimSpace(body)

	u, err := m.tracker.TouchUser(ctx, phone)
	if err != nil {
		log.Printf("[bot] Failed to resolve user %s: %v", phone, err)
		return genericFailure
	}
	if u.Created {
		return m.welcome(phone, u.Timezone)
	}

	lower := strings.ToLower(body)
	switch {
	case lower == "list":
		return m.list(ctx, phone)
	case strings.HasPrefix(lower, "done "):
		return m.done(ctx, phone, strings.TrimSpace(body[len("done "):]))
	case lower == "/timezone" || lower == "tz" ||
		strings.HasPrefix(lower, "/timezone ") || strings.HasPrefix(lower, "tz "):
		fields := strings.Fields(body)
		if len(fields) != 2 {
			return "Use: /timezone Area/City (e.g. /timezone Europe/London)"
		}
		return m.setTimezone(ctx, phone, fields[1])
	default:
		return m.addTask(ctx, phone, body)
	}
}

// welcome is the first-contact message; the triggering message is not
// otherwise processed as a command.
func (m *BotModule) welcome(phone, zone string) string {
	return fmt.Sprintf(`👋 Welcome to your personal task tracker!

📍 Your time zone is set to: %s (%s)
⏰ Use /due with dates like: today 14:00 or 22-04 18:00
🌍 To change your time zone, send: /timezone Europe/London

Other commands:
• list — show tasks
• done 1 — mark task 1 as done
• Manage online: %s`, zone, prettyOffset(zone), m.pageURL(phone))
}

func (m *BotModule) list(ctx context.Context, phone string) string {
	resp, err := m.tracker.ListTasks(ctx, phone)
	if err != nil {
		log.Printf("[bot] Failed to list tasks for %s: %v", phone, err)
		return genericFailure
	}
	if resp.Total == 0 {
		return fmt.Sprintf("No tasks yet.\nManage online: %s", m.pageURL(phone))
	}

	lines := make([]string, 0, resp.Total+1)
	for _, t := range resp.Tasks {
		marker := "❌"
		if t.Done {
			marker = "✅"
		}
		line := fmt.Sprintf("%d. %s %s", t.Index, marker, t.Name)
		if t.Deadline != "" {
			line += fmt.Sprintf(" (due %s)", t.Deadline)
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("🔗 Manage online: %s", m.pageURL(phone)))
	return strings.Join(lines, "\n")
}

func (m *BotModule) done(ctx context.Context, phone, arg string) string {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return "Use: done [task number]"
	}

	resp, err := m.tracker.CompleteTask(ctx, phone, index)
	if err != nil {
		log.Printf("[bot] Failed to complete task %d for %s: %v", index, phone, err)
		return genericFailure
	}
	if !resp.OK {
		return "Invalid task number."
	}
	return fmt.Sprintf("Marked task %d as done!", index)
}

func (m *BotModule) setTimezone(ctx context.Context, phone, zone string) string {
	resp, err := m.tracker.SetTimezone(ctx, phone, zone)
	if err != nil {
		log.Printf("[bot] Failed to set timezone for %s: %v", phone, err)
		return genericFailure
	}
	if !resp.Valid {
		return fmt.Sprintf("Unknown time zone: %s. Use an IANA name like Europe/London.", zone)
	}
	return fmt.Sprintf("Time zone set to %s (%s).", zone, prettyOffset(zone))
}

func (m *BotModule) addTask(ctx context.Context, phone, body string) string {
	name, dueText := splitDue(body)
	if name == "" {
		return "Use: task name /due today 14:00"
	}

	resp, err := m.tracker.AddTask(ctx, &tracker.AddTaskRequest{
		Phone:   phone,
		Name:    name,
		DueText: dueText,
	})
	if err != nil {
		log.Printf("[bot] Failed to add task for %s: %v", phone, err)
		return genericFailure
	}

	reply := fmt.Sprintf("Added task: %s", resp.Name)
	if resp.Deadline != "" {
		reply += fmt.Sprintf(" (due %s)", resp.Deadline)
	}
	return reply
}

// splitDue separates a message into task name and deadline text at the
// first occurrence of the due marker.
func splitDue(body string) (name, dueText string) {
	before, after, found := strings.Cut(body, dueMarker)
	if !found {
		return strings.TrimSpace(body), ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

func (m *BotModule) pageURL(phone string) string {
	return fmt.Sprintf("%s/u/%s", m.baseURL, url.PathEscape(phone))
}

// prettyOffset renders a zone's current UTC offset like "UTC+03:00".
func prettyOffset(zone string) string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "UTC"
	}
	return "UTC" + time.Now().In(loc).Format("-07:00")
}
