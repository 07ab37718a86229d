package api

import (
	"log"
	"net/url"
	"strconv"

	"github.com/example/task-reminder-bot/modules/tracker"
	"github.com/gofiber/fiber/v2"
)

const genericFailure = "Something went wrong. Please try again later."

// webhook handles one inbound message from the provider. The response is
// always 200 with provider markup; a store outage surfaces as a generic
// failure reply, never as a transport error.
func (m *APIModule) webhook(c *fiber.Ctx) error {
	from := c.FormValue("From")
	body := c.FormValue("Body")
	if from == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing sender")
	}

	reply, err := m.bot.HandleMessage(c.Context(), from, body)
	if err != nil {
		log.Printf("[api] Webhook handling failed for %s: %v", from, err)
		reply = genericFailure
	}

	payload, err := renderTwiML(reply)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render reply")
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Send(payload)
}

// phoneParam extracts and decodes the :phone path segment.
func phoneParam(c *fiber.Ctx) string {
	raw := c.Params("phone")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// userPage renders the task list page for one user.
func (m *APIModule) userPage(c *fiber.Ctx) error {
	phone := phoneParam(c)

	u, err := m.tracker.TouchUser(c.Context(), phone)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage unavailable")
	}
	list, err := m.tracker.ListTasks(c.Context(), phone)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage unavailable")
	}

	html, err := renderPage(pageData{
		Phone:    phone,
		PagePath: pagePath(phone),
		Timezone: u.Timezone,
		Tasks:    list.Tasks,
		HasDone:  hasDone(list.Tasks),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(html)
}

// webAddTask creates a task from the page form; the due text follows the
// same parsing contract as the chat add-task path.
func (m *APIModule) webAddTask(c *fiber.Ctx) error {
	phone := phoneParam(c)
	name := c.FormValue("task")
	due := c.FormValue("due")

	if name != "" {
		_, err := m.tracker.AddTask(c.Context(), &tracker.AddTaskRequest{
			Phone:   phone,
			Name:    name,
			DueText: due,
		})
		if err != nil {
			log.Printf("[api] Web add-task failed for %s: %v", phone, err)
		}
	}
	return c.Redirect(pagePath(phone), fiber.StatusSeeOther)
}

// webMarkDone marks the Nth (1-based) task done. Out-of-range positions
// are ignored, mirroring the chat command's no-op semantics.
func (m *APIModule) webMarkDone(c *fiber.Ctx) error {
	phone := phoneParam(c)

	if n, err := strconv.Atoi(c.Params("n")); err == nil {
		if _, err := m.tracker.CompleteTask(c.Context(), phone, n); err != nil {
			log.Printf("[api] Web mark-done failed for %s: %v", phone, err)
		}
	}
	return c.Redirect(pagePath(phone), fiber.StatusSeeOther)
}

// webPurgeDone removes all completed tasks for the user.
func (m *APIModule) webPurgeDone(c *fiber.Ctx) error {
	phone := phoneParam(c)

	if _, err := m.tracker.PurgeDone(c.Context(), phone); err != nil {
		log.Printf("[api] Web purge failed for %s: %v", phone, err)
	}
	return c.Redirect(pagePath(phone), fiber.StatusSeeOther)
}

// health reports liveness.
func (m *APIModule) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func pagePath(phone string) string {
	return "/u/" + url.PathEscape(phone)
}

func hasDone(tasks []tracker.TaskView) bool {
	for _, t := range tasks {
		if t.Done {
			return true
		}
	}
	return false
}
