// Package api is the HTTP surface: the messaging-provider webhook, the
// per-user web page and the health endpoint.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/task-reminder-bot/middleware/ratelimit"
	"github.com/example/task-reminder-bot/modules/bot"
	"github.com/example/task-reminder-bot/modules/tracker"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds HTTP surface configuration.
type Config struct {
	Port      int
	RateLimit ratelimit.Config
}

// APIModule runs the Fiber server.
type APIModule struct {
	config  Config
	app     *fiber.App
	bot     bot.BotPort
	tracker tracker.TrackerPort
	limiter *ratelimit.Limiter
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	return &APIModule{config: cfg}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"bot", "tracker"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "bot":
		m.bot = bot.NewAdapter(container)
	case "tracker":
		m.tracker = tracker.NewAdapter(container)
	}
}

// SetPorts overrides the upstream ports, for tests.
func (m *APIModule) SetPorts(b bot.BotPort, t tracker.TrackerPort) {
	m.bot = b
	m.tracker = t
}

// Start initializes the Fiber app and begins serving.
func (m *APIModule) Start(ctx context.Context) error {
	if m.bot == nil || m.tracker == nil {
		return fmt.Errorf("bot/tracker dependencies not set")
	}

	if m.config.RateLimit.RedisAddr != "" {
		limiter, err := ratelimit.NewLimiter(ctx, m.config.RateLimit)
		if err != nil {
			return fmt.Errorf("failed to init rate limiter: %w", err)
		}
		m.limiter = limiter
		log.Printf("[api] Webhook rate limiting enabled (%d req / %s per sender)",
			m.config.RateLimit.Limit, m.config.RateLimit.Window)
	}

	m.app = m.buildApp()

	go func() {
		addr := fmt.Sprintf(":%d", m.config.Port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// buildApp creates the Fiber app with middleware and routes. Split from
// Start so tests can exercise routes without binding a port.
func (m *APIModule) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Reminder Bot",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", m.health)

	app.Post("/webhook", ratelimit.New(m.limiter, webhookSender), m.webhook)

	page := app.Group("/u/:phone")
	page.Get("/", m.userPage)
	page.Post("/tasks", m.webAddTask)
	page.Post("/tasks/:n/done", m.webMarkDone)
	page.Post("/purge", m.webPurgeDone)

	return app
}

// webhookSender extracts the rate-limiting key from a webhook request.
func webhookSender(c *fiber.Ctx) string {
	return c.FormValue("From")
}

// Stop shuts down the HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.limiter != nil {
		if err := m.limiter.Close(); err != nil {
			log.Printf("[api] Failed to close rate limiter: %v", err)
		}
	}
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{"port": m.config.Port},
	}
}

// GetApp returns the Fiber app, for tests.
func (m *APIModule) GetApp() *fiber.App {
	return m.app
}

// errorHandler maps unhandled route errors to JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"path":  c.Path(),
	})
}
