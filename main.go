package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/task-reminder-bot/middleware/ratelimit"
	apimod "github.com/example/task-reminder-bot/modules/api"
	botmod "github.com/example/task-reminder-bot/modules/bot"
	notifiermod "github.com/example/task-reminder-bot/modules/notifier"
	remindermod "github.com/example/task-reminder-bot/modules/reminder"
	storemod "github.com/example/task-reminder-bot/modules/store"
	trackermod "github.com/example/task-reminder-bot/modules/tracker"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	storeCfg := storemod.Config{
		Path: getEnv("DB_PATH", "tracker.db"),
		URL:  getEnv("DATABASE_URL", ""),
	}
	notifierCfg := notifiermod.Config{
		AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
	}
	reminderCfg := remindermod.DefaultConfig()
	reminderCfg.Interval = getEnvDuration("REMINDER_INTERVAL", reminderCfg.Interval)
	reminderCfg.LeadDateTime = getEnvDuration("REMINDER_LEAD_DATETIME", reminderCfg.LeadDateTime)
	reminderCfg.LeadDateOnly = getEnvDuration("REMINDER_LEAD_DATE", reminderCfg.LeadDateOnly)
	reminderCfg.SendTimeout = getEnvDuration("SEND_TIMEOUT", reminderCfg.SendTimeout)

	rateCfg := ratelimit.DefaultConfig()
	rateCfg.RedisAddr = getEnv("REDIS_ADDR", "")
	rateCfg.Limit = getEnvInt("RATE_LIMIT", rateCfg.Limit)
	rateCfg.Window = getEnvDuration("RATE_WINDOW", rateCfg.Window)

	httpPort := getEnvInt("HTTP_PORT", 3000)
	baseURL := getEnv("BASE_URL", "http://localhost:3000")

	log.Println("=== Task Reminder Bot ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Base URL: %s", baseURL)
	log.Printf("Reminder interval: %s", reminderCfg.Interval)

	// Create modules
	storeModule := storemod.NewModule(storeCfg)
	notifierModule := notifiermod.NewModule(notifierCfg)
	trackerModule := trackermod.NewModule()
	botModule := botmod.NewModule(baseURL)
	reminderModule := remindermod.NewModule(reminderCfg)
	apiModule := apimod.NewModule(apimod.Config{Port: httpPort, RateLimit: rateCfg})

	// Direct wiring: tracker and reminder read the store's repositories,
	// reminder delivers through the notifier's sender.
	trackerModule.SetStore(storeModule)
	reminderModule.SetStore(storeModule)
	reminderModule.SetSender(notifierModule.Sender())

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules in dependency order: the store first, then the
	// domain, then the surfaces.
	app.Register(storeModule)
	app.Register(notifierModule)
	app.Register(trackerModule)
	app.Register(botModule)
	app.Register(reminderModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Application started successfully!")
	log.Printf("Webhook: POST %s/webhook", baseURL)
	log.Printf("Web page: GET %s/u/<phone>", baseURL)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid %s=%q, using %s", key, value, fallback)
	}
	return fallback
}
