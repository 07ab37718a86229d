package notifier

import (
	"context"
	"log"
)

// Sender is the outbound message delivery capability. Implementations must
// honor ctx cancellation; the reminder scheduler bounds every call with a
// timeout and treats expiry as a delivery failure.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender is a Sender that only logs. It stands in when no provider
// credentials are configured, so the rest of the system behaves normally in
// development.
type LogSender struct{}

// Send logs the message and reports success.
func (LogSender) Send(_ context.Context, to, body string) error {
	log.Printf("[notifier] (log-only) To %s: %s", to, body)
	return nil
}
