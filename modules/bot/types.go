package bot

import "context"

// HandleMessageRequest is the request for processing one inbound chat
// message.
type HandleMessageRequest struct {
	Phone string `json:"phone"`
	Body  string `json:"body"`
}

// HandleMessageResponse carries the reply text for the sender.
type HandleMessageResponse struct {
	Reply string `json:"reply"`
}

// BotPort is the contract the webhook surface uses to reach the command
// interpreter.
type BotPort interface {
	HandleMessage(ctx context.Context, phone, body string) (string, error)
}
