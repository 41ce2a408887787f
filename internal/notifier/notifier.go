package notifier

import "context"

// Email is a single outbound message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

// Notifier delivers email side effects. Callers treat delivery as
// fire-and-forget: a send failure never fails the operation that asked for it.
type Notifier interface {
	Send(ctx context.Context, email Email) error
}
