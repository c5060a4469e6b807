package messaging

import "context"

// Broker publishes call-outcome events for downstream consumers. Publishing
// is strictly best-effort: callers log failures and never surface them to
// the conversation driver.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}
