package publishers

import "context"

// Publisher sends events to a downstream sink (HTTP, SQS, SNS, Pub/Sub).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// queueSender delivers one serialized event to a message broker.
type queueSender interface {
	Send(ctx context.Context, evt Event) error
	Close() error
}
