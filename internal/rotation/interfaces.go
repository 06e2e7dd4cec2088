package rotation

import (
	"context"

	"github.com/samvad-hq/randwall/internal/storage"
	"github.com/samvad-hq/randwall/pkg/publishers"
)

// History remembers which images were already served.
type History interface {
	SeenImage(id string) (bool, error)
	MarkImage(id string, entry storage.Entry) error
}

// EventPublisher publishes served images downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
