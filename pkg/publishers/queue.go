package publishers

import (
	"context"
	"fmt"
)

// queuePublisher adapts a broker-specific queueSender to the Publisher interface.
type queuePublisher struct {
	id     string
	typ    string
	sender queueSender
	log    Logger
}

func newQueuePublisher(id, typ string, sender queueSender, log Logger) *queuePublisher {
	return &queuePublisher{id: id, typ: typ, sender: sender, log: ensureLogger(log)}
}

func (q *queuePublisher) ID() string   { return q.id }
func (q *queuePublisher) Type() string { return q.typ }

func (q *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := q.sender.Send(ctx, evt); err != nil {
		fields := deliveryFields(q.id, q.typ, evt)
		fields["error"] = err.Error()
		q.log.ErrorObj("queue publisher send failed", "publisher_error", fields)
		return err
	}
	q.log.DebugObj("queue publisher delivered event", "publisher_delivery", deliveryFields(q.id, q.typ, evt))
	return nil
}

func (q *queuePublisher) Close() error {
	if err := q.sender.Close(); err != nil {
		return fmt.Errorf("close %s publisher %s: %w", q.typ, q.id, err)
	}
	return nil
}
