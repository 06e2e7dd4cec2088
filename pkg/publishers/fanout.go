package publishers

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Fanout delivers one image event to every configured sink.
type Fanout struct {
	publishers []Publisher
}

// NewFanout drops nil entries and keeps the rest in configuration order.
func NewFanout(pubs []Publisher) *Fanout {
	cp := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			cp = append(cp, p)
		}
	}
	return &Fanout{publishers: cp}
}

// Publish sends evt to all sinks concurrently and waits for each of them.
// It returns how many sinks accepted the event; failures are joined in
// configuration order. Sinks not subscribed to the event's source count as
// neither.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.publishers) == 0 {
		return 0, nil
	}

	errs := make([]error, len(f.publishers))
	var wg sync.WaitGroup
	for i, p := range f.publishers {
		wg.Add(1)
		go func(i int, p Publisher) {
			defer wg.Done()
			if err := p.Publish(ctx, evt); err != nil {
				errs[i] = fmt.Errorf("%s publisher[%s]: %w", p.Type(), p.ID(), err)
			}
		}(i, p)
	}
	wg.Wait()

	delivered := 0
	for i, err := range errs {
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, ErrSourceSkipped):
			errs[i] = nil
		}
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.publishers)
}

// IDs lists the sink ids, used when logging rotator startup.
func (f *Fanout) IDs() []string {
	if f == nil {
		return nil
	}
	ids := make([]string, 0, len(f.publishers))
	for _, p := range f.publishers {
		ids = append(ids, p.ID())
	}
	return ids
}

// Close releases every sink, joining their errors.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
