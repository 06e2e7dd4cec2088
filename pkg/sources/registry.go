package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/randwall/internal/domain"
	"github.com/samvad-hq/randwall/pkg/httpclient"
)

// Registry resolves the adapter for a source id.
type Registry interface {
	AdapterFor(id string) (Adapter, error)
	Kinds() []Kind
}

// registry implements Registry.
type registry struct {
	mu     sync.RWMutex
	byKind map[Kind]Adapter
	order  []Kind
}

// NewRegistry builds a registry for the provided adapters keyed by their kind.
func NewRegistry(adapters ...Adapter) Registry {
	reg := &registry{byKind: make(map[Kind]Adapter)}
	for _, a := range adapters {
		reg.register(a)
	}
	return reg
}

func (r *registry) register(a Adapter) {
	if a == nil {
		return
	}
	key := normalizeKind(string(a.Kind()))
	if key == "" {
		return
	}

	r.mu.Lock()
	if _, exists := r.byKind[key]; !exists {
		r.order = append(r.order, key)
	}
	r.byKind[key] = a
	r.mu.Unlock()
}

// AdapterFor selects the adapter registered for id (case-insensitive).
func (r *registry) AdapterFor(id string) (Adapter, error) {
	if r == nil {
		return nil, fmt.Errorf("source registry is nil")
	}
	key := normalizeKind(id)
	if key == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byKind[key]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no image source registered for %q", id)
}

// Kinds returns the registered kinds in registration order.
func (r *registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

func normalizeKind(id string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(id)))
}

// DefaultHTTPClient returns the resty-backed client used when none is supplied.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// New builds the adapter for kind. Unknown kinds get an adapter that always fails.
func New(kind Kind, client HTTPClient, settings Settings, log Logger) Adapter {
	switch normalizeKind(string(kind)) {
	case KindDesktopper:
		return NewDesktopper(client, settings, log)
	case KindUnsplash:
		return NewUnsplash(client, settings, log)
	case KindWallhaven:
		return NewWallhaven(client, settings, log)
	case KindGenericJSON:
		return NewGenericJSON(client, settings, log)
	default:
		return notImplemented{kind: kind, log: ensureLogger(log)}
	}
}

// DefaultRegistry wires up every known source sharing one client and settings instance.
func DefaultRegistry(client HTTPClient, settings Settings, log Logger) Registry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if settings == nil {
		settings = NewSettings()
	}

	adapters := make([]Adapter, 0, len(AllKinds))
	for _, kind := range AllKinds {
		adapters = append(adapters, New(kind, client, settings, log))
	}
	return NewRegistry(adapters...)
}

// notImplemented anchors the Adapter contract for kinds without an implementation.
type notImplemented struct {
	kind Kind
	log  Logger
}

func (n notImplemented) Kind() Kind { return n.kind }

func (n notImplemented) RequestRandomImage(context.Context) (domain.ImageRecord, error) {
	err := &Error{Message: "requestRandomImage not implemented", Cause: fmt.Errorf("source %q", n.kind)}
	n.log.ErrorObj("image source request failed", "source_error", map[string]any{
		"source": string(n.kind),
		"error":  err.Error(),
	})
	return domain.ImageRecord{}, err
}
