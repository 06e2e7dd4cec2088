package sources

import (
	"context"

	"github.com/samvad-hq/randwall/internal/domain"
	"github.com/samvad-hq/randwall/pkg/httpclient"
)

// Kind identifies an image source implementation.
type Kind string

const (
	KindDesktopper  Kind = "desktopper"
	KindUnsplash    Kind = "unsplash"
	KindWallhaven   Kind = "wallhaven"
	KindGenericJSON Kind = "generic_json"
)

// AllKinds lists the sources DefaultRegistry wires up, in registration order.
var AllKinds = []Kind{KindDesktopper, KindUnsplash, KindWallhaven, KindGenericJSON}

// Adapter retrieves one random image from a provider.
//
// RequestRandomImage returns either a record or an *Error, never both. It
// performs at most the requests the provider needs and does not retry.
type Adapter interface {
	Kind() Kind
	RequestRandomImage(ctx context.Context) (domain.ImageRecord, error)
}

// Settings is the typed option lookup sources read on every call.
// Unset keys must yield their registered default. *viper.Viper satisfies it.
type Settings interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
}

// Snapshotter is implemented by Settings stores whose values can change
// between calls. Sources take one Snapshot per request and read every option
// from it.
type Snapshotter interface {
	Snapshot() Settings
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
