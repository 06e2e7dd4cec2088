// Package storage remembers which images were already served so the rotator
// can skip repeats within a retention window.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Entry is what the history keeps about one served image.
type Entry struct {
	SourceID         string    `json:"source_id"`
	ImageDownloadURL string    `json:"image_download_url"`
	FileName         string    `json:"file_name,omitempty"`
	ServedAt         time.Time `json:"served_at"`
}

// Store tracks served image IDs.
type Store interface {
	Close() error
	SeenImage(id string) (bool, error)
	MarkImage(id string, entry Entry) error
	// Lookup returns the stored entry, or false when absent or expired.
	Lookup(id string) (Entry, bool, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ImageTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultImageTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts, time.Now)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ImageTTL <= 0 {
		opts.ImageTTL = defaultImageTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                       { return nil }
func (noopStore) SeenImage(string) (bool, error)     { return false, nil }
func (noopStore) MarkImage(string, Entry) error      { return nil }
func (noopStore) Lookup(string) (Entry, bool, error) { return Entry{}, false, nil }
