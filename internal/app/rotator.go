package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/randwall/internal/config"
	"github.com/samvad-hq/randwall/internal/logger"
	"github.com/samvad-hq/randwall/internal/rotation"
	"github.com/samvad-hq/randwall/internal/storage"
	"github.com/samvad-hq/randwall/pkg/publishers"
)

// Rotator is the wallpaper rotation runtime. It asks the selected source for
// an image on every tick, announces new images through the publishers and
// records them in the history store.
type Rotator struct {
	cfg      *config.Config
	settings *config.SourceSettings
	service  *rotation.Service
	fanout   *publishers.Fanout
	store    storage.Store
	interval time.Duration
	log      logger.Logger
}

// NewRotator builds a rotator runtime from config files.
func NewRotator(ctx context.Context, cfg *config.Config, log logger.Logger) (*Rotator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	settings, reg, err := buildSources(cfg, log)
	if err != nil {
		return nil, err
	}
	if _, err := reg.AdapterFor(cfg.Source); err != nil {
		return nil, fmt.Errorf("select source: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storeOpts := storage.Options{
		ImageTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"image_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Rotator{
		cfg:      cfg,
		settings: settings,
		service:  rotation.NewService(reg, fanout, log, store),
		fanout:   fanout,
		store:    store,
		interval: cfg.RotationInterval,
		log:      log,
	}, nil
}

// Run rotates immediately and then on every interval until the context is cancelled.
func (r *Rotator) Run(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("rotator is not initialized")
	}
	defer r.close()

	if strings.TrimSpace(r.cfg.SettingsFile) != "" {
		go func() {
			if err := r.settings.Watch(ctx); err != nil {
				r.log.WarnObj("source settings watch disabled", "error", err.Error())
			}
		}()
	}

	r.log.InfoObj("rotator loop starting", "rotator_state", map[string]any{
		"source":            r.cfg.Source,
		"publishers_count":  r.fanout.Size(),
		"publishers":        r.fanout.IDs(),
		"rotation_interval": r.interval.String(),
	})

	r.runOnce(ctx, "initial rotation failed")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("rotator loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			r.runOnce(ctx, "scheduled rotation failed")
		}
	}
}

func (r *Rotator) runOnce(ctx context.Context, failMsg string) {
	if _, err := r.service.RunOnce(ctx, r.cfg.Source); err != nil && ctx.Err() == nil {
		r.log.ErrorObj(failMsg, "rotation_error", map[string]any{
			"source": r.cfg.Source,
			"error":  err.Error(),
		})
	}
}

// close releases the publishers and the storage backend, logging any errors encountered.
func (r *Rotator) close() {
	if err := r.fanout.Close(); err != nil {
		r.log.ErrorObj("publishers close failed", "error", err.Error())
	}
	if r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
