package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/randwall/internal/config"
	"github.com/samvad-hq/randwall/internal/domain"
	"github.com/samvad-hq/randwall/internal/logger"
	"github.com/samvad-hq/randwall/internal/rotation"
	"github.com/samvad-hq/randwall/pkg/publishers"
	"github.com/samvad-hq/randwall/pkg/sources"
)

// OnceResult is the outcome of a single source request.
type OnceResult struct {
	SourceID string             `json:"source_id"`
	Image    domain.ImageRecord `json:"image"`
	FileName string             `json:"file_name"`
}

// FetchOnce requests one image from sourceID, or from the configured source
// when sourceID is empty. Nothing is published or recorded.
func FetchOnce(ctx context.Context, cfg *config.Config, sourceID string, log logger.Logger) (OnceResult, error) {
	if cfg == nil {
		return OnceResult{}, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if strings.TrimSpace(sourceID) == "" {
		sourceID = cfg.Source
	}

	_, reg, err := buildSources(cfg, log)
	if err != nil {
		return OnceResult{}, err
	}
	adapter, err := reg.AdapterFor(sourceID)
	if err != nil {
		return OnceResult{}, fmt.Errorf("select source: %w", err)
	}

	res := <-sources.Request(ctx, adapter)
	if res.Err != nil {
		return OnceResult{}, res.Err
	}

	name, err := sources.FileName(res.Image.ImageDownloadURL)
	if err != nil {
		return OnceResult{}, fmt.Errorf("decode file name: %w", err)
	}
	return OnceResult{SourceID: string(adapter.Kind()), Image: res.Image, FileName: name}, nil
}

// PublishOnce sends res to the single sink declared as sinkID in the
// publishers file. The sink is used even when it is disabled there, since
// naming it is an explicit request.
func PublishOnce(ctx context.Context, cfg *config.Config, sinkID string, res OnceResult, log logger.Logger) error {
	if cfg == nil {
		return fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return fmt.Errorf("load publishers registry: %w", err)
	}
	pubCfg, ok := publisherReg.ByID(sinkID)
	if !ok {
		return fmt.Errorf("publisher %q is not declared in %s", sinkID, cfg.PublishersFile)
	}

	pub, err := publishers.DefaultRegistry().PublisherFor(ctx, pubCfg, log)
	if err != nil {
		return fmt.Errorf("build publisher %q: %w", sinkID, err)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.WarnObj("publisher close failed", "error", err.Error())
		}
	}()

	evt := publishers.NewEvent(res.SourceID, rotation.ImageID(res.Image.ImageDownloadURL), res.FileName, res.Image)
	if err := pub.Publish(ctx, evt); err != nil {
		return fmt.Errorf("publish to %q: %w", sinkID, err)
	}
	log.InfoObj("image published", "publish_once", map[string]any{
		"publisher_id": sinkID,
		"image_id":     evt.ImageID,
	})
	return nil
}
