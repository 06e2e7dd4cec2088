package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/samvad-hq/randwall/internal/config"
	"github.com/samvad-hq/randwall/internal/logger"
	"github.com/samvad-hq/randwall/pkg/httpclient"
	"github.com/samvad-hq/randwall/pkg/publishers"
	"github.com/samvad-hq/randwall/pkg/sources"
)

// buildSources loads the source settings and registers every source behind one HTTP client.
func buildSources(cfg *config.Config, log logger.Logger) (*config.SourceSettings, sources.Registry, error) {
	settings, err := config.LoadSettings(cfg.SettingsFile, log)
	if err != nil {
		return nil, nil, fmt.Errorf("load source settings: %w", err)
	}

	client := httpclient.NewRestyClientWithUserAgent(cfg.HTTPTimeout, cfg.HTTPUserAgent)
	reg := sources.DefaultRegistry(client, settings, log)

	kinds := reg.Kinds()
	ids := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ids = append(ids, string(k))
	}
	log.InfoObj("source registry loaded", "sources_meta", map[string]any{
		"settings_file": cfg.SettingsFile,
		"ids":           ids,
	})
	return settings, reg, nil
}

// buildFanout builds the configured record sinks. A missing publishers file
// means no sinks; rotation still runs and logs each image.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.WarnObj("publishers file not found; no sinks configured", "publishers_file", cfg.PublishersFile)
		return publishers.NewFanout(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}
