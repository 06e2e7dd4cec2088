package sources

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/samvad-hq/randwall/internal/domain"
)

const (
	wallhavenSourceName = "wallhaven.cc"
	wallhavenSourceURL  = "https://wallhaven.cc/"
	wallhavenSearchURL  = "https://wallhaven.cc/search"
)

// wallhavenAdapter scrapes a random search results page, then the chosen wallpaper page.
type wallhavenAdapter struct {
	sourceDeps
	endpoint string
	pick     func(n int) int
}

// NewWallhaven builds the wallhaven.cc source.
func NewWallhaven(client HTTPClient, settings Settings, log Logger) Adapter {
	return newWallhaven(client, settings, log)
}

func newWallhaven(client HTTPClient, settings Settings, log Logger) *wallhavenAdapter {
	return &wallhavenAdapter{
		sourceDeps: newSourceDeps(KindWallhaven, client, settings, log),
		endpoint:   wallhavenSearchURL,
		pick:       rand.IntN,
	}
}

func (a *wallhavenAdapter) options(s Settings) Options {
	return Options{
		{Key: "q", Value: strings.TrimSpace(s.GetString(SettingWallhavenKeyword))},
		// the third purity flag (nsfw) is always off
		{Key: "purity", Value: bitmask(s.GetBool(SettingWallhavenAllowSFW), s.GetBool(SettingWallhavenAllowSketchy), false)},
		{Key: "sorting", Value: "random"},
		{Key: "categories", Value: bitmask(
			s.GetBool(SettingWallhavenCategoryGeneral),
			s.GetBool(SettingWallhavenCategoryAnime),
			s.GetBool(SettingWallhavenCategoryPeople),
		)},
		{Key: "resolutions", Value: splitList(s.GetString(SettingWallhavenResolutions))},
	}
}

func (a *wallhavenAdapter) RequestRandomImage(ctx context.Context) (domain.ImageRecord, error) {
	body, err := a.get(ctx, buildURL(a.endpoint, a.options(a.snapshot()).Encode()), htmlHeaders())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	candidates := dedupe(extractDetailURLs(body))
	if len(candidates) == 0 {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, errNoDetailPages)
	}
	detailURL := candidates[a.pick(len(candidates))]

	page, err := a.get(ctx, detailURL, htmlHeaders())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	imageURL, err := extractFullImageURL(page)
	if err != nil {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, err)
	}

	return a.record(extractUploader(page), wallhavenSourceName, imageURL, domain.SourceMetadata{
		SourceURL:    wallhavenSourceURL,
		ImageLinkURL: detailURL,
	})
}
