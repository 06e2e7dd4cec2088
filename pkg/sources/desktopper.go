package sources

import (
	"context"
	"errors"
	"strings"

	"github.com/samvad-hq/randwall/internal/domain"
)

const (
	desktopperSourceName = "desktopper.co"
	desktopperSourceURL  = "https://www.desktoppr.co/"
	desktopperRandomURL  = "https://api.desktoppr.co/1/wallpapers/random"
)

// desktopperAdapter fetches one random wallpaper with a single JSON GET.
type desktopperAdapter struct {
	sourceDeps
	endpoint string
}

type desktopperResponse struct {
	Response *struct {
		Image *struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"response"`
}

// NewDesktopper builds the desktoppr.co source.
func NewDesktopper(client HTTPClient, settings Settings, log Logger) Adapter {
	return &desktopperAdapter{
		sourceDeps: newSourceDeps(KindDesktopper, client, settings, log),
		endpoint:   desktopperRandomURL,
	}
}

func (a *desktopperAdapter) options(s Settings) Options {
	filter := "safe"
	if s.GetBool(SettingDesktopperAllowUnsafe) {
		filter = "all"
	}
	return Options{{Key: "safe_filter", Value: filter}}
}

func (a *desktopperAdapter) RequestRandomImage(ctx context.Context) (domain.ImageRecord, error) {
	reqURL := buildURL(a.endpoint, a.options(a.snapshot()).Encode())

	body, err := a.get(ctx, reqURL, jsonHeaders())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	var payload desktopperResponse
	if err := a.decodeJSON(body, &payload); err != nil {
		return domain.ImageRecord{}, err
	}
	if payload.Response == nil || payload.Response.Image == nil || strings.TrimSpace(payload.Response.Image.URL) == "" {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, errors.New("response.image.url is missing"))
	}

	return a.record("", desktopperSourceName, encodeURI(payload.Response.Image.URL), domain.SourceMetadata{
		SourceURL: desktopperSourceURL,
	})
}
