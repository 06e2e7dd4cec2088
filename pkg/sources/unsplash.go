package sources

import (
	"context"
	"errors"
	"strings"

	"github.com/samvad-hq/randwall/internal/domain"
)

// UnsplashClientID is the application access key sent as client_id.
// This is injected at build time via -ldflags.
var UnsplashClientID = "YOUR_UNSPLASH_ACCESS_KEY"

const (
	unsplashSourceName = "Unsplash"
	unsplashSourceURL  = "https://unsplash.com/"
	unsplashRandomURL  = "https://api.unsplash.com/photos/random"

	defaultUTMSource = "randwall"
)

// unsplashAdapter resolves a random photo in two stages: the random photo
// endpoint, then the photo's download_location, which Unsplash requires to be
// hit for every download and which returns the final asset URL.
type unsplashAdapter struct {
	sourceDeps
	endpoint string
	clientID string
}

type unsplashPhoto struct {
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	URLs struct {
		Raw string `json:"raw"`
	} `json:"urls"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
}

type unsplashDownload struct {
	URL string `json:"url"`
}

// NewUnsplash builds the Unsplash source.
func NewUnsplash(client HTTPClient, settings Settings, log Logger) Adapter {
	return newUnsplash(client, settings, log)
}

func newUnsplash(client HTTPClient, settings Settings, log Logger) *unsplashAdapter {
	return &unsplashAdapter{
		sourceDeps: newSourceDeps(KindUnsplash, client, settings, log),
		endpoint:   unsplashRandomURL,
		clientID:   UnsplashClientID,
	}
}

func (a *unsplashAdapter) options(s Settings) Options {
	username := strings.TrimPrefix(strings.TrimSpace(s.GetString(SettingUnsplashUsername)), "@")

	return Options{
		{Key: "username", Value: username},
		{Key: "query", Value: strings.TrimSpace(s.GetString(SettingUnsplashKeyword))},
		{Key: "collections", Value: splitList(s.GetString(SettingUnsplashCollections))},
		{Key: "w", Value: s.GetInt(SettingUnsplashImageWidth)},
		{Key: "h", Value: s.GetInt(SettingUnsplashImageHeight)},
		{Key: "featured", Value: s.GetBool(SettingUnsplashFeaturedOnly)},
	}
}

func (a *unsplashAdapter) utmParameters(s Settings) string {
	source := strings.TrimSpace(s.GetString(SettingUnsplashUTMSource))
	if source == "" {
		source = defaultUTMSource
	}
	return "utm_source=" + source + "&utm_medium=referral&utm_campaign=api-credit"
}

func (a *unsplashAdapter) headers() map[string]string {
	h := jsonHeaders()
	h["Accept-Version"] = "v1"
	return h
}

func (a *unsplashAdapter) RequestRandomImage(ctx context.Context) (domain.ImageRecord, error) {
	settings := a.snapshot()
	clientParam := "client_id=" + a.clientID
	utm := a.utmParameters(settings)

	body, err := a.get(ctx, buildURL(a.endpoint, a.options(settings).Encode(), clientParam), a.headers())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	var photo unsplashPhoto
	if err := a.decodeJSON(body, &photo); err != nil {
		return domain.ImageRecord{}, err
	}
	trigger := strings.TrimSpace(photo.Links.DownloadLocation)
	if trigger == "" {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, errors.New("links.download_location is missing"))
	}

	meta := domain.SourceMetadata{SourceURL: encodeURI(appendQuery(unsplashSourceURL, utm))}
	if profile := strings.TrimSpace(photo.User.Links.HTML); profile != "" {
		meta.AuthorURL = encodeURI(appendQuery(profile, utm))
	}
	if raw := strings.TrimSpace(photo.URLs.Raw); raw != "" {
		meta.ImageLinkURL = encodeURI(appendQuery(raw, utm))
	}

	body, err = a.get(ctx, buildURL(trigger, clientParam), a.headers())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	var download unsplashDownload
	if err := a.decodeJSON(body, &download); err != nil {
		return domain.ImageRecord{}, err
	}
	if strings.TrimSpace(download.URL) == "" {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, errors.New("download url is missing"))
	}

	return a.record(photo.User.Name, unsplashSourceName, encodeURI(download.URL), meta)
}
