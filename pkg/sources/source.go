package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/randwall/internal/domain"
)

// sourceDeps bundles the collaborators every source uses and the request,
// decode and failure helpers built on them.
type sourceDeps struct {
	kind     Kind
	client   HTTPClient
	settings Settings
	log      Logger
}

func newSourceDeps(kind Kind, client HTTPClient, settings Settings, log Logger) sourceDeps {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if settings == nil {
		settings = NewSettings()
	}
	return sourceDeps{
		kind:     kind,
		client:   client,
		settings: settings,
		log:      ensureLogger(log),
	}
}

func (d sourceDeps) Kind() Kind { return d.kind }

// snapshot returns the settings view used for one whole request.
func (d sourceDeps) snapshot() Settings {
	if sn, ok := d.settings.(Snapshotter); ok {
		if s := sn.Snapshot(); s != nil {
			return s
		}
	}
	return d.settings
}

// fail builds the Error returned to the caller and logs it once.
func (d sourceDeps) fail(kind failure, msg string, cause error) error {
	err := &Error{Message: msg, Cause: cause}
	d.log.ErrorObj("image source request failed", "source_error", map[string]any{
		"source":  string(d.kind),
		"failure": string(kind),
		"error":   err.Error(),
	})
	return err
}

// get issues one GET and returns the body of a 2xx response.
func (d sourceDeps) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	if err := validateRequestURL(rawURL); err != nil {
		return nil, d.fail(failRequest, msgCouldNotCreate, err)
	}

	resp, err := d.client.Get(ctx, rawURL, headers)
	if err != nil {
		return nil, d.fail(failNetwork, msgRequestFailed, err)
	}
	if resp == nil {
		return nil, d.fail(failNetwork, msgRequestFailed, errors.New("no response"))
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, d.fail(failNetwork, msgRequestFailed,
			fmt.Errorf("%s returned status %d body: %s", rawURL, code, responseSnippet(body)))
	}
	return body, nil
}

// decodeJSON unmarshals body into v, reporting failures as parse errors.
func (d sourceDeps) decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return d.fail(failParse, msgUnexpectedResponse, fmt.Errorf("decode json: %w", err))
	}
	return nil
}

// record builds the final record; an invalid URL from upstream is a parse failure.
func (d sourceDeps) record(author, sourceName, downloadURL string, meta domain.SourceMetadata) (domain.ImageRecord, error) {
	rec, err := domain.NewImageRecord(author, sourceName, downloadURL, meta)
	if err != nil {
		return domain.ImageRecord{}, d.fail(failParse, msgUnexpectedResponse, err)
	}
	d.log.DebugObj("image source returned image", "source_result", map[string]any{
		"source":             string(d.kind),
		"image_download_url": rec.ImageDownloadURL,
	})
	return rec, nil
}

func validateRequestURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.New("request url is empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse request url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("request url %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("request url %q has no host", rawURL)
	}
	return nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

func htmlHeaders() map[string]string {
	return map[string]string{"Accept": "text/html,application/xhtml+xml"}
}
