package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samvad-hq/randwall/internal/domain"
	"github.com/samvad-hq/randwall/pkg/jsonpath"
)

const genericSourceName = "Generic JSON Source"

// genericJSONAdapter reads the image URL out of any JSON API with a configured path expression.
type genericJSONAdapter struct {
	sourceDeps
}

// NewGenericJSON builds the configurable JSON source.
func NewGenericJSON(client HTTPClient, settings Settings, log Logger) Adapter {
	return &genericJSONAdapter{sourceDeps: newSourceDeps(KindGenericJSON, client, settings, log)}
}

func (a *genericJSONAdapter) RequestRandomImage(ctx context.Context) (domain.ImageRecord, error) {
	settings := a.snapshot()
	rawURL := strings.TrimSpace(settings.GetString(SettingGenericRequestURL))
	if rawURL == "" {
		return domain.ImageRecord{}, a.fail(failConfig, msgInvalidConfig, fmt.Errorf("%s is empty", SettingGenericRequestURL))
	}
	expr := strings.TrimSpace(settings.GetString(SettingGenericResponsePath))
	if expr == "" {
		return domain.ImageRecord{}, a.fail(failConfig, msgInvalidConfig, fmt.Errorf("%s is empty", SettingGenericResponsePath))
	}
	path, err := jsonpath.Compile(expr)
	if err != nil {
		return domain.ImageRecord{}, a.fail(failConfig, msgInvalidConfig, err)
	}
	prefix := settings.GetString(SettingGenericURLPrefix)

	body, err := a.get(ctx, encodeURI(rawURL), jsonHeaders())
	if err != nil {
		return domain.ImageRecord{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, fmt.Errorf("decode json: %w", err))
	}
	// the body must hold exactly one value, as json.Unmarshal requires
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, fmt.Errorf("decode json: %w", err))
	}

	value, err := path.Evaluate(doc)
	if err != nil {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, err)
	}
	text, err := scalarString(value)
	if err != nil {
		return domain.ImageRecord{}, a.fail(failParse, msgUnexpectedResponse, fmt.Errorf("%s: %w", expr, err))
	}

	downloadURL := prefix + text
	return a.record("", genericSourceName, downloadURL, domain.SourceMetadata{SourceURL: downloadURL})
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case nil:
		return "", errors.New("selected value is null")
	default:
		return "", fmt.Errorf("selected value is a %T, not a string or number", v)
	}
}
