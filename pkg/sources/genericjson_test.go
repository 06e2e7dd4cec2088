package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/randwall/pkg/jsonpath"
)

const genericURL = "https://api.example.com/random"

func genericSettings(path, prefix string) mapSettings {
	return mapSettings{
		SettingGenericRequestURL:   genericURL,
		SettingGenericResponsePath: path,
		SettingGenericURLPrefix:    prefix,
	}
}

func TestGenericJSONExtractsPath(t *testing.T) {
	client := newFakeClient().respond(genericURL, 200, `{"data":{"items":[{"url":"/a.png"}]}}`)

	rec, err := NewGenericJSON(client, genericSettings("$.data.items[0].url", "https://cdn/"), nil).
		RequestRandomImage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn//a.png", rec.ImageDownloadURL)
	assert.Equal(t, "Generic JSON Source", rec.SourceName)
	assert.Equal(t, "https://cdn//a.png", rec.Source.SourceURL)
	assert.Equal(t, []string{genericURL}, client.urls())
}

func TestGenericJSONNumberKeepsPrecision(t *testing.T) {
	client := newFakeClient().respond(genericURL, 200, `{"id": 12345678901234567890}`)

	rec, err := NewGenericJSON(client, genericSettings("id", "https://img.example.com/"), nil).
		RequestRandomImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/12345678901234567890", rec.ImageDownloadURL)
}

func TestGenericJSONRejectsTrailingData(t *testing.T) {
	bodies := map[string]string{
		"html after value":    `{"url":"https://x/a.png"} <html>oops</html>`,
		"second json value":   `{"url":"https://x/a.png"} {"url":"https://x/b.png"}`,
		"stray closing brace": `{"url":"https://x/a.png"}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newFakeClient().respond(genericURL, 200, body)

			rec, err := NewGenericJSON(client, genericSettings("url", ""), nil).
				RequestRandomImage(context.Background())
			require.Error(t, err)
			assert.Zero(t, rec)

			var srcErr *Error
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, msgUnexpectedResponse, srcErr.Message)
		})
	}
}

func TestGenericJSONAllowsTrailingWhitespace(t *testing.T) {
	client := newFakeClient().respond(genericURL, 200, "{\"url\":\"https://x/a.png\"}\n\t ")

	rec, err := NewGenericJSON(client, genericSettings("url", ""), nil).
		RequestRandomImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x/a.png", rec.ImageDownloadURL)
}

func TestGenericJSONMissingPath(t *testing.T) {
	client := newFakeClient().respond(genericURL, 200, `{"data":{"items":[]}}`)

	rec, err := NewGenericJSON(client, genericSettings("$.data.items[0].url", ""), nil).
		RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.Zero(t, rec)
	assert.ErrorIs(t, err, jsonpath.ErrIndexOutOfRange)

	var srcErr *Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, msgUnexpectedResponse, srcErr.Message)
}

func TestGenericJSONRejectsContainers(t *testing.T) {
	client := newFakeClient().respond(genericURL, 200, `{"data":{"url":null,"items":[1]}}`)

	for _, path := range []string{"data", "data.items", "data.url"} {
		_, err := NewGenericJSON(client, genericSettings(path, "https://cdn/"), nil).
			RequestRandomImage(context.Background())
		assert.Error(t, err, path)
	}
}

func TestGenericJSONConfigErrorsSkipNetwork(t *testing.T) {
	cases := map[string]mapSettings{
		"empty url":    {SettingGenericResponsePath: "$.url"},
		"empty path":   {SettingGenericRequestURL: genericURL},
		"invalid path": genericSettings("$..url", ""),
	}

	for name, settings := range cases {
		t.Run(name, func(t *testing.T) {
			client := newFakeClient()
			_, err := NewGenericJSON(client, settings, nil).RequestRandomImage(context.Background())

			var srcErr *Error
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, msgInvalidConfig, srcErr.Message)
			assert.Empty(t, client.urls())
		})
	}
}

func TestGenericJSONInvalidRequestURL(t *testing.T) {
	client := newFakeClient()
	settings := mapSettings{
		SettingGenericRequestURL:   "ftp://example.com/list",
		SettingGenericResponsePath: "url",
	}

	_, err := NewGenericJSON(client, settings, nil).RequestRandomImage(context.Background())

	var srcErr *Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, msgCouldNotCreate, srcErr.Message)
	assert.Empty(t, client.urls())
}
