package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unsplashDefaultURL = "https://api.unsplash.com/photos/random?collections=&w=1920&h=1080&client_id=test-client"
	unsplashTrigger    = "https://api.unsplash.com/photos/abc/download?ixid=abc"
	unsplashStage2URL  = "https://api.unsplash.com/photos/abc/download?ixid=abc&client_id=test-client"
	utm                = "utm_source=randwall&utm_medium=referral&utm_campaign=api-credit"
)

const unsplashPhotoBody = `{
  "user": {"name": "Jane Doe", "links": {"html": "https://unsplash.com/@jane"}},
  "urls": {"raw": "https://images.unsplash.com/photo-1?ixid=abc"},
  "links": {"download_location": "https://api.unsplash.com/photos/abc/download?ixid=abc"}
}`

func testUnsplash(client HTTPClient, settings Settings) *unsplashAdapter {
	a := newUnsplash(client, settings, nil)
	a.clientID = "test-client"
	return a
}

func TestUnsplashTwoStageRequest(t *testing.T) {
	client := newFakeClient().
		respond(unsplashDefaultURL, 200, unsplashPhotoBody).
		respond(unsplashStage2URL, 200, `{"url":"https://images.unsplash.com/photo-1?ixid=abc&fm=jpg"}`)

	rec, err := testUnsplash(client, mapSettings{}).RequestRandomImage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{unsplashDefaultURL, unsplashStage2URL}, client.urls())
	assert.Equal(t, "v1", client.calls[0].headers["Accept-Version"])

	assert.Equal(t, "Jane Doe", rec.AuthorName)
	assert.Equal(t, "Unsplash", rec.SourceName)
	assert.Equal(t, "https://images.unsplash.com/photo-1?ixid=abc&fm=jpg", rec.ImageDownloadURL)
	assert.Equal(t, "https://unsplash.com/?"+utm, rec.Source.SourceURL)
	assert.Equal(t, "https://unsplash.com/@jane?"+utm, rec.Source.AuthorURL)
	assert.Equal(t, "https://images.unsplash.com/photo-1?ixid=abc&"+utm, rec.Source.ImageLinkURL)
}

func TestUnsplashOptionsOrderAndEncoding(t *testing.T) {
	settings := mapSettings{
		SettingUnsplashUsername:     " @jane ",
		SettingUnsplashKeyword:      "misty mountains",
		SettingUnsplashCollections:  " 123, ,456 ",
		SettingUnsplashImageWidth:   2560,
		SettingUnsplashImageHeight:  1440,
		SettingUnsplashFeaturedOnly: true,
	}
	want := "https://api.unsplash.com/photos/random?username=jane&query=misty%20mountains&collections=123,456&w=2560&h=1440&featured=true&client_id=test-client"
	client := newFakeClient().respond(want, 200, `{}`)

	_, err := testUnsplash(client, settings).RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{want}, client.urls())
}

func TestUnsplashCustomUTMSource(t *testing.T) {
	client := newFakeClient().
		respond(unsplashDefaultURL, 200, unsplashPhotoBody).
		respond(unsplashStage2URL, 200, `{"url":"https://images.unsplash.com/photo-1"}`)

	rec, err := testUnsplash(client, mapSettings{SettingUnsplashUTMSource: "my_app"}).RequestRandomImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://unsplash.com/?utm_source=my_app&utm_medium=referral&utm_campaign=api-credit", rec.Source.SourceURL)
}

func TestUnsplashWithoutTriggerSkipsSecondStage(t *testing.T) {
	client := newFakeClient().respond(unsplashDefaultURL, 200, `{"user":{"name":"Jane"},"links":{}}`)

	rec, err := testUnsplash(client, mapSettings{}).RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.Zero(t, rec)
	assert.Contains(t, err.Error(), "download_location")
	assert.Equal(t, []string{unsplashDefaultURL}, client.urls())
}

func TestUnsplashSecondStageFailureYieldsNoRecord(t *testing.T) {
	cases := map[string]*fakeHTTPClient{
		"status": newFakeClient().
			respond(unsplashDefaultURL, 200, unsplashPhotoBody).
			respond(unsplashStage2URL, 403, `{"errors":["Rate Limit Exceeded"]}`),
		"missing url": newFakeClient().
			respond(unsplashDefaultURL, 200, unsplashPhotoBody).
			respond(unsplashStage2URL, 200, `{}`),
	}

	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := testUnsplash(client, mapSettings{}).RequestRandomImage(context.Background())
			require.Error(t, err)
			assert.Zero(t, rec)
			assert.Len(t, client.urls(), 2)
		})
	}
}
