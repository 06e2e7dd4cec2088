package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallhavenDefaultURL = "https://wallhaven.cc/search?purity=110&sorting=random&categories=111&resolutions=1920x1200,2560x1440"

const wallhavenSearchPage = `<html><body><ul>
<li><a class="preview" href="https://wallhaven.cc/w/abc123"><img src="https://th.wallhaven.cc/small/ab/abc123.jpg"></a></li>
<li><a class="preview" href="https://wallhaven.cc/w/def456"><img src="https://th.wallhaven.cc/small/de/def456.jpg"></a></li>
<li><a class="preview" href="https://wallhaven.cc/w/abc123"><img src="https://th.wallhaven.cc/small/ab/abc123.jpg"></a></li>
</ul></body></html>`

func wallhavenDetailPage(id string) string {
	return `<html><body>
<img id="wallpaper" src="https://w.wallhaven.cc/full/` + id[:2] + `/wallhaven-` + id + `.jpg" alt="">
<div class="showcase-uploader"><a class="username usergroup-2" href="https://wallhaven.cc/user/alice">alice</a></div>
</body></html>`
}

func TestWallhavenDedupesAndPicksCandidate(t *testing.T) {
	client := newFakeClient().
		respond(wallhavenDefaultURL, 200, wallhavenSearchPage).
		respond("https://wallhaven.cc/w/abc123", 200, wallhavenDetailPage("abc123")).
		respond("https://wallhaven.cc/w/def456", 200, wallhavenDetailPage("def456"))

	a := newWallhaven(client, mapSettings{}, nil)
	var seen int
	a.pick = func(n int) int {
		seen = n
		return 1
	}

	rec, err := a.RequestRandomImage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, seen)
	urls := client.urls()
	require.Len(t, urls, 2)
	assert.Equal(t, wallhavenDefaultURL, urls[0])
	assert.Contains(t, []string{"https://wallhaven.cc/w/abc123", "https://wallhaven.cc/w/def456"}, urls[1])
	assert.Equal(t, "text/html,application/xhtml+xml", client.calls[0].headers["Accept"])

	assert.Equal(t, "https://w.wallhaven.cc/full/de/wallhaven-def456.jpg", rec.ImageDownloadURL)
	assert.Equal(t, "wallhaven.cc", rec.SourceName)
	assert.Equal(t, "alice", rec.AuthorName)
	assert.Equal(t, "https://wallhaven.cc/", rec.Source.SourceURL)
	assert.Equal(t, "https://wallhaven.cc/w/def456", rec.Source.ImageLinkURL)
}

func TestWallhavenOptions(t *testing.T) {
	settings := mapSettings{
		SettingWallhavenKeyword:       "city lights",
		SettingWallhavenAllowSketchy:  false,
		SettingWallhavenCategoryAnime: false,
		SettingWallhavenResolutions:   "3840x2160",
	}
	want := "https://wallhaven.cc/search?q=city%20lights&purity=100&sorting=random&categories=101&resolutions=3840x2160"
	client := newFakeClient().respond(want, 200, `<html></html>`)

	_, err := newWallhaven(client, settings, nil).RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{want}, client.urls())
}

func TestWallhavenEmptyResultsFail(t *testing.T) {
	client := newFakeClient().respond(wallhavenDefaultURL, 200, `<html><body>No wallpapers found</body></html>`)

	rec, err := NewWallhaven(client, mapSettings{}, nil).RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.Zero(t, rec)
	assert.ErrorIs(t, err, errNoDetailPages)
	assert.Len(t, client.urls(), 1)
}

func TestWallhavenDetailWithoutImageFails(t *testing.T) {
	client := newFakeClient().
		respond(wallhavenDefaultURL, 200, `<a href="https://wallhaven.cc/w/zzz999">x</a>`).
		respond("https://wallhaven.cc/w/zzz999", 200, `<html><body>removed</body></html>`)

	_, err := NewWallhaven(client, mapSettings{}, nil).RequestRandomImage(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoFullImage)
}

func TestExtractDetailURLs(t *testing.T) {
	body := []byte(`<a href="http://alpha.wallhaven.cc/wallpaper/12345">old</a>
<a href="https://wallhaven.cc/w/k7q9d1">new</a>
<a href="https://wallhaven.cc/user/alice">user</a>`)

	assert.Equal(t, []string{
		"http://alpha.wallhaven.cc/wallpaper/12345",
		"https://wallhaven.cc/w/k7q9d1",
	}, extractDetailURLs(body))
	assert.Empty(t, extractDetailURLs([]byte("nothing here")))
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, dedupe([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, dedupe(nil))
}

func TestExtractFullImageURL(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"current host": {
			body: `<img id="wallpaper" src="https://w.wallhaven.cc/full/k7/wallhaven-k7q9d1.png">`,
			want: "https://w.wallhaven.cc/full/k7/wallhaven-k7q9d1.png",
		},
		"legacy host": {
			body: `<img id="wallpaper" src="//wallpapers.wallhaven.cc/wallpapers/full/wallhaven-12345.jpg">`,
			want: "https://wallpapers.wallhaven.cc/wallpapers/full/wallhaven-12345.jpg",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := extractFullImageURL([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := extractFullImageURL([]byte(`<img src="https://th.wallhaven.cc/small/k7/k7q9d1.jpg">`))
	assert.ErrorIs(t, err, errNoFullImage)
}

func TestExtractUploader(t *testing.T) {
	assert.Equal(t, "alice", extractUploader([]byte(wallhavenDetailPage("abc123"))))
	assert.Equal(t, "bob", extractUploader([]byte(`<p>by <a class="username" href="/user/bob"> bob </a></p>`)))
	assert.Empty(t, extractUploader([]byte(`<html><body>anonymous</body></html>`)))
}
