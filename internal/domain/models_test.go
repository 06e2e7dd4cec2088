package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRecordRequiresAbsoluteURLs(t *testing.T) {
	cases := map[string]struct {
		download string
		meta     SourceMetadata
	}{
		"relative download url": {"/relative.png", SourceMetadata{SourceURL: "https://example.com/"}},
		"missing source url":    {"https://example.com/a.png", SourceMetadata{}},
		"relative author url": {"https://example.com/a.png", SourceMetadata{
			SourceURL: "https://example.com/",
			AuthorURL: "not a url",
		}},
		"relative image link": {"https://example.com/a.png", SourceMetadata{
			SourceURL:    "https://example.com/",
			ImageLinkURL: "/w/abc",
		}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewImageRecord("", "src", tc.download, tc.meta)
			assert.Error(t, err)
		})
	}
}

func TestNewImageRecordRequiresSourceName(t *testing.T) {
	_, err := NewImageRecord("", "  ", "https://example.com/a.png", SourceMetadata{SourceURL: "https://example.com/"})
	assert.EqualError(t, err, "source name is empty")
}

func TestNewImageRecordKeepsFields(t *testing.T) {
	rec, err := NewImageRecord(" Jane ", "Unsplash", "https://cdn//a.png", SourceMetadata{
		SourceURL:    "https://unsplash.com/",
		ImageLinkURL: "https://images.unsplash.com/raw?x=1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", rec.AuthorName)
	assert.Equal(t, "https://cdn//a.png", rec.ImageDownloadURL)
	assert.Empty(t, rec.Source.AuthorURL)
	assert.Equal(t, "https://images.unsplash.com/raw?x=1", rec.Source.ImageLinkURL)
}
