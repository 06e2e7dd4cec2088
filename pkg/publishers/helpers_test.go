package publishers

import (
	"github.com/samvad-hq/randwall/internal/domain"
)

func testEvent() Event {
	return Event{
		SourceID:   "wallhaven",
		SourceName: "wallhaven.cc",
		ImageID:    "img-1",
		FileName:   "wallhaven-abc123.jpg",
		Image: domain.ImageRecord{
			AuthorName:       "alice",
			SourceName:       "wallhaven.cc",
			ImageDownloadURL: "https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg",
			Source: domain.SourceMetadata{
				SourceURL:    "https://wallhaven.cc/",
				ImageLinkURL: "https://wallhaven.cc/w/abc123",
			},
		},
	}
}
