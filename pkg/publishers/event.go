package publishers

import (
	"time"

	"github.com/samvad-hq/randwall/internal/domain"
)

// Event represents the payload published downstream for one served image.
type Event struct {
	SourceID   string             `json:"source_id"`
	SourceName string             `json:"source_name"`
	ImageID    string             `json:"image_id"`
	FileName   string             `json:"file_name"`
	Image      domain.ImageRecord `json:"image"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

// NewEvent constructs an Event for the given source and image.
func NewEvent(sourceID, imageID, fileName string, img domain.ImageRecord) Event {
	return Event{
		SourceID:   sourceID,
		SourceName: img.SourceName,
		ImageID:    imageID,
		FileName:   fileName,
		Image:      img,
		FetchedAt:  time.Now().UTC(),
	}
}

// attributes are the message attributes queue sinks attach for routing and filtering.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"source_id":   e.SourceID,
		"source_name": e.SourceName,
		"image_id":    e.ImageID,
	}
}
