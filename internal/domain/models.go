package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SourceMetadata holds attribution links for an image.
type SourceMetadata struct {
	SourceURL    string `json:"source_url"`
	AuthorURL    string `json:"author_url,omitempty"`
	ImageLinkURL string `json:"image_link_url,omitempty"`
}

// ImageRecord describes one image returned by a source together with its attribution.
// Values are built with NewImageRecord and are not modified afterwards.
type ImageRecord struct {
	AuthorName       string         `json:"author_name,omitempty"`
	SourceName       string         `json:"source_name"`
	ImageDownloadURL string         `json:"image_download_url"`
	Source           SourceMetadata `json:"source"`
}

// NewImageRecord validates the URLs and returns the record.
func NewImageRecord(authorName, sourceName, downloadURL string, meta SourceMetadata) (ImageRecord, error) {
	if strings.TrimSpace(sourceName) == "" {
		return ImageRecord{}, errors.New("source name is empty")
	}
	if err := requireAbsolute("image download url", downloadURL); err != nil {
		return ImageRecord{}, err
	}
	if err := requireAbsolute("source url", meta.SourceURL); err != nil {
		return ImageRecord{}, err
	}
	if meta.AuthorURL != "" {
		if err := requireAbsolute("author url", meta.AuthorURL); err != nil {
			return ImageRecord{}, err
		}
	}
	if meta.ImageLinkURL != "" {
		if err := requireAbsolute("image link url", meta.ImageLinkURL); err != nil {
			return ImageRecord{}, err
		}
	}

	return ImageRecord{
		AuthorName:       strings.TrimSpace(authorName),
		SourceName:       sourceName,
		ImageDownloadURL: downloadURL,
		Source:           meta,
	}, nil
}

func requireAbsolute(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is empty", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute url", field, raw)
	}
	return nil
}
