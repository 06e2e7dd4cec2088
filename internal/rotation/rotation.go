package rotation

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/randwall/internal/domain"
	"github.com/samvad-hq/randwall/internal/logger"
	"github.com/samvad-hq/randwall/internal/storage"
	"github.com/samvad-hq/randwall/pkg/publishers"
	"github.com/samvad-hq/randwall/pkg/sources"
)

// Outcome describes one rotation step.
type Outcome struct {
	SourceID  string
	ImageID   string
	FileName  string
	Image     domain.ImageRecord
	Repeat    bool
	Published int
}

// Service asks a source for a random image and announces it once.
type Service struct {
	registry  sources.Registry
	publisher EventPublisher
	history   History
	log       logger.Logger
}

// NewService wires a rotation service. publisher and history are optional.
func NewService(reg sources.Registry, pub EventPublisher, log logger.Logger, history History) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		registry:  reg,
		publisher: pub,
		history:   history,
		log:       log,
	}
}

// ImageID derives the history key of an image from its download URL.
func ImageID(downloadURL string) string {
	sum := sha1.Sum([]byte(downloadURL))
	return hex.EncodeToString(sum[:])
}

// RunOnce requests one image from sourceID. Images already in the history are
// reported as repeats and not published again. The image is recorded only
// after at least one publisher accepted it, or when no publisher is configured.
func (s *Service) RunOnce(ctx context.Context, sourceID string) (Outcome, error) {
	if s == nil || s.registry == nil {
		return Outcome{}, fmt.Errorf("rotation service is not initialized")
	}

	adapter, err := s.registry.AdapterFor(sourceID)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve source %s: %w", sourceID, err)
	}

	start := time.Now()
	var res sources.Result
	select {
	case res = <-sources.Request(ctx, adapter):
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
	if res.Err != nil {
		return Outcome{}, fmt.Errorf("request image from %s: %w", sourceID, res.Err)
	}

	out := Outcome{
		SourceID: string(adapter.Kind()),
		ImageID:  ImageID(res.Image.ImageDownloadURL),
		Image:    res.Image,
	}
	if name, err := sources.FileName(res.Image.ImageDownloadURL); err != nil {
		s.log.WarnObj("file name decode failed", "rotation_warning", map[string]any{
			"source_id": out.SourceID,
			"url":       res.Image.ImageDownloadURL,
			"error":     err.Error(),
		})
	} else {
		out.FileName = name
	}

	if s.seen(out) {
		out.Repeat = true
		s.log.InfoObj("image already served", "rotation_result", map[string]any{
			"source_id":  out.SourceID,
			"image_id":   out.ImageID,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return out, nil
	}

	var errs []error
	if s.publisher != nil {
		published, err := s.publisher.Publish(ctx, publishers.NewEvent(out.SourceID, out.ImageID, out.FileName, out.Image))
		out.Published = published
		if err != nil {
			if published == 0 {
				return out, fmt.Errorf("publish image %s: %w", out.ImageID, err)
			}
			errs = append(errs, fmt.Errorf("publish image %s: %w", out.ImageID, err))
		}
	}

	if s.history != nil {
		entry := storage.Entry{
			SourceID:         out.SourceID,
			ImageDownloadURL: out.Image.ImageDownloadURL,
			FileName:         out.FileName,
		}
		if err := s.history.MarkImage(out.ImageID, entry); err != nil {
			errs = append(errs, fmt.Errorf("mark image %s: %w", out.ImageID, err))
		}
	}

	s.log.InfoObj("image rotated", "rotation_result", map[string]any{
		"source_id":          out.SourceID,
		"image_id":           out.ImageID,
		"file_name":          out.FileName,
		"image_download_url": out.Image.ImageDownloadURL,
		"published":          out.Published,
		"elapsed_ms":         time.Since(start).Milliseconds(),
	})
	return out, errors.Join(errs...)
}

// seen treats history lookup failures as unseen.
func (s *Service) seen(out Outcome) bool {
	if s.history == nil {
		return false
	}
	seen, err := s.history.SeenImage(out.ImageID)
	if err != nil {
		s.log.WarnObj("history lookup failed", "rotation_warning", map[string]any{
			"source_id": out.SourceID,
			"image_id":  out.ImageID,
			"error":     err.Error(),
		})
		return false
	}
	return seen
}
