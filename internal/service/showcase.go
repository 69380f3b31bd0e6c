package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"talenthub-api/internal/model"
	"talenthub-api/internal/repository"
	"talenthub-api/internal/storage"
	"talenthub-api/pkg/uid"
)

// ErrUnsupportedMedia is returned when the declared content type is
// neither image nor video.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrMissingTitle is returned when a showcase has no title.
var ErrMissingTitle = errors.New("title is required")

// ShowcaseService owns the showcase upload flow: classify, store the
// media object, then persist the metadata row referencing its URL.
type ShowcaseService struct {
	showcases repository.ShowcaseRepository
	store     storage.ObjectStore
}

// NewShowcaseService creates a showcase service.
// Returns nil if any dependency is missing.
func NewShowcaseService(showcases repository.ShowcaseRepository, store storage.ObjectStore) *ShowcaseService {
	if showcases == nil || store == nil {
		return nil
	}
	return &ShowcaseService{showcases: showcases, store: store}
}

// UploadInput describes a showcase upload.
type UploadInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Upload classifies and stores the media file, then records the
// showcase. Classification happens before any store write; a metadata
// insert failure after a successful write leaves an orphaned object and
// is reported as a plain failure.
func (s *ShowcaseService) Upload(ctx context.Context, ownerID string, in UploadInput) (*model.Showcase, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrMissingTitle
	}

	mediaType, ok := model.ClassifyMedia(in.ContentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, in.ContentType)
	}

	path := mediaPath(ownerID, in.FileName)
	if err := s.store.Put(ctx, path, in.Data, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}

	showcase := &model.Showcase{
		ID:          uid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		MediaURL:    s.store.PublicURL(path),
		MediaType:   mediaType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.showcases.Create(ctx, showcase); err != nil {
		return nil, fmt.Errorf("failed to record showcase: %w", err)
	}

	return showcase, nil
}

// ListByOwner lists an owner's showcases, newest first.
func (s *ShowcaseService) ListByOwner(ctx context.Context, ownerID string) ([]model.Showcase, error) {
	return s.showcases.ListByOwner(ctx, ownerID)
}

// mediaPath builds a per-owner randomized object path, keeping the
// original file extension.
func mediaPath(ownerID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ownerID + "/" + uid.Short() + ext
}
