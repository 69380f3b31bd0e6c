package model

import (
	"strings"
	"time"
)

// MediaType is the kind of media a showcase holds.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ClassifyMedia maps a declared content type to a media kind.
// Only image/* and video/* are accepted.
func ClassifyMedia(contentType string) (MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo, true
	}
	return "", false
}

// Showcase is a single published media artifact. Immutable once created.
type Showcase struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MediaURL    string    `json:"media_url"`
	MediaType   MediaType `json:"media_type"`
	CreatedAt   time.Time `json:"created_at"`
}
