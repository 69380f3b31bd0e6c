package storage

import (
	"context"
	"io"
)

// ObjectStore is the abstraction over showcase media storage. Objects
// are written once under a caller-chosen path and served from a public
// URL; nothing here mutates or deletes stored media.
type ObjectStore interface {
	// Put writes an object under path with the declared content type.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// PublicURL returns the publicly reachable URL for a stored path.
	PublicURL(path string) string

	// Ping verifies the store is reachable (readiness checks).
	Ping(ctx context.Context) error
}
