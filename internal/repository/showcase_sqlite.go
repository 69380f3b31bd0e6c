package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"talenthub-api/internal/model"
)

// SQLiteShowcaseRepository implements ShowcaseRepository using SQLite.
type SQLiteShowcaseRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteShowcaseRepository creates a showcase repository on the
// shared SQLite handle.
func NewSQLiteShowcaseRepository(db *sql.DB) *SQLiteShowcaseRepository {
	return &SQLiteShowcaseRepository{db: db}
}

// Create inserts a new showcase row.
func (r *SQLiteShowcaseRepository) Create(ctx context.Context, s *model.Showcase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO showcases (id, owner_id, title, description, media_url, media_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.OwnerID, s.Title, s.Description, s.MediaURL, string(s.MediaType), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert showcase: %w", err)
	}
	return nil
}

// ListByOwner lists an owner's showcases, newest first.
func (r *SQLiteShowcaseRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Showcase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, owner_id, title, description, media_url, media_type, created_at
		FROM showcases WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list showcases: %w", err)
	}
	defer rows.Close()

	var showcases []model.Showcase
	for rows.Next() {
		var s model.Showcase
		var mediaType string
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.MediaURL, &mediaType, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan showcase: %w", err)
		}
		s.MediaType = model.MediaType(mediaType)
		showcases = append(showcases, s)
	}
	return showcases, rows.Err()
}

// Count returns the total number of showcases.
func (r *SQLiteShowcaseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM showcases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count showcases: %w", err)
	}
	return count, nil
}

// Ensure SQLiteShowcaseRepository implements ShowcaseRepository
var _ ShowcaseRepository = (*SQLiteShowcaseRepository)(nil)
