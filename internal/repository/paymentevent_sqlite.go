package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"talenthub-api/internal/model"
)

// SQLitePaymentEventRepository implements PaymentEventRepository using SQLite.
type SQLitePaymentEventRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLitePaymentEventRepository creates a payment event repository on
// the shared SQLite handle.
func NewSQLitePaymentEventRepository(db *sql.DB) *SQLitePaymentEventRepository {
	return &SQLitePaymentEventRepository{db: db}
}

// Record inserts a webhook delivery. INSERT OR IGNORE against the
// (provider, event_id) unique index makes replayed deliveries report
// false without erroring.
func (r *SQLitePaymentEventRepository) Record(ctx context.Context, ev *model.PaymentEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT OR IGNORE INTO payment_events (provider, event_id, event_type, session_id, created_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		ev.Provider, ev.EventID, ev.EventType, ev.SessionID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to record payment event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// MarkProcessed stamps a recorded event as handled.
func (r *SQLitePaymentEventRepository) MarkProcessed(ctx context.Context, provider, eventID, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE payment_events SET processed_at = ?, processing_error = ? WHERE provider = ? AND event_id = ?`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), processingError, provider, eventID); err != nil {
		return fmt.Errorf("failed to mark payment event processed: %w", err)
	}
	return nil
}

// Forget removes a recorded event so a retried delivery is treated as new.
func (r *SQLitePaymentEventRepository) Forget(ctx context.Context, provider, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM payment_events WHERE provider = ? AND event_id = ?`
	if _, err := r.db.ExecContext(ctx, query, provider, eventID); err != nil {
		return fmt.Errorf("failed to forget payment event: %w", err)
	}
	return nil
}

// Ensure SQLitePaymentEventRepository implements PaymentEventRepository
var _ PaymentEventRepository = (*SQLitePaymentEventRepository)(nil)
