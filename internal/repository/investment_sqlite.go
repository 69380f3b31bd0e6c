package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"talenthub-api/internal/model"
)

// SQLiteInvestmentRepository implements InvestmentRepository using SQLite.
type SQLiteInvestmentRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteInvestmentRepository creates an investment repository on the
// shared SQLite handle.
func NewSQLiteInvestmentRepository(db *sql.DB) *SQLiteInvestmentRepository {
	return &SQLiteInvestmentRepository{db: db}
}

// Create inserts a new investment row.
func (r *SQLiteInvestmentRepository) Create(ctx context.Context, inv *model.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO investments (id, investor_id, talent_id, amount, currency, session_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.InvestorID, inv.TalentID, inv.Amount, inv.Currency,
		inv.SessionID, string(inv.Status), inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}
	return nil
}

// GetBySessionID retrieves the investment linked to a checkout session.
func (r *SQLiteInvestmentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, investor_id, talent_id, amount, currency, session_id, status, created_at, updated_at
		FROM investments WHERE session_id = ?`

	var inv model.Investment
	var status string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&inv.ID, &inv.InvestorID, &inv.TalentID, &inv.Amount, &inv.Currency,
		&inv.SessionID, &status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	inv.Status = model.InvestmentStatus(status)
	return &inv, nil
}

// TransitionBySession moves a pending investment to the given status.
// The WHERE status='pending' guard makes replays no-ops.
func (r *SQLiteInvestmentRepository) TransitionBySession(ctx context.Context, sessionID string, to model.InvestmentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE investments SET status = ?, updated_at = ? WHERE session_id = ? AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, string(to), time.Now().UTC(), sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to transition investment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListByInvestor lists an investor's investments, newest first.
func (r *SQLiteInvestmentRepository) ListByInvestor(ctx context.Context, investorID string) ([]model.Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, investor_id, talent_id, amount, currency, session_id, status, created_at, updated_at
		FROM investments WHERE investor_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	return scanInvestments(rows)
}

// SummarizeTalent aggregates confirmed investments for a talent.
func (r *SQLiteInvestmentRepository) SummarizeTalent(ctx context.Context, talentID string) (*model.InvestmentSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*), COALESCE(MAX(currency), '')
		FROM investments WHERE talent_id = ? AND status = 'confirmed'`

	summary := model.InvestmentSummary{TalentID: talentID}
	err := r.db.QueryRowContext(ctx, query, talentID).Scan(&summary.Total, &summary.Count, &summary.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize investments: %w", err)
	}
	return &summary, nil
}

// ExpirePending marks pending rows older than maxAge as expired.
func (r *SQLiteInvestmentRepository) ExpirePending(ctx context.Context, maxAge time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-maxAge)
	query := `UPDATE investments SET status = 'expired', updated_at = ? WHERE status = 'pending' AND created_at < ?`
	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire pending investments: %w", err)
	}
	return result.RowsAffected()
}

// CountByStatus returns row counts grouped by status.
func (r *SQLiteInvestmentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM investments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count investments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanInvestments(rows *sql.Rows) ([]model.Investment, error) {
	var investments []model.Investment
	for rows.Next() {
		var inv model.Investment
		var status string
		if err := rows.Scan(
			&inv.ID, &inv.InvestorID, &inv.TalentID, &inv.Amount, &inv.Currency,
			&inv.SessionID, &status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		inv.Status = model.InvestmentStatus(status)
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// Ensure SQLiteInvestmentRepository implements InvestmentRepository
var _ InvestmentRepository = (*SQLiteInvestmentRepository)(nil)
