package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"talenthub-api/internal/model"
)

// SQLiteUserRepository implements UserRepository using SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteUserRepository creates a user repository on the shared
// SQLite handle.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user.
func (r *SQLiteUserRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO users (id, name, email, password_hash, role, avatar_url, cover_url, category, location, bio, followers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
		u.AvatarURL, u.CoverURL, u.Category, u.Location, u.Bio, u.Followers, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return scanUserRow(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE id = ?`, id))
}

// GetByEmail retrieves a user by email.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return scanUserRow(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE email = ?`, email))
}

// SearchTalents lists talent-role users matching the filter.
func (r *SQLiteUserRepository) SearchTalents(ctx context.Context, filter model.TalentFilter) ([]model.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	where, args := buildTalentWhere(filter)

	var total int64
	countSQL := `SELECT COUNT(*) FROM users ` + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count talents: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	listSQL := selectUserSQL + ` ` + where + ` ORDER BY followers DESC, created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, listSQL, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search talents: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

const selectUserSQL = `
	SELECT id, name, email, password_hash, role, avatar_url, cover_url, category, location, bio, followers, created_at
	FROM users`

// buildTalentWhere assembles the filter clause shared by the SQLite and
// MySQL user repositories.
func buildTalentWhere(filter model.TalentFilter) (string, []interface{}) {
	clauses := []string{"role = 'talent'"}
	var args []interface{}

	if filter.Query != "" {
		clauses = append(clauses, "(name LIKE ? OR bio LIKE ?)")
		like := "%" + filter.Query + "%"
		args = append(args, like, like)
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Location != "" {
		clauses = append(clauses, "location LIKE ?")
		args = append(args, "%"+filter.Location+"%")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanUserRow(row *sql.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
		&u.AvatarURL, &u.CoverURL, &u.Category, &u.Location, &u.Bio, &u.Followers, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		var u model.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
			&u.AvatarURL, &u.CoverURL, &u.Category, &u.Location, &u.Bio, &u.Followers, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = model.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// Ensure SQLiteUserRepository implements UserRepository
var _ UserRepository = (*SQLiteUserRepository)(nil)
