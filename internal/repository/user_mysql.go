package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"talenthub-api/internal/model"

	"github.com/go-sql-driver/mysql"
)

// MySQLUserRepository implements UserRepository using MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a MySQL user repository and ensures
// the users table exists.
func NewMySQLUserRepository(db *sql.DB) (*MySQLUserRepository, error) {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		email VARCHAR(191) NOT NULL UNIQUE,
		password_hash VARCHAR(191) NOT NULL,
		role VARCHAR(20) NOT NULL,
		avatar_url VARCHAR(1024) NOT NULL DEFAULT '',
		cover_url VARCHAR(1024) NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL DEFAULT '',
		location VARCHAR(191) NOT NULL DEFAULT '',
		bio TEXT,
		followers BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		INDEX idx_users_role (role)
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to ensure users table: %w", err)
	}

	log.Println("[MySQLUserRepository] Initialized")
	return &MySQLUserRepository{db: db}, nil
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, avatar_url, cover_url, category, location, bio, followers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
		u.AvatarURL, u.CoverURL, u.Category, u.Location, u.Bio, u.Followers, u.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return scanUserRow(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE id = ?`, id))
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUserRow(r.db.QueryRowContext(ctx, selectUserSQL+` WHERE email = ?`, email))
}

// SearchTalents lists talent-role users matching the filter.
func (r *MySQLUserRepository) SearchTalents(ctx context.Context, filter model.TalentFilter) ([]model.User, int64, error) {
	where, args := buildTalentWhere(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
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

// Ensure MySQLUserRepository implements UserRepository
var _ UserRepository = (*MySQLUserRepository)(nil)
