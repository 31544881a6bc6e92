package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ferdiebergado/devconnector/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("user repository: user not found")
	ErrDuplicate   = errors.New("user repository: email already taken")
	ErrQueryFailed = errors.New("user repository: query failed")
)

const pgUniqueViolation = "23505"

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(executor db.Executor) *SQLRepository {
	return &SQLRepository{db: executor}
}

type CreateParams struct {
	Name         string
	Email        string
	Avatar       string
	PasswordHash string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (User, error) {
	const query = `
INSERT INTO users (name, email, avatar, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, avatar, created_at, updated_at`

	executor := db.ExecutorFromContext(ctx, r.db)
	row := executor.QueryRowContext(ctx, query, params.Name, params.Email, params.Avatar, params.PasswordHash)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return u, fmt.Errorf("%w: %s", ErrDuplicate, params.Email)
		}
		return u, fmt.Errorf("%w: create user: %v", ErrQueryFailed, err)
	}
	return u, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
SELECT id, name, email, avatar, password_hash, created_at, updated_at FROM users
WHERE email = $1
LIMIT 1`

	executor := db.ExecutorFromContext(ctx, r.db)
	row := executor.QueryRowContext(ctx, query, email)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user by email: %v", ErrQueryFailed, err)
	}
	return &u, nil
}

func (r *SQLRepository) Find(ctx context.Context, userID string) (*User, error) {
	const query = "SELECT id, name, email, avatar, created_at, updated_at FROM users WHERE id = $1"

	executor := db.ExecutorFromContext(ctx, r.db)
	row := executor.QueryRowContext(ctx, query, userID)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with id %s: %v", ErrQueryFailed, userID, err)
	}
	return &u, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	const query = "SELECT id, name, email, avatar, created_at, updated_at FROM users ORDER BY created_at DESC"

	executor := db.ExecutorFromContext(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("user repository: scan row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over user rows: %w", err)
	}

	return users, nil
}
