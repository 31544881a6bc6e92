package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ferdiebergado/devconnector/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("profile repository: profile not found")
	ErrNoUser      = errors.New("profile repository: owning user does not exist")
	ErrQueryFailed = errors.New("profile repository: query failed")
)

const pgForeignKeyViolation = "23503"

type SQLRepository struct {
	db      db.Executor
	typeMap *pgtype.Map
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(executor db.Executor) *SQLRepository {
	return &SQLRepository{
		db:      executor,
		typeMap: pgtype.NewMap(),
	}
}

type SaveParams struct {
	UserID  string
	Status  string
	Skills  []string
	Bio     string
	Website string
	Social  Social
}

func (r *SQLRepository) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	const query = `
SELECT p.id, p.user_id, p.status, p.skills, p.bio, p.website, p.social, p.created_at, p.updated_at, u.name, u.avatar
FROM profiles p
JOIN users u ON u.id = p.user_id
WHERE p.user_id = $1`

	executor := db.ExecutorFromContext(ctx, r.db)
	row := executor.QueryRowContext(ctx, query, userID)

	var p Profile
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Status, r.typeMap.SQLScanner(&p.Skills), &p.Bio, &p.Website, &p.Social,
		&p.CreatedAt, &p.UpdatedAt, &p.UserName, &p.UserAvatar,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find profile of user %s: %v", ErrQueryFailed, userID, err)
	}
	return &p, nil
}

// Upsert creates the user's profile or replaces the existing one.
func (r *SQLRepository) Upsert(ctx context.Context, params SaveParams) (*Profile, error) {
	const query = `
INSERT INTO profiles (user_id, status, skills, bio, website, social)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
	status = EXCLUDED.status,
	skills = EXCLUDED.skills,
	bio = EXCLUDED.bio,
	website = EXCLUDED.website,
	social = EXCLUDED.social,
	updated_at = NOW()
RETURNING id, created_at, updated_at`

	executor := db.ExecutorFromContext(ctx, r.db)
	row := executor.QueryRowContext(ctx, query,
		params.UserID, params.Status, params.Skills, params.Bio, params.Website, params.Social)

	p := Profile{
		UserID:  params.UserID,
		Status:  params.Status,
		Skills:  params.Skills,
		Bio:     params.Bio,
		Website: params.Website,
		Social:  params.Social,
	}
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, fmt.Errorf("%w: %s", ErrNoUser, params.UserID)
		}
		return nil, fmt.Errorf("%w: upsert profile of user %s: %v", ErrQueryFailed, params.UserID, err)
	}
	return &p, nil
}
