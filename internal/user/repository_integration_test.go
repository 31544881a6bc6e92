//go:build integration

package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devconnector/internal/platform/db"
	"github.com/ferdiebergado/devconnector/internal/user"
)

const querySeedUsers = `
INSERT INTO users (id, name, email, avatar, password_hash, created_at, updated_at) VALUES
('f47ac10b-58cc-4372-a567-0e02b2c3d479', 'Alice', 'alice@example.com', '', '$2a$10$e0MYzXyjpJS7Pd0RVvHwHeFx4fQnhdQnZZF9uG6x1Z1ZzR12uLh9e', '2025-05-09T10:00:00Z', '2025-05-09T10:00:00Z'),
('3d594650-3436-11e5-bf21-0800200c9a67', 'Bobby', 'bobby@example.com', '', '$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z1Z3MxE8lmyy6h6Zy/YPj4Oa', '2025-05-09T10:05:00Z', '2025-05-09T10:05:00Z')
`

func seed(t *testing.T) (*user.SQLRepository, context.Context) {
	t.Helper()

	conn, tx := db.Setup(t)
	if _, err := tx.Exec(querySeedUsers); err != nil {
		t.Fatal(err)
	}

	return user.NewRepository(conn), db.NewContextWithTx(context.Background(), tx)
}

func TestIntegrationRepository_List(t *testing.T) {
	repo, ctx := seed(t)

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("repo.List(ctx) = %v, want: %v", err, nil)
	}

	if len(users) < 2 {
		t.Fatalf("len(users) = %d, want: >= 2", len(users))
	}

	if users[0].CreatedAt.Before(users[len(users)-1].CreatedAt) {
		t.Error("users are not ordered newest first")
	}
}

func TestIntegrationRepository_FindByEmail(t *testing.T) {
	repo, ctx := seed(t)

	u, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("repo.FindByEmail(ctx) = %v, want: %v", err, nil)
	}

	if u.PasswordHash == "" {
		t.Error("u.PasswordHash is empty, want the stored hash")
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("repo.FindByEmail(ctx, unknown) = %v, want: %v", err, user.ErrNotFound)
	}
}

func TestIntegrationRepository_CreateDuplicate(t *testing.T) {
	repo, ctx := seed(t)

	params := user.CreateParams{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	if _, err := repo.Create(ctx, params); !errors.Is(err, user.ErrDuplicate) {
		t.Errorf("repo.Create(ctx, duplicate) = %v, want: %v", err, user.ErrDuplicate)
	}
}
