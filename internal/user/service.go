package user

import (
	"context"
	"fmt"
)

// Repository is the interface for user persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Find(ctx context.Context, userID string) (*User, error)
}

// Service is the user store other modules talk to.
type Service interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Find(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo Repository
}

var _ Service = (*service)(nil)

//nolint:revive // the unexported type keeps construction going through NewService
func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (User, error) {
	u, err := s.repo.Create(ctx, params)
	if err != nil {
		return u, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *service) Find(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
