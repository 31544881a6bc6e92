package profile

import (
	"context"
	"fmt"
)

type Repository interface {
	FindByUser(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, params SaveParams) (*Profile, error)
}

type Service interface {
	Mine(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, params SaveParams) (*Profile, error)
}

type service struct {
	repo Repository
}

var _ Service = (*service)(nil)

//nolint:revive // the unexported type keeps construction going through NewService
func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) Mine(ctx context.Context, userID string) (*Profile, error) {
	p, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// Save upserts the profile and returns it as a fresh read, owner details included.
func (s *service) Save(ctx context.Context, params SaveParams) (*Profile, error) {
	if _, err := s.repo.Upsert(ctx, params); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	p, err := s.repo.FindByUser(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("reload saved profile: %w", err)
	}
	return p, nil
}
