package profile

import (
	"context"
	"errors"
)

type StubService struct {
	MineFunc func(ctx context.Context, userID string) (*Profile, error)
	SaveFunc func(ctx context.Context, params SaveParams) (*Profile, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Mine(ctx context.Context, userID string) (*Profile, error) {
	if s.MineFunc == nil {
		return nil, errors.New("Mine() not implemented by stub")
	}
	return s.MineFunc(ctx, userID)
}

func (s *StubService) Save(ctx context.Context, params SaveParams) (*Profile, error) {
	if s.SaveFunc == nil {
		return nil, errors.New("Save() not implemented by stub")
	}
	return s.SaveFunc(ctx, params)
}

type StubRepo struct {
	FindByUserFunc func(ctx context.Context, userID string) (*Profile, error)
	UpsertFunc     func(ctx context.Context, params SaveParams) (*Profile, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	if r.FindByUserFunc == nil {
		return nil, errors.New("FindByUser() not implemented by stub")
	}
	return r.FindByUserFunc(ctx, userID)
}

func (r *StubRepo) Upsert(ctx context.Context, params SaveParams) (*Profile, error) {
	if r.UpsertFunc == nil {
		return nil, errors.New("Upsert() not implemented by stub")
	}
	return r.UpsertFunc(ctx, params)
}
