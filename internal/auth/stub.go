package auth

import (
	"context"
	"errors"

	"github.com/ferdiebergado/devconnector/internal/user"
)

type StubService struct {
	RegisterFunc func(ctx context.Context, params RegisterParams) (*Session, error)
	LoginFunc    func(ctx context.Context, params LoginParams) (*Session, error)
	MeFunc       func(ctx context.Context, userID string) (*user.User, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	if s.RegisterFunc == nil {
		return nil, errors.New("Register() not implemented by stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (*Session, error) {
	if s.LoginFunc == nil {
		return nil, errors.New("Login() not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}

func (s *StubService) Me(ctx context.Context, userID string) (*user.User, error) {
	if s.MeFunc == nil {
		return nil, errors.New("Me() not implemented by stub")
	}
	return s.MeFunc(ctx, userID)
}
