package client

import (
	"context"
	"errors"
)

type StubIdentityAPI struct {
	RegisterFunc func(ctx context.Context, in RegisterInput) (*Session, error)
	LoginFunc    func(ctx context.Context, in LoginInput) (*Session, error)
	MeFunc       func(ctx context.Context) (*User, error)
}

var _ IdentityAPI = (*StubIdentityAPI)(nil)

func (s *StubIdentityAPI) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if s.RegisterFunc == nil {
		return nil, errors.New("Register() not implemented by stub")
	}
	return s.RegisterFunc(ctx, in)
}

func (s *StubIdentityAPI) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if s.LoginFunc == nil {
		return nil, errors.New("Login() not implemented by stub")
	}
	return s.LoginFunc(ctx, in)
}

func (s *StubIdentityAPI) Me(ctx context.Context) (*User, error) {
	if s.MeFunc == nil {
		return nil, errors.New("Me() not implemented by stub")
	}
	return s.MeFunc(ctx)
}
