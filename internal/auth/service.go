package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/platform/db"
	"github.com/ferdiebergado/devconnector/internal/platform/hash"
	"github.com/ferdiebergado/devconnector/internal/user"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*Session, error)
	Login(ctx context.Context, params LoginParams) (*Session, error)
	Me(ctx context.Context, userID string) (*user.User, error)
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	Token string
	User  user.User
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", p.Name),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type service struct {
	users  user.Service
	hasher hash.Hasher
	issuer *Issuer
	txMgr  db.TxManager
}

var _ Service = (*service)(nil)

//nolint:revive // the unexported type keeps construction going through NewService
func NewService(users user.Service, hasher hash.Hasher, issuer *Issuer, txMgr db.TxManager) *service {
	return &service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		txMgr:  txMgr,
	}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	email := normalizeEmail(params.Email)

	var newUser user.User
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.users.FindByEmail(txCtx, email)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("check existing user: %w", err)
		}

		passwordHash, err := s.hasher.Hash(params.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		newUser, err = s.users.Create(txCtx, user.CreateParams{
			Name:         strings.TrimSpace(params.Name),
			Email:        email,
			Avatar:       user.GravatarURL(email),
			PasswordHash: passwordHash,
		})
		if err != nil {
			if errors.Is(err, user.ErrDuplicate) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	token, err := s.issuer.Issue(newUser.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: newUser}, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %s: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return &Session{Token: token, User: *u}, nil
}

func (s *service) Me(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
