package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/devconnector/internal/auth"
	"github.com/ferdiebergado/devconnector/internal/model"
	"github.com/ferdiebergado/devconnector/internal/platform/db"
	"github.com/ferdiebergado/devconnector/internal/platform/hash"
	"github.com/ferdiebergado/devconnector/internal/platform/jwt"
	"github.com/ferdiebergado/devconnector/internal/user"
)

func stubIssuer() *auth.Issuer {
	return auth.NewIssuer(&jwt.StubSigner{
		SignFunc: func(subject string, _ time.Duration) (string, error) {
			return "token-for-" + subject, nil
		},
	}, time.Hour)
}

func stubHasher() *hash.StubHasher {
	return &hash.StubHasher{
		HashFunc: func(plain string) (string, error) {
			return "hashed:" + plain, nil
		},
		VerifyFunc: func(plain, hashed string) (bool, error) {
			return hashed == "hashed:"+plain, nil
		},
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		users     *user.StubService
		wantErr   error
		wantToken string
	}{
		{
			name: "success - creates user with gravatar and issues token",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					return nil, user.ErrNotFound
				},
				CreateFunc: func(_ context.Context, params user.CreateParams) (user.User, error) {
					if params.Email != "jane@example.com" {
						return user.User{}, errors.New("email was not normalized")
					}
					if params.PasswordHash != "hashed:secret1" {
						return user.User{}, errors.New("password was not hashed")
					}
					if params.Avatar != user.GravatarURL("jane@example.com") {
						return user.User{}, errors.New("avatar was not derived from email")
					}
					return user.User{Model: model.Model{ID: "u1"}, Name: params.Name, Email: params.Email}, nil
				},
			},
			wantToken: "token-for-u1",
		},
		{
			name: "error - email already registered",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					return &user.User{Model: model.Model{ID: "u0"}}, nil
				},
			},
			wantErr: auth.ErrUserExists,
		},
		{
			name: "error - concurrent insert hits unique constraint",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					return nil, user.ErrNotFound
				},
				CreateFunc: func(_ context.Context, _ user.CreateParams) (user.User, error) {
					return user.User{}, user.ErrDuplicate
				},
			},
			wantErr: auth.ErrUserExists,
		},
		{
			name: "error - lookup fails",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					return nil, user.ErrQueryFailed
				},
			},
			wantErr: user.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := auth.NewService(tt.users, stubHasher(), stubIssuer(), db.PassthroughTxManager{})
			params := auth.RegisterParams{Name: "Jane", Email: "  Jane@Example.com ", Password: "secret1"}

			session, err := svc.Register(context.Background(), params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("svc.Register() = %v, want: %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("svc.Register() = %v, want: %v", err, nil)
			}
			if session.Token != tt.wantToken {
				t.Errorf("session.Token = %q, want: %q", session.Token, tt.wantToken)
			}
		})
	}
}

func TestService_RegisterRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	var gotTxErr error
	txMgr := &db.StubTxManager{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			gotTxErr = fn(ctx)
			return gotTxErr
		},
	}
	users := &user.StubService{
		FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	hasher := &hash.StubHasher{
		HashFunc: func(_ string) (string, error) {
			return "", errors.New("out of memory")
		},
	}

	svc := auth.NewService(users, hasher, stubIssuer(), txMgr)
	if _, err := svc.Register(context.Background(), auth.RegisterParams{Email: "a@example.com", Password: "secret1"}); err == nil {
		t.Fatal("svc.Register() = nil, want: error")
	}

	if gotTxErr == nil {
		t.Error("transaction callback returned nil, want an error so the transaction is rolled back")
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	stored := &user.User{Model: model.Model{ID: "u1"}, Email: "jane@example.com", PasswordHash: "hashed:secret1"}

	tests := []struct {
		name     string
		email    string
		password string
		users    *user.StubService
		wantErr  error
	}{
		{
			name:     "success",
			email:    "JANE@example.com",
			password: "secret1",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
					if email != "jane@example.com" {
						return nil, user.ErrNotFound
					}
					u := *stored
					return &u, nil
				},
			},
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					u := *stored
					return &u, nil
				},
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret1",
			users: &user.StubService{
				FindByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
					return nil, user.ErrNotFound
				},
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := auth.NewService(tt.users, stubHasher(), stubIssuer(), db.PassthroughTxManager{})

			session, err := svc.Login(context.Background(), auth.LoginParams{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("svc.Login() = %v, want: %v", err, tt.wantErr)
				}
				if session != nil {
					t.Errorf("session = %+v, want: nil", session)
				}
				return
			}

			if err != nil {
				t.Fatalf("svc.Login() = %v, want: %v", err, nil)
			}
			if session.Token != "token-for-u1" {
				t.Errorf("session.Token = %q, want: %q", session.Token, "token-for-u1")
			}
			if session.User.PasswordHash != "" {
				t.Error("session.User carries the password hash")
			}
		})
	}
}

func TestService_Me(t *testing.T) {
	t.Parallel()

	users := &user.StubService{
		FindFunc: func(_ context.Context, userID string) (*user.User, error) {
			if userID == "u1" {
				return &user.User{Model: model.Model{ID: "u1"}, Name: "Jane"}, nil
			}
			return nil, user.ErrNotFound
		},
	}
	svc := auth.NewService(users, stubHasher(), stubIssuer(), db.PassthroughTxManager{})

	u, err := svc.Me(context.Background(), "u1")
	if err != nil {
		t.Fatalf("svc.Me(ctx, %q) = %v, want: %v", "u1", err, nil)
	}
	if u.Name != "Jane" {
		t.Errorf("u.Name = %q, want: %q", u.Name, "Jane")
	}

	if _, err := svc.Me(context.Background(), "gone"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("svc.Me(ctx, %q) = %v, want: %v", "gone", err, user.ErrNotFound)
	}
}
