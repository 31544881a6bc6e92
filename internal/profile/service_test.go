package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devconnector/internal/profile"
)

func TestService_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repo    *profile.StubRepo
		wantErr error
	}{
		{
			name: "success - returns the reloaded profile",
			repo: &profile.StubRepo{
				UpsertFunc: func(_ context.Context, params profile.SaveParams) (*profile.Profile, error) {
					return &profile.Profile{UserID: params.UserID}, nil
				},
				FindByUserFunc: func(_ context.Context, userID string) (*profile.Profile, error) {
					return &profile.Profile{UserID: userID, UserName: "Jane"}, nil
				},
			},
		},
		{
			name: "error - owning user is gone",
			repo: &profile.StubRepo{
				UpsertFunc: func(_ context.Context, _ profile.SaveParams) (*profile.Profile, error) {
					return nil, profile.ErrNoUser
				},
			},
			wantErr: profile.ErrNoUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := profile.NewService(tt.repo)
			p, err := svc.Save(context.Background(), profile.SaveParams{UserID: "u1", Status: "Developer", Skills: []string{"Go"}})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("svc.Save() = %v, want: %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("svc.Save() = %v, want: %v", err, nil)
			}
			if p.UserName != "Jane" {
				t.Errorf("p.UserName = %q, want: %q", p.UserName, "Jane")
			}
		})
	}
}

func TestService_Mine(t *testing.T) {
	t.Parallel()

	svc := profile.NewService(&profile.StubRepo{
		FindByUserFunc: func(_ context.Context, _ string) (*profile.Profile, error) {
			return nil, profile.ErrNotFound
		},
	})

	if _, err := svc.Mine(context.Background(), "u1"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("svc.Mine() = %v, want: %v", err, profile.ErrNotFound)
	}
}
