package profile

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	findProfileByUserFn func(ctx context.Context, userID string) (*profile.Profile, error)
	updateProfileFn     func(ctx context.Context, p *profile.Profile) error
}

func (m *mockRepo) FindProfileByUser(ctx context.Context, userID string) (*profile.Profile, error) {
	return m.findProfileByUserFn(ctx, userID)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	return m.updateProfileFn(ctx, p)
}

func TestGet(t *testing.T) {
	repo := &mockRepo{
		findProfileByUserFn: func(ctx context.Context, userID string) (*profile.Profile, error) {
			return &profile.Profile{UserID: userID, FullName: "James Mwale"}, nil
		},
	}
	svc := NewService(repo)

	p, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "James Mwale", p.FullName)
}

func TestGetNotFound(t *testing.T) {
	repo := &mockRepo{
		findProfileByUserFn: func(ctx context.Context, userID string) (*profile.Profile, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, ErrProfileNotFound, err)
}

func TestUpdate(t *testing.T) {
	var saved *profile.Profile
	repo := &mockRepo{
		findProfileByUserFn: func(ctx context.Context, userID string) (*profile.Profile, error) {
			return &profile.Profile{
				UserID:    userID,
				FullName:  "James Mwale",
				Role:      "installer",
				UpdatedAt: time.Now().UTC().Add(-time.Hour),
			}, nil
		},
		updateProfileFn: func(ctx context.Context, p *profile.Profile) error {
			saved = p
			return nil
		},
	}
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), "user-1", UpdateProfileRequest{
		FullName:           "  James K. Mwale ",
		Phone:              "+265 999 123 456",
		CertificationLevel: "Level 2",
		Skills:             []string{"Solar PV", "Battery Storage"},
		Location:           "Lilongwe",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "James K. Mwale", p.FullName)
	assert.Equal(t, "installer", p.Role)
	assert.Equal(t, []string{"Solar PV", "Battery Storage"}, p.Skills)
	assert.WithinDuration(t, time.Now().UTC(), p.UpdatedAt, time.Minute)
}

func TestUpdateMissingName(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Update(context.Background(), "user-1", UpdateProfileRequest{FullName: "   "})
	assert.Equal(t, ErrMissingName, err)
}

func TestUpdateNotFound(t *testing.T) {
	repo := &mockRepo{
		findProfileByUserFn: func(ctx context.Context, userID string) (*profile.Profile, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "missing", UpdateProfileRequest{FullName: "James Mwale"})
	assert.Equal(t, ErrProfileNotFound, err)
}
