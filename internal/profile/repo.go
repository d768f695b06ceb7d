package profile

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
)

type ProfileRepository interface {
	FindProfileByUser(ctx context.Context, userID string) (*profile.Profile, error)
	UpdateProfile(ctx context.Context, p *profile.Profile) error
}
