package user

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/user"
)

type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, u *user.User, p *profile.Profile) error
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
}
