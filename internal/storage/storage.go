package storage

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/job"
	"github.com/dmkabwe/zubasolar/internal/types/order"
	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/rating"
	"github.com/dmkabwe/zubasolar/internal/types/user"
)

// UserRepository stores installer accounts. Account and profile are created
// together so a registration either fully lands or not at all.
type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, u *user.User, p *profile.Profile) error
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
}

// ProfileRepository stores installer profiles, one per account.
type ProfileRepository interface {
	FindProfileByUser(ctx context.Context, userID string) (*profile.Profile, error)
	UpdateProfile(ctx context.Context, p *profile.Profile) error
}

// OrderRepository stores customer orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	FindLatestOrderByEmail(ctx context.Context, email string) (*order.Order, error)
	MarkOrderPaid(ctx context.Context, id string) error
	ListOrdersForFulfillment(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.OrderStatus) error
}

// JobRepository stores installation jobs.
type JobRepository interface {
	CreateJob(ctx context.Context, j *job.Job) error
	FindJobByID(ctx context.Context, id string) (*job.Job, error)
	ListJobsByInstaller(ctx context.Context, installerID string) ([]job.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status job.JobStatus) error
}

// RatingRepository stores customer ratings and the per-installer aggregate.
type RatingRepository interface {
	CreateRating(ctx context.Context, r *rating.Rating) error
	FindRatingByJob(ctx context.Context, jobID string) (*rating.Rating, error)
	ListRatingsByInstaller(ctx context.Context, installerID string) ([]rating.Rating, error)
	InstallerAverageRating(ctx context.Context, installerID string) (float64, int, error)
}

// Storage bundles every repository plus connection management.
type Storage interface {
	UserRepository
	ProfileRepository
	OrderRepository
	JobRepository
	RatingRepository

	Ping(ctx context.Context) error
	Close() error
}
