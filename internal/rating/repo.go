package rating

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/rating"
)

type RatingRepository interface {
	CreateRating(ctx context.Context, r *rating.Rating) error
	FindRatingByJob(ctx context.Context, jobID string) (*rating.Rating, error)
	ListRatingsByInstaller(ctx context.Context, installerID string) ([]rating.Rating, error)
	InstallerAverageRating(ctx context.Context, installerID string) (float64, int, error)
}
