package rating

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/rating"
	"github.com/google/uuid"
)

var (
	ErrMissingFields    = errors.New("job, installer and customer email are required")
	ErrRatingOutOfRange = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyRated     = errors.New("job has already been rated")
)

type SubmitRatingRequest struct {
	JobID         string `json:"job_id"`
	InstallerID   string `json:"installer_id"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	ReviewText    string `json:"review_text"`
}

type Service struct {
	repo RatingRepository
}

func NewService(r RatingRepository) *Service {
	return &Service{repo: r}
}

// SubmitRating records a customer review for a completed job. A job carries
// at most one rating.
func (s *Service) SubmitRating(ctx context.Context, req SubmitRatingRequest) (*rating.Rating, error) {
	if strings.TrimSpace(req.JobID) == "" ||
		strings.TrimSpace(req.InstallerID) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, ErrMissingFields
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	existing, err := s.repo.FindRatingByJob(ctx, req.JobID)
	if err == nil && existing != nil {
		return nil, ErrAlreadyRated
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	r := &rating.Rating{
		ID:            uuid.NewString(),
		JobID:         req.JobID,
		InstallerID:   req.InstallerID,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		ReviewText:    req.ReviewText,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateRating(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListRatings(ctx context.Context, installerID string) ([]rating.Rating, error) {
	return s.repo.ListRatingsByInstaller(ctx, installerID)
}

// AverageRating returns the installer's average and review count; 0 average
// when there are no reviews.
func (s *Service) AverageRating(ctx context.Context, installerID string) (float64, int, error) {
	return s.repo.InstallerAverageRating(ctx, installerID)
}

// Average is the pure form of the aggregate: mean rounded half-up to one
// decimal place, 0 for an empty list.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return math.Floor(avg*10+0.5) / 10
}
