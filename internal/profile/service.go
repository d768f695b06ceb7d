package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrMissingName     = errors.New("full name is required")
)

type UpdateProfileRequest struct {
	FullName           string   `json:"full_name"`
	Phone              string   `json:"phone"`
	CertificationLevel string   `json:"certification_level"`
	Skills             []string `json:"skills"`
	Location           string   `json:"location"`
}

type Service struct {
	repo ProfileRepository
}

func NewService(r ProfileRepository) *Service {
	return &Service{repo: r}
}

func (s *Service) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.repo.FindProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*profile.Profile, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, ErrMissingName
	}
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.FullName = strings.TrimSpace(req.FullName)
	p.Phone = strings.TrimSpace(req.Phone)
	p.CertificationLevel = req.CertificationLevel
	p.Skills = req.Skills
	p.Location = req.Location
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}
