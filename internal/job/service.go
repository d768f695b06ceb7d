package job

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/job"
	"github.com/google/uuid"
)

var (
	ErrMissingFields     = errors.New("customer, address, system and schedule are required")
	ErrInvalidDate       = errors.New("scheduled_date must be YYYY-MM-DD")
	ErrJobNotFound       = errors.New("job not found")
	ErrNotJobOwner       = errors.New("job belongs to another installer")
	ErrInvalidTransition = errors.New("invalid job status transition")
)

type ScheduleJobRequest struct {
	CustomerName           string `json:"customer_name"`
	CustomerEmail          string `json:"customer_email"`
	CustomerPhone          string `json:"customer_phone"`
	Address                string `json:"address"`
	SystemType             string `json:"system_type"`
	SystemSize             string `json:"system_size"`
	ScheduledDate          string `json:"scheduled_date"`
	ScheduledTime          string `json:"scheduled_time"`
	Notes                  string `json:"notes"`
	EstimatedDurationHours int    `json:"estimated_duration_hours"`
}

type Service struct {
	repo JobRepository
}

func NewService(r JobRepository) *Service {
	return &Service{repo: r}
}

// ListJobs returns the installer's jobs ordered by scheduled date, then
// scheduled time, so the dashboard ordering is deterministic.
func (s *Service) ListJobs(ctx context.Context, installerID string) ([]job.Job, error) {
	return s.repo.ListJobsByInstaller(ctx, installerID)
}

// Partition splits jobs into the dashboard's upcoming and completed tabs.
// Cancelled jobs appear in neither.
func Partition(jobs []job.Job) (upcoming, completed []job.Job) {
	for _, j := range jobs {
		switch {
		case j.Upcoming():
			upcoming = append(upcoming, j)
		case j.Completed():
			completed = append(completed, j)
		}
	}
	return upcoming, completed
}

func (s *Service) ScheduleJob(ctx context.Context, installerID string, req ScheduleJobRequest) (*job.Job, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	address := strings.TrimSpace(req.Address)

	if name == "" || email == "" || address == "" ||
		req.SystemType == "" || req.SystemSize == "" ||
		req.ScheduledDate == "" || req.ScheduledTime == "" {
		return nil, ErrMissingFields
	}
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now().UTC()
	j := &job.Job{
		ID:                     uuid.NewString(),
		InstallerID:            installerID,
		CustomerName:           name,
		CustomerEmail:          email,
		CustomerPhone:          strings.TrimSpace(req.CustomerPhone),
		Address:                address,
		SystemType:             req.SystemType,
		SystemSize:             req.SystemSize,
		ScheduledDate:          date,
		ScheduledTime:          req.ScheduledTime,
		Status:                 job.StatusScheduled,
		Notes:                  req.Notes,
		EstimatedDurationHours: req.EstimatedDurationHours,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.repo.CreateJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// UpdateStatus moves a job along its lifecycle. The transition table is
// checked here even though the dashboard only ever offers legal moves.
func (s *Service) UpdateStatus(ctx context.Context, installerID, jobID string, next job.JobStatus) (*job.Job, error) {
	j, err := s.repo.FindJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if j.InstallerID != installerID {
		return nil, ErrNotJobOwner
	}
	if !job.Valid(next) || !job.CanTransition(j.Status, next) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateJobStatus(ctx, jobID, next); err != nil {
		return nil, err
	}
	return s.repo.FindJobByID(ctx, jobID)
}
