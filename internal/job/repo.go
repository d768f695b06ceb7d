package job

import (
	"context"

	"github.com/dmkabwe/zubasolar/internal/types/job"
)

type JobRepository interface {
	CreateJob(ctx context.Context, j *job.Job) error
	FindJobByID(ctx context.Context, id string) (*job.Job, error)
	ListJobsByInstaller(ctx context.Context, installerID string) ([]job.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status job.JobStatus) error
}
