package job

import "time"

type JobStatus string

const (
	StatusScheduled  JobStatus = "scheduled"
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
	StatusCancelled  JobStatus = "cancelled"
)

// transitions is the full adjacency table. Cancellation is a valid terminal
// move from either non-terminal state even though no dashboard action
// produces it.
var transitions = map[JobStatus][]JobStatus{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

type Job struct {
	ID                     string    `db:"id" json:"id"`
	InstallerID            string    `db:"installer_id" json:"-"`
	CustomerName           string    `db:"customer_name" json:"customer_name"`
	CustomerEmail          string    `db:"customer_email" json:"customer_email"`
	CustomerPhone          string    `db:"customer_phone" json:"customer_phone,omitempty"`
	Address                string    `db:"address" json:"address"`
	SystemType             string    `db:"system_type" json:"system_type"`
	SystemSize             string    `db:"system_size" json:"system_size"`
	ScheduledDate          time.Time `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime          string    `db:"scheduled_time" json:"scheduled_time"`
	Status                 JobStatus `db:"status" json:"status"`
	Notes                  string    `db:"notes" json:"notes,omitempty"`
	EstimatedDurationHours int       `db:"estimated_duration_hours" json:"estimated_duration_hours"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

func Valid(s JobStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed move.
func CanTransition(from, to JobStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Upcoming reports whether a job belongs to the dashboard's upcoming
// partition. Cancelled jobs belong to neither partition.
func (j Job) Upcoming() bool {
	return j.Status == StatusScheduled || j.Status == StatusInProgress
}

func (j Job) Completed() bool {
	return j.Status == StatusCompleted
}
