package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		want bool
	}{
		{"start scheduled job", StatusScheduled, StatusInProgress, true},
		{"cancel scheduled job", StatusScheduled, StatusCancelled, true},
		{"complete running job", StatusInProgress, StatusCompleted, true},
		{"cancel running job", StatusInProgress, StatusCancelled, true},
		{"skip straight to completed", StatusScheduled, StatusCompleted, false},
		{"reopen completed job", StatusCompleted, StatusInProgress, false},
		{"leave cancelled", StatusCancelled, StatusScheduled, false},
		{"backwards move", StatusInProgress, StatusScheduled, false},
		{"no self loop", StatusScheduled, StatusScheduled, false},
		{"unknown target", StatusScheduled, JobStatus("paused"), false},
		{"unknown source", JobStatus("paused"), StatusInProgress, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(StatusScheduled))
	assert.True(t, Valid(StatusCancelled))
	assert.False(t, Valid(JobStatus("paused")))
	assert.False(t, Valid(JobStatus("")))
}

func TestPartitionPredicates(t *testing.T) {
	assert.True(t, Job{Status: StatusScheduled}.Upcoming())
	assert.True(t, Job{Status: StatusInProgress}.Upcoming())
	assert.False(t, Job{Status: StatusCompleted}.Upcoming())
	assert.False(t, Job{Status: StatusCancelled}.Upcoming())

	assert.True(t, Job{Status: StatusCompleted}.Completed())
	assert.False(t, Job{Status: StatusCancelled}.Completed())
}
