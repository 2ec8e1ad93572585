package scheduler

import (
	"context"
	"time"

	"github.com/ambuso/crypto-etl/internal/config"
)

// Task is one unit of scheduled work.
type Task func(ctx context.Context) error

// Job describes a named, periodically triggered unit of work and its
// retry and alert policy. Catch-up of missed intervals is never performed.
type Job struct {
	Name        string
	Description string
	Owner       string

	Interval   time.Duration // Trigger cadence, aligned to wall-clock boundaries
	Retries    int           // Re-attempts after the first failure
	RetryDelay time.Duration // Fixed delay between attempts

	AlertEmails    []string
	EmailOnFailure bool
	EmailOnRetry   bool
}

// JobFromConfig builds a Job from the job section of the config.
func JobFromConfig(cfg config.JobConfig) Job {
	return Job{
		Name:           cfg.Name,
		Description:    cfg.Description,
		Owner:          cfg.Owner,
		Interval:       cfg.Interval,
		Retries:        cfg.RetryCount(),
		RetryDelay:     cfg.RetryDelay,
		AlertEmails:    cfg.AlertEmails,
		EmailOnFailure: cfg.AlertOnFailure(),
		EmailOnRetry:   cfg.EmailOnRetry,
	}
}

// Attempts returns the maximum number of task invocations per trigger.
func (j Job) Attempts() int {
	return j.Retries + 1
}

// nextRun returns the first interval boundary strictly after now.
func nextRun(now time.Time, interval time.Duration) time.Time {
	return now.Truncate(interval).Add(interval)
}
