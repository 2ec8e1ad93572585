package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ambuso/crypto-etl/internal/metrics"
)

// Status is a point-in-time view of the runner for health checks.
type Status struct {
	Job                 string    `json:"job"`
	Running             bool      `json:"running"`
	LastRun             time.Time `json:"last_run"`
	LastSuccess         time.Time `json:"last_success"`
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	NextRun             time.Time `json:"next_run"`
}

// Runner triggers a Task according to a Job descriptor.
type Runner struct {
	job      Job
	task     Task
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	// runMu serialises invocations.
	runMu sync.Mutex

	mu     sync.Mutex
	status Status

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Runner. A nil notifier logs alerts.
func New(job Job, task Task, notifier Notifier, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &Runner{
		job:      job,
		task:     task,
		notifier: notifier,
		logger:   logger.With("job", job.Name),
		now:      time.Now,
		status:   Status{Job: job.Name},
	}
}

// Start begins the scheduling loop.
func (r *Runner) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("job scheduler started",
		"interval", r.job.Interval,
		"retries", r.job.Retries,
		"retry_delay", r.job.RetryDelay,
	)

	return nil
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("job scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the current runner status.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// run is the main scheduling loop.
func (r *Runner) run() {
	defer r.wg.Done()

	// Run immediately on start.
	r.RunOnce(r.ctx)

	for {
		// Computed after the run completes, so ticks missed while running
		// are dropped rather than replayed.
		next := nextRun(r.now(), r.job.Interval)
		r.mu.Lock()
		r.status.NextRun = next
		r.mu.Unlock()

		timer := time.NewTimer(next.Sub(r.now()))
		select {
		case <-r.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.RunOnce(r.ctx)
		}
	}
}

// RunOnce invokes the task with the job's retry policy and returns the
// last error if every attempt failed.
func (r *Runner) RunOnce(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	r.mu.Lock()
	r.status.Running = true
	r.status.LastRun = r.now()
	r.mu.Unlock()

	err := r.attempt(ctx)

	r.mu.Lock()
	r.status.Running = false
	if err != nil {
		r.status.LastError = err.Error()
		r.status.ConsecutiveFailures++
	} else {
		r.status.LastError = ""
		r.status.LastSuccess = r.now()
		r.status.ConsecutiveFailures = 0
	}
	r.mu.Unlock()

	return err
}

func (r *Runner) attempt(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= r.job.Attempts(); attempt++ {
		if attempt > 1 {
			metrics.RetriesTotal.Inc()
			r.logger.Info("retrying job",
				"attempt", attempt,
				"delay", r.job.RetryDelay,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.job.RetryDelay):
			}
		}

		if err = r.task(ctx); err == nil {
			return nil
		}

		// Cancellation is shutdown, not a job failure.
		if ctx.Err() != nil {
			return err
		}

		final := attempt == r.job.Attempts()
		if (final && r.job.EmailOnFailure) || (!final && r.job.EmailOnRetry) {
			r.notify(ctx, Alert{
				Job:        r.job.Name,
				Recipients: r.job.AlertEmails,
				Attempt:    attempt,
				Final:      final,
				Err:        err,
				At:         r.now(),
			})
		}
	}
	return err
}

func (r *Runner) notify(ctx context.Context, a Alert) {
	if err := r.notifier.Notify(ctx, a); err != nil {
		r.logger.Warn("failed to send alert", "error", err)
	}
}
